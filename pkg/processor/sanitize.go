package processor

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizeName is the name the sanitizing processor registers under.
const SanitizeName = "sanitize"

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// Sanitizing returns a processor that runs part.HTML values through policy
// before parsing them. A nil policy selects bluemonday's UGC policy.
func Sanitizing(policy *bluemonday.Policy, options ...Option) *Standard {
	if policy == nil {
		policy = defaultPolicy()
	}
	opts := append([]Option{WithName(SanitizeName)}, options...)
	opts = append(opts, WithHTMLFilter(policy.Sanitize))
	return New(opts...)
}

func defaultPolicy() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.RequireNoFollowOnLinks(true)
		ugcPolicy = policy
	})
	return ugcPolicy
}
