// Package marker defines the placeholder syntax recognised by the template
// parser and the helpers that turn tagged-literal fragments into markup.
package marker

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// Open and Close delimit an inline placeholder key.
	Open  = "{{"
	Close = "}}"

	// Sentinel marks a purely structural slot. It only has meaning as the
	// full content of a comment node.
	Sentinel = Open + Close

	// BoundAttributeSuffix is appended to the names of bound attributes so
	// generic attribute handling does not apply to them. The parser strips it.
	BoundAttributeSuffix = "$bound$"
)

// Pattern matches a single placeholder and captures its key.
var Pattern = regexp.MustCompile(`\{\{([^{}]+?)\}\}`)

var exactPattern = regexp.MustCompile(`^\{\{([^{}]+?)\}\}$`)

// lastAttributeName matches the attribute name at the end of a literal
// fragment that is followed by a placeholder in attribute-value position.
var lastAttributeName = regexp.MustCompile(
	`([ \t\n\f\r])([^\x00-\x1F\x7F-\x9F \t\n\f\r"'>=/]+)([ \t\n\f\r]*=[ \t\n\f\r]*(?:[^ \t\n\f\r"'` + "`" + `<>=]*|"[^"]*|'[^']*))$`,
)

// Contains reports whether s holds at least one placeholder.
func Contains(s string) bool {
	return Pattern.MatchString(s)
}

// Count returns the number of placeholders in s.
func Count(s string) int {
	return len(Pattern.FindAllStringIndex(s, -1))
}

// Exact reports whether s, ignoring surrounding whitespace, is exactly one
// placeholder, and returns its key.
func Exact(s string) (string, bool) {
	m := exactPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// IsSentinel reports whether s is the structural sentinel.
func IsSentinel(s string) bool {
	return strings.TrimSpace(s) == Sentinel
}

// Split breaks s around its placeholders. It returns the literal fragments
// (always one more than the number of keys) and the trimmed keys.
func Split(s string) (literals []string, keys []string) {
	matches := Pattern.FindAllStringSubmatchIndex(s, -1)
	literals = make([]string, 0, len(matches)+1)
	keys = make([]string, 0, len(matches))
	pos := 0
	for _, m := range matches {
		literals = append(literals, s[pos:m[0]])
		keys = append(keys, strings.TrimSpace(s[m[2]:m[3]]))
		pos = m[1]
	}
	literals = append(literals, s[pos:])
	return literals, keys
}

// Key formats the positional key used for the i-th literal placeholder.
func Key(i int) string {
	return strconv.Itoa(i)
}

// Placeholder wraps key in the placeholder delimiters.
func Placeholder(key string) string {
	return Open + key + Close
}

// AttributeName returns the attribute name a literal fragment ends in when the
// following placeholder sits in attribute-value position.
func AttributeName(fragment string) (string, bool) {
	m := lastAttributeName.FindStringSubmatch(fragment)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// TrimSuffix strips the bound attribute suffix from an attribute key.
func TrimSuffix(key string) string {
	if len(key) >= len(BoundAttributeSuffix) &&
		strings.EqualFold(key[len(key)-len(BoundAttributeSuffix):], BoundAttributeSuffix) {
		return key[:len(key)-len(BoundAttributeSuffix)]
	}
	return key
}

// Join concatenates tagged-literal fragments into markup, inserting one
// positional placeholder between each pair. Placeholders in attribute-value
// position get the bound suffix appended to their attribute name.
func Join(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}
	var b strings.Builder
	last := len(fragments) - 1
	for i, fragment := range fragments[:last] {
		b.WriteString(fragment)
		if inTag(b.String()) {
			if m := lastAttributeName.FindStringSubmatchIndex(fragment); m != nil {
				out := b.String()
				nameEnd := len(out) - len(fragment) + m[5]
				b.Reset()
				b.WriteString(out[:nameEnd])
				b.WriteString(BoundAttributeSuffix)
				b.WriteString(out[nameEnd:])
			}
		}
		b.WriteString(Placeholder(Key(i)))
	}
	b.WriteString(fragments[last])
	return b.String()
}

func inTag(markup string) bool {
	return strings.LastIndex(markup, "<") > strings.LastIndex(markup, ">")
}
