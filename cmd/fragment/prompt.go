package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-fragment/pkg/part"
	"github.com/goliatone/go-fragment/pkg/values"
)

// ErrAborted indicates the user interrupted a prompt.
var ErrAborted = errors.New("fragment: prompt aborted")

// prompter abstracts the terminal so commands can be tested without one.
type prompter interface {
	Input(ctx context.Context, message string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{Message: message}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", err
	}
	return out, nil
}

func promptMissing(e *env, descs []part.Descriptor, vals values.Map) error {
	for _, key := range missingKeys(descs, vals) {
		answer, err := e.prompter.Input(e.ctx, fmt.Sprintf("%s:", key))
		if err != nil {
			return err
		}
		vals[key] = answer
	}
	return nil
}
