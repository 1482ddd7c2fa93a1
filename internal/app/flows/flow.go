// Package flows holds the content-generation use cases. Each flow validates its
// input, renders a prompt, calls the model and shapes the output, substituting a
// declared fallback when the model produces nothing usable.
package flows

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/llm"
	"github.com/yigit/studyportal/internal/pkg/logger"
	"github.com/yigit/studyportal/internal/pkg/prompt"
	"github.com/yigit/studyportal/internal/pkg/validation"
)

// ErrNoOutput marks a generation failure where the model answered with nothing.
var ErrNoOutput = errors.New("model produced no output")

// Flow is one generation use case from input In to output Out.
type Flow[In, Out any] struct {
	Name   string
	System string
	Prompt *prompt.Template
	Schema *llm.Schema

	// Extend adds derived values to the prompt data after validation.
	Extend func(in In, data prompt.Data)
	// Image returns the data URI sent alongside the prompt, if any.
	Image func(in In) string
	// Fallback is returned when the model fails or produces no output. A nil
	// Fallback makes those cases an ErrGenerationFailed error instead.
	Fallback func() Out
}

// Run executes the flow. Invalid input is rejected before the model is called.
func (f *Flow[In, Out]) Run(ctx context.Context, model llm.Model, in In) (Out, error) {
	var zero Out
	if err := validation.Validate(in); err != nil {
		return zero, err
	}

	req, err := f.Request(in)
	if err != nil {
		return zero, err
	}

	log := f.logger()
	raw, err := model.GenerateObject(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("Model call failed")
		return f.fallback(err)
	}

	var out Out
	ok, err := llm.Decode(raw, &out)
	if err != nil {
		log.Warn().Err(err).Msg("Model returned malformed output")
		return f.fallback(err)
	}
	if !ok {
		log.Info().Msg("Model returned no output")
		return f.fallback(nil)
	}
	return out, nil
}

// Request renders the model request for an already validated input.
func (f *Flow[In, Out]) Request(in In) (llm.Request, error) {
	data, err := prompt.DataOf(in)
	if err != nil {
		return llm.Request{}, fmt.Errorf("%s: %w", f.Name, err)
	}
	if f.Extend != nil {
		f.Extend(in, data)
	}

	req := llm.Request{
		System: f.System,
		Prompt: f.Prompt.Render(data),
		Schema: f.Schema,
	}
	if f.Image != nil {
		req.ImageDataURI = f.Image(in)
	}
	return req, nil
}

func (f *Flow[In, Out]) fallback(cause error) (Out, error) {
	if f.Fallback != nil {
		return f.Fallback(), nil
	}
	var zero Out
	if cause == nil {
		cause = ErrNoOutput
	}
	return zero, fmt.Errorf("%w: %s: %w", apperrors.ErrGenerationFailed, f.Name, cause)
}

func (f *Flow[In, Out]) logger() *zerolog.Logger {
	l := logger.Component("flows").With().Str("flow", f.Name).Logger()
	return &l
}
