// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fill runs the two-phase form-fill pipeline: reason about a
// pathology report until the model emits structured JSON, then validate the
// JSON into a typed resection form.
package fill

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/capecc-engine/internal/form"
	"github.com/pdiddy/capecc-engine/internal/prompt"
	"github.com/pdiddy/capecc-engine/pkg/types"
)

// Reasoner abstracts the Generative AI API so tests can supply a mock. A
// single blocking call produces the model's free-form output; any internal
// retrying is the implementation's concern.
type Reasoner interface {
	Reason(ctx context.Context, system, user string) (string, error)
}

// Result holds the outcome of one fill run.
type Result struct {
	// Form is the validated resection form.
	Form *form.ResectionForm

	// RawJSON is the JSON object text extracted between the sentinels,
	// before validation.
	RawJSON string

	// Reasoning is the model output preceding the JSON start sentinel.
	Reasoning string
}

// backoffBase controls the base duration for exponential backoff between
// reasoner attempts. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// Fill builds the crane prompts for report, calls the reasoner with retry,
// extracts the JSON object between the sentinels, and validates it into a
// typed form. Validation failures are returned as an error carrying every
// accumulated message.
func Fill(ctx context.Context, r Reasoner, cfg types.FillConfig, report string) (*Result, error) {
	if strings.TrimSpace(report) == "" {
		return nil, fmt.Errorf("report text is empty")
	}

	prompts := prompt.BuildCranePrompts(report)

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	output, err := reasonWithRetry(ctx, r, prompts.Reasoning, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("reasoning over report: %w", err)
	}

	reasoning, rawJSON, err := splitOutput(output)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal([]byte(rawJSON), &payload); err != nil {
		return nil, fmt.Errorf("parsing model JSON: %w", err)
	}

	ok, f, errs := form.Validate(payload)
	if !ok {
		return nil, fmt.Errorf("model output failed validation: %s", strings.Join(errs, "; "))
	}

	return &Result{Form: f, RawJSON: rawJSON, Reasoning: reasoning}, nil
}

// reasonWithRetry calls the reasoner with exponential backoff.
func reasonWithRetry(ctx context.Context, r Reasoner, user string, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		output, err := r.Reason(ctx, prompt.System, user)
		if err == nil {
			return output, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// splitOutput separates the free-form reasoning from the JSON object between
// the sentinels. A missing end sentinel is tolerated: everything after the
// start sentinel is taken as JSON.
func splitOutput(output string) (reasoning, rawJSON string, err error) {
	start := strings.Index(output, prompt.JSONStart)
	if start < 0 {
		return "", "", fmt.Errorf("model output contains no %s sentinel", prompt.JSONStart)
	}

	reasoning = strings.TrimSpace(output[:start])
	rest := output[start+len(prompt.JSONStart):]
	if end := strings.Index(rest, prompt.JSONEnd); end >= 0 {
		rest = rest[:end]
	}

	rawJSON = strings.TrimSpace(rest)
	if rawJSON == "" {
		return "", "", fmt.Errorf("model output contains no JSON after %s", prompt.JSONStart)
	}
	return reasoning, rawJSON, nil
}
