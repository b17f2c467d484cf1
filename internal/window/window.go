// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package window turns free text into overlapping fixed-size token windows
// for model-friendly chunking.
package window

import (
	"fmt"
	"strings"
)

// Engine generates overlapping token windows. Configuration is immutable
// after construction and Generate holds no state, so a single Engine may be
// shared across goroutines.
type Engine struct {
	windowSize int
	overlap    int
}

// New validates the window configuration and returns an Engine.
// windowSize must be positive and overlap must satisfy 0 <= overlap < windowSize.
func New(windowSize, overlap int) (*Engine, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be greater than zero, got %d", windowSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must be zero or positive, got %d", overlap)
	}
	if overlap >= windowSize {
		return nil, fmt.Errorf("overlap %d must be smaller than window size %d", overlap, windowSize)
	}
	return &Engine{windowSize: windowSize, overlap: overlap}, nil
}

// Generate splits text on whitespace and walks a cursor across the tokens
// with step = windowSize - overlap, emitting each window re-joined with
// single spaces. The final window may be shorter than windowSize. Empty or
// all-whitespace input yields no windows.
func (e *Engine) Generate(text string) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	step := e.windowSize - e.overlap
	var windows []string
	for start := 0; start < len(tokens); start += step {
		end := start + e.windowSize
		if end > len(tokens) {
			end = len(tokens)
		}
		windows = append(windows, strings.Join(tokens[start:end], " "))

		// step > 0 is guaranteed by the constructor invariant; the halt
		// below keeps Generate finite even if that ever regresses.
		if step <= 0 {
			break
		}
	}
	return windows
}

// WindowSize returns the configured tokens-per-window count.
func (e *Engine) WindowSize() int { return e.windowSize }

// Overlap returns the configured token overlap between consecutive windows.
func (e *Engine) Overlap() int { return e.overlap }
