package window

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name       string
		windowSize int
		overlap    int
	}{
		{"zero window size", 0, 0},
		{"negative window size", -3, 0},
		{"negative overlap", 5, -1},
		{"overlap equals window size", 4, 4},
		{"overlap exceeds window size", 4, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.windowSize, tt.overlap); err == nil {
				t.Fatalf("New(%d, %d): expected error", tt.windowSize, tt.overlap)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		windowSize int
		overlap    int
		text       string
		want       []string
	}{
		{
			name:       "overlapping windows",
			windowSize: 3,
			overlap:    1,
			text:       "one two three four five six",
			want:       []string{"one two three", "three four five", "five six"},
		},
		{
			name:       "no overlap",
			windowSize: 2,
			overlap:    0,
			text:       "a b c d e",
			want:       []string{"a b", "c d", "e"},
		},
		{
			name:       "window larger than input",
			windowSize: 10,
			overlap:    2,
			text:       "just four little tokens",
			want:       []string{"just four little tokens"},
		},
		{
			name:       "collapses irregular whitespace",
			windowSize: 2,
			overlap:    0,
			text:       "  alpha \t beta\n gamma  ",
			want:       []string{"alpha beta", "gamma"},
		},
		{
			name:       "empty input",
			windowSize: 3,
			overlap:    0,
			text:       "",
			want:       nil,
		},
		{
			name:       "whitespace-only input",
			windowSize: 3,
			overlap:    0,
			text:       "   \t\n  ",
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(tt.windowSize, tt.overlap)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got := engine.Generate(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Generate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// TestGenerateIndexArithmetic cross-checks Generate against direct slice
// computation: window i must equal tokens[i*step : i*step+windowSize] clipped
// at the end, the window count must be ceil(tokenCount/step), and no window
// may exceed windowSize tokens.
func TestGenerateIndexArithmetic(t *testing.T) {
	configs := []struct{ windowSize, overlap int }{
		{1, 0}, {3, 1}, {5, 4}, {7, 2}, {50, 10},
	}

	for _, cfg := range configs {
		for _, tokenCount := range []int{1, 2, 5, 13, 100} {
			t.Run(fmt.Sprintf("w%d_o%d_n%d", cfg.windowSize, cfg.overlap, tokenCount), func(t *testing.T) {
				tokens := make([]string, tokenCount)
				for i := range tokens {
					tokens[i] = fmt.Sprintf("t%d", i)
				}

				engine, err := New(cfg.windowSize, cfg.overlap)
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				windows := engine.Generate(strings.Join(tokens, " "))

				step := cfg.windowSize - cfg.overlap
				wantCount := (tokenCount + step - 1) / step
				if len(windows) != wantCount {
					t.Fatalf("got %d windows, want %d", len(windows), wantCount)
				}

				for i, w := range windows {
					if n := len(strings.Fields(w)); n > cfg.windowSize {
						t.Errorf("window %d has %d tokens, exceeds window size %d", i, n, cfg.windowSize)
					}
					start := i * step
					end := start + cfg.windowSize
					if end > tokenCount {
						end = tokenCount
					}
					if want := strings.Join(tokens[start:end], " "); w != want {
						t.Errorf("window %d = %q, want %q", i, w, want)
					}
				}
			})
		}
	}
}
