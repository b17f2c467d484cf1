package fill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/capecc-engine/internal/form"
	"github.com/pdiddy/capecc-engine/internal/prompt"
	"github.com/pdiddy/capecc-engine/pkg/types"
)

func TestMain(m *testing.M) {
	// Override backoff to avoid real sleeps in retry tests.
	backoffBase = time.Millisecond
	os.Exit(m.Run())
}

// --- mock reasoner ---

type mockReasoner struct {
	output string
	err    error
	calls  int
}

func (m *mockReasoner) Reason(_ context.Context, _, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

// failNTimesReasoner fails the first N calls, then succeeds.
type failNTimesReasoner struct {
	failures  int
	callCount int
	output    string
}

func (f *failNTimesReasoner) Reason(_ context.Context, _, _ string) (string, error) {
	f.callCount++
	if f.callCount <= f.failures {
		return "", fmt.Errorf("transient error (call %d)", f.callCount)
	}
	return f.output, nil
}

func testConfig() types.FillConfig {
	return types.FillConfig{
		AIConfig: types.AIConfig{Model: "test-model", MaxRetries: 3},
	}
}

const validFormJSON = `{"size_extent": {"estimated_size_mm": 18.4}, "nuclear_grade": "grade_3"}`

func modelOutput(reasoning, jsonBody string) string {
	return reasoning + "\n" + prompt.JSONStart + "\n" + jsonBody + "\n" + prompt.JSONEnd + "\n"
}

func TestFill(t *testing.T) {
	r := &mockReasoner{output: modelOutput("The report names an 18.4 mm cribriform lesion.", validFormJSON)}

	result, err := Fill(context.Background(), r, testConfig(), "Specimen A: DCIS, 18.4 mm.")
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if got := *result.Form.SizeExtent.EstimatedSizeMM; got != 18.4 {
		t.Errorf("estimated size = %v, want 18.4", got)
	}
	if result.Form.NuclearGrade == nil || *result.Form.NuclearGrade != form.GradeThree {
		t.Errorf("nuclear grade = %v, want grade_3", result.Form.NuclearGrade)
	}
	if !strings.Contains(result.Reasoning, "18.4 mm cribriform lesion") {
		t.Errorf("reasoning not captured: %q", result.Reasoning)
	}
	if r.calls != 1 {
		t.Errorf("reasoner called %d times, want 1", r.calls)
	}
}

func TestFillWithoutEndSentinel(t *testing.T) {
	r := &mockReasoner{output: "thinking...\n" + prompt.JSONStart + "\n" + validFormJSON}

	result, err := Fill(context.Background(), r, testConfig(), "report")
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if result.RawJSON != validFormJSON {
		t.Errorf("RawJSON = %q, want %q", result.RawJSON, validFormJSON)
	}
}

func TestFillEmptyReport(t *testing.T) {
	r := &mockReasoner{output: modelOutput("", validFormJSON)}
	if _, err := Fill(context.Background(), r, testConfig(), "   "); err == nil {
		t.Fatal("expected error for empty report")
	}
	if r.calls != 0 {
		t.Errorf("reasoner called %d times for empty report, want 0", r.calls)
	}
}

func TestFillMissingSentinel(t *testing.T) {
	r := &mockReasoner{output: "no structured output here"}
	_, err := Fill(context.Background(), r, testConfig(), "report")
	if err == nil || !strings.Contains(err.Error(), prompt.JSONStart) {
		t.Fatalf("expected missing-sentinel error, got %v", err)
	}
}

func TestFillMalformedJSON(t *testing.T) {
	r := &mockReasoner{output: modelOutput("reasoning", `{"size_extent": `)}
	_, err := Fill(context.Background(), r, testConfig(), "report")
	if err == nil || !strings.Contains(err.Error(), "parsing model JSON") {
		t.Fatalf("expected JSON parse error, got %v", err)
	}
}

func TestFillValidationFailure(t *testing.T) {
	r := &mockReasoner{output: modelOutput("reasoning", `{"procedure": {"kind": "other"}}`)}
	_, err := Fill(context.Background(), r, testConfig(), "report")
	if err == nil || !strings.Contains(err.Error(), "procedure.specification") {
		t.Fatalf("expected validation error naming the field path, got %v", err)
	}
}

func TestFillRetriesTransientErrors(t *testing.T) {
	r := &failNTimesReasoner{failures: 2, output: modelOutput("ok", validFormJSON)}

	if _, err := Fill(context.Background(), r, testConfig(), "report"); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if r.callCount != 3 {
		t.Errorf("reasoner called %d times, want 3", r.callCount)
	}
}

func TestFillExhaustsRetries(t *testing.T) {
	r := &mockReasoner{err: fmt.Errorf("permanent failure")}

	_, err := Fill(context.Background(), r, testConfig(), "report")
	if err == nil || !strings.Contains(err.Error(), "permanent failure") {
		t.Fatalf("expected wrapped reasoner error, got %v", err)
	}
	// 1 initial + 3 retries = 4 total calls.
	if r.calls != 4 {
		t.Errorf("reasoner called %d times, want 4", r.calls)
	}
}

// --- ClaudeReasoner ---

func TestClaudeReasonerReason(t *testing.T) {
	var gotReq claudeRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(claudeResponse{Content: []claudeContent{
			{Type: "text", Text: "reasoned "},
			{Type: "tool_use", Text: "ignored"},
			{Type: "text", Text: "output"},
		}})
	}))
	defer ts.Close()

	oldURL := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = oldURL }()

	r := &ClaudeReasoner{APIKey: "test-key", Model: "test-model", Client: ts.Client()}
	got, err := r.Reason(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Reason: %v", err)
	}
	if got != "reasoned output" {
		t.Errorf("Reason = %q, want %q", got, "reasoned output")
	}
	if gotReq.System != "system prompt" {
		t.Errorf("request system = %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "user prompt" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
}

func TestClaudeReasonerAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "bad request"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	oldURL := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = oldURL }()

	r := &ClaudeReasoner{APIKey: "test-key", Model: "test-model", Client: ts.Client()}
	_, err := r.Reason(context.Background(), "system", "user")
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected status error, got %v", err)
	}
}
