// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt builds the prompting messages used to fill the CAP DCIS
// resection form from pathology report text. All construction is pure string
// templating; the model call itself lives in internal/fill.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// JSONStart marks where structured JSON output begins in model responses.
const JSONStart = "<JSON_START>"

// JSONEnd marks where structured JSON output ends in model responses.
const JSONEnd = "<JSON_END>"

// DefaultTemplate is the summary prompt attached to assembled prompt payloads.
const DefaultTemplate = `You are a pathology assistant helping to prepare a CAP compliant report for ductal carcinoma in situ
(DCIS) breast resection specimens. Use the provided structured data to generate a concise, factual
summary covering margin status, receptor testing, and any ancillary comments. Highlight missing data
as actionable questions back to the pathologist.`

// System instructs the model how to format its response.
var System = fmt.Sprintf(
	"You are an assistant that must think step-by-step before responding. "+
		"Only emit JSON output between the delimiters %s and %s.",
	JSONStart, JSONEnd,
)

// ReasoningInstructions guide free-form reasoning prior to structured output.
var ReasoningInstructions = fmt.Sprintf(
	"Use a scratchpad to reason about the report before generating JSON. "+
		"Ensure that intermediate thoughts stay outside the %s/%s "+
		"delimiters so that only the final structured answer is enclosed.",
	JSONStart, JSONEnd,
)

// userPromptTmpl embeds the report text into a user-facing prompt with a
// reminder to hold JSON output until the start sentinel.
var userPromptTmpl = template.Must(template.New("user").Parse(`Review the following report carefully. Do not produce any JSON output until you explicitly encounter the token {{.JSONStart}}.

Report:
{{.Report}}
`))

// cranePromptTmpl is the shared context for the two-phase fill pipeline.
var cranePromptTmpl = template.Must(template.New("crane").Parse(`You are a pathology assistant preparing the CAP DCIS Resection form.
Use the following pathology report to populate the structured data form.

Report:
{{.Report}}

`))

// BuildUserPrompt creates the user-facing prompt embedding the report text.
func BuildUserPrompt(report string) string {
	var buf bytes.Buffer
	// The template contains no dynamic control flow; Execute cannot fail
	// with these inputs.
	_ = userPromptTmpl.Execute(&buf, struct {
		JSONStart string
		Report    string
	}{JSONStart: JSONStart, Report: strings.TrimSpace(report)})
	return buf.String()
}

// CranePrompts holds the two prompts of the fill pipeline: a step-by-step
// reasoning prompt that ends at the JSON start sentinel, and the prefix shown
// before constrained JSON generation.
type CranePrompts struct {
	Reasoning  string
	JSONPrefix string
}

// BuildCranePrompts builds the reasoning and JSON prompts for a report.
func BuildCranePrompts(report string) CranePrompts {
	var buf bytes.Buffer
	_ = cranePromptTmpl.Execute(&buf, struct{ Report string }{Report: strings.TrimSpace(report)})
	shared := buf.String()

	reasoning := shared +
		"Think step by step about the report to decide on each form field.\n" +
		fmt.Sprintf("When you are ready to emit the structured data, write %s on a new line.", JSONStart) +
		" This signals the start of the JSON object." +
		fmt.Sprintf(" Close the object with %s.", JSONEnd)

	jsonPrefix := shared +
		"Now emit only the JSON representation of the DCIS Resection form." +
		" The JSON must follow the resection form schema.\n"

	return CranePrompts{Reasoning: reasoning, JSONPrefix: jsonPrefix}
}
