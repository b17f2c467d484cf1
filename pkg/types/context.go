// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire format for report dates (ISO-8601 calendar date).
const DateFormat = "2006-01-02"

// DefaultModelName is the model identifier recorded in prompt payloads when
// the caller does not specify one.
const DefaultModelName = "gpt-4o"

// SpecimenDetail describes one specimen accompanying a pathology report.
type SpecimenDetail struct {
	Identifier   string `json:"identifier" yaml:"identifier"`
	Description  string `json:"description" yaml:"description"`
	MarginStatus string `json:"margin_status,omitempty" yaml:"margin_status,omitempty"`
}

// PatientContext is the structured data that accompanies a prompt sent to a
// language model. Construct it with NewPatientContext or through
// form.ValidateContext; instances are not mutated afterwards.
type PatientContext struct {
	PatientID       string           `json:"patient_id" yaml:"patient_id"`
	ClinicalHistory string           `json:"clinical_history" yaml:"clinical_history"`
	ReportDate      time.Time        `json:"report_date" yaml:"report_date"`
	Specimens       []SpecimenDetail `json:"specimens" yaml:"specimens"`
}

// NewPatientContext builds a PatientContext from already-typed parameters.
// Identifier fields are trimmed; an empty patient or specimen identifier is
// an error. The report date is supplied explicitly so construction stays
// deterministic; callers wanting "today" pass time.Now().
func NewPatientContext(patientID, clinicalHistory string, reportDate time.Time, specimens []SpecimenDetail) (*PatientContext, error) {
	id := strings.TrimSpace(patientID)
	if id == "" {
		return nil, fmt.Errorf("patient_id must contain non-whitespace characters")
	}

	normalized := make([]SpecimenDetail, 0, len(specimens))
	for i, spec := range specimens {
		specID := strings.TrimSpace(spec.Identifier)
		if specID == "" {
			return nil, fmt.Errorf("specimens[%d]: identifier must contain non-whitespace characters", i)
		}
		normalized = append(normalized, SpecimenDetail{
			Identifier:   specID,
			Description:  spec.Description,
			MarginStatus: strings.TrimSpace(spec.MarginStatus),
		})
	}

	return &PatientContext{
		PatientID:       id,
		ClinicalHistory: strings.TrimSpace(clinicalHistory),
		ReportDate:      reportDate,
		Specimens:       normalized,
	}, nil
}

// Payload returns the JSON-compatible representation of the context. The
// report date serializes as an ISO-8601 calendar date.
func (c *PatientContext) Payload() map[string]any {
	specimens := make([]map[string]any, 0, len(c.Specimens))
	for _, spec := range c.Specimens {
		item := map[string]any{
			"identifier":  spec.Identifier,
			"description": spec.Description,
		}
		if spec.MarginStatus != "" {
			item["margin_status"] = spec.MarginStatus
		}
		specimens = append(specimens, item)
	}
	return map[string]any{
		"patient_id":       c.PatientID,
		"report_date":      c.ReportDate.Format(DateFormat),
		"clinical_history": c.ClinicalHistory,
		"specimens":        specimens,
	}
}

// ResectionPrompt pairs a patient context with templating instructions,
// ready for prompt assembly.
type ResectionPrompt struct {
	Context      *PatientContext `json:"context" yaml:"context"`
	Instructions string          `json:"instructions" yaml:"instructions"`
	ModelName    string          `json:"model_name" yaml:"model_name"`
}

// DefaultInstructions is the instruction line attached to assembled prompts
// when the caller does not override it.
const DefaultInstructions = "Use the CAP protocol for ductal carcinoma in situ (DCIS) resection."

// NewResectionPrompt builds a prompt payload with defaulted instructions and
// model name.
func NewResectionPrompt(ctx *PatientContext, modelName string) *ResectionPrompt {
	if modelName == "" {
		modelName = DefaultModelName
	}
	return &ResectionPrompt{
		Context:      ctx,
		Instructions: DefaultInstructions,
		ModelName:    modelName,
	}
}

// PromptPayload returns the JSON-serializable prompt payload: the context
// fields plus instructions and the target model name.
func (p *ResectionPrompt) PromptPayload() map[string]any {
	payload := p.Context.Payload()
	payload["instructions"] = p.Instructions
	payload["model_name"] = p.ModelName
	return payload
}
