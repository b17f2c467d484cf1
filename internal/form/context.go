// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"time"

	"github.com/pdiddy/capecc-engine/pkg/types"
)

// ValidateContext checks an untrusted payload describing a patient/report
// context and returns either a normalized PatientContext or the full list of
// error messages. defaultDate is used when the payload carries no
// report_date; callers wanting "today" pass time.Now(), which keeps the
// validation itself deterministic.
func ValidateContext(payload any, defaultDate time.Time) (bool, *types.PatientContext, []string) {
	iss := &issueList{}
	root, ok := rootNode(payload, iss)
	if !ok {
		return false, nil, iss.messages()
	}

	ctx := &types.PatientContext{
		PatientID:  root.requireText("patient_id"),
		ReportDate: defaultDate,
	}
	if h := root.text("clinical_history"); h != nil {
		ctx.ClinicalHistory = *h
	}

	if raw := root.text("report_date"); raw != nil {
		parsed, err := time.Parse(types.DateFormat, *raw)
		if err != nil {
			iss.add("report_date", CodeInvalidFormat, "must be an ISO-8601 date (YYYY-MM-DD), got %q", *raw)
		} else {
			ctx.ReportDate = parsed
		}
	}

	if specimens, ok := root.objects("specimens"); ok {
		for _, s := range specimens {
			detail := types.SpecimenDetail{
				Identifier: s.requireText("identifier"),
			}
			if d := s.text("description"); d != nil {
				detail.Description = *d
			}
			if ms := s.text("margin_status"); ms != nil {
				detail.MarginStatus = *ms
			}
			ctx.Specimens = append(ctx.Specimens, detail)
		}
	}

	if !iss.empty() {
		return false, nil, iss.messages()
	}
	return true, ctx, nil
}
