// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

// Payload returns the canonical JSON-compatible representation of the form:
// a nested mapping/sequence/scalar tree containing only the fields that are
// set. A payload produced here validates again and yields an equal form, and
// repeated serialization of the same record is stable.
func (f *ResectionForm) Payload() map[string]any {
	out := map[string]any{}

	if f.Procedure != nil {
		out["procedure"] = f.Procedure.payload()
	}
	if f.SpecimenLaterality != nil {
		out["specimen_laterality"] = string(*f.SpecimenLaterality)
	}
	if f.TumorSite != nil {
		out["tumor_site"] = f.TumorSite.payload()
	}
	if f.SizeExtent != nil {
		out["size_extent"] = f.SizeExtent.payload()
	}
	if f.HistologicType != nil {
		out["histologic_type"] = string(*f.HistologicType)
	}
	if f.NuclearGrade != nil {
		out["nuclear_grade"] = string(*f.NuclearGrade)
	}
	if f.Necrosis != nil {
		out["necrosis"] = string(*f.Necrosis)
	}
	if f.Microcalcifications != nil {
		out["microcalcifications"] = string(*f.Microcalcifications)
	}
	putInt(out, "number_of_blocks_with_dcis", f.NumberOfBlocksWithDCIS)
	putInt(out, "number_of_blocks_examined", f.NumberOfBlocksExamined)
	if f.Margins != nil {
		out["margins"] = f.Margins.payload()
	}
	if f.RegionalNodes != nil {
		out["regional_nodes"] = f.RegionalNodes.payload()
	}
	if f.DistantMetastasis != nil {
		out["distant_metastasis"] = f.DistantMetastasis.payload()
	}
	if f.SpecialStudies != nil {
		out["special_studies"] = f.SpecialStudies.payload()
	}
	putText(out, "pathologic_stage_pt", f.PathologicStagePT)
	putText(out, "pathologic_stage_pn", f.PathologicStagePN)
	putText(out, "pathologic_stage_pm", f.PathologicStagePM)
	putText(out, "rationale", f.Rationale)

	return out
}

func putText(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putNumber(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

func putInt(m map[string]any, key string, v *int) {
	if v != nil {
		m[key] = *v
	}
}

func (p *Procedure) payload() map[string]any {
	out := map[string]any{"kind": string(p.Kind)}
	putText(out, "specification", p.Specification)
	return out
}

func (t *TumorSite) payload() map[string]any {
	out := map[string]any{"site": string(t.Site)}
	if len(t.ClockPositions) > 0 {
		positions := make([]any, len(t.ClockPositions))
		for i, pos := range t.ClockPositions {
			positions[i] = pos
		}
		out["clock_positions"] = positions
	}
	putNumber(out, "distance_from_nipple_cm", t.DistanceFromNippleCM)
	putText(out, "description", t.Description)
	return out
}

func (d *Distance) payload() map[string]any {
	out := map[string]any{"relation": string(d.Relation)}
	putNumber(out, "mm", d.MM)
	putText(out, "note", d.Note)
	return out
}

func (s *SizeExtent) payload() map[string]any {
	out := map[string]any{}
	putNumber(out, "estimated_size_mm", s.EstimatedSizeMM)
	putNumber(out, "additional_dimension_mm_1", s.AdditionalDimensionMM1)
	putNumber(out, "additional_dimension_mm_2", s.AdditionalDimensionMM2)
	putText(out, "cannot_determine_note", s.CannotDetermineNote)
	return out
}

func (m *Margins) payload() map[string]any {
	out := map[string]any{"status": string(m.Status)}
	if len(m.NegativeDetails) > 0 {
		details := make([]any, len(m.NegativeDetails))
		for i, d := range m.NegativeDetails {
			item := map[string]any{
				"face":     string(d.Face),
				"distance": d.Distance.payload(),
			}
			details[i] = item
		}
		out["negative_details"] = details
	}
	if len(m.PositiveDetails) > 0 {
		details := make([]any, len(m.PositiveDetails))
		for i, d := range m.PositiveDetails {
			item := map[string]any{"face": string(d.Face)}
			putText(item, "involvement_description", d.InvolvementDescription)
			details[i] = item
		}
		out["positive_details"] = details
	}
	return out
}

func (r *RegionalNodes) payload() map[string]any {
	out := map[string]any{"status": string(r.Status)}
	putInt(out, "nodes_examined", r.NodesExamined)
	putInt(out, "nodes_positive", r.NodesPositive)
	if r.LargestDeposit != nil {
		out["largest_metastatic_deposit"] = r.LargestDeposit.payload()
	}
	if r.ENEPresent != nil {
		out["extranodal_extension_present"] = *r.ENEPresent
	}
	if r.ENESize != nil {
		out["extranodal_extension_size"] = r.ENESize.payload()
	}
	return out
}

func (d *DistantMetastasis) payload() map[string]any {
	out := map[string]any{"status": string(d.Status)}
	putText(out, "details", d.Details)
	return out
}

func (b *BiomarkerResult) payload() map[string]any {
	out := map[string]any{"status": string(b.Status)}
	putInt(out, "nuclear_positivity_percent", b.NuclearPositivityPercent)
	return out
}

func (s *SpecialStudies) payload() map[string]any {
	out := map[string]any{}
	if s.EstrogenReceptor != nil {
		out["estrogen_receptor"] = s.EstrogenReceptor.payload()
	}
	if s.ProgesteroneReceptor != nil {
		out["progesterone_receptor"] = s.ProgesteroneReceptor.payload()
	}
	putText(out, "testing_performed_on_case_number", s.CaseNumber)
	return out
}
