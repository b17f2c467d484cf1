// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

// Validate checks an untyped payload tree against the resection form schema.
// It returns either a validated, canonically-typed record or the full list
// of human-readable error messages; never both. Structural defects, unknown
// tags, conditional-presence violations, and range violations are all
// accumulated in one pass rather than failing fast.
func Validate(payload any) (bool, *ResectionForm, []string) {
	f, iss := parse(payload)
	if !iss.empty() {
		return false, nil, iss.messages()
	}
	return true, f, nil
}

// parse walks the payload tree, decoding every section and recording issues
// as it goes. The returned form is only meaningful when the issue list is
// empty.
func parse(payload any) (*ResectionForm, *issueList) {
	iss := &issueList{}
	root, ok := rootNode(payload, iss)
	if !ok {
		return nil, iss
	}

	f := &ResectionForm{}

	if n, ok := root.object("procedure"); ok {
		f.Procedure = parseProcedure(n)
	}
	if s := root.enum("specimen_laterality", lateralitySet); s != nil {
		lat := SpecimenLaterality(*s)
		f.SpecimenLaterality = &lat
	}
	if n, ok := root.object("tumor_site"); ok {
		f.TumorSite = parseTumorSite(n)
	}
	if n, ok := root.object("size_extent"); ok {
		f.SizeExtent = parseSizeExtent(n)
	}
	if s := root.enum("histologic_type", histologicTypeSet); s != nil {
		ht := HistologicType(*s)
		f.HistologicType = &ht
	}
	if s := root.enum("nuclear_grade", nuclearGradeSet); s != nil {
		g := NuclearGrade(*s)
		f.NuclearGrade = &g
	}
	if s := root.enum("necrosis", necrosisSet); s != nil {
		nec := Necrosis(*s)
		f.Necrosis = &nec
	}
	if s := root.enum("microcalcifications", microcalcificationsSet); s != nil {
		mc := Microcalcifications(*s)
		f.Microcalcifications = &mc
	}
	f.NumberOfBlocksWithDCIS = root.count("number_of_blocks_with_dcis", 0, maxNodeCount)
	f.NumberOfBlocksExamined = root.count("number_of_blocks_examined", 0, maxNodeCount)
	if n, ok := root.object("margins"); ok {
		f.Margins = parseMargins(n)
	}
	if n, ok := root.object("regional_nodes"); ok {
		f.RegionalNodes = parseRegionalNodes(n)
	}
	if n, ok := root.object("distant_metastasis"); ok {
		f.DistantMetastasis = parseDistantMetastasis(n)
	}
	if n, ok := root.object("special_studies"); ok {
		f.SpecialStudies = parseSpecialStudies(n)
	}
	f.PathologicStagePT = root.text("pathologic_stage_pt")
	f.PathologicStagePN = root.text("pathologic_stage_pn")
	f.PathologicStagePM = root.text("pathologic_stage_pm")
	f.Rationale = root.text("rationale")

	return f, iss
}

func parseProcedure(n node) *Procedure {
	tag, _ := procedureUnion.resolve(n)
	return &Procedure{
		Kind:          ProcedureKind(tag),
		Specification: n.text("specification"),
	}
}

func parseTumorSite(n node) *TumorSite {
	tag, _ := tumorSiteUnion.resolve(n)
	return &TumorSite{
		Site:                 TumorSiteType(tag),
		ClockPositions:       n.enumList("clock_positions", clockPositionSet),
		DistanceFromNippleCM: n.number("distance_from_nipple_cm"),
		Description:          n.text("description"),
	}
}

func parseDistance(n node) *Distance {
	tag, _ := distanceUnion.resolve(n)
	return &Distance{
		Relation: DistanceRelation(tag),
		MM:       n.number("mm"),
		Note:     n.text("note"),
	}
}

func parseSizeExtent(n node) *SizeExtent {
	se := &SizeExtent{
		EstimatedSizeMM:        n.number("estimated_size_mm"),
		AdditionalDimensionMM1: n.number("additional_dimension_mm_1"),
		AdditionalDimensionMM2: n.number("additional_dimension_mm_2"),
		CannotDetermineNote:    n.text("cannot_determine_note"),
	}
	if se.EstimatedSizeMM == nil && se.CannotDetermineNote == nil {
		n.iss.add(n.join("estimated_size_mm"), CodeConditional,
			"either estimated_size_mm or cannot_determine_note must be provided")
	}
	return se
}

func parseMargins(n node) *Margins {
	tag, _ := marginStatusUnion.resolve(n)
	m := &Margins{Status: MarginStatus(tag)}

	if details, ok := n.objects("negative_details"); ok {
		for _, d := range details {
			m.NegativeDetails = append(m.NegativeDetails, parseMarginMeasurement(d))
		}
	}
	if details, ok := n.objects("positive_details"); ok {
		for _, d := range details {
			m.PositiveDetails = append(m.PositiveDetails, parsePositiveMarginDetail(d))
		}
	}

	// Mutual exclusivity between the detail collections, keyed by status.
	switch m.Status {
	case MarginNegative:
		if len(m.PositiveDetails) > 0 {
			n.iss.add(n.join("positive_details"), CodeConditional,
				"must be empty when status is %q", MarginNegative)
		}
	case MarginPositive:
		if len(m.NegativeDetails) > 0 {
			n.iss.add(n.join("negative_details"), CodeConditional,
				"must be empty when status is %q", MarginPositive)
		}
		if len(m.PositiveDetails) == 0 {
			n.iss.add(n.join("positive_details"), CodeConditional,
				"must describe the involved margins when status is %q", MarginPositive)
		}
	}
	return m
}

func parseMarginMeasurement(n node) MarginMeasurement {
	mm := MarginMeasurement{Face: MarginFace(n.requireEnum("face", marginFaceSet))}
	if d, ok := n.object("distance"); ok {
		mm.Distance = *parseDistance(d)
	} else {
		n.iss.add(n.join("distance"), CodeRequired, "is required")
	}
	return mm
}

func parsePositiveMarginDetail(n node) PositiveMarginDetail {
	return PositiveMarginDetail{
		Face:                   MarginFace(n.requireEnum("face", marginFaceSet)),
		InvolvementDescription: n.text("involvement_description"),
	}
}

func parseRegionalNodes(n node) *RegionalNodes {
	tag, _ := regionalNodeStatusUnion.resolve(n)
	rn := &RegionalNodes{
		Status:        RegionalNodeStatus(tag),
		NodesExamined: n.count("nodes_examined", 0, maxNodeCount),
		NodesPositive: n.count("nodes_positive", 0, maxNodeCount),
		ENEPresent:    n.boolean("extranodal_extension_present"),
	}
	if d, ok := n.object("largest_metastatic_deposit"); ok {
		rn.LargestDeposit = parseDistance(d)
	}
	if d, ok := n.object("extranodal_extension_size"); ok {
		rn.ENESize = parseDistance(d)
	}

	if rn.Status == NodesPositive && (rn.NodesPositive == nil || *rn.NodesPositive == 0) {
		n.iss.add(n.join("nodes_positive"), CodeConditional,
			"a strictly positive node count is required when status is %q", NodesPositive)
	}
	if rn.ENESize != nil && (rn.ENEPresent == nil || !*rn.ENEPresent) {
		n.iss.add(n.join("extranodal_extension_size"), CodeConditional,
			"requires extranodal_extension_present to be true")
	}
	return rn
}

func parseDistantMetastasis(n node) *DistantMetastasis {
	tag, _ := distantMetastasisUnion.resolve(n)
	return &DistantMetastasis{
		Status:  DistantMetastasisStatus(tag),
		Details: n.text("details"),
	}
}

func parseBiomarkerResult(n node) *BiomarkerResult {
	tag, _ := receptorStatusUnion.resolve(n)
	b := &BiomarkerResult{
		Status:                   ReceptorStatus(tag),
		NuclearPositivityPercent: n.count("nuclear_positivity_percent", 0, 100),
	}
	if b.NuclearPositivityPercent != nil && b.Status != ReceptorPositive {
		n.iss.add(n.join("nuclear_positivity_percent"), CodeConditional,
			"is only allowed when status is %q", ReceptorPositive)
	}
	return b
}

func parseSpecialStudies(n node) *SpecialStudies {
	ss := &SpecialStudies{CaseNumber: n.text("testing_performed_on_case_number")}
	if b, ok := n.object("estrogen_receptor"); ok {
		ss.EstrogenReceptor = parseBiomarkerResult(b)
	}
	if b, ok := n.object("progesterone_receptor"); ok {
		ss.ProgesteroneReceptor = parseBiomarkerResult(b)
	}
	return ss
}
