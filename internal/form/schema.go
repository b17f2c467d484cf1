// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

// The condensed CAP DCIS resection model. Every section is optional at the
// root so a partial form still validates; the conditional rules in rules.go
// and validate.go only apply to sections that are present.

// ProcedureKind tags the surgical procedure variant.
type ProcedureKind string

const (
	ProcedureExcision        ProcedureKind = "excision"
	ProcedureTotalMastectomy ProcedureKind = "total_mastectomy"
	ProcedureOther           ProcedureKind = "other"
	ProcedureNotSpecified    ProcedureKind = "not_specified"
)

// Procedure records the procedure performed for the resection.
// Specification is required when Kind is "other".
type Procedure struct {
	Kind          ProcedureKind `json:"kind" yaml:"kind"`
	Specification *string       `json:"specification,omitempty" yaml:"specification,omitempty"`
}

// SpecimenLaterality is the reported laterality of the resected specimen.
type SpecimenLaterality string

const (
	LateralityRight        SpecimenLaterality = "right"
	LateralityLeft         SpecimenLaterality = "left"
	LateralityBilateral    SpecimenLaterality = "bilateral"
	LateralityNotSpecified SpecimenLaterality = "not_specified"
)

// TumorSiteType tags the primary anatomic site variant.
type TumorSiteType string

const (
	SiteUpperOuter   TumorSiteType = "upper_outer_quadrant"
	SiteLowerOuter   TumorSiteType = "lower_outer_quadrant"
	SiteUpperInner   TumorSiteType = "upper_inner_quadrant"
	SiteLowerInner   TumorSiteType = "lower_inner_quadrant"
	SiteCentral      TumorSiteType = "central"
	SiteNipple       TumorSiteType = "nipple"
	SiteDiffuse      TumorSiteType = "diffuse"
	SiteOther        TumorSiteType = "other"
	SiteNotSpecified TumorSiteType = "not_specified"
)

// TumorSite localises the lesion. Description is required when Site is
// "other"; ClockPositions, when present, must be non-empty.
type TumorSite struct {
	Site                 TumorSiteType `json:"site" yaml:"site"`
	ClockPositions       []string      `json:"clock_positions,omitempty" yaml:"clock_positions,omitempty"`
	DistanceFromNippleCM *float64      `json:"distance_from_nipple_cm,omitempty" yaml:"distance_from_nipple_cm,omitempty"`
	Description          *string       `json:"description,omitempty" yaml:"description,omitempty"`
}

// DistanceRelation tags how a recorded distance relates to its value.
type DistanceRelation string

const (
	RelationExact              DistanceRelation = "exact"
	RelationLessThan           DistanceRelation = "less_than"
	RelationGreaterThan        DistanceRelation = "greater_than"
	RelationNotApplicable      DistanceRelation = "not_applicable"
	RelationCannotBeDetermined DistanceRelation = "cannot_be_determined"
)

// Distance is a millimetre measurement with relation metadata. MM is
// required for the exact/less_than/greater_than relations; Note is required
// for cannot_be_determined.
type Distance struct {
	Relation DistanceRelation `json:"relation" yaml:"relation"`
	MM       *float64         `json:"mm,omitempty" yaml:"mm,omitempty"`
	Note     *string          `json:"note,omitempty" yaml:"note,omitempty"`
}

// SizeExtent is the overall size or extent of DCIS. Either EstimatedSizeMM
// or CannotDetermineNote must be provided.
type SizeExtent struct {
	EstimatedSizeMM        *float64 `json:"estimated_size_mm,omitempty" yaml:"estimated_size_mm,omitempty"`
	AdditionalDimensionMM1 *float64 `json:"additional_dimension_mm_1,omitempty" yaml:"additional_dimension_mm_1,omitempty"`
	AdditionalDimensionMM2 *float64 `json:"additional_dimension_mm_2,omitempty" yaml:"additional_dimension_mm_2,omitempty"`
	CannotDetermineNote    *string  `json:"cannot_determine_note,omitempty" yaml:"cannot_determine_note,omitempty"`
}

// HistologicType enumerates DCIS histologic types.
type HistologicType string

const (
	HistologicComedo        HistologicType = "comedo"
	HistologicCribriform    HistologicType = "cribriform"
	HistologicMicropapillar HistologicType = "micropapillary"
	HistologicPapillary     HistologicType = "papillary"
	HistologicSolid         HistologicType = "solid"
	HistologicPaget         HistologicType = "paget_disease"
	HistologicOther         HistologicType = "other"
)

// NuclearGrade enumerates nuclear grades.
type NuclearGrade string

const (
	GradeOne         NuclearGrade = "grade_1"
	GradeTwo         NuclearGrade = "grade_2"
	GradeThree       NuclearGrade = "grade_3"
	GradeNotAssessed NuclearGrade = "not_assessed"
)

// Necrosis enumerates necrosis patterns.
type Necrosis string

const (
	NecrosisAbsent        Necrosis = "absent"
	NecrosisFocal         Necrosis = "focal"
	NecrosisCentralComedo Necrosis = "central_comedo"
	NecrosisExtensive     Necrosis = "extensive"
)

// Microcalcifications enumerates microcalcification findings.
type Microcalcifications string

const (
	CalcNotIdentified  Microcalcifications = "not_identified"
	CalcInDCIS         Microcalcifications = "present_in_dcis"
	CalcInNonneoplasia Microcalcifications = "present_in_nonneoplastic_tissue"
	CalcOther          Microcalcifications = "other"
)

// MarginStatus tags the overall margin assessment.
type MarginStatus string

const (
	MarginNegative MarginStatus = "negative"
	MarginPositive MarginStatus = "positive"
)

// MarginFace enumerates specimen faces for margin assessment.
type MarginFace string

const (
	FaceSuperior    MarginFace = "superior"
	FaceInferior    MarginFace = "inferior"
	FaceMedial      MarginFace = "medial"
	FaceLateral     MarginFace = "lateral"
	FaceAnterior    MarginFace = "anterior"
	FacePosterior   MarginFace = "posterior"
	FaceDeep        MarginFace = "deep"
	FaceSuperficial MarginFace = "superficial"
)

// MarginMeasurement records the distance from DCIS to one negative face.
type MarginMeasurement struct {
	Face     MarginFace `json:"face" yaml:"face"`
	Distance Distance   `json:"distance" yaml:"distance"`
}

// PositiveMarginDetail describes one involved face when margins are positive.
type PositiveMarginDetail struct {
	Face                   MarginFace `json:"face" yaml:"face"`
	InvolvementDescription *string    `json:"involvement_description,omitempty" yaml:"involvement_description,omitempty"`
}

// Margins holds the margin assessment. NegativeDetails and PositiveDetails
// are mutually exclusive, keyed by Status; PositiveDetails must be non-empty
// when Status is positive.
type Margins struct {
	Status          MarginStatus           `json:"status" yaml:"status"`
	NegativeDetails []MarginMeasurement    `json:"negative_details,omitempty" yaml:"negative_details,omitempty"`
	PositiveDetails []PositiveMarginDetail `json:"positive_details,omitempty" yaml:"positive_details,omitempty"`
}

// RegionalNodeStatus tags the regional lymph node evaluation.
type RegionalNodeStatus string

const (
	NodesNotSubmitted RegionalNodeStatus = "not_submitted"
	NodesNegative     RegionalNodeStatus = "negative"
	NodesPositive     RegionalNodeStatus = "positive"
	NodesNotAssessed  RegionalNodeStatus = "not_assessed"
)

// RegionalNodes holds the nodal evaluation. NodesPositive must be present
// and strictly positive when Status is positive; ENESize is only allowed
// when ENEPresent is true.
type RegionalNodes struct {
	Status         RegionalNodeStatus `json:"status" yaml:"status"`
	NodesExamined  *int               `json:"nodes_examined,omitempty" yaml:"nodes_examined,omitempty"`
	NodesPositive  *int               `json:"nodes_positive,omitempty" yaml:"nodes_positive,omitempty"`
	LargestDeposit *Distance          `json:"largest_metastatic_deposit,omitempty" yaml:"largest_metastatic_deposit,omitempty"`
	ENEPresent     *bool              `json:"extranodal_extension_present,omitempty" yaml:"extranodal_extension_present,omitempty"`
	ENESize        *Distance          `json:"extranodal_extension_size,omitempty" yaml:"extranodal_extension_size,omitempty"`
}

// DistantMetastasisStatus tags distant metastasis reporting.
type DistantMetastasisStatus string

const (
	MetastasisNotAssessed DistantMetastasisStatus = "not_assessed"
	MetastasisAbsent      DistantMetastasisStatus = "absent"
	MetastasisPresent     DistantMetastasisStatus = "present"
)

// DistantMetastasis is the optional distant metastasis section.
type DistantMetastasis struct {
	Status  DistantMetastasisStatus `json:"status" yaml:"status"`
	Details *string                 `json:"details,omitempty" yaml:"details,omitempty"`
}

// ReceptorStatus tags a biomarker test result.
type ReceptorStatus string

const (
	ReceptorPositive           ReceptorStatus = "positive"
	ReceptorNegative           ReceptorStatus = "negative"
	ReceptorCannotBeDetermined ReceptorStatus = "cannot_be_determined"
)

// BiomarkerResult records one receptor test. NuclearPositivityPercent is
// only allowed when Status is positive.
type BiomarkerResult struct {
	Status                   ReceptorStatus `json:"status" yaml:"status"`
	NuclearPositivityPercent *int           `json:"nuclear_positivity_percent,omitempty" yaml:"nuclear_positivity_percent,omitempty"`
}

// SpecialStudies holds breast biomarker testing results.
type SpecialStudies struct {
	EstrogenReceptor     *BiomarkerResult `json:"estrogen_receptor,omitempty" yaml:"estrogen_receptor,omitempty"`
	ProgesteroneReceptor *BiomarkerResult `json:"progesterone_receptor,omitempty" yaml:"progesterone_receptor,omitempty"`
	CaseNumber           *string          `json:"testing_performed_on_case_number,omitempty" yaml:"testing_performed_on_case_number,omitempty"`
}

// ResectionForm is the validated, canonically-typed CAP DCIS resection
// record. All sections are optional; conditional rules apply within each
// present section.
type ResectionForm struct {
	Procedure              *Procedure           `json:"procedure,omitempty" yaml:"procedure,omitempty"`
	SpecimenLaterality     *SpecimenLaterality  `json:"specimen_laterality,omitempty" yaml:"specimen_laterality,omitempty"`
	TumorSite              *TumorSite           `json:"tumor_site,omitempty" yaml:"tumor_site,omitempty"`
	SizeExtent             *SizeExtent          `json:"size_extent,omitempty" yaml:"size_extent,omitempty"`
	HistologicType         *HistologicType      `json:"histologic_type,omitempty" yaml:"histologic_type,omitempty"`
	NuclearGrade           *NuclearGrade        `json:"nuclear_grade,omitempty" yaml:"nuclear_grade,omitempty"`
	Necrosis               *Necrosis            `json:"necrosis,omitempty" yaml:"necrosis,omitempty"`
	Microcalcifications    *Microcalcifications `json:"microcalcifications,omitempty" yaml:"microcalcifications,omitempty"`
	NumberOfBlocksWithDCIS *int                 `json:"number_of_blocks_with_dcis,omitempty" yaml:"number_of_blocks_with_dcis,omitempty"`
	NumberOfBlocksExamined *int                 `json:"number_of_blocks_examined,omitempty" yaml:"number_of_blocks_examined,omitempty"`
	Margins                *Margins             `json:"margins,omitempty" yaml:"margins,omitempty"`
	RegionalNodes          *RegionalNodes       `json:"regional_nodes,omitempty" yaml:"regional_nodes,omitempty"`
	DistantMetastasis      *DistantMetastasis   `json:"distant_metastasis,omitempty" yaml:"distant_metastasis,omitempty"`
	SpecialStudies         *SpecialStudies      `json:"special_studies,omitempty" yaml:"special_studies,omitempty"`
	PathologicStagePT      *string              `json:"pathologic_stage_pt,omitempty" yaml:"pathologic_stage_pt,omitempty"`
	PathologicStagePN      *string              `json:"pathologic_stage_pn,omitempty" yaml:"pathologic_stage_pn,omitempty"`
	PathologicStagePM      *string              `json:"pathologic_stage_pm,omitempty" yaml:"pathologic_stage_pm,omitempty"`
	Rationale              *string              `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}
