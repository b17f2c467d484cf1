// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"sort"
	"strings"
)

// enumSet is a closed set of allowed string values for a plain enum field.
type enumSet []string

func (e enumSet) contains(v string) bool {
	for _, allowed := range e {
		if v == allowed {
			return true
		}
	}
	return false
}

func (e enumSet) String() string {
	return strings.Join(e, ", ")
}

// variant declares the attribute obligations for one tag of a discriminated
// union: which sibling text attributes must be present and non-empty, and
// which sibling numeric attributes must be present.
type variant struct {
	requireText   []string
	requireNumber []string
}

// union is a discriminated-union definition: the discriminator field name
// and the variant rules for every allowed tag. The tables below drive all
// tag dispatch and conditional-presence checking, so no per-field branching
// code is needed.
type union struct {
	field    string
	variants map[string]variant
}

// tags lists the allowed tags in a stable order for error messages.
func (u union) tags() enumSet {
	set := make(enumSet, 0, len(u.variants))
	for tag := range u.variants {
		set = append(set, tag)
	}
	// map iteration order is random; sort for deterministic messages.
	sort.Strings(set)
	return set
}

// resolve reads the discriminator from n, rejects missing or unknown tags,
// and enforces the matched variant's attribute obligations. It returns the
// tag and whether the node passed variant selection.
func (u union) resolve(n node) (string, bool) {
	raw := n.text(u.field)
	if raw == nil {
		n.iss.add(n.join(u.field), CodeMissingTag, "is required")
		return "", false
	}
	spec, ok := u.variants[*raw]
	if !ok {
		n.iss.add(n.join(u.field), CodeUnknownTag, "unknown value %q, expected one of %s", *raw, u.tags())
		return "", false
	}
	valid := true
	for _, attr := range spec.requireText {
		if s := n.text(attr); s == nil {
			n.iss.add(n.join(attr), CodeConditional, "is required when %s is %q", u.field, *raw)
			valid = false
		}
	}
	for _, attr := range spec.requireNumber {
		if !n.has(attr) {
			n.iss.add(n.join(attr), CodeConditional, "is required when %s is %q", u.field, *raw)
			valid = false
		}
	}
	return *raw, valid
}

// --- union definitions ---

var procedureUnion = union{
	field: "kind",
	variants: map[string]variant{
		string(ProcedureExcision):        {},
		string(ProcedureTotalMastectomy): {},
		string(ProcedureNotSpecified):    {},
		string(ProcedureOther):           {requireText: []string{"specification"}},
	},
}

var tumorSiteUnion = union{
	field: "site",
	variants: map[string]variant{
		string(SiteUpperOuter):   {},
		string(SiteLowerOuter):   {},
		string(SiteUpperInner):   {},
		string(SiteLowerInner):   {},
		string(SiteCentral):      {},
		string(SiteNipple):       {},
		string(SiteDiffuse):      {},
		string(SiteNotSpecified): {},
		string(SiteOther):        {requireText: []string{"description"}},
	},
}

var distanceUnion = union{
	field: "relation",
	variants: map[string]variant{
		string(RelationExact):              {requireNumber: []string{"mm"}},
		string(RelationLessThan):           {requireNumber: []string{"mm"}},
		string(RelationGreaterThan):        {requireNumber: []string{"mm"}},
		string(RelationNotApplicable):      {},
		string(RelationCannotBeDetermined): {requireText: []string{"note"}},
	},
}

var marginStatusUnion = union{
	field: "status",
	variants: map[string]variant{
		string(MarginNegative): {},
		string(MarginPositive): {},
	},
}

var regionalNodeStatusUnion = union{
	field: "status",
	variants: map[string]variant{
		string(NodesNotSubmitted): {},
		string(NodesNegative):     {},
		string(NodesPositive):     {},
		string(NodesNotAssessed):  {},
	},
}

var distantMetastasisUnion = union{
	field: "status",
	variants: map[string]variant{
		string(MetastasisNotAssessed): {},
		string(MetastasisAbsent):      {},
		string(MetastasisPresent):     {},
	},
}

var receptorStatusUnion = union{
	field: "status",
	variants: map[string]variant{
		string(ReceptorPositive):           {},
		string(ReceptorNegative):           {},
		string(ReceptorCannotBeDetermined): {},
	},
}

// --- plain enum sets ---

var lateralitySet = enumSet{
	string(LateralityRight),
	string(LateralityLeft),
	string(LateralityBilateral),
	string(LateralityNotSpecified),
}

var clockPositionSet = enumSet{
	"1_oclock", "2_oclock", "3_oclock", "4_oclock",
	"5_oclock", "6_oclock", "7_oclock", "8_oclock",
	"9_oclock", "10_oclock", "11_oclock", "12_oclock",
}

var histologicTypeSet = enumSet{
	string(HistologicComedo),
	string(HistologicCribriform),
	string(HistologicMicropapillar),
	string(HistologicPapillary),
	string(HistologicSolid),
	string(HistologicPaget),
	string(HistologicOther),
}

var nuclearGradeSet = enumSet{
	string(GradeOne),
	string(GradeTwo),
	string(GradeThree),
	string(GradeNotAssessed),
}

var necrosisSet = enumSet{
	string(NecrosisAbsent),
	string(NecrosisFocal),
	string(NecrosisCentralComedo),
	string(NecrosisExtensive),
}

var microcalcificationsSet = enumSet{
	string(CalcNotIdentified),
	string(CalcInDCIS),
	string(CalcInNonneoplasia),
	string(CalcOther),
}

var marginFaceSet = enumSet{
	string(FaceSuperior),
	string(FaceInferior),
	string(FaceMedial),
	string(FaceLateral),
	string(FaceAnterior),
	string(FacePosterior),
	string(FaceDeep),
	string(FaceSuperficial),
}

// maxNodeCount bounds lymph node and block counts.
const maxNodeCount = 100
