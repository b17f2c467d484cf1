package form

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) any { return v }

// fullPayload covers every section of the form with valid values.
func fullPayload() map[string]any {
	return map[string]any{
		"procedure": map[string]any{
			"kind": "excision",
		},
		"specimen_laterality": "right",
		"tumor_site": map[string]any{
			"site":                    "upper_outer_quadrant",
			"clock_positions":         []any{"1_oclock", "2_oclock"},
			"distance_from_nipple_cm": float(3.5),
		},
		"size_extent": map[string]any{
			"estimated_size_mm":         float(18.4),
			"additional_dimension_mm_1": float(7.0),
		},
		"histologic_type":            "cribriform",
		"nuclear_grade":              "grade_3",
		"necrosis":                   "central_comedo",
		"microcalcifications":        "present_in_dcis",
		"number_of_blocks_with_dcis": 4,
		"number_of_blocks_examined":  12,
		"margins": map[string]any{
			"status": "negative",
			"negative_details": []any{
				map[string]any{
					"face": "superior",
					"distance": map[string]any{
						"relation": "exact",
						"mm":       float(2.5),
					},
				},
			},
		},
		"regional_nodes": map[string]any{
			"status":         "negative",
			"nodes_examined": 2,
			"nodes_positive": 0,
		},
		"distant_metastasis": map[string]any{
			"status": "absent",
		},
		"special_studies": map[string]any{
			"estrogen_receptor": map[string]any{
				"status":                     "positive",
				"nuclear_positivity_percent": 90,
			},
			"progesterone_receptor": map[string]any{
				"status": "negative",
			},
		},
		"pathologic_stage_pt": "pTis (DCIS)",
		"rationale":           "All findings supported directly by the report.",
	}
}

func TestValidateFullPayload(t *testing.T) {
	ok, f, errs := Validate(fullPayload())
	require.True(t, ok, "errors: %v", errs)
	require.NotNil(t, f)
	require.Empty(t, errs)

	assert.Equal(t, ProcedureExcision, f.Procedure.Kind)
	assert.Equal(t, 2.5, *f.Margins.NegativeDetails[0].Distance.MM)
	assert.Equal(t, 90, *f.SpecialStudies.EstrogenReceptor.NuclearPositivityPercent)
	assert.Equal(t, 4, *f.NumberOfBlocksWithDCIS)
}

func TestValidateMinimalSizeExtent(t *testing.T) {
	payload := map[string]any{
		"size_extent": map[string]any{"estimated_size_mm": float(12.5)},
	}

	ok, f, errs := Validate(payload)
	require.True(t, ok, "errors: %v", errs)
	require.NotNil(t, f.SizeExtent)
	assert.Equal(t, 12.5, *f.SizeExtent.EstimatedSizeMM)
	assert.Nil(t, f.Procedure)

	// The value survives serialization exactly.
	round := f.Payload()
	assert.Equal(t, payload, round)
}

func TestValidateRoundTripIdempotence(t *testing.T) {
	ok, f, errs := Validate(fullPayload())
	require.True(t, ok, "errors: %v", errs)

	serialized := f.Payload()
	ok2, f2, errs2 := Validate(serialized)
	require.True(t, ok2, "errors: %v", errs2)
	assert.Equal(t, f, f2)
	assert.Equal(t, serialized, f2.Payload())
}

func TestValidateRoundTripThroughJSON(t *testing.T) {
	ok, f, _ := Validate(fullPayload())
	require.True(t, ok)

	first, err := json.Marshal(f.Payload())
	require.NoError(t, err)
	second, err := json.Marshal(f.Payload())
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeated serialization must be stable")

	var decoded any
	require.NoError(t, json.Unmarshal(first, &decoded))
	ok2, f2, errs := Validate(decoded)
	require.True(t, ok2, "errors: %v", errs)
	assert.Equal(t, f, f2)
}

func TestValidateRejectsNonMapping(t *testing.T) {
	ok, f, errs := Validate([]any{"not", "a", "mapping"})
	assert.False(t, ok)
	assert.Nil(t, f)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "mapping")
}

func TestValidateConditionalPresence(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]any
		wantPath string
	}{
		{
			name: "procedure other requires specification",
			payload: map[string]any{
				"procedure": map[string]any{"kind": "other"},
			},
			wantPath: "procedure.specification",
		},
		{
			name: "procedure other with blank specification",
			payload: map[string]any{
				"procedure": map[string]any{"kind": "other", "specification": "   "},
			},
			wantPath: "procedure.specification",
		},
		{
			name: "tumor site other requires description",
			payload: map[string]any{
				"tumor_site": map[string]any{"site": "other"},
			},
			wantPath: "tumor_site.description",
		},
		{
			name: "exact distance requires mm",
			payload: map[string]any{
				"margins": map[string]any{
					"status": "negative",
					"negative_details": []any{
						map[string]any{
							"face":     "medial",
							"distance": map[string]any{"relation": "exact", "mm": nil},
						},
					},
				},
			},
			wantPath: "margins.negative_details[0].distance.mm",
		},
		{
			name: "cannot be determined distance requires note",
			payload: map[string]any{
				"regional_nodes": map[string]any{
					"status":                     "negative",
					"largest_metastatic_deposit": map[string]any{"relation": "cannot_be_determined"},
				},
			},
			wantPath: "regional_nodes.largest_metastatic_deposit.note",
		},
		{
			name: "size extent requires estimate or note",
			payload: map[string]any{
				"size_extent": map[string]any{},
			},
			wantPath: "size_extent.estimated_size_mm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, f, errs := Validate(tt.payload)
			assert.False(t, ok)
			assert.Nil(t, f)
			require.NotEmpty(t, errs)
			assert.Contains(t, strings.Join(errs, "\n"), tt.wantPath)
		})
	}
}

func TestValidateMarginExclusivity(t *testing.T) {
	negative := map[string]any{
		"margins": map[string]any{
			"status": "negative",
			"positive_details": []any{
				map[string]any{"face": "anterior"},
			},
		},
	}
	ok, _, errs := Validate(negative)
	assert.False(t, ok)
	assert.Contains(t, strings.Join(errs, "\n"), "margins.positive_details")

	positiveWithoutDetails := map[string]any{
		"margins": map[string]any{"status": "positive"},
	}
	ok, _, errs = Validate(positiveWithoutDetails)
	assert.False(t, ok)
	assert.Contains(t, strings.Join(errs, "\n"), "margins.positive_details")

	positiveWithNegativeDetails := map[string]any{
		"margins": map[string]any{
			"status": "positive",
			"positive_details": []any{
				map[string]any{"face": "anterior"},
			},
			"negative_details": []any{
				map[string]any{
					"face":     "medial",
					"distance": map[string]any{"relation": "exact", "mm": float(1.0)},
				},
			},
		},
	}
	ok, _, errs = Validate(positiveWithNegativeDetails)
	assert.False(t, ok)
	assert.Contains(t, strings.Join(errs, "\n"), "margins.negative_details")
}

func TestValidatePositiveNodeCount(t *testing.T) {
	missing := map[string]any{
		"regional_nodes": map[string]any{"status": "positive"},
	}
	ok, _, errs := Validate(missing)
	assert.False(t, ok)
	assert.Contains(t, strings.Join(errs, "\n"), "regional_nodes.nodes_positive")

	zero := map[string]any{
		"regional_nodes": map[string]any{"status": "positive", "nodes_positive": 0},
	}
	ok, _, errs = Validate(zero)
	assert.False(t, ok)
	assert.Contains(t, strings.Join(errs, "\n"), "regional_nodes.nodes_positive")

	valid := map[string]any{
		"regional_nodes": map[string]any{
			"status":         "positive",
			"nodes_examined": 5,
			"nodes_positive": 2,
		},
	}
	ok, _, errs = Validate(valid)
	assert.True(t, ok, "errors: %v", errs)
}

func TestValidateENESizeRequiresPresence(t *testing.T) {
	payload := map[string]any{
		"regional_nodes": map[string]any{
			"status": "negative",
			"extranodal_extension_size": map[string]any{
				"relation": "exact",
				"mm":       float(1.5),
			},
		},
	}
	ok, _, errs := Validate(payload)
	assert.False(t, ok)
	assert.Contains(t, strings.Join(errs, "\n"), "regional_nodes.extranodal_extension_size")
}

func TestValidateUnknownTag(t *testing.T) {
	payload := map[string]any{
		"procedure": map[string]any{"kind": "lumpectomy"},
	}
	ok, _, errs := Validate(payload)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "procedure.kind")
	assert.Contains(t, errs[0], "lumpectomy")
}

func TestValidateRangeViolations(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]any
		wantPath string
	}{
		{
			name:     "block count above bound",
			payload:  map[string]any{"number_of_blocks_examined": 101},
			wantPath: "number_of_blocks_examined",
		},
		{
			name: "negative distance",
			payload: map[string]any{
				"size_extent": map[string]any{"estimated_size_mm": float(-1.0)},
			},
			wantPath: "size_extent.estimated_size_mm",
		},
		{
			name: "percentage above bound",
			payload: map[string]any{
				"special_studies": map[string]any{
					"estrogen_receptor": map[string]any{
						"status":                     "positive",
						"nuclear_positivity_percent": 140,
					},
				},
			},
			wantPath: "special_studies.estrogen_receptor.nuclear_positivity_percent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _, errs := Validate(tt.payload)
			assert.False(t, ok)
			assert.Contains(t, strings.Join(errs, "\n"), tt.wantPath)
		})
	}
}

func TestValidatePercentOnlyWhenPositive(t *testing.T) {
	payload := map[string]any{
		"special_studies": map[string]any{
			"estrogen_receptor": map[string]any{
				"status":                     "negative",
				"nuclear_positivity_percent": 40,
			},
		},
	}
	ok, _, errs := Validate(payload)
	assert.False(t, ok)
	assert.Contains(t, strings.Join(errs, "\n"), "special_studies.estrogen_receptor.nuclear_positivity_percent")
}

// TestValidateAccumulatesAllErrors checks that a single pass surfaces every
// defect instead of stopping at the first one.
func TestValidateAccumulatesAllErrors(t *testing.T) {
	payload := map[string]any{
		"procedure":                 map[string]any{"kind": "other"},
		"tumor_site":                map[string]any{"site": "sideways"},
		"number_of_blocks_examined": 500,
		"margins": map[string]any{
			"status": "positive",
		},
	}
	ok, f, errs := Validate(payload)
	assert.False(t, ok)
	assert.Nil(t, f)
	require.GreaterOrEqual(t, len(errs), 4)

	joined := strings.Join(errs, "\n")
	assert.Contains(t, joined, "procedure.specification")
	assert.Contains(t, joined, "tumor_site.site")
	assert.Contains(t, joined, "number_of_blocks_examined")
	assert.Contains(t, joined, "margins.positive_details")
}

func TestValidateTrimsFreeText(t *testing.T) {
	payload := map[string]any{
		"procedure": map[string]any{
			"kind":          "other",
			"specification": "  wire-localized excision  ",
		},
	}
	ok, f, errs := Validate(payload)
	require.True(t, ok, "errors: %v", errs)
	assert.Equal(t, "wire-localized excision", *f.Procedure.Specification)
}

func TestValidateEmptyClockPositions(t *testing.T) {
	payload := map[string]any{
		"tumor_site": map[string]any{
			"site":            "central",
			"clock_positions": []any{},
		},
	}
	ok, _, errs := Validate(payload)
	assert.False(t, ok)
	assert.Contains(t, strings.Join(errs, "\n"), "tumor_site.clock_positions")
}
