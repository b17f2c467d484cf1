package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/capecc-engine/internal/prompt"
	"github.com/pdiddy/capecc-engine/pkg/types"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble a model prompt payload from patient context",
	Long: `Assemble builds the prompt payload sent alongside a pathology report:
patient identifier, clinical history, report date, and specimen details.
Specimens are given as --specimen flags of the form "identifier:description"
(description optional). The payload is printed as indented JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, _ := cmd.Flags().GetString("patient-id")
		history, _ := cmd.Flags().GetString("history")
		dateStr, _ := cmd.Flags().GetString("report-date")
		model, _ := cmd.Flags().GetString("model")
		specFlags, _ := cmd.Flags().GetStringArray("specimen")

		reportDate := time.Now()
		if dateStr != "" {
			parsed, err := time.Parse(types.DateFormat, dateStr)
			if err != nil {
				return fmt.Errorf("report-date must be YYYY-MM-DD: %w", err)
			}
			reportDate = parsed
		}

		specimens := make([]types.SpecimenDetail, 0, len(specFlags))
		for _, raw := range specFlags {
			id, desc, _ := strings.Cut(raw, ":")
			specimens = append(specimens, types.SpecimenDetail{
				Identifier:  id,
				Description: strings.TrimSpace(desc),
			})
		}

		ctx, err := types.NewPatientContext(patientID, history, reportDate, specimens)
		if err != nil {
			return err
		}
		p := types.NewResectionPrompt(ctx, model)

		out := map[string]any{
			"template": prompt.DefaultTemplate,
			"payload":  p.PromptPayload(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	assembleCmd.Flags().String("patient-id", "", "patient identifier (required)")
	assembleCmd.Flags().String("history", "", "clinical history")
	assembleCmd.Flags().String("report-date", "", "report date (YYYY-MM-DD, default today)")
	assembleCmd.Flags().String("model", "", "model name recorded in the payload")
	assembleCmd.Flags().StringArray("specimen", nil, `specimen as "identifier:description" (repeatable)`)
	assembleCmd.MarkFlagRequired("patient-id")

	rootCmd.AddCommand(assembleCmd)
}
