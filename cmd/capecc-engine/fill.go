package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/capecc-engine/internal/fill"
	"github.com/pdiddy/capecc-engine/internal/secrets"
	"github.com/pdiddy/capecc-engine/pkg/types"
)

var fillCmd = &cobra.Command{
	Use:   "fill [report-file]",
	Short: "Fill a resection form from report text using a language model",
	Long: `Fill sends a pathology report through the two-phase reasoning pipeline:
the model first reasons about the report in free text, then emits the form
as JSON between sentinels. The JSON is validated against the form schema
before anything is written.

Reads the report from the given file, or stdin when no file is supplied.
The Anthropic API key comes from --api-key, the ANTHROPIC_API_KEY
environment variable, or .secrets/anthropic-api-key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, _ := cmd.Flags().GetString("model")
		maxRetries, _ := cmd.Flags().GetInt("max-retries")
		apiKey, _ := cmd.Flags().GetString("api-key")
		outPath, _ := cmd.Flags().GetString("out")

		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		apiKey = secretDefault(secrets.AnthropicAPIKey, apiKey)
		if apiKey == "" {
			return fmt.Errorf("no Anthropic API key: use --api-key, ANTHROPIC_API_KEY, or .secrets/%s", secrets.AnthropicAPIKey)
		}

		report, err := readReport(args)
		if err != nil {
			return err
		}

		cfg := types.FillConfig{
			AIConfig: types.AIConfig{Model: model, APIKey: apiKey, MaxRetries: maxRetries},
		}
		reasoner := &fill.ClaudeReasoner{
			APIKey: apiKey,
			Model:  model,
			Client: &http.Client{Timeout: 5 * time.Minute},
		}

		result, err := fill.Fill(cmd.Context(), reasoner, cfg, report)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(result.Form.Payload())
		if err != nil {
			return err
		}

		if outPath != "" {
			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				return fmt.Errorf("writing form: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote form to %s\n", outPath)
			return nil
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	fillCmd.Flags().String("model", "claude-sonnet-4-5-20250929", "Anthropic model identifier")
	fillCmd.Flags().Int("max-retries", 3, "retry attempts for transient model errors")
	fillCmd.Flags().String("api-key", "", "Anthropic API key (overrides secrets and environment)")
	fillCmd.Flags().String("out", "", "write the validated form YAML to this file instead of stdout")

	rootCmd.AddCommand(fillCmd)
}
