package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/capecc-engine/internal/form"
)

var validateCmd = &cobra.Command{
	Use:   "validate <form-file>",
	Short: "Validate a DCIS resection form payload",
	Long: `Validate reads a resection form payload from a YAML or JSON file and checks
it against the form schema: enum membership, conditional field requirements,
and numeric ranges. All violations are reported at once.

On success the canonical form is printed as YAML. On failure every error is
printed to stderr and the command exits nonzero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading form: %w", err)
		}

		// YAML is a superset of JSON, so one decode path covers both.
		var payload any
		if err := yaml.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("parsing form: %w", err)
		}

		ok, f, errs := form.Validate(payload)
		if !ok {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
			return fmt.Errorf("form has %d validation error(s)", len(errs))
		}

		out, err := yaml.Marshal(f.Payload())
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
