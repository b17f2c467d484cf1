package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/capecc-engine/internal/window"
)

var windowCmd = &cobra.Command{
	Use:   "window [report-file]",
	Short: "Split report text into overlapping token windows",
	Long: `Window splits a pathology report into fixed-size windows of
whitespace-delimited tokens with a configurable overlap between consecutive
windows. Reads from the given file, or stdin when no file is supplied.

Each window is printed as one JSON object per line with a 1-based index.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("window-size")
		overlap, _ := cmd.Flags().GetInt("overlap")

		eng, err := window.New(size, overlap)
		if err != nil {
			return err
		}

		text, err := readReport(args)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		for i, w := range eng.Generate(text) {
			line := struct {
				Index int    `json:"index"`
				Text  string `json:"text"`
			}{Index: i + 1, Text: w}
			if err := enc.Encode(line); err != nil {
				return err
			}
		}
		return nil
	},
}

// readReport returns the report text from the file argument or stdin.
func readReport(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading report: %w", err)
	}
	return string(data), nil
}

func init() {
	windowCmd.Flags().Int("window-size", 200, "tokens per window")
	windowCmd.Flags().Int("overlap", 20, "tokens shared between consecutive windows")

	rootCmd.AddCommand(windowCmd)
}
