package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/capecc-engine/internal/logging"
	"github.com/pdiddy/capecc-engine/internal/server"
	"github.com/pdiddy/capecc-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for context validation and prompt assembly",
	Long: `Serve exposes the toolkit over HTTP:

  GET  /health          liveness probe
  POST /prompts         validate patient context, return prompt payload
  POST /forms/validate  validate a resection form payload

Validation failures return 422 with the full error list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		logFile, _ := cmd.Flags().GetString("log-file")
		debug, _ := cmd.Flags().GetBool("debug")

		log := logging.New(types.LogConfig{File: logFile, Debug: debug})
		defer log.Sync()

		srv := server.New(types.ServerConfig{Addr: addr}, log)
		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("log-file", "", "rotated JSON log file (empty: console only)")
	serveCmd.Flags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
}
