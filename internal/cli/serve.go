package cli

import (
	"github.com/spf13/cobra"

	"path-planning/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serve the planner over HTTP",
	GroupID: "planning",
	Example: `  pathplanner serve --addr :8080`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.New(logger).ListenAndServe(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}
