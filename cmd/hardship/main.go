// Command hardship serves the hardship screens and offers a terminal client
// for the same record service.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hardship/pkg/prompt"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "hardship",
		Short: "Manage hardship records",
		Long: `hardship manages hardship records held by a remote record service.

Run "hardship serve" for the web screens, or use the create, edit, and list
commands for an interactive terminal session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.register(rootCmd)

	rootCmd.AddCommand(
		serveCmd(flags),
		createCmd(flags),
		editCmd(flags),
		listCmd(flags),
		versionCmd(),
	)
	return rootCmd
}
