package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hardship/internal/app"
	"github.com/goliatone/go-hardship/pkg/form"
	"github.com/goliatone/go-hardship/pkg/prompt"
)

func createCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a hardship record interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, global, func(s *prompt.Session) error {
				state, err := s.Create(cmd.Context())
				if err != nil {
					return err
				}
				return reportStatus(state)
			})
		},
	}
}

func editCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Look up a hardship record by debt ID and edit it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, global, func(s *prompt.Session) error {
				state, err := s.Edit(cmd.Context())
				if err != nil {
					return err
				}
				return reportStatus(state)
			})
		},
	}
}

func listCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every hardship record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, global, func(s *prompt.Session) error {
				_, err := s.List(cmd.Context())
				return err
			})
		},
	}
}

func withSession(cmd *cobra.Command, global *globalFlags, run func(*prompt.Session) error) error {
	cfg, err := global.load(cmd)
	if err != nil {
		return err
	}
	a, err := app.New(cmd.Context(), cfg, cfg.Log.NewLogger(os.Stderr))
	if err != nil {
		return err
	}
	defer a.Close()
	return run(a.Session(nil))
}

// reportStatus turns a failed submission into a non-zero exit.
func reportStatus(state form.State) error {
	if state.Status.Kind == form.StatusFailed {
		return errors.New(state.Status.Message)
	}
	return nil
}
