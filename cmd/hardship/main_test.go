package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-hardship/internal/config"
)

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hardship.yaml")
	file := `
listen: ":9000"
service:
  base_url: https://records.example.com
  timeout: 5s
log:
  level: warn
`
	if err := os.WriteFile(path, []byte(file), 0o600); err != nil {
		t.Fatal(err)
	}

	var got config.Config
	global := &globalFlags{}
	root := &cobra.Command{Use: "hardship", SilenceUsage: true, SilenceErrors: true}
	global.register(root)
	serve := &serveFlags{}
	cmd := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			got, err = global.load(cmd, serve.apply(cmd))
			return err
		},
	}
	cmd.Flags().StringVar(&serve.listen, "listen", "", "")
	cmd.Flags().StringVar(&serve.navstate, "navstate", "", "")
	root.AddCommand(cmd)

	root.SetArgs([]string{"probe", "--config", path, "--base-url", "http://localhost:5000", "--listen", ":7000", "--insecure"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := config.Default()
	want.Listen = ":7000"
	want.Service.BaseURL = "http://localhost:5000"
	want.Service.Timeout = 5 * time.Second
	want.Service.InsecureSkipVerify = true
	want.Log.Level = "warn"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"serve", "--navstate", "sqlite"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "navstate") {
		t.Fatalf("expected navstate error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got, want := out.String(), "hardship dev (commit none, built unknown)\n"; got != want {
		t.Fatalf("version output = %q, want %q", got, want)
	}
}
