package cli

import (
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	root := newRootCmd()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
	if !root.SilenceUsage {
		t.Error("root command should silence usage on errors")
	}
}

func TestRootSubcommands(t *testing.T) {
	root := newRootCmd()

	want := []string{"new", "info", "convert", "export", "serve", "browse", "snapshots", "completion"}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}

	for _, name := range want {
		if !have[name] {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestRootPersistentFlags(t *testing.T) {
	root := newRootCmd()

	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("root command should define --verbose")
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root command should define --config")
	}
}

func TestSnapshotsSubcommands(t *testing.T) {
	cmd := newSnapshotsCmd()

	want := []string{"list", "show", "take", "restore", "prune"}
	have := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		have[sub.Name()] = true
	}

	for _, name := range want {
		if !have[name] {
			t.Errorf("snapshots command is missing subcommand %q", name)
		}
	}
}
