// Package commands implements the ptsum subcommands.
package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/alchip/ptsum/config"
)

// Status printers are bound to stderr so stdout carries nothing but the
// requested output and stays pipeable.
var (
	statusInfo  = pterm.Info.WithWriter(os.Stderr)
	statusError = pterm.Error.WithWriter(os.Stderr)
)

// loadConfig honors the persistent --config flag, falling back to the
// usual ptsum.toml search.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// writeOutput writes text to path, or to stdout when path is empty.
func writeOutput(fsys afero.Fs, path, text string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	return afero.WriteFile(fsys, path, []byte(text), config.DefaultFilePermissions)
}
