// Package cli holds the tableview command line: the HTTP server and an
// offline inspector for CSV files.
package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "0.1.0"

// Execute runs the root command against the OS filesystem.
func Execute() error {
	return NewRootCommand(afero.NewOsFs()).Execute()
}

func NewRootCommand(fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:          "tableview",
		Short:        "Upload, cache and browse CSV tables",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newInspectCommand(fs))
	root.AddCommand(newVersionCommand())

	return root
}
