// Package cli implements the shelf command-line interface: the interactive
// catalog menu and the non-interactive subcommands around it.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Exit codes for non-interactive commands.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// NewRootCmd creates the top-level "shelf" command with global flags and all
// subcommands registered. Without a subcommand it runs the menu.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "shelf",
		Short: "A console catalog of authors, books and copies",
		Long: "Shelf keeps a library catalog of authors, their books and the physical\n" +
			"copies of each book. Run it without arguments for the interactive menu.",
		Args: cobra.NoArgs,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .shelf-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newMenuCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newAuthorsCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newImportCmd(flags))
	root.AddCommand(newReportCmd(flags))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// sysError marks failures of the environment rather than of the input.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemError(format string, args ...any) error {
	return &sysError{err: fmt.Errorf(format, args...)}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) || errors.Is(err, types.ErrStoreFault) {
		return exitSysError
	}
	return exitUserError
}
