package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print author, book and copy counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.catalog.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			return NewRenderer(cmd.OutOrStdout(), flags.jsonMode).Stats(stats)
		},
	}
}

func newAuthorsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "authors",
		Short: "List every author with their book count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.catalog.ListAllAuthors(cmd.Context())
			if err != nil {
				return err
			}
			return NewRenderer(cmd.OutOrStdout(), flags.jsonMode).Authors(list)
		},
	}
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the catalog to a JSONL file, one author per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.catalog.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return transferDone(cmd, flags.jsonMode, "exported", n, args[0])
		},
	}
}

func newImportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create the authors of a JSONL file as new catalog entries",
		Long: "Import reads one author graph per line and creates all of them in a\n" +
			"single transaction. Identities in the file are ignored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.catalog.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return transferDone(cmd, flags.jsonMode, "imported", n, args[0])
		},
	}
}

func newReportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report <file.xlsx>",
		Short: "Write the catalog to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.catalog.Report(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			r := NewRenderer(cmd.OutOrStdout(), flags.jsonMode)
			if flags.jsonMode {
				return r.JSON(map[string]any{"file": args[0], "stats": stats})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d authors, %d books, %d copies)\n",
				args[0], stats.Authors, stats.Books, stats.Copies)
			return nil
		},
	}
}

func transferDone(cmd *cobra.Command, jsonMode bool, verb string, n int, path string) error {
	if jsonMode {
		return NewRenderer(cmd.OutOrStdout(), true).JSON(map[string]any{"file": path, verb: n})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d author(s) %s (%s)\n", n, verb, path)
	return nil
}
