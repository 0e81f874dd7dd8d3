package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dastanaron/ffmarks/internal/commands"
	"github.com/dastanaron/ffmarks/internal/config"
	"github.com/dastanaron/ffmarks/internal/repository"
	"github.com/dastanaron/ffmarks/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the CLI and returns the process exit status.
// Results and diagnostics both go to out.
func run(args []string, out io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(out, commands.Diagnostic(err))
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var level int
	var pretty string

	cmd := &cobra.Command{
		Use:   "ffmarks FILE",
		Short: "Render a Firefox JSON bookmarks backup",
		Long: `Manipulates Firefox bookmarks JSON in various ways.

Default behaviour is to output a list of bookmark/folder titles with no
special formatting. Output goes to stdout and is intended to be redirected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var markdown *int
			var spacer *string
			if cmd.Flags().Changed("to_markdown") {
				markdown = &level
			}
			if cmd.Flags().Changed("pretty_text") {
				spacer = &pretty
			}

			opts, err := commands.NewRenderOptions(markdown, spacer)
			if err != nil {
				return err
			}
			return commands.NewRenderCommand(cmd.OutOrStdout(), opts).Execute(args[0])
		},
	}

	cmd.Flags().IntVar(&level, "to_markdown", 1,
		"Convert the bookmarks file to markdown. The value is the initial header level (1-6)")
	cmd.Flags().StringVar(&pretty, "pretty_text", "",
		"Output the bookmarks as plain text with spaces or tabs to show children {spaces|tabs}")

	cmd.AddCommand(newImportCmd(), newSearchCmd(), newChildrenCmd(), newBrowseCmd())
	return cmd
}

// openArchive opens the SQLite archive at dbPath, or at the configured
// default when dbPath is empty. Only import may create a new archive.
func openArchive(dbPath string, create bool) (*repository.SQLiteRepository, error) {
	cfg := config.NewConfig()
	if dbPath != "" {
		cfg.WithDBPath(dbPath)
	}

	if create {
		// Ensure database directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	} else if _, err := os.Stat(cfg.DBPath); errors.Is(err, fs.ErrNotExist) {
		return nil, commands.ErrNotFound
	}

	repo, err := repository.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}

func addDBFlag(cmd *cobra.Command, dbPath *string) {
	cmd.Flags().StringVar(dbPath, "db", "", "Path to database file (default: ~/.bookmarks/ffmarks.db)")
}

func newImportCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store every bookmark record in a SQLite archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openArchive(dbPath, true)
			if err != nil {
				return err
			}
			defer repo.Close()

			importCmd := commands.NewImportCommand(cmd.OutOrStdout(), service.NewRecordService(repo))
			return importCmd.Execute(args[0])
		},
	}

	addDBFlag(cmd, &dbPath)
	return cmd
}

func newSearchCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find archived bookmarks whose title or URI contains QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openArchive(dbPath, false)
			if err != nil {
				return err
			}
			defer repo.Close()

			return commands.NewSearchCommand(cmd.OutOrStdout(), service.NewRecordService(repo)).Execute(args[0])
		},
	}

	addDBFlag(cmd, &dbPath)
	return cmd
}

func newChildrenCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "children GUID",
		Short: "List the direct children of an archived folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openArchive(dbPath, false)
			if err != nil {
				return err
			}
			defer repo.Close()

			return commands.NewChildrenCommand(cmd.OutOrStdout(), service.NewRecordService(repo)).Execute(args[0])
		},
	}

	addDBFlag(cmd, &dbPath)
	return cmd
}

func newBrowseCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "browse [FILE]",
		Short: "Browse a bookmarks file, or the imported archive, in a terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			browse := commands.NewBrowseCommand()
			if len(args) == 1 {
				return browse.Execute(args[0])
			}

			repo, err := openArchive(dbPath, false)
			if err != nil {
				return err
			}
			defer repo.Close()
			return browse.ExecuteArchive(service.NewRecordService(repo))
		},
	}

	addDBFlag(cmd, &dbPath)
	return cmd
}
