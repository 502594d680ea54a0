package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"titanicdash/internal/config"
	"titanicdash/internal/database"
	"titanicdash/internal/logging"
	"titanicdash/internal/service"
)

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

type app struct {
	logger *zap.Logger
	db     *database.DB
	backup *service.BackupService
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "backup",
		Short: "Export and import dashboard comments",
		Long: `Exports every chart comment to a JSON file, or restores comments from one.

Environment Variables:
  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)
  DB_PATH          SQLite database path (default: ./dashboard.db)
  DATABASE_URL     PostgreSQL or MySQL connection URL`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}

	root.AddCommand(newExportCmd(a), newImportCmd(a))
	return root, a
}

func (a *app) open(ctx context.Context) error {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return err
	}
	a.logger = logger

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.db = db

	// Run migrations to ensure schema is up to date
	if _, err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a.backup = service.NewBackupService(db, logger)
	return nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export comments to a JSON file",
		Example: `  backup export
  backup export --output mybackup.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
			}

			// Ensure directory exists
			if dir := filepath.Dir(output); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			n, err := a.backup.Export(cmd.Context(), output)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d comments to %s\n", n, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var (
		input      string
		clearFirst bool
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import comments from a JSON file",
		Example: `  # Merge with existing comments
  backup import --input backup.json

  # Replace all comments
  backup import --input backup.json --clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("input file does not exist: %s", input)
			}

			if clearFirst && !yes {
				fmt.Fprint(cmd.OutOrStdout(), "WARNING: This will delete all existing comments. Type 'yes' to confirm: ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.TrimSpace(answer) != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
					return nil
				}
			}

			n, err := a.backup.Import(cmd.Context(), input, clearFirst)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d comments\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input file path")
	cmd.Flags().BoolVar(&clearFirst, "clear", false, "clear existing comments before import (destructive)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt for --clear")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
