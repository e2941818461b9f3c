package commands

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/database"
)

// MigrateCommands returns the schema migration commands
func MigrateCommands(db *gorm.DB, dsn string, log *zap.Logger) *cobra.Command {
	var dir string

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.RunMigrations(db, dir, log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
	migrateCmd.PersistentFlags().StringVar(&dir, "dir", "migrations", "directory containing .sql migration files")

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := sql.Open("postgres", dsn)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer conn.Close()
			return printMigrationStatus(cmd.OutOrStdout(), conn, dir)
		},
	})

	return migrateCmd
}

// printMigrationStatus lists every migration file and when it was applied
func printMigrationStatus(out io.Writer, conn *sql.DB, dir string) error {
	rows, err := conn.Query(`SELECT name, applied_at FROM migrations ORDER BY name`)
	if err != nil {
		return fmt.Errorf("failed to read migrations table: %w", err)
	}
	defer rows.Close()

	applied := map[string]string{}
	for rows.Next() {
		var name string
		var at sql.NullTime
		if err := rows.Scan(&name, &at); err != nil {
			return err
		}
		applied[name] = at.Time.Format("2006-01-02 15:04:05")
	}
	if err := rows.Err(); err != nil {
		return err
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tAPPLIED")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		status, ok := applied[f.Name()]
		if !ok {
			status = "pending"
		}
		fmt.Fprintf(w, "%s\t%s\n", f.Name(), status)
	}
	return w.Flush()
}
