package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/repo"
)

func (a *app) migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long:  "Apply, roll back or inspect goose migrations for the configured storage driver.",
	}

	run := func(op func(cmd *cobra.Command, p *goose.Provider) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(_ config.Config, store *repo.Store) error {
				p, err := store.Migrations()
				if err != nil {
					return err
				}
				if p == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s storage has no schema to migrate\n", store.Driver())
					return nil
				}
				return op(cmd, p)
			})
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, p *goose.Provider) error {
				results, err := p.Up(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				if len(results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
				}
				for _, r := range results {
					printResult(cmd.OutOrStdout(), r)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, p *goose.Provider) error {
				r, err := p.Down(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				printResult(cmd.OutOrStdout(), r)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, p *goose.Provider) error {
				statuses, err := p.Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate status: %w", err)
				}
				if a.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), statusRows(statuses))
				}
				printStatus(cmd.OutOrStdout(), statuses)
				return nil
			}),
		},
	)
	return cmd
}

type statusRow struct {
	Version   int64      `json:"version"`
	Path      string     `json:"path"`
	State     string     `json:"state"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

func statusRows(statuses []*goose.MigrationStatus) []statusRow {
	rows := make([]statusRow, 0, len(statuses))
	for _, s := range statuses {
		row := statusRow{Version: s.Source.Version, Path: s.Source.Path, State: string(s.State)}
		if !s.AppliedAt.IsZero() {
			at := s.AppliedAt.UTC()
			row.AppliedAt = &at
		}
		rows = append(rows, row)
	}
	return rows
}

func printStatus(w io.Writer, statuses []*goose.MigrationStatus) {
	rows := make([][]string, 0, len(statuses))
	for _, r := range statusRows(statuses) {
		applied := "-"
		if r.AppliedAt != nil {
			applied = r.AppliedAt.Format(time.RFC3339)
		}
		rows = append(rows, []string{fmt.Sprint(r.Version), r.Path, r.State, applied})
	}
	fmt.Fprint(w, renderGrid([]string{"Version", "Migration", "State", "Applied at"}, rows))
}

func printResult(w io.Writer, r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	fmt.Fprintf(w, "%-4s %s (%s)\n", r.Direction, r.Source.Path, r.Duration.Round(time.Millisecond))
}
