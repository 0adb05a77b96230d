package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/repo"
)

// StoreOpener opens the trip store described by cfg.
type StoreOpener func(ctx context.Context, cfg config.Config) (*repo.Store, error)

// app carries what every subcommand needs.
type app struct {
	loadConfig func() (config.Config, error)
	openStore  StoreOpener
	jsonOutput bool
}

// Option customises NewRootCommand.
type Option func(*app)

// WithStoreOpener replaces the default store opener, which dials the
// backend named by STORAGE_DRIVER.
func WithStoreOpener(fn StoreOpener) Option {
	return func(a *app) { a.openStore = fn }
}

// NewRootCommand builds the plannerctl command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		loadConfig: config.Load,
		openStore:  openConfiguredStore,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "plannerctl",
		Short: "Operator tool for the trip planner",
		Long: `plannerctl runs schema migrations and inspects trip itineraries.

It reads the same environment variables as the API server
(STORAGE_DRIVER, DATABASE_URL, SQLITE_PATH, ITINERARY_DRAG_POLICY, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		a.migrateCommand(),
		a.itineraryCommand(),
		a.policyCommand(),
	)
	return root
}

// Execute runs plannerctl with os.Args and exits non-zero on failure.
func Execute() {
	root := NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openConfiguredStore(ctx context.Context, cfg config.Config) (*repo.Store, error) {
	driver, err := repo.ParseDriver(cfg.StorageDriver)
	if err != nil {
		return nil, err
	}
	return repo.Open(ctx, driver, cfg.DSN())
}

// withStore loads configuration, opens the store and hands both to fn.
func (a *app) withStore(ctx context.Context, fn func(cfg config.Config, store *repo.Store) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	store, err := a.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

func (a *app) policyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the configured drag policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			policy, err := itinerary.ParsePolicy(cfg.DragPolicy)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"policy": string(policy)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), describePolicy(policy))
			return nil
		},
	}
}

func describePolicy(p itinerary.Policy) string {
	switch p {
	case itinerary.PolicyReorder:
		return "reorder: drag within a slot to change order; moving between slots is refused"
	default:
		return "move: drop onto another period of the same day to append there; order within a slot is fixed"
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
