package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/repo"
)

func (a *app) itineraryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "itinerary <trip-id>",
		Short: "Print a trip's itinerary as a day table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid trip id %q: %w", args[0], err)
			}

			return a.withStore(cmd.Context(), func(cfg config.Config, store *repo.Store) error {
				policy, err := itinerary.ParsePolicy(cfg.DragPolicy)
				if err != nil {
					return err
				}
				trip, err := store.Trips.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}

				if a.jsonOutput {
					m := itinerary.NewManager(trip, nil, itinerary.WithPolicy(policy))
					return writeJSON(cmd.OutOrStdout(), map[string]any{
						"trip_id": trip.ID,
						"name":    trip.Name,
						"policy":  policy,
						"dates":   m.Dates(),
						"slots":   m.Slots(),
					})
				}
				fmt.Fprint(cmd.OutOrStdout(), RenderItinerary(trip, policy))
				return nil
			})
		},
	}
}
