package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/tripjournal/internal/app"
	"github.com/templui/tripjournal/internal/config"
	"github.com/templui/tripjournal/internal/logger"
)

func BackfillCmd() *cobra.Command {
	var uid string

	cmd := &cobra.Command{
		Use:   "backfill-countries",
		Short: "Fill in missing trip countries for a user from their coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), cfg.SentryDSN, cfg.AppEnv)

			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer a.Close()

			result, err := a.LocationService.BackfillCountries(cmd.Context(), uid)
			if err != nil {
				return err
			}

			fmt.Println("==>", result.Message)
			for _, trip := range result.UpdatedTrips {
				fmt.Printf("    trip %d: %s\n", trip.ID, trip.Country)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "identity subject id of the trip owner")
	_ = cmd.MarkFlagRequired("uid")

	return cmd
}
