// Package main is a command-line front end for the attractions lookup.
//
//	poi Paris --radius 1500 --limit 10
//
// The OpenTripMap key is read from OPENTRIPMAP_API_KEY (a .env file in the
// working directory is honoured) or from --api-key.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/travelbuddy/internal/config"
	"github.com/pkordes/travelbuddy/internal/geodata"
)

// attractionFinder is the slice of *geodata.Client the command needs.
type attractionFinder interface {
	AttractionsForCity(ctx context.Context, city string, radius, limit int) ([]string, error)
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cmd := newRootCmd(viper.New(), func(apiKey string) attractionFinder {
		return geodata.New(apiKey)
	})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the poi command. newFinder is called once per run with
// the resolved API key.
func newRootCmd(v *viper.Viper, newFinder func(apiKey string) attractionFinder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poi <city>",
		Short: "List attractions near a city",
		Long: `poi geocodes a city with OpenTripMap and prints the named attractions
within the search radius, best rated first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			city := args[0]
			finder := newFinder(v.GetString("api_key"))

			names, err := finder.AttractionsForCity(cmd.Context(), city, v.GetInt("radius"), v.GetInt("limit"))
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Top %d attractions near %s:\n", len(names), city)
			for i, name := range names {
				fmt.Fprintf(out, "%d. %s\n", i+1, name)
			}
			return nil
		},
	}

	cmd.Flags().Int("radius", 1000, "search radius in metres")
	cmd.Flags().Int("limit", 20, "maximum number of attractions")
	cmd.Flags().String("api-key", "", "OpenTripMap API key (default $OPENTRIPMAP_API_KEY)")

	v.BindPFlag("radius", cmd.Flags().Lookup("radius"))
	v.BindPFlag("limit", cmd.Flags().Lookup("limit"))
	v.BindPFlag("api_key", cmd.Flags().Lookup("api-key"))
	v.BindEnv("api_key", "OPENTRIPMAP_API_KEY")

	return cmd
}
