package cli

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	pathplanning "path-planning"
)

var (
	circleX      float64
	circleY      float64
	circleRadius float64

	simplifyTolerance float64
)

var circleCmd = &cobra.Command{
	Use:     "circle",
	Short:   "Approximate a circle as a closed polygon",
	GroupID: "geometry",
	Example: `  pathplanner circle --x 5 --y 5 --radius 2`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ring, err := pathplanning.CreateCircle(orb.Point{circleX, circleY}, circleRadius)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), ring)
	},
}

var simplifyCmd = &cobra.Command{
	Use:   "simplify",
	Short: "Simplify a polyline read from stdin",
	Long: `Simplify a polyline with the Douglas-Peucker algorithm.

The polyline is read from stdin as a JSON array of [x, y] points.`,
	GroupID: "geometry",
	Example: `  echo '[[0,0],[1,0.01],[2,0]]' | pathplanner simplify --tolerance 0.1`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if simplifyTolerance < 0 {
			return errors.New("tolerance must not be negative")
		}

		var points orb.LineString
		if err := json.NewDecoder(cmd.InOrStdin()).Decode(&points); err != nil {
			return errors.Wrap(err, "failed to parse points")
		}
		return writeJSON(cmd.OutOrStdout(), pathplanning.Simplify(points, simplifyTolerance))
	},
}

func init() {
	circleCmd.Flags().Float64Var(&circleX, "x", 0, "Center x")
	circleCmd.Flags().Float64Var(&circleY, "y", 0, "Center y")
	circleCmd.Flags().Float64Var(&circleRadius, "radius", 1, "Radius")

	simplifyCmd.Flags().Float64VarP(&simplifyTolerance, "tolerance", "t", 0, "Maximum deviation of removed points")

	rootCmd.AddCommand(circleCmd, simplifyCmd)
}
