// ABOUTME: Calc command computing distances, width, and area from two sides
// ABOUTME: Optionally saves the result as a measurement in the current project

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/parcel/internal/geometry"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/state"
	"github.com/harper/parcel/internal/ui"
	"github.com/harper/parcel/internal/validate"
	"github.com/spf13/cobra"
)

var (
	calcLeft  []string
	calcRight []string
	calcName  string
	calcSave  bool
)

var calcCmd = &cobra.Command{
	Use:     "calc -l <x, y> -l <x, y> -r <x, y> -r <x, y>",
	Aliases: []string{"c"},
	Short:   "Calculate a measurement from boundary coordinates",
	Long: `Calculate side distances, average width, length, and area from two
sides of boundary coordinates. Coordinates are planar meters as "x, y".

Examples:
  parcel calc -l "0, 0" -l "100, 0" -r "0, 50" -r "100, 50"
  parcel calc -l "0, 0" -l "100, 0" -r "0, 50" -r "100, 50" --save
  parcel calc -l "0, 0" -l "100, 0" -r "0, 50" -r "100, 50" --save --name "north plot"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		left, err := parsePoints("left", calcLeft)
		if err != nil {
			return err
		}
		right, err := parsePoints("right", calcRight)
		if err != nil {
			return err
		}

		if !calcSave {
			fmt.Println(ui.FormatAggregate(geometry.Compute(left, right)))
			return nil
		}

		m := models.NewMeasurement(left, right, calcName)
		if err := st.AddMeasurement(m); err != nil {
			return fmt.Errorf("failed to save measurement: %w", err)
		}
		pushHistory(state.MeasurementAdded)

		fmt.Println(ui.FormatAggregate(m.Calculations))
		color.Green("✓ Saved %s to %s",
			m.ID.String()[:8], st.CurrentProject().Name)
		return nil
	},
}

// parsePoints validates and parses repeated coordinate flags into points.
// Empty entries are valid but contribute no point.
func parsePoints(side string, texts []string) ([]geometry.Point, error) {
	var points []geometry.Point
	for i, text := range texts {
		if err := validate.CoordinateText(text); err != nil {
			return nil, fmt.Errorf("%s point %d: %w", side, i+1, err)
		}
		p, err := geometry.ParsePoint(text)
		if err != nil {
			continue
		}
		points = append(points, p)
	}
	if len(points) > models.MaxPointsPerSide {
		return nil, fmt.Errorf("%s side: at most %d points allowed, got %d", side, models.MaxPointsPerSide, len(points))
	}
	if err := validate.PointSequence(points, models.MinPointsPerSide); err != nil {
		return nil, fmt.Errorf("%s side: %w", side, err)
	}
	return points, nil
}

func init() {
	calcCmd.Flags().StringArrayVarP(&calcLeft, "left", "l", nil, "left-side coordinate as 'x, y' (repeatable, 2-10 points)")
	calcCmd.Flags().StringArrayVarP(&calcRight, "right", "r", nil, "right-side coordinate as 'x, y' (repeatable, 2-10 points)")
	calcCmd.Flags().StringVar(&calcName, "name", "", "display name for the saved measurement")
	calcCmd.Flags().BoolVar(&calcSave, "save", false, "save the measurement to the current project")

	rootCmd.AddCommand(calcCmd)
}
