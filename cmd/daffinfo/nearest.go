package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNearestCommand(a *app) *cobra.Command {
	var (
		view           string
		angle1, angle2 float32
	)

	cmd := &cobra.Command{
		Use:   "nearest <file>",
		Short: "Resolve a direction to the nearest record",
		Long: "Resolve a direction to the nearest record. In the object view the angles are\n" +
			"azimuth phi and elevation theta; in the data view alpha and beta.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vw, err := parseView(view)
			if err != nil {
				return err
			}
			b, h, release, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer release()

			g, err := contentGrid(b, h)
			if err != nil {
				return err
			}
			rec, oob, err := g.NearestNeighbourView(vw, angle1, angle2)
			if err != nil {
				return err
			}
			alpha, beta, err := g.RecordCoords(rec)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "record %d alpha %g beta %g", rec, alpha, beta)
			if oob {
				fmt.Fprint(w, " (out of bounds)")
			}
			fmt.Fprintln(w)
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", "object", "Frame of the angles: object or data")
	cmd.Flags().Float32Var(&angle1, "azimuth", 0, "Azimuth in degrees (phi or alpha)")
	cmd.Flags().Float32Var(&angle2, "elevation", 0, "Elevation in degrees (theta or beta)")
	return cmd
}
