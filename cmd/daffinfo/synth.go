package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opd-ai/daffbind/interfaces"
	"github.com/opd-ai/daffbind/real"
	simtest "github.com/opd-ai/daffbind/testing"
)

func newSynthCommand() *cobra.Command {
	var (
		contentType string
		spec        simtest.SynthSpec
	)

	cmd := &cobra.Command{
		Use:   "synth <out-file>",
		Short: "Write a synthesized full sphere dataset document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, ok := interfaces.ParseContentType(contentType)
			if !ok {
				return fmt.Errorf("unknown content type %q", contentType)
			}
			spec.ContentType = ct

			data, err := real.EncodeDataset(simtest.Synthesize(spec))
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", args[0], ct)
			return nil
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "IR", "Content type: IR, MS, PS, MPS or DFT")
	cmd.Flags().IntVar(&spec.Channels, "channels", 2, "Number of channels")
	cmd.Flags().Float32Var(&spec.AlphaResolution, "alpha-resolution", 30, "Azimuth resolution in degrees")
	cmd.Flags().Float32Var(&spec.BetaResolution, "beta-resolution", 30, "Elevation resolution in degrees")
	cmd.Flags().IntVar(&spec.Elements, "elements", 8, "Filter length, number of frequencies or transform size")
	cmd.Flags().BoolVar(&spec.Symmetric, "symmetric", false, "Store a symmetric DFT spectrum")
	cmd.Flags().Float32Var(&spec.Orientation.Yaw, "yaw", 0, "Orientation yaw in degrees")
	cmd.Flags().Float32Var(&spec.Orientation.Pitch, "pitch", 0, "Orientation pitch in degrees")
	cmd.Flags().Float32Var(&spec.Orientation.Roll, "roll", 0, "Orientation roll in degrees")
	return cmd
}
