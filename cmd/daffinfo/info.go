package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opd-ai/daffbind"
	"github.com/opd-ai/daffbind/interfaces"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the properties of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, h, release, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer release()

			p, err := b.Properties(h)
			if err != nil {
				return err
			}
			printProperties(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func printProperties(w io.Writer, p *daffbind.Properties) {
	fmt.Fprintf(w, "File:            %s\n", p.Filename)
	fmt.Fprintf(w, "Format version:  %d\n", p.FileFormatVersion)
	fmt.Fprintf(w, "Content type:    %s (%s)\n", p.ContentType, p.ContentType.ShortString())
	fmt.Fprintf(w, "Quantization:    %s\n", p.Quantization)
	fmt.Fprintf(w, "Channels:        %d [%s]\n", p.NumberOfChannels, strings.Join(p.ChannelLabels, ", "))
	fmt.Fprintf(w, "Records:         %d\n", p.NumberOfRecords)
	fmt.Fprintf(w, "Alpha:           %d points, %g deg, [%g, %g]\n", p.AlphaPoints, p.AlphaResolution, p.AlphaStart, p.AlphaEnd)
	fmt.Fprintf(w, "Beta:            %d points, %g deg, [%g, %g]\n", p.BetaPoints, p.BetaResolution, p.BetaStart, p.BetaEnd)
	fmt.Fprintf(w, "Orientation:     yaw %g pitch %g roll %g\n", p.Orientation.Yaw, p.Orientation.Pitch, p.Orientation.Roll)
	fmt.Fprintf(w, "Full sphere:     %t\n", p.CoversFullSphere)

	switch p.ContentType {
	case interfaces.ContentTypeIR:
		fmt.Fprintf(w, "Samplerate:      %g Hz\n", p.Samplerate)
		fmt.Fprintf(w, "Filter length:   %d\n", p.FilterLength)
	case interfaces.ContentTypeMS, interfaces.ContentTypePS, interfaces.ContentTypeMPS:
		fmt.Fprintf(w, "Frequencies:     %d %v\n", len(p.Frequencies), p.Frequencies)
	case interfaces.ContentTypeDFT:
		fmt.Fprintf(w, "Samplerate:      %g Hz\n", p.Samplerate)
		fmt.Fprintf(w, "Transform size:  %d (%d coefficients, symmetric %t)\n", p.TransformSize, p.NumDFTCoeffs, p.IsSymmetric)
		fmt.Fprintf(w, "Bandwidth:       %g Hz\n", p.FrequencyBandwidth)
	}
}

func newMetadataCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <file> [key...]",
		Short: "Print metadata entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, h, release, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer release()

			entries, err := b.MetadataKeys(h)
			if err != nil {
				return err
			}
			if keys := args[1:]; len(keys) > 0 {
				entries = entries[:0:0]
				for _, k := range keys {
					t, err := b.MetadataType(h, k)
					if err != nil {
						return err
					}
					entries = append(entries, daffbind.MetadataEntry{Key: k, Type: t})
				}
			}

			w := cmd.OutOrStdout()
			for _, e := range entries {
				v, err := metadataValue(b, h, e)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s (%s) = %s\n", e.Key, e.Type, v)
			}
			return nil
		},
	}
}

func metadataValue(b *daffbind.Binding, h daffbind.Handle, e daffbind.MetadataEntry) (string, error) {
	switch e.Type {
	case interfaces.MetadataBool:
		v, err := b.MetadataBool(h, e.Key)
		return fmt.Sprint(v), err
	case interfaces.MetadataInt:
		v, err := b.MetadataInt(h, e.Key)
		return fmt.Sprint(v), err
	case interfaces.MetadataFloat:
		v, err := b.MetadataFloat(h, e.Key)
		return fmt.Sprint(v), err
	default:
		v, err := b.MetadataString(h, e.Key)
		return fmt.Sprintf("%q", v), err
	}
}
