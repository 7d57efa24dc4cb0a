package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opd-ai/daffbind"
)

func newRecordCommand(a *app) *cobra.Command {
	var sel recordFlags

	cmd := &cobra.Command{
		Use:   "record <file>",
		Short: "Print the data of one record for every channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, h, release, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer release()

			g, err := contentGrid(b, h)
			if err != nil {
				return err
			}
			rec, err := sel.resolve(g)
			if err != nil {
				return err
			}
			alpha, beta, err := g.RecordCoords(rec)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "record %d alpha %g beta %g\n", rec, alpha, beta)
			return printRecord(w, b, h, rec)
		},
	}
	sel.register(cmd)
	return cmd
}

func printRecord(w io.Writer, b *daffbind.Binding, h daffbind.Handle, rec int) error {
	if v, ok := b.ContentIR(h); ok {
		return printChannels(w, v.Record, rec)
	}
	if v, ok := b.ContentMS(h); ok {
		return printChannels(w, v.Record, rec)
	}
	if v, ok := b.ContentPS(h); ok {
		return printChannels(w, v.Record, rec)
	}
	if v, ok := b.ContentMPS(h); ok {
		return printChannels(w, v.Record, rec)
	}
	if v, ok := b.ContentDFT(h); ok {
		return printChannels(w, v.Record, rec)
	}
	return fmt.Errorf("no content view: %s", b.LastError())
}

func printChannels[T float32 | complex64](w io.Writer, fetch func(int) ([][]T, error), rec int) error {
	channels, err := fetch(rec)
	if err != nil {
		return err
	}
	for ch, values := range channels {
		fmt.Fprintf(w, "channel %d: %v\n", ch, values)
	}
	return nil
}
