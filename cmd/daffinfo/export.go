package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/daffbind"
)

const (
	wavBitDepth = 24
	pcmFormat   = 1
	// normalizedPeak leaves headroom below full scale
	normalizedPeak = 0.99
)

type exportOptions struct {
	sel       recordFlags
	all       bool
	outDir    string
	workers   int
	normalize bool
}

func newExportWAVCommand(a *app) *cobra.Command {
	opts := exportOptions{}

	cmd := &cobra.Command{
		Use:   "export-wav <file>",
		Short: "Write impulse response records as WAV files",
		Long: "Write impulse response records as multichannel 24 bit WAV files, one file per\n" +
			"record. With --all every record is exported by a pool of workers, each with\n" +
			"its own handle.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := exportWAV(cmd.Context(), a, args[0], opts)
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
	}

	opts.sel.register(cmd)
	cmd.Flags().BoolVar(&opts.all, "all", false, "Export every record")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", ".", "Output directory")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", runtime.NumCPU(), "Parallel exports with --all")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", true, "Scale each record to full scale")
	return cmd
}

// exportWAV writes the selected records and returns the written paths in
// record order.
func exportWAV(ctx context.Context, a *app, path string, opts exportOptions) ([]string, error) {
	b, h, release, err := a.open(path)
	if err != nil {
		return nil, err
	}
	ir, ok := b.ContentIR(h)
	if !ok {
		release()
		return nil, fmt.Errorf("%s: only impulse response content can be exported", path)
	}

	var records []int
	if opts.all {
		n, err := b.NumberOfRecords(h)
		if err != nil {
			release()
			return nil, err
		}
		records = make([]int, n)
		for i := range records {
			records[i] = i
		}
	} else {
		rec, err := opts.sel.resolve(ir)
		if err != nil {
			release()
			return nil, err
		}
		records = []int{rec}
	}
	rate, err := ir.Samplerate()
	release()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))

	written := make([]string, len(records))
	for i, rec := range records {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			out := filepath.Join(opts.outDir, fmt.Sprintf("%s_rec%04d.wav", base, rec))
			if err := exportRecord(b, path, rec, int(rate), opts.normalize, out); err != nil {
				return fmt.Errorf("record %d: %w", rec, err)
			}
			written[i] = out
			return nil
		})
	}

	err = g.Wait()

	done := written[:0]
	for _, p := range written {
		if p != "" {
			done = append(done, p)
		}
	}
	logrus.WithFields(logrus.Fields{
		"function": "exportWAV",
		"path":     path,
		"records":  len(records),
		"written":  len(done),
	}).Info("Exported impulse responses")
	return done, err
}

// exportRecord opens its own handle on path so that concurrent exports never
// share a reader.
func exportRecord(b *daffbind.Binding, path string, rec, samplerate int, normalize bool, out string) error {
	h, err := b.Create()
	if err != nil {
		return err
	}
	defer b.Destroy(h)
	if err := b.Open(h, path); err != nil {
		return err
	}

	ir, ok := b.ContentIR(h)
	if !ok {
		return fmt.Errorf("content changed while exporting")
	}
	channels, err := ir.Record(rec)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	enc := wav.NewEncoder(f, samplerate, wavBitDepth, len(channels), pcmFormat)
	if err := enc.Write(pcmBuffer(channels, samplerate, normalize)); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pcmBuffer interleaves the channels of a record into 24 bit samples.
func pcmBuffer(channels [][]float32, samplerate int, normalize bool) *audio.IntBuffer {
	frames := 0
	if len(channels) > 0 {
		frames = len(channels[0])
	}

	scale := 1.0
	if normalize {
		peak := 0.0
		for _, ch := range channels {
			for _, v := range ch {
				peak = math.Max(peak, math.Abs(float64(v)))
			}
		}
		if peak > 0 {
			scale = normalizedPeak / peak
		}
	}

	fullScale := float64(int(1)<<(wavBitDepth-1) - 1)
	data := make([]int, frames*len(channels))
	for i := 0; i < frames; i++ {
		for c, ch := range channels {
			v := math.Max(-1, math.Min(1, float64(ch[i])*scale))
			data[i*len(channels)+c] = int(math.Round(v * fullScale))
		}
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: len(channels),
			SampleRate:  samplerate,
		},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
}
