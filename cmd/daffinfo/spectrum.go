package main

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/opd-ai/daffbind"
)

// bin is one line of a magnitude spectrum.
type bin struct {
	Frequency float64
	Magnitude float64
}

// irSpectrum returns the one-sided magnitude spectrum of an impulse
// response sampled at samplerate.
func irSpectrum(taps []float32, samplerate float64) []bin {
	if len(taps) == 0 {
		return nil
	}
	seq := make([]float64, len(taps))
	for i, v := range taps {
		seq[i] = float64(v)
	}

	fft := fourier.NewFFT(len(seq))
	coeffs := fft.Coefficients(nil, seq)

	bins := make([]bin, len(coeffs))
	for i, c := range coeffs {
		bins[i] = bin{Frequency: fft.Freq(i) * samplerate, Magnitude: cmplx.Abs(c)}
	}
	return bins
}

func decibels(m float64) float64 {
	if m <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(m)
}

func newSpectrumCommand(a *app) *cobra.Command {
	var (
		sel     recordFlags
		channel int
		db      bool
	)

	cmd := &cobra.Command{
		Use:   "spectrum <file>",
		Short: "Print the magnitude spectrum of one record channel",
		Long: "Print the magnitude spectrum of one record channel. Impulse responses are\n" +
			"transformed with an FFT of the filter length; spectra are printed as stored.",
		Args: cobra.ExactArgs(1),
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
			bins, err := spectrumOf(b, h, rec, channel)
			if err != nil {
				return err
			}
			printSpectrum(cmd.OutOrStdout(), bins, db)
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().IntVarP(&channel, "channel", "c", 0, "Channel index")
	cmd.Flags().BoolVar(&db, "db", false, "Print magnitudes in decibels")
	return cmd
}

func spectrumOf(b *daffbind.Binding, h daffbind.Handle, rec, channel int) ([]bin, error) {
	if ir, ok := b.ContentIR(h); ok {
		n, err := ir.FilterLength()
		if err != nil {
			return nil, err
		}
		rate, err := ir.Samplerate()
		if err != nil {
			return nil, err
		}
		taps := make([]float32, n)
		if err := ir.FilterCoeffs(rec, channel, taps); err != nil {
			return nil, err
		}
		return irSpectrum(taps, rate), nil
	}

	if ms, ok := b.ContentMS(h); ok {
		freqs, err := ms.Frequencies()
		if err != nil {
			return nil, err
		}
		mags := make([]float32, len(freqs))
		if err := ms.Magnitudes(rec, channel, mags); err != nil {
			return nil, err
		}
		bins := make([]bin, len(freqs))
		for i := range bins {
			bins[i] = bin{Frequency: float64(freqs[i]), Magnitude: float64(mags[i])}
		}
		return bins, nil
	}

	if mps, ok := b.ContentMPS(h); ok {
		freqs, err := mps.Frequencies()
		if err != nil {
			return nil, err
		}
		coeffs := make([]complex64, len(freqs))
		if err := mps.CoefficientsComplex(rec, channel, coeffs); err != nil {
			return nil, err
		}
		bins := make([]bin, len(freqs))
		for i := range bins {
			bins[i] = bin{Frequency: float64(freqs[i]), Magnitude: cmplx.Abs(complex128(coeffs[i]))}
		}
		return bins, nil
	}

	if dft, ok := b.ContentDFT(h); ok {
		n, err := dft.NumDFTCoeffs()
		if err != nil {
			return nil, err
		}
		bw, err := dft.FrequencyBandwidth()
		if err != nil {
			return nil, err
		}
		coeffs := make([]complex64, n)
		if err := dft.DFTCoeffsComplex(rec, channel, coeffs); err != nil {
			return nil, err
		}
		bins := make([]bin, n)
		for i := range bins {
			bins[i] = bin{Frequency: float64(i) * bw, Magnitude: cmplx.Abs(complex128(coeffs[i]))}
		}
		return bins, nil
	}

	if _, ok := b.ContentPS(h); ok {
		return nil, fmt.Errorf("phase spectra carry no magnitudes")
	}
	return nil, fmt.Errorf("no content view: %s", b.LastError())
}

func printSpectrum(w io.Writer, bins []bin, db bool) {
	for _, bn := range bins {
		m := bn.Magnitude
		if db {
			m = decibels(m)
		}
		fmt.Fprintf(w, "%10.2f Hz  %g\n", bn.Frequency, m)
	}
}
