package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DAFF_USE_SIMULATION", "false")
	t.Setenv("DAFF_LOG_LEVEL", "error")

	cmd := newRootCommand(newApp())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// synth writes a synthesized document into a temp dir and returns its path.
func synth(t *testing.T, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "synth.yaml")
	_, err := run(t, append([]string{"synth", path}, args...)...)
	require.NoError(t, err)
	return path
}

func TestInfo(t *testing.T) {
	path := synth(t, "--type", "IR")

	out, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Content type:    ImpulseResponse (IR)")
	assert.Contains(t, out, "Records:         62")
	assert.Contains(t, out, "Channels:        2 [left, right]")
	assert.Contains(t, out, "Filter length:   8")
	assert.Contains(t, out, "Full sphere:     true")

	_, err = run(t, "info", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMetadata(t *testing.T) {
	path := synth(t, "--type", "MS")

	out, err := run(t, "metadata", path)
	require.NoError(t, err)
	assert.Contains(t, out, `Description (string) = "synthesized MagnitudeSpectrum"`)
	assert.Contains(t, out, "Elements (int) = 8")
	assert.Contains(t, out, "Synthetic (bool) = true")

	out, err = run(t, "metadata", path, "resolution")
	require.NoError(t, err)
	assert.Equal(t, "resolution (float) = 30\n", out)

	_, err = run(t, "metadata", path, "Author")
	assert.Error(t, err)
}

func TestNearestAndRecord(t *testing.T) {
	path := synth(t, "--type", "MS", "--channels", "1", "--elements", "3")

	out, err := run(t, "nearest", path, "--view", "data", "--azimuth", "10", "--elevation", "0")
	require.NoError(t, err)
	assert.Equal(t, "record 0 alpha 0 beta 0\n", out)

	out, err = run(t, "nearest", path, "--azimuth", "0", "--elevation", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha 0 beta 90")

	_, err = run(t, "nearest", path, "--view", "sideways")
	assert.Error(t, err)

	out, err = run(t, "record", path, "--record", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "channel 0: [1000 1001 1002]")
}

func TestSpectrumOfImpulse(t *testing.T) {
	bins := irSpectrum([]float32{1, 0, 0, 0}, 48000)
	require.Len(t, bins, 3)
	for i, b := range bins {
		assert.InDelta(t, float64(i)*12000, b.Frequency, 1e-9)
		assert.InDelta(t, 1.0, b.Magnitude, 1e-12)
	}
	assert.Nil(t, irSpectrum(nil, 48000))
	assert.True(t, math.IsInf(decibels(0), -1))
	assert.InDelta(t, 20.0, decibels(10), 1e-12)
}

func TestSpectrumCommand(t *testing.T) {
	path := synth(t, "--type", "DFT", "--elements", "8", "--symmetric")
	out, err := run(t, "spectrum", path, "--record", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "0.00 Hz")

	ps := synth(t, "--type", "PS")
	_, err = run(t, "spectrum", ps, "--record", "0")
	assert.Error(t, err)
}

func TestExportWAV(t *testing.T) {
	path := synth(t, "--type", "IR", "--alpha-resolution", "90", "--beta-resolution", "90")
	outDir := t.TempDir()

	out, err := run(t, "export-wav", path, "--all", "--out-dir", outDir, "--workers", "3")
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(outDir, "*.wav"))
	require.NoError(t, err)
	assert.Len(t, files, 6)
	assert.Contains(t, out, "synth_rec0005.wav")

	f, err := os.Open(filepath.Join(outDir, "synth_rec0003.wav"))
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint16(2), dec.NumChans)
	assert.Equal(t, uint32(44100), dec.SampleRate)
	assert.Equal(t, uint16(wavBitDepth), dec.BitDepth)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Len(t, buf.Data, 16)

	ms := synth(t, "--type", "MS")
	_, err = run(t, "export-wav", ms, "--record", "0", "--out-dir", outDir)
	assert.Error(t, err)
}

func TestPCMBuffer(t *testing.T) {
	buf := pcmBuffer([][]float32{{0.5, -0.25}, {0, 0.1}}, 48000, true)
	require.Len(t, buf.Data, 4)
	full := float64(1<<(wavBitDepth-1) - 1)
	assert.Equal(t, int(math.Round(normalizedPeak*full)), buf.Data[0])
	assert.Equal(t, 0, buf.Data[1])
	assert.Equal(t, int(math.Round(-0.5*normalizedPeak*full)), buf.Data[2])
	assert.Equal(t, 2, buf.Format.NumChannels)

	clipped := pcmBuffer([][]float32{{4}}, 48000, false)
	assert.Equal(t, int(full), clipped.Data[0])
}
