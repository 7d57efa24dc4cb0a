package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opd-ai/daffbind"
	"github.com/opd-ai/daffbind/factory"
	"github.com/opd-ai/daffbind/interfaces"
)

// app carries the settings shared by all subcommands and the binding they
// create on first use.
type app struct {
	factory   *factory.LibraryFactory
	logLevel  string
	cacheSize int

	binding *daffbind.Binding
}

func newApp() *app {
	return &app{factory: factory.NewLibraryFactory(), cacheSize: -1}
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "daffinfo",
		Short:         "Inspect directional audio (DAFF) files",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level (debug, info, warn, error); overrides DAFF_LOG_LEVEL")
	rootCmd.PersistentFlags().IntVar(&a.cacheSize, "cache-size", -1,
		"Number of decoded files shared between handles; overrides DAFF_DATASET_CACHE_SIZE")

	rootCmd.AddCommand(
		newInfoCommand(a),
		newMetadataCommand(a),
		newNearestCommand(a),
		newRecordCommand(a),
		newSpectrumCommand(a),
		newExportWAVCommand(a),
		newSynthCommand(),
	)
	return rootCmd
}

// bind creates the binding from the factory configuration and the command
// line overrides.
func (a *app) bind() (*daffbind.Binding, error) {
	if a.binding != nil {
		return a.binding, nil
	}

	cfg := a.factory.GetCurrentConfig()
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.cacheSize >= 0 {
		cfg.DatasetCacheSize = a.cacheSize
	}
	if err := a.factory.UpdateConfig(cfg); err != nil {
		return nil, err
	}
	if err := factory.ConfigureLogging(cfg); err != nil {
		return nil, err
	}

	lib, err := a.factory.CreateLibrary()
	if err != nil {
		return nil, err
	}
	b, err := daffbind.New(lib, daffbind.OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":   "bind",
		"simulation": cfg.UseSimulation,
	}).Debug("Created binding for command")

	a.binding = b
	return b, nil
}

// open creates a handle with path open. The returned release function
// destroys it.
func (a *app) open(path string) (*daffbind.Binding, daffbind.Handle, func(), error) {
	b, err := a.bind()
	if err != nil {
		return nil, daffbind.NullHandle, nil, err
	}
	h, err := b.Create()
	if err != nil {
		return nil, daffbind.NullHandle, nil, err
	}
	if err := b.Open(h, path); err != nil {
		b.Destroy(h)
		return nil, daffbind.NullHandle, nil, err
	}
	return b, h, func() { b.Destroy(h) }, nil
}

// gridView is the record grid part shared by the typed content views.
type gridView interface {
	NearestNeighbour(phi, theta float32) (int, error)
	NearestNeighbourView(view interfaces.View, angle1, angle2 float32) (int, bool, error)
	RecordCoords(recordIndex int) (alpha, beta float32, err error)
}

// contentGrid returns the grid view of whatever content h holds.
func contentGrid(b *daffbind.Binding, h daffbind.Handle) (gridView, error) {
	if v, ok := b.ContentIR(h); ok {
		return v, nil
	}
	if v, ok := b.ContentMS(h); ok {
		return v, nil
	}
	if v, ok := b.ContentPS(h); ok {
		return v, nil
	}
	if v, ok := b.ContentMPS(h); ok {
		return v, nil
	}
	if v, ok := b.ContentDFT(h); ok {
		return v, nil
	}
	return nil, fmt.Errorf("no content view: %s", b.LastError())
}

func parseView(s string) (interfaces.View, error) {
	switch strings.ToLower(s) {
	case "data":
		return interfaces.DataView, nil
	case "object":
		return interfaces.ObjectView, nil
	default:
		return 0, fmt.Errorf("unknown view %q (want data or object)", s)
	}
}

// recordFlags selects a record by index or by object view direction.
type recordFlags struct {
	record     int
	phi, theta float32
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.record, "record", "r", -1, "Record index")
	cmd.Flags().Float32Var(&f.phi, "phi", 0, "Object view azimuth in degrees, used when --record is not set")
	cmd.Flags().Float32Var(&f.theta, "theta", 0, "Object view elevation in degrees, used when --record is not set")
}

func (f *recordFlags) resolve(g gridView) (int, error) {
	if f.record >= 0 {
		return f.record, nil
	}
	return g.NearestNeighbour(f.phi, f.theta)
}
