package daffbind

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/daffbind/interfaces"
	"github.com/opd-ai/daffbind/lasterror"
	"github.com/opd-ai/daffbind/limits"
)

// Options contains binding configuration.
type Options struct {
	// MaxHandles bounds the number of live handles.
	MaxHandles int
}

// NewOptions returns the default options.
func NewOptions() *Options {
	return &Options{
		MaxHandles: limits.DefaultMaxHandles,
	}
}

// OptionsFromConfig derives binding options from a library configuration.
func OptionsFromConfig(cfg *interfaces.BindingConfig) *Options {
	opts := NewOptions()
	if cfg != nil && cfg.MaxHandles > 0 {
		opts.MaxHandles = cfg.MaxHandles
	}
	return opts
}

// Binding is the access layer over one reader library. It is safe for
// concurrent use; a single handle must not be used from two goroutines at
// once.
type Binding struct {
	lib     interfaces.ILibrary
	options *Options
	handles *handleTable
	errs    *lasterror.Channel
}

// New creates a binding over lib. A nil opts uses NewOptions.
func New(lib interfaces.ILibrary, opts *Options) (*Binding, error) {
	if lib == nil {
		return nil, fmt.Errorf("reader library cannot be nil")
	}
	if opts == nil {
		opts = NewOptions()
	}
	if opts.MaxHandles <= 0 || opts.MaxHandles > limits.MaxHandles {
		return nil, fmt.Errorf("max handles %d outside [1, %d]", opts.MaxHandles, limits.MaxHandles)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "New",
		"max_handles": opts.MaxHandles,
		"simulation":  lib.IsSimulation(),
	}).Info("Created binding")

	return &Binding{
		lib:     lib,
		options: opts,
		handles: newHandleTable(opts.MaxHandles),
		errs:    lasterror.New(),
	}, nil
}

// LastError returns the message of the last failed operation on the calling
// OS thread, or "" if the last fallible operation on this thread succeeded.
//
// Goroutines are not pinned to threads. Go callers should use the returned
// error values; LastError serves foreign callers entering through cgo.
func (b *Binding) LastError() string {
	return b.errs.Get()
}

// ReportError records err as the last error of the calling thread. Callers
// layered on top of the binding use it for failures they detect before
// reaching it. A nil err clears the slot.
func (b *Binding) ReportError(err error) {
	b.errs.Set(err)
}

// LiveHandles returns the number of live handles.
func (b *Binding) LiveHandles() int {
	return b.handles.count()
}

// protect runs fn, converting a panic in the reader library into
// ErrLibraryFault.
func protect(function string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLibraryFault, r)
			logrus.WithFields(logrus.Fields{
				"function": function,
				"panic":    fmt.Sprint(r),
			}).Error("Recovered panic from reader library")
		}
	}()
	return fn()
}

// guard runs fn under protect and reports the outcome through the error
// channel of the calling thread.
func (b *Binding) guard(function string, h Handle, fn func() error) error {
	err := protect(function, fn)
	if err != nil {
		b.errs.Set(err)
		logrus.WithFields(logrus.Fields{
			"function": function,
			"handle":   h.String(),
			"error":    err.Error(),
		}).Debug("Operation failed")
		return err
	}
	b.errs.Clear()
	return nil
}

// resolve returns the entry of a live handle.
func (b *Binding) resolve(h Handle) (*entry, error) {
	e, ok := b.handles.lookup(h)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	return e, nil
}

// resolveOpen returns the entry of a live handle with an open file.
func (b *Binding) resolveOpen(h Handle) (*entry, error) {
	e, err := b.resolve(h)
	if err != nil {
		return nil, err
	}
	if !e.reader.IsFileOpened() {
		return nil, fmt.Errorf("%w: %s", ErrNotOpen, h)
	}
	return e, nil
}
