package daffbind

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Create issues a handle bound to a new, closed reader.
func (b *Binding) Create() (Handle, error) {
	h := NullHandle
	err := b.guard("Create", NullHandle, func() error {
		r, err := b.lib.NewReader()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCreateFailure, err)
		}
		if r == nil {
			return fmt.Errorf("%w: library returned no reader", ErrCreateFailure)
		}
		h, err = b.handles.insert(&entry{reader: r})
		return err
	})
	if err != nil {
		return NullHandle, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "Create",
		"handle":   h.String(),
	}).Debug("Created reader handle")
	return h, nil
}

// Destroy invalidates h and releases its reader, closing an open file first.
// Destroying an invalid handle does nothing.
func (b *Binding) Destroy(h Handle) {
	e, ok := b.handles.remove(h)
	if !ok {
		b.errs.Clear()
		return
	}
	_ = b.guard("Destroy", h, func() error {
		if e.reader.IsFileOpened() {
			e.reader.CloseFile()
		}
		return nil
	})

	logrus.WithFields(logrus.Fields{
		"function": "Destroy",
		"handle":   h.String(),
	}).Debug("Destroyed reader handle")
}

// Open opens the file at path on the reader of h. Opening a handle that
// already has an open file fails; Close it first.
func (b *Binding) Open(h Handle, path string) error {
	return b.guard("Open", h, func() error {
		e, err := b.resolve(h)
		if err != nil {
			return err
		}
		if path == "" {
			return fmt.Errorf("%w: empty path", ErrOpenFailure)
		}
		if e.reader.IsFileOpened() {
			return fmt.Errorf("%w: %s: handle already has %s open", ErrOpenFailure, path, e.reader.Filename())
		}
		if err := e.reader.OpenFile(path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrOpenFailure, path, err)
		}

		logrus.WithFields(logrus.Fields{
			"function": "Open",
			"handle":   h.String(),
			"path":     path,
		}).Info("Opened file")
		return nil
	})
}

// Close releases the open file of h. The handle stays valid and can be
// opened again. Closing a handle without an open file does nothing.
func (b *Binding) Close(h Handle) error {
	return b.guard("Close", h, func() error {
		e, err := b.resolve(h)
		if err != nil {
			return err
		}
		if e.reader.IsFileOpened() {
			e.reader.CloseFile()
		}
		return nil
	})
}

// IsValid reports whether h is a live handle.
func (b *Binding) IsValid(h Handle) bool {
	_, ok := b.handles.lookup(h)
	return ok
}

// IsOpen reports whether h is a live handle with an open file.
func (b *Binding) IsOpen(h Handle) bool {
	e, ok := b.handles.lookup(h)
	if !ok {
		return false
	}
	open := false
	_ = protect("IsOpen", func() error {
		open = e.reader.IsFileOpened()
		return nil
	})
	return open
}
