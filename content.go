package daffbind

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/daffbind/interfaces"
)

// view is the part shared by all typed content views. A view holds only
// the handle and the tag it was created for; every call resolves the
// handle again and re-checks the tag, so a view of a destroyed, closed or
// reopened handle fails cleanly.
type view struct {
	b   *Binding
	h   Handle
	tag interfaces.ContentType
}

// Handle returns the handle the view was obtained from.
func (v *view) Handle() Handle {
	return v.h
}

// ContentType returns the content type of the view.
func (v *view) ContentType() interfaces.ContentType {
	return v.tag
}

func contentMismatch(tag interfaces.ContentType, c interfaces.IContent) error {
	logrus.WithFields(logrus.Fields{
		"function":     "contentMismatch",
		"content_type": tag.ShortString(),
		"object":       fmt.Sprintf("%T", c),
	}).Error("Reader library content object does not match its content type")
	return fmt.Errorf("%w: tag %s, object %T", ErrContentMismatch, tag.ShortString(), c)
}

// resolveContent returns the entry and content object of h, checking that
// the open file still holds content of type tag with shape C.
func resolveContent[C interfaces.IContent](b *Binding, h Handle, tag interfaces.ContentType) (*entry, C, error) {
	var zero C
	e, err := b.resolveOpen(h)
	if err != nil {
		return nil, zero, err
	}
	p := e.reader.Properties()
	if p == nil {
		return nil, zero, fmt.Errorf("%w: library returned no properties", ErrNotOpen)
	}
	if got := p.ContentType(); got != tag {
		return nil, zero, fmt.Errorf("%w: handle %s holds %s content, view is %s", ErrContentMismatch, h, got.ShortString(), tag.ShortString())
	}
	raw := e.reader.Content()
	c, ok := raw.(C)
	if !ok {
		return nil, zero, contentMismatch(tag, raw)
	}
	return e, c, nil
}

// dispatch implements the content dispatcher for one content shape: it
// compares the content type tag first and only narrows the content object
// when the tag matches. A tag mismatch is not an error.
func dispatch[C interfaces.IContent](b *Binding, function string, h Handle, tag interfaces.ContentType) (*view, bool) {
	var v *view
	_ = b.guard(function, h, func() error {
		e, err := b.resolveOpen(h)
		if err != nil {
			return err
		}
		p := e.reader.Properties()
		if p == nil || p.ContentType() != tag {
			return nil
		}
		raw := e.reader.Content()
		if _, ok := raw.(C); !ok {
			return contentMismatch(tag, raw)
		}
		v = &view{b: b, h: h, tag: tag}
		return nil
	})
	return v, v != nil
}

// ContentIR returns the impulse response view of h, or false if the open
// file holds another content type.
func (b *Binding) ContentIR(h Handle) (*IRView, bool) {
	v, ok := dispatch[interfaces.IContentIR](b, "ContentIR", h, interfaces.ContentTypeIR)
	if !ok {
		return nil, false
	}
	return &IRView{view: *v}, true
}

// ContentMS returns the magnitude spectrum view of h.
func (b *Binding) ContentMS(h Handle) (*MSView, bool) {
	v, ok := dispatch[interfaces.IContentMS](b, "ContentMS", h, interfaces.ContentTypeMS)
	if !ok {
		return nil, false
	}
	return &MSView{view: *v}, true
}

// ContentPS returns the phase spectrum view of h.
func (b *Binding) ContentPS(h Handle) (*PSView, bool) {
	v, ok := dispatch[interfaces.IContentPS](b, "ContentPS", h, interfaces.ContentTypePS)
	if !ok {
		return nil, false
	}
	return &PSView{view: *v}, true
}

// ContentMPS returns the magnitude-phase spectrum view of h.
func (b *Binding) ContentMPS(h Handle) (*MPSView, bool) {
	v, ok := dispatch[interfaces.IContentMPS](b, "ContentMPS", h, interfaces.ContentTypeMPS)
	if !ok {
		return nil, false
	}
	return &MPSView{view: *v}, true
}

// ContentDFT returns the DFT spectrum view of h.
func (b *Binding) ContentDFT(h Handle) (*DFTView, bool) {
	v, ok := dispatch[interfaces.IContentDFT](b, "ContentDFT", h, interfaces.ContentTypeDFT)
	if !ok {
		return nil, false
	}
	return &DFTView{view: *v}, true
}

// contentParam reads one value from the content object behind a view.
func contentParam[C interfaces.IContent, T any](v *view, function string, get func(C) T) (T, error) {
	var out T
	err := v.b.guard(function, v.h, func() error {
		_, c, err := resolveContent[C](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		out = get(c)
		return nil
	})
	return out, err
}

// IRView is the impulse response content of a handle.
type IRView struct {
	view
}

// FilterLength returns the number of samples per record channel.
func (v *IRView) FilterLength() (int, error) {
	return contentParam(&v.view, "IR.FilterLength", interfaces.IContentIR.FilterLength)
}

// Samplerate returns the sampling rate of the impulse responses in Hz.
func (v *IRView) Samplerate() (float64, error) {
	return contentParam(&v.view, "IR.Samplerate", interfaces.IContentIR.Samplerate)
}

// MSView is the magnitude spectrum content of a handle.
type MSView struct {
	view
}

// NumFrequencies returns the number of magnitudes per record channel.
func (v *MSView) NumFrequencies() (int, error) {
	return contentParam(&v.view, "MS.NumFrequencies", interfaces.IContentMS.NumFrequencies)
}

// Frequencies returns a copy of the support frequencies in Hz.
func (v *MSView) Frequencies() ([]float32, error) {
	return contentParam(&v.view, "MS.Frequencies", interfaces.IContentMS.Frequencies)
}

// PSView is the phase spectrum content of a handle.
type PSView struct {
	view
}

// NumFrequencies returns the number of phases per record channel.
func (v *PSView) NumFrequencies() (int, error) {
	return contentParam(&v.view, "PS.NumFrequencies", interfaces.IContentPS.NumFrequencies)
}

// Frequencies returns a copy of the support frequencies in Hz.
func (v *PSView) Frequencies() ([]float32, error) {
	return contentParam(&v.view, "PS.Frequencies", interfaces.IContentPS.Frequencies)
}

// MPSView is the magnitude-phase spectrum content of a handle.
type MPSView struct {
	view
}

// NumFrequencies returns the number of magnitude/phase pairs per record
// channel. Each output array of Coefficients needs this many values.
func (v *MPSView) NumFrequencies() (int, error) {
	return contentParam(&v.view, "MPS.NumFrequencies", interfaces.IContentMPS.NumFrequencies)
}

// Frequencies returns a copy of the support frequencies in Hz.
func (v *MPSView) Frequencies() ([]float32, error) {
	return contentParam(&v.view, "MPS.Frequencies", interfaces.IContentMPS.Frequencies)
}

// DFTView is the DFT spectrum content of a handle.
type DFTView struct {
	view
}

// NumDFTCoeffs returns the number of complex coefficients stored per record
// channel. Symmetric spectra store TransformSize/2+1 of them.
func (v *DFTView) NumDFTCoeffs() (int, error) {
	return contentParam(&v.view, "DFT.NumDFTCoeffs", interfaces.IContentDFT.NumDFTCoeffs)
}

// TransformSize returns the length of the underlying DFT.
func (v *DFTView) TransformSize() (int, error) {
	return contentParam(&v.view, "DFT.TransformSize", interfaces.IContentDFT.TransformSize)
}

// IsSymmetric reports whether only the non-redundant half is stored.
func (v *DFTView) IsSymmetric() (bool, error) {
	return contentParam(&v.view, "DFT.IsSymmetric", interfaces.IContentDFT.IsSymmetric)
}

// Samplerate returns the sampling rate the spectrum refers to in Hz.
func (v *DFTView) Samplerate() (float64, error) {
	return contentParam(&v.view, "DFT.Samplerate", interfaces.IContentDFT.Samplerate)
}

// FrequencyBandwidth returns the spacing of DFT bins in Hz.
func (v *DFTView) FrequencyBandwidth() (float64, error) {
	return contentParam(&v.view, "DFT.FrequencyBandwidth", interfaces.IContentDFT.FrequencyBandwidth)
}
