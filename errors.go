package daffbind

import (
	"errors"

	"github.com/opd-ai/daffbind/limits"
)

var (
	// ErrInvalidHandle is returned for a handle that was never issued or has
	// been destroyed.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrNotOpen is returned by accessors of a handle without an open file.
	ErrNotOpen = errors.New("no file open")

	// ErrCreateFailure is returned when the reader library cannot create a reader.
	ErrCreateFailure = errors.New("failed to create reader")

	// ErrOpenFailure is returned when a file cannot be opened.
	ErrOpenFailure = errors.New("failed to open file")

	// ErrContentMismatch is returned when the reader library reports a content
	// type whose content object does not have the matching shape.
	ErrContentMismatch = errors.New("content object does not match content type")

	// ErrBufferTooSmall is returned when an output buffer cannot hold a whole
	// record channel. Nothing is written in that case.
	ErrBufferTooSmall = limits.ErrBufferTooSmall

	// ErrUnknownMetadataKey is returned by typed metadata getters for absent keys.
	ErrUnknownMetadataKey = errors.New("unknown metadata key")

	// ErrHandleLimit is returned by Create when the maximum number of live
	// handles is reached.
	ErrHandleLimit = errors.New("handle limit reached")

	// ErrLibraryFault is returned when the reader library panics.
	ErrLibraryFault = errors.New("reader library fault")

	// ErrRecordAccess is returned when the reader library rejects a record
	// index or channel.
	ErrRecordAccess = errors.New("record access failed")

	// ErrInvalidDirection is returned by nearest neighbour queries given a
	// NaN or infinite angle.
	ErrInvalidDirection = errors.New("direction is not finite")
)
