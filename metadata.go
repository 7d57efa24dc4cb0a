package daffbind

import (
	"fmt"

	"github.com/opd-ai/daffbind/interfaces"
)

// MetadataEntry is one key of the metadata table with its declared type.
type MetadataEntry struct {
	Key  string
	Type interfaces.MetadataType
}

// withMetadata runs fn on the metadata table of the open file of h.
func (b *Binding) withMetadata(function string, h Handle, fn func(interfaces.IMetadata) error) error {
	return b.guard(function, h, func() error {
		e, err := b.resolveOpen(h)
		if err != nil {
			return err
		}
		md := e.reader.Metadata()
		if md == nil {
			return fmt.Errorf("%w: library returned no metadata", ErrNotOpen)
		}
		return fn(md)
	})
}

// typedMetadata checks that key exists before delegating the typed read.
// Type coercion is left to the reader library.
func typedMetadata[T any](b *Binding, function string, h Handle, key string, get func(interfaces.IMetadata, string) (T, error)) (T, error) {
	var v T
	err := b.withMetadata(function, h, func(md interfaces.IMetadata) error {
		if !md.HasKey(key) {
			return fmt.Errorf("%w: %q", ErrUnknownMetadataKey, key)
		}
		got, err := get(md, key)
		if err != nil {
			return fmt.Errorf("metadata %q: %w", key, err)
		}
		v = got
		return nil
	})
	return v, err
}

// HasMetadata reports whether the open file of h has a metadata key.
// Keys are matched case-insensitively.
func (b *Binding) HasMetadata(h Handle, key string) (bool, error) {
	var has bool
	err := b.withMetadata("HasMetadata", h, func(md interfaces.IMetadata) error {
		has = md.HasKey(key)
		return nil
	})
	return has, err
}

// MetadataKeys returns all keys with their declared types, in file order.
func (b *Binding) MetadataKeys(h Handle) ([]MetadataEntry, error) {
	var out []MetadataEntry
	err := b.withMetadata("MetadataKeys", h, func(md interfaces.IMetadata) error {
		keys := md.Keys()
		out = make([]MetadataEntry, 0, len(keys))
		for _, k := range keys {
			t, ok := md.KeyType(k)
			if !ok {
				return fmt.Errorf("%w: listed key %q has no type", ErrUnknownMetadataKey, k)
			}
			out = append(out, MetadataEntry{Key: k, Type: t})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MetadataType returns the declared type of key.
func (b *Binding) MetadataType(h Handle, key string) (interfaces.MetadataType, error) {
	var t interfaces.MetadataType
	err := b.withMetadata("MetadataType", h, func(md interfaces.IMetadata) error {
		var ok bool
		if t, ok = md.KeyType(key); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMetadataKey, key)
		}
		return nil
	})
	return t, err
}

func (b *Binding) MetadataBool(h Handle, key string) (bool, error) {
	return typedMetadata(b, "MetadataBool", h, key, interfaces.IMetadata.Bool)
}

func (b *Binding) MetadataInt(h Handle, key string) (int, error) {
	return typedMetadata(b, "MetadataInt", h, key, interfaces.IMetadata.Int)
}

func (b *Binding) MetadataFloat(h Handle, key string) (float64, error) {
	return typedMetadata(b, "MetadataFloat", h, key, interfaces.IMetadata.Float)
}

func (b *Binding) MetadataString(h Handle, key string) (string, error) {
	return typedMetadata(b, "MetadataString", h, key, interfaces.IMetadata.String)
}
