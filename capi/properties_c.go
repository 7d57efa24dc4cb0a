package main

import (
	"fmt"

	"github.com/opd-ai/daffbind"
)

// Property getters return -1 when the handle is invalid or has no open file.

//export DAFF_GetContentType
func DAFF_GetContentType(handle uint64) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		ct, err := b.ContentType(daffbind.Handle(handle))
		return intResult(int(ct), err)
	})
}

//export DAFF_GetQuantization
func DAFF_GetQuantization(handle uint64) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		q, err := b.Quantization(daffbind.Handle(handle))
		return intResult(int(q), err)
	})
}

//export DAFF_GetNumberOfChannels
func DAFF_GetNumberOfChannels(handle uint64) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		return intResult(b.NumberOfChannels(daffbind.Handle(handle)))
	})
}

//export DAFF_GetNumberOfRecords
func DAFF_GetNumberOfRecords(handle uint64) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		return intResult(b.NumberOfRecords(daffbind.Handle(handle)))
	})
}

//export DAFF_GetAlphaPoints
func DAFF_GetAlphaPoints(handle uint64) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		return intResult(b.AlphaPoints(daffbind.Handle(handle)))
	})
}

//export DAFF_GetAlphaResolution
func DAFF_GetAlphaResolution(handle uint64) float32 {
	return withBinding(-1, func(b *daffbind.Binding) float32 {
		return floatResult(b.AlphaResolution(daffbind.Handle(handle)))
	})
}

//export DAFF_GetBetaPoints
func DAFF_GetBetaPoints(handle uint64) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		return intResult(b.BetaPoints(daffbind.Handle(handle)))
	})
}

//export DAFF_GetBetaResolution
func DAFF_GetBetaResolution(handle uint64) float32 {
	return withBinding(-1, func(b *daffbind.Binding) float32 {
		return floatResult(b.BetaResolution(daffbind.Handle(handle)))
	})
}

// DAFF_CoversFullSphere returns 1 or 0, or -1 on failure.
//
//export DAFF_CoversFullSphere
func DAFF_CoversFullSphere(handle uint64) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		full, err := b.CoversFullSphere(daffbind.Handle(handle))
		if err != nil {
			return -1
		}
		return boolInt(full)
	})
}

// DAFF_GetOrientationYPR writes the file orientation in degrees and returns
// 1, or 0 without writing on failure.
//
//export DAFF_GetOrientationYPR
func DAFF_GetOrientationYPR(handle uint64, yaw, pitch, roll *float32) int32 {
	return withBinding(0, func(b *daffbind.Binding) int32 {
		if yaw == nil || pitch == nil || roll == nil {
			b.ReportError(fmt.Errorf("%w: null orientation output", daffbind.ErrBufferTooSmall))
			return 0
		}
		o, err := b.Orientation(daffbind.Handle(handle))
		if err != nil {
			return 0
		}
		*yaw, *pitch, *roll = o.Yaw, o.Pitch, o.Roll
		return 1
	})
}

// DAFF_GetChannelLabel copies the label of a channel into dst and returns
// its length, or -1.
//
//export DAFF_GetChannelLabel
func DAFF_GetChannelLabel(handle uint64, channel int32, dst *byte, capacity int32) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		label, err := b.ChannelLabel(daffbind.Handle(handle), int(channel))
		if err != nil {
			return -1
		}
		return writeString(b, label, dst, capacity)
	})
}

//export DAFF_GetFilename
func DAFF_GetFilename(handle uint64, dst *byte, capacity int32) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		name, err := b.Filename(daffbind.Handle(handle))
		if err != nil {
			return -1
		}
		return writeString(b, name, dst, capacity)
	})
}

// metadataKey reads the key argument of a metadata call.
func metadataKey(b *daffbind.Binding, key *byte) (string, bool) {
	k, err := goString(key)
	if err != nil {
		b.ReportError(fmt.Errorf("%w: key: %w", daffbind.ErrUnknownMetadataKey, err))
		return "", false
	}
	return k, true
}

// DAFF_HasMetadata returns 1 if the key exists, 0 if not, -1 on failure.
//
//export DAFF_HasMetadata
func DAFF_HasMetadata(handle uint64, key *byte) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		k, ok := metadataKey(b, key)
		if !ok {
			return -1
		}
		has, err := b.HasMetadata(daffbind.Handle(handle), k)
		if err != nil {
			return -1
		}
		return boolInt(has)
	})
}

// DAFF_GetMetadataType returns a DAFF_METADATA_TYPE value or -1.
//
//export DAFF_GetMetadataType
func DAFF_GetMetadataType(handle uint64, key *byte) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		k, ok := metadataKey(b, key)
		if !ok {
			return -1
		}
		t, err := b.MetadataType(daffbind.Handle(handle), k)
		return intResult(int(t), err)
	})
}

// DAFF_GetMetadataBool returns 1 or 0, or -1 if the key is absent or not
// convertible.
//
//export DAFF_GetMetadataBool
func DAFF_GetMetadataBool(handle uint64, key *byte) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		k, ok := metadataKey(b, key)
		if !ok {
			return -1
		}
		v, err := b.MetadataBool(daffbind.Handle(handle), k)
		if err != nil {
			return -1
		}
		return boolInt(v)
	})
}

// DAFF_GetMetadataInt writes the value to out and returns 1, or 0 without
// writing.
//
//export DAFF_GetMetadataInt
func DAFF_GetMetadataInt(handle uint64, key *byte, out *int64) int32 {
	return withBinding(0, func(b *daffbind.Binding) int32 {
		k, ok := metadataKey(b, key)
		if !ok || out == nil {
			return 0
		}
		v, err := b.MetadataInt(daffbind.Handle(handle), k)
		if err != nil {
			return 0
		}
		*out = int64(v)
		return 1
	})
}

//export DAFF_GetMetadataFloat
func DAFF_GetMetadataFloat(handle uint64, key *byte, out *float64) int32 {
	return withBinding(0, func(b *daffbind.Binding) int32 {
		k, ok := metadataKey(b, key)
		if !ok || out == nil {
			return 0
		}
		v, err := b.MetadataFloat(daffbind.Handle(handle), k)
		if err != nil {
			return 0
		}
		*out = v
		return 1
	})
}

// DAFF_GetMetadataString copies a string value into dst and returns its
// length, or -1 if the key is absent or dst too small.
//
//export DAFF_GetMetadataString
func DAFF_GetMetadataString(handle uint64, key *byte, dst *byte, capacity int32) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		k, ok := metadataKey(b, key)
		if !ok {
			return -1
		}
		v, err := b.MetadataString(daffbind.Handle(handle), k)
		if err != nil {
			return -1
		}
		return writeString(b, v, dst, capacity)
	})
}
