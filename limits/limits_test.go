package limits

import (
	"errors"
	"testing"

	"github.com/opd-ai/daffbind/interfaces"
)

// TestValuesPerElement verifies paired content types use two values per element
func TestValuesPerElement(t *testing.T) {
	tests := []struct {
		ct   interfaces.ContentType
		want int
	}{
		{interfaces.ContentTypeIR, 1},
		{interfaces.ContentTypeMS, 1},
		{interfaces.ContentTypePS, 1},
		{interfaces.ContentTypeMPS, 2},
		{interfaces.ContentTypeDFT, 2},
	}

	for _, tt := range tests {
		t.Run(tt.ct.ShortString(), func(t *testing.T) {
			if got := ValuesPerElement(tt.ct); got != tt.want {
				t.Errorf("ValuesPerElement(%v) = %d, want %d", tt.ct, got, tt.want)
			}
		})
	}
}

// TestNativeLength tests the element to value conversion and its bounds
func TestNativeLength(t *testing.T) {
	tests := []struct {
		name     string
		ct       interfaces.ContentType
		elements int
		want     int
		wantErr  error
	}{
		{"ir filter", interfaces.ContentTypeIR, 256, 256, nil},
		{"dft four coefficients", interfaces.ContentTypeDFT, 4, 8, nil},
		{"mps empty", interfaces.ContentTypeMPS, 0, 0, nil},
		{"negative", interfaces.ContentTypeMS, -1, 0, ErrRecordTooLarge},
		{"too large", interfaces.ContentTypeIR, MaxRecordValues, 0, ErrRecordTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NativeLength(tt.ct, tt.elements)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NativeLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NativeLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestValidateOutputCapacity tests the capacity contract at and around the boundary
func TestValidateOutputCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		required int
		wantErr  error
	}{
		{"exact", 8, 8, nil},
		{"larger", 9, 8, nil},
		{"one short", 7, 8, ErrBufferTooSmall},
		{"empty record", 0, 0, nil},
		{"negative", -1, 0, ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputCapacity(tt.capacity, tt.required)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateOutputCapacity(%d, %d) error = %v, wantErr %v",
					tt.capacity, tt.required, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSplitCapacity(t *testing.T) {
	if err := ValidateSplitCapacity(4, 4, 4); err != nil {
		t.Errorf("equal arrays rejected: %v", err)
	}
	if err := ValidateSplitCapacity(4, 3, 4); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("short second array accepted: %v", err)
	}
	if err := ValidateSplitCapacity(3, 4, 4); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("short first array accepted: %v", err)
	}
}
