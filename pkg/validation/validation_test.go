package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	ID     int64  `validate:"gt=0"`
	Parent *int64 `validate:"omitempty,gt=0"`
	Status string `validate:"required"`
}

func TestStruct(t *testing.T) {
	negative := int64(-1)
	positive := int64(2)

	tests := []struct {
		name    string
		value   sample
		wantErr bool
	}{
		{name: "valid", value: sample{ID: 1, Status: "confirmed"}},
		{name: "valid with parent", value: sample{ID: 1, Parent: &positive, Status: "confirmed"}},
		{name: "zero id", value: sample{Status: "confirmed"}, wantErr: true},
		{name: "negative parent", value: sample{ID: 1, Parent: &negative, Status: "confirmed"}, wantErr: true},
		{name: "empty status", value: sample{ID: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Same(t, Get(), Get())
}
