package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/skarim/finledger/pkg/domain"
)

func TestMapGormErrorToDomain(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil passes through", in: nil, want: nil},
		{name: "duplicated key", in: gorm.ErrDuplicatedKey, want: domain.ErrDuplicateTransaction},
		{name: "record not found", in: gorm.ErrRecordNotFound, want: domain.ErrNotFound},
		{
			name: "wrapped duplicated key",
			in:   fmt.Errorf("creating: %w", gorm.ErrDuplicatedKey),
			want: domain.ErrDuplicateTransaction,
		},
		{
			name: "unknown error passes through",
			in:   errors.New("connection refused"),
			want: errors.New("connection refused"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapGormErrorToDomain(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.want.Error(), got.Error())
		})
	}
}
