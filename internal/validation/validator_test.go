package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-client/internal/domain"
	apperr "github.com/shelfmarkapp/shelfmark-client/internal/errors"
)

func TestValidator_ReviewDraft(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		draft     domain.ReviewDraft
		wantField string
	}{
		{"valid", domain.ReviewDraft{Rating: 4, Text: "A classic."}, ""},
		{"zero rating", domain.ReviewDraft{Rating: 0, Text: "A classic."}, "rating"},
		{"rating too high", domain.ReviewDraft{Rating: 6, Text: "A classic."}, "rating"},
		{"empty text", domain.ReviewDraft{Rating: 3, Text: ""}, "reviewText"},
		{"blank text", domain.ReviewDraft{Rating: 3, Text: "   "}, "reviewText"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.draft)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.ErrValidation))

			var appErr *apperr.Error
			require.True(t, apperr.As(err, &appErr))
			details, ok := appErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}
