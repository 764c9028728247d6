package upload

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake png bytes"))

	t.Run("valid image", func(t *testing.T) {
		img, err := ParseDataURI("data:image/png;base64," + payload)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, []byte("fake png bytes"), img.Data)
	})

	invalid := []struct {
		name string
		uri  string
	}{
		{"missing scheme", "image/png;base64," + payload},
		{"missing comma", "data:image/png;base64" + payload},
		{"not base64 encoded", "data:image/png," + payload},
		{"non-image mime", "data:text/html;base64," + payload},
		{"bad payload", "data:image/png;base64,!!not-base64!!"},
		{"empty", ""},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataURI(tt.uri)
			assert.ErrorIs(t, err, ErrBadDataURI)
		})
	}
}
