package media

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImage_Extension(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
		wantErr     bool
	}{
		{contentType: "image/jpeg", want: ".jpg"},
		{contentType: "IMAGE/PNG", want: ".png"},
		{contentType: "image/webp; charset=binary", want: ".webp"},
		{contentType: "application/pdf", wantErr: true},
		{contentType: "", wantErr: true},
	}

	for _, tt := range tests {
		ext, err := (&Image{ContentType: tt.contentType}).Extension()
		if tt.wantErr {
			require.ErrorIs(t, err, ErrUnsupportedType, tt.contentType)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, ext)
	}
}
