package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaType_Valid(t *testing.T) {
	tests := []struct {
		mediaType MediaType
		want      bool
	}{
		{MediaMovie, true},
		{MediaEpisode, true},
		{MediaShow, true},
		{MediaSeason, true},
		{"track", false},
		{"", false},
		{"Movie", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mediaType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mediaType.Valid())
		})
	}
}

func TestFields_GetMissingKey(t *testing.T) {
	f := Request{Title: "The Matrix"}.Fields()

	assert.Equal(t, "The Matrix", f.Get(FieldTitle))
	assert.Equal(t, "", f.Get(FieldShowName))
	assert.Equal(t, "", f.Get("does_not_exist"))
}

func TestFields_WithDoesNotMutate(t *testing.T) {
	base := Request{Title: "The Matrix"}.Fields()
	withAudio := base.With(FieldAudio, "Inglês (2.0)")

	assert.Equal(t, "", base.Get(FieldAudio))
	assert.Equal(t, "Inglês (2.0)", withAudio.Get(FieldAudio))
	assert.Equal(t, "The Matrix", withAudio.Get(FieldTitle))
}

func TestFields_ZeroValue(t *testing.T) {
	var f Fields
	assert.Equal(t, "", f.Get(FieldTitle))

	f2 := f.With(FieldTitle, "x")
	assert.Equal(t, "x", f2.Get(FieldTitle))
}

func TestNewFields_Copies(t *testing.T) {
	src := map[string]string{FieldTitle: "a"}
	f := NewFields(src)
	src[FieldTitle] = "b"

	assert.Equal(t, "a", f.Get(FieldTitle))
}
