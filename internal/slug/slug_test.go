package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := map[string]string{
		"Leeds":                   "leeds",
		"University of Leeds":     "university-of-leeds",
		"Kings Cross, St Pancras": "kings-cross-st-pancras",
		"  Hyde Park -- 3 Bed  ":  "hyde-park-3-bed",
		"Café Étoile":             "cafe-etoile",
		"King's College London":   "king-s-college-london",
		"":                        "",
		"!!!":                     "",
	}

	for input, want := range tests {
		got := Make(input)
		assert.Equal(t, want, got, input)
		if want != "" {
			assert.True(t, Valid(got), got)
		}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("leeds"))
	assert.True(t, Valid("room-2-hyde-park"))
	assert.False(t, Valid("Leeds"))
	assert.False(t, Valid("-leeds"))
	assert.False(t, Valid("leeds-"))
	assert.False(t, Valid("leeds--park"))
	assert.False(t, Valid(""))
}
