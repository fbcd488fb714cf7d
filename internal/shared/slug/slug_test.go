package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	cases := map[string]string{
		"Summer Tee":         "summer-tee",
		"  Men's  Jeans!! ":  "men-s-jeans",
		"":                   "image",
		"***":                "image",
		"Kurta_Set (2 pcs)":  "kurta-set-2-pcs",
	}
	for in, want := range cases {
		assert.Equal(t, want, FromName(in, "image"), in)
	}
}

func TestFromNameTruncates(t *testing.T) {
	got := FromName(strings.Repeat("ab ", 40), "x")
	assert.LessOrEqual(t, len(got), maxLen)
	assert.False(t, strings.HasSuffix(got, "-"))
}
