package trellis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAddress(t *testing.T) {
	t.Setenv("PORT", "")
	assert.Equal(t, ":7771", resolveAddress(nil))
	assert.Equal(t, ":8080", resolveAddress([]string{":8080"}))

	t.Setenv("PORT", "9000")
	assert.Equal(t, ":9000", resolveAddress(nil))

	assert.Panics(t, func() {
		resolveAddress([]string{":1", ":2"})
	})
}
