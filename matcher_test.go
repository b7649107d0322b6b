package trellis

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodMatcher(t *testing.T) {
	m := NewMethodMatcher(http.MethodGet, http.MethodHead)

	assert.NoError(t, m.Match(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.NoError(t, m.Match(httptest.NewRequest(http.MethodHead, "/", nil)))

	err := m.Match(httptest.NewRequest(http.MethodPost, "/", nil))
	require.Error(t, err)

	mismatch, ok := err.(*RouteMismatch)
	require.True(t, ok)
	assert.Equal(t, []string{http.MethodGet, http.MethodHead}, mismatch.Allowed)
}

func TestMethodMatcherNormalizesCase(t *testing.T) {
	m := NewMethodMatcher("get")
	assert.Equal(t, []string{"GET"}, m.Methods())
	assert.NoError(t, m.Match(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestAnyMatcher(t *testing.T) {
	assert.NoError(t, anyMatcher{}.Match(httptest.NewRequest(http.MethodDelete, "/", nil)))
}
