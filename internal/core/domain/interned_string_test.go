package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/brew/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	is1 := domain.NewInternedString("artifact:css")
	is2 := domain.NewInternedString("artifact:css")

	// Identical strings share one handle.
	assert.Equal(t, is1.Value(), is2.Value())
	assert.Equal(t, is1, is2)
	assert.Equal(t, "artifact:css", is1.String())
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	assert.Empty(t, zero.String())
}

func TestInternedString_Compare(t *testing.T) {
	a := domain.NewInternedString("bundle")
	b := domain.NewInternedString("style")

	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(domain.NewInternedString("bundle")))
}
