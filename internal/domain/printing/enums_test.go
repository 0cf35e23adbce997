package printing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageSize(t *testing.T) {
	assert.Equal(t, PageSizeA4, ParsePageSize(""))
	assert.Equal(t, PageSizeA4, ParsePageSize("A4"))
	assert.Equal(t, PageSizeLetter, ParsePageSize("Letter"))
	assert.Equal(t, PageSizeLetter, ParsePageSize("LETTER"))
	assert.Equal(t, PageSizeLegal, ParsePageSize("legal"))
	assert.Equal(t, PageSizeA5, ParsePageSize(" a5 "))
	assert.Equal(t, PageSizeA4, ParsePageSize("B5"))
}

func TestPageSizeDimensions(t *testing.T) {
	w, h := PageSizeA4.Dimensions()
	assert.InDelta(t, 595.28, w, 0.01)
	assert.InDelta(t, 841.89, h, 0.01)

	w, h = PageSizeLetter.Dimensions()
	assert.Equal(t, 612.0, w)
	assert.Equal(t, 792.0, h)
}

func TestEntityTypeIsValid(t *testing.T) {
	for _, e := range AllEntityTypes() {
		assert.True(t, e.IsValid(), e)
	}
	assert.False(t, EntityType("receipt").IsValid())
}
