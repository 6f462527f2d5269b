package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	assert.Equal(t, 3, PageCount(12, 5))
	assert.Equal(t, 1, PageCount(5, 5))
	assert.Equal(t, 2, PageCount(6, 5))
	assert.Equal(t, 1, PageCount(1, 5))
	assert.Equal(t, 0, PageCount(0, 5))
	assert.Equal(t, 0, PageCount(10, 0))
}

func TestIsValidPage(t *testing.T) {
	// 12 items, 5 per page: pages 1..3 are valid
	assert.True(t, IsValidPage(1, 12, 5))
	assert.True(t, IsValidPage(2, 12, 5))
	assert.True(t, IsValidPage(3, 12, 5))
	assert.False(t, IsValidPage(4, 12, 5))
	assert.False(t, IsValidPage(0, 12, 5))
	assert.False(t, IsValidPage(-1, 12, 5))

	// No items: no page is valid, including page 1
	assert.False(t, IsValidPage(1, 0, 5))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 5))
	assert.Equal(t, 5, Offset(2, 5))
	assert.Equal(t, 10, Offset(3, 5))
	assert.Equal(t, 0, Offset(0, 5))
}
