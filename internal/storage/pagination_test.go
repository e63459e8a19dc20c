package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, PageOffset(1, 5))
	assert.Equal(t, 5, PageOffset(2, 5))
	assert.Equal(t, 90, PageOffset(10, 10))

	// Below-range pages select nothing instead of clamping to page 1.
	assert.Equal(t, 1<<30, PageOffset(0, 5))
	assert.Equal(t, 1<<30, PageOffset(-3, 5))
}

func TestPageTotalPagesRounding(t *testing.T) {
	assert.Equal(t, 0, NewPage([]int{}, 1, 5, 0).TotalPages)
	assert.Equal(t, 1, NewPage([]int{1}, 1, 5, 5).TotalPages)
	assert.Equal(t, 2, NewPage([]int{1}, 1, 5, 6).TotalPages)
	assert.Equal(t, 3, NewPage([]int{1}, 1, 10, 21).TotalPages)
}

func TestPageNavigationFlags(t *testing.T) {
	// 3 pages total.
	mk := func(page int) Page[int] { return NewPage([]int{}, page, 5, 15) }

	first := mk(1)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	middle := mk(2)
	assert.True(t, middle.HasPrev())
	assert.True(t, middle.HasNext())

	last := mk(3)
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
}

func TestPageOutOfRangeDisablesBothDirections(t *testing.T) {
	beyond := NewPage([]int{}, 7, 5, 15)
	assert.False(t, beyond.HasPrev())
	assert.False(t, beyond.HasNext())

	below := NewPage([]int{}, 0, 5, 15)
	assert.False(t, below.HasPrev())
	assert.False(t, below.HasNext())

	negative := NewPage([]int{}, -2, 5, 15)
	assert.False(t, negative.HasPrev())
	assert.False(t, negative.HasNext())
}
