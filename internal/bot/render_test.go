package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageNavDisabledEndsPointAtNoop(t *testing.T) {
	row := pageNav("products_page", "0", "2", false, true, "prev", "next")
	require.Len(t, row, 2)

	assert.Equal(t, cbNoop, row[0].Unique, "first page: prev is disabled")
	assert.Empty(t, row[0].Data)
	assert.Equal(t, "products_page", row[1].Unique)
	assert.Equal(t, "2", row[1].Data)

	row = pageNav("products_page", "2", "4", true, false, "prev", "next")
	assert.Equal(t, "products_page", row[0].Unique)
	assert.Equal(t, "2", row[0].Data)
	assert.Equal(t, cbNoop, row[1].Unique, "last page: next is disabled")
}

func TestPageNavBothDisabled(t *testing.T) {
	row := pageNav("x", "0", "2", false, false, "prev", "next")
	assert.Equal(t, cbNoop, row[0].Unique)
	assert.Equal(t, cbNoop, row[1].Unique)
}

func TestIsNotModified(t *testing.T) {
	assert.False(t, isNotModified(nil))
	assert.False(t, isNotModified(errors.New("telegram: bot was blocked by the user")))
	assert.True(t, isNotModified(errors.New("telegram: message is not modified (400)")))
}
