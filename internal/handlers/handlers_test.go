package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(""))
	assert.Equal(t, 1, parsePage("0"))
	assert.Equal(t, 1, parsePage("-3"))
	assert.Equal(t, 1, parsePage("abc"))
	assert.Equal(t, 7, parsePage("7"))
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 10, parseLimit("", 10, 100))
	assert.Equal(t, 10, parseLimit("junk", 10, 100))
	assert.Equal(t, 25, parseLimit("25", 10, 100))
	assert.Equal(t, 100, parseLimit("5000", 10, 100))
	assert.Equal(t, 10, parseLimit("0", 10, 100))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 5, totalPages(41, 10))
}

func TestParseOptionalFloat(t *testing.T) {
	assert.Nil(t, parseOptionalFloat(""))
	assert.Nil(t, parseOptionalFloat("  "))
	assert.Nil(t, parseOptionalFloat("not a number"))

	price := parseOptionalFloat(" 19.99 ")
	require.NotNil(t, price)
	assert.Equal(t, 19.99, *price)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, optionalString(""))
	assert.Nil(t, optionalString("   "))

	value := optionalString(" cat-1 ")
	require.NotNil(t, value)
	assert.Equal(t, "cat-1", *value)
}
