package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 10, 47)
	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, 0, p.Offset())
	assert.True(t, p.InRange())

	p = NewPagination(5, 10, 47)
	assert.Equal(t, 40, p.Offset())
	assert.True(t, p.InRange())

	p = NewPagination(6, 10, 47)
	assert.False(t, p.InRange())

	p = NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.InRange())

	p = NewPagination(1, 10, 50)
	assert.Equal(t, 5, p.TotalPages)
}

func TestNewPaginationClamps(t *testing.T) {
	p := NewPagination(0, -3, 20)
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = NewPagination(1, 1000, 20)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestParsePageQuery(t *testing.T) {
	page, limit := ParsePageQuery("3", "25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	page, limit = ParsePageQuery("", "bogus")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = ParsePageQuery("-1", "0")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)
}
