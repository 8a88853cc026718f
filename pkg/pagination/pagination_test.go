package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateClampsParams(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	require.Equal(t, 1, p.Page)
	require.Equal(t, 100, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	require.Equal(t, 3, p.Page)
	require.Equal(t, 20, p.PerPage)
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 1, PerPage: 20}
	require.Equal(t, 0, p.Offset())

	p = &PaginationParams{Page: 4, PerPage: 15}
	require.Equal(t, 45, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 20, 45)
	require.Equal(t, 3, pag.TotalPages)
	require.True(t, pag.HasNext)
	require.True(t, pag.HasPrev)

	pag = NewPagination(1, 20, 10)
	require.Equal(t, 1, pag.TotalPages)
	require.False(t, pag.HasNext)
	require.False(t, pag.HasPrev)
}
