package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(45, 2, 20)
	require.Equal(t, int64(45), p.TotalRecords)
	require.Equal(t, 3, p.TotalPages)
	require.NotNil(t, p.NextPage)
	require.Equal(t, 3, *p.NextPage)
	require.NotNil(t, p.PreviousPage)
	require.Equal(t, 1, *p.PreviousPage)
}

func TestBuildPaginationFirstAndLastPage(t *testing.T) {
	first := BuildPagination(45, 1, 20)
	require.Nil(t, first.PreviousPage)
	require.NotNil(t, first.NextPage)

	last := BuildPagination(45, 3, 20)
	require.Nil(t, last.NextPage)
	require.NotNil(t, last.PreviousPage)
	require.Equal(t, 2, *last.PreviousPage)
}

func TestBuildPaginationEmpty(t *testing.T) {
	p := BuildPagination(0, 1, 20)
	require.Equal(t, 0, p.TotalPages)
	require.Nil(t, p.NextPage)
	require.Nil(t, p.PreviousPage)
}
