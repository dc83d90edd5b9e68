package categories

import (
	"testing"

	"loop-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	rootID := uuid.New()
	childID := uuid.New()
	grandChildID := uuid.New()
	otherRootID := uuid.New()

	cats := []models.Category{
		{ID: rootID, Name: "Ev"},
		{ID: childID, Name: "Mobilya", ParentID: &rootID},
		{ID: grandChildID, Name: "Sandalye", ParentID: &childID},
		{ID: otherRootID, Name: "Elektronik"},
	}

	roots := BuildTree(cats)
	require.Len(t, roots, 2)

	var ev *CategoryNode
	for _, r := range roots {
		if r.Name == "Ev" {
			ev = r
		}
	}
	require.NotNil(t, ev)
	require.Len(t, ev.Children, 1)
	require.Equal(t, "Mobilya", ev.Children[0].Name)
	require.Len(t, ev.Children[0].Children, 1)
	require.Equal(t, "Sandalye", ev.Children[0].Children[0].Name)
}

// Üst kategorisi listede olmayan düğüm kök sayılır.
func TestBuildTreeOrphan(t *testing.T) {
	missing := uuid.New()
	cats := []models.Category{
		{ID: uuid.New(), Name: "Yetim", ParentID: &missing},
	}

	roots := BuildTree(cats)
	require.Len(t, roots, 1)
	require.Equal(t, "Yetim", roots[0].Name)
}

// MaxDepth'ten derin dallar budanır; özyineleme olmadığı için
// derinlik ne olursa olsun kurulum tamamlanır.
func TestBuildTreeDepthBound(t *testing.T) {
	const chainLen = MaxDepth + 5

	cats := make([]models.Category, 0, chainLen)
	var parent *uuid.UUID
	for i := 0; i < chainLen; i++ {
		id := uuid.New()
		cats = append(cats, models.Category{ID: id, Name: "Seviye", ParentID: parent})
		parentID := id
		parent = &parentID
	}

	roots := BuildTree(cats)
	require.Len(t, roots, 1)

	// Sınır içindeki düğümler yerli yerinde
	depth := 0
	node := roots[0]
	for len(node.Children) > 0 {
		node = node.Children[0]
		depth++
	}
	require.Equal(t, MaxDepth, depth)
}

// Döngüye giren parent zinciri kurulumu kilitlememeli.
func TestBuildTreeCycle(t *testing.T) {
	aID := uuid.New()
	bID := uuid.New()

	cats := []models.Category{
		{ID: aID, Name: "A", ParentID: &bID},
		{ID: bID, Name: "B", ParentID: &aID},
	}

	roots := BuildTree(cats)
	// Döngüdeki düğümler güvenli şekilde atlanır
	require.Empty(t, roots)
}
