package change

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/recordlib/internal/domain/data"
)

func TestNewChangeSet(t *testing.T) {
	cs := NewChangeSet("id")

	_, err := uuid.Parse(cs.ID)
	require.NoError(t, err)
	assert.Equal(t, "id", cs.KeyColumn)
	assert.False(t, cs.CreatedAt.IsZero())
	assert.True(t, cs.Empty())
}

func TestChangeSet_AllOrder(t *testing.T) {
	cs := NewChangeSet("id")
	cs.AddAdded("3", data.RowOf("id", "3"))
	cs.AddUpdated("1", data.RowOf("id", "1", "v", "a"), data.RowOf("id", "1", "v", "b"), []string{"v"})
	cs.AddDeleted("2", data.RowOf("id", "2"))

	all := cs.All()
	require.Len(t, all, 3)
	assert.Equal(t, ChangeTypeDeleted, all[0].Type)
	assert.Equal(t, ChangeTypeAdded, all[1].Type)
	assert.Equal(t, ChangeTypeUpdated, all[2].Type)
	assert.Equal(t, []string{"v"}, all[2].Fields)
	assert.Equal(t, 3, cs.Len())
	assert.False(t, cs.Empty())
}

func TestChangeSet_UniqueIDs(t *testing.T) {
	a := NewChangeSet("id")
	b := NewChangeSet("id")
	assert.NotEqual(t, a.ID, b.ID)
}
