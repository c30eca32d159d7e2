package change

import (
	"time"

	"github.com/google/uuid"

	"github.com/leengari/recordlib/internal/domain/data"
)

// ChangeType represents the type of modification between two snapshots
type ChangeType string

const (
	ChangeTypeAdded   ChangeType = "ADDED"
	ChangeTypeDeleted ChangeType = "DELETED"
	ChangeTypeUpdated ChangeType = "UPDATED"
)

// Change represents a single keyed difference between two snapshots
type Change struct {
	Type   ChangeType
	Key    interface{} // key column value
	Row    *data.Row   // new row for ADDED/UPDATED
	OldRow *data.Row   // old row for DELETED/UPDATED
	Fields []string    // changed field names (UPDATED only)
}

// ChangeSet is the result of diffing two snapshots of the same dataset
type ChangeSet struct {
	ID        string    // unique identifier of this comparison
	KeyColumn string    // column the snapshots were correlated on
	CreatedAt time.Time // when the comparison ran
	Added     []Change
	Deleted   []Change
	Updated   []Change
}

// NewChangeSet creates an empty change set keyed on keyColumn
func NewChangeSet(keyColumn string) *ChangeSet {
	return &ChangeSet{
		ID:        uuid.New().String(),
		KeyColumn: keyColumn,
		CreatedAt: time.Now(),
		Added:     make([]Change, 0),
		Deleted:   make([]Change, 0),
		Updated:   make([]Change, 0),
	}
}

// AddAdded records a row present only in the newer snapshot
func (cs *ChangeSet) AddAdded(key interface{}, row *data.Row) {
	cs.Added = append(cs.Added, Change{Type: ChangeTypeAdded, Key: key, Row: row})
}

// AddDeleted records a row present only in the older snapshot
func (cs *ChangeSet) AddDeleted(key interface{}, row *data.Row) {
	cs.Deleted = append(cs.Deleted, Change{Type: ChangeTypeDeleted, Key: key, OldRow: row})
}

// AddUpdated records a key whose row contents differ between snapshots
func (cs *ChangeSet) AddUpdated(key interface{}, before, after *data.Row, fields []string) {
	cs.Updated = append(cs.Updated, Change{
		Type:   ChangeTypeUpdated,
		Key:    key,
		Row:    after,
		OldRow: before,
		Fields: fields,
	})
}

// Len returns the total number of changes
func (cs *ChangeSet) Len() int {
	return len(cs.Added) + len(cs.Deleted) + len(cs.Updated)
}

// Empty reports whether the snapshots were identical
func (cs *ChangeSet) Empty() bool {
	return cs.Len() == 0
}

// All returns every change, deleted first, then added, then updated
func (cs *ChangeSet) All() []Change {
	all := make([]Change, 0, cs.Len())
	all = append(all, cs.Deleted...)
	all = append(all, cs.Added...)
	all = append(all, cs.Updated...)
	return all
}
