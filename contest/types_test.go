package contest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIDCarriesInstant(t *testing.T) {
	at := time.Date(2025, 6, 15, 12, 30, 45, 0, time.UTC)
	id := NewRecordIDAt(at)

	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, uuid.RFC4122, id.Variant())

	entry := JournalEntry{RecordID: id}
	assert.True(t, entry.At().Equal(at))
}

func TestRecordIDsSortByInstant(t *testing.T) {
	early := NewRecordIDAt(testBegin)
	late := NewRecordIDAt(testBegin.Add(time.Millisecond))
	assert.Less(t, early.String(), late.String())
}

func TestRecordIDsAreUnique(t *testing.T) {
	seen := map[uuid.UUID]bool{}
	for i := 0; i < 100; i++ {
		id := NewRecordIDAt(testBegin)
		require.False(t, seen[id])
		seen[id] = true
	}
}
