package feed

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func incidentAt(ts time.Time, seq int64) *models.Incident {
	return &models.Incident{
		ID:        uuid.New(),
		Seq:       seq,
		Timestamp: ts,
	}
}

// receive drains the channel until the latest available snapshot.
func receive(t *testing.T, ch <-chan []*models.Incident) []*models.Incident {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestHub_SubscribeDeliversCurrentSnapshot(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	base := time.UnixMilli(100)
	hub.Reset([]*models.Incident{incidentAt(base, 1)})

	_, ch := hub.Subscribe()
	snap := receive(t, ch)
	require.Len(t, snap, 1)
}

func TestHub_InsertOrdersByTimestampDesc(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	older := incidentAt(time.UnixMilli(100), 1)
	newer := incidentAt(time.UnixMilli(200), 2)

	_, ch := hub.Subscribe()
	receive(t, ch) // initial empty snapshot

	hub.Insert(older)
	receive(t, ch)
	hub.Insert(newer)

	snap := receive(t, ch)
	require.Len(t, snap, 2)
	assert.Equal(t, newer.ID, snap[0].ID)
	assert.Equal(t, older.ID, snap[1].ID)
}

func TestHub_TimestampTieBrokenBySeq(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ts := time.UnixMilli(100)
	first := incidentAt(ts, 1)
	second := incidentAt(ts, 2)

	hub.Insert(first)
	hub.Insert(second)

	snap := hub.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, second.ID, snap[0].ID)
	assert.Equal(t, first.ID, snap[1].ID)
}

func TestHub_AllSubscribersSeeIdenticalOrder(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	idA, chA := hub.Subscribe()
	idB, chB := hub.Subscribe()
	defer hub.Unsubscribe(idA)
	defer hub.Unsubscribe(idB)
	receive(t, chA)
	receive(t, chB)

	hub.Insert(incidentAt(time.UnixMilli(300), 3))
	snapA := receive(t, chA)
	snapB := receive(t, chB)

	require.Equal(t, len(snapA), len(snapB))
	for i := range snapA {
		assert.Equal(t, snapA[i].ID, snapB[i].ID)
	}
}

func TestHub_NothingVisibleBeforeInsert(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_, ch := hub.Subscribe()
	snap := receive(t, ch)
	assert.Empty(t, snap)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected snapshot delivered: %v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_DuplicateEventIgnored(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	incident := incidentAt(time.UnixMilli(100), 1)
	hub.Insert(incident)
	hub.Insert(incident)

	assert.Len(t, hub.Snapshot(), 1)
}

func TestHub_UnsubscribeIsIndependent(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	idA, chA := hub.Subscribe()
	idB, chB := hub.Subscribe()
	defer hub.Unsubscribe(idB)
	receive(t, chA)
	receive(t, chB)

	hub.Unsubscribe(idA)

	hub.Insert(incidentAt(time.UnixMilli(100), 1))
	snapB := receive(t, chB)
	assert.Len(t, snapB, 1)

	_, open := <-chA
	assert.False(t, open)
}

func TestHub_SlowSubscriberGetsLatestSnapshot(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	id, ch := hub.Subscribe()
	defer hub.Unsubscribe(id)
	// Do not drain: the buffered initial snapshot goes stale while three
	// inserts land.
	hub.Insert(incidentAt(time.UnixMilli(100), 1))
	hub.Insert(incidentAt(time.UnixMilli(200), 2))
	hub.Insert(incidentAt(time.UnixMilli(300), 3))

	snap := receive(t, ch)
	assert.Len(t, snap, 3)
}
