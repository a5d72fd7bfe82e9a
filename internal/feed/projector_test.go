package feed

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incidentWith(desc, author string, priority models.Priority) *models.Incident {
	return &models.Incident{
		ID:          uuid.New(),
		AuthorID:    "author-1",
		AuthorName:  author,
		Description: desc,
		Priority:    priority,
		Location:    models.Location{Name: "Main St", Lat: 1, Lng: 2},
		Timestamp:   time.Now(),
		Status:      models.StatusPending,
	}
}

func TestProject_EmptyFilterKeepsOrder(t *testing.T) {
	snapshot := []*models.Incident{
		incidentWith("fire downtown", "Alice", models.PriorityHigh),
		incidentWith("flooded basement", "Bob", models.PriorityLow),
		incidentWith("power line down", "Carol", models.PriorityMedium),
	}

	items := Project(snapshot, Filter{Text: "", Priority: PriorityAll})

	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, snapshot[i].ID, item.ID)
	}
}

func TestProject_PriorityFilterRemovesWithoutReordering(t *testing.T) {
	high1 := incidentWith("first high", "Alice", models.PriorityHigh)
	low := incidentWith("a low one", "Bob", models.PriorityLow)
	high2 := incidentWith("second high", "Carol", models.PriorityHigh)
	snapshot := []*models.Incident{high1, low, high2}

	items := Project(snapshot, Filter{Priority: "High"})

	require.Len(t, items, 2)
	assert.Equal(t, high1.ID, items[0].ID)
	assert.Equal(t, high2.ID, items[1].ID)
}

func TestProject_TextMatchesDescriptionOrAuthor(t *testing.T) {
	byDesc := incidentWith("gas LEAK on 5th", "Alice", models.PriorityHigh)
	byAuthor := incidentWith("unrelated", "Leakey", models.PriorityLow)
	neither := incidentWith("quiet street", "Bob", models.PriorityLow)
	snapshot := []*models.Incident{byDesc, byAuthor, neither}

	items := Project(snapshot, Filter{Text: "leak", Priority: PriorityAll})

	require.Len(t, items, 2)
	assert.Equal(t, byDesc.ID, items[0].ID)
	assert.Equal(t, byAuthor.ID, items[1].ID)
}

func TestProject_DefaultsForMissingFields(t *testing.T) {
	bare := &models.Incident{ID: uuid.New(), Timestamp: time.Now()}

	items := Project([]*models.Incident{bare}, Filter{Priority: PriorityAll})

	require.Len(t, items, 1)
	assert.Equal(t, "No description provided.", items[0].Description)
	assert.Equal(t, "Anonymous", items[0].Author)
	assert.Equal(t, "Unknown Location", items[0].Location)
	assert.Equal(t, models.PriorityNormal, items[0].Priority)
}

func TestProject_NormalFilterMatchesLegacyRecords(t *testing.T) {
	legacy := &models.Incident{ID: uuid.New(), Description: "old record"}
	high := incidentWith("new record", "Alice", models.PriorityHigh)

	items := Project([]*models.Incident{legacy, high}, Filter{Priority: "Normal"})

	require.Len(t, items, 1)
	assert.Equal(t, legacy.ID, items[0].ID)
}

func TestProject_DoesNotMutateSnapshot(t *testing.T) {
	bare := &models.Incident{ID: uuid.New()}
	snapshot := []*models.Incident{bare}

	Project(snapshot, Filter{})

	assert.Empty(t, bare.Description)
	assert.Empty(t, bare.AuthorName)
	assert.Empty(t, string(bare.Priority))
}
