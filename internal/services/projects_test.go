package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedProject(t *testing.T, db *gorm.DB, userID uuid.UUID, slug string, selected bool) models.ProjectOption {
	t.Helper()
	row := models.ProjectOption{
		UserID:      userID,
		Slug:        slug,
		Name:        slug,
		Description: "seeded",
		Difficulty:  models.DifficultyIntermediate,
		Duration:    "4 weeks",
		Skills:      datatypes.JSON(`["go"]`),
		Reasoning:   "seeded",
		IsSelected:  selected,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func projectBatchServer(t *testing.T, projects string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(fmt.Sprintf(`{"projects":%s}`, projects)))
	}))
}

func TestRegenerateUnselectedPreservesPinnedRows(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	pinnedA := seedProject(t, db, userID, "pinned-a", true)
	pinnedB := seedProject(t, db, userID, "pinned-b", true)
	seedProject(t, db, userID, "loose-c", false)
	seedProject(t, db, userID, "loose-d", false)

	server := projectBatchServer(t, `[
		{"id":"fresh-one","name":"Fresh One","description":"d","difficulty":"Beginner","duration":"2 weeks","skills":["go"],"reasoning":"r"},
		{"id":"fresh-two","name":"Fresh Two","description":"d","difficulty":"Advanced","duration":"6 weeks","skills":["sql"],"reasoning":"r"}
	]`)
	defer server.Close()
	LLM = newTestLLM(server.URL)

	result, err := RegenerateUnselected(context.Background(), db, userID)
	require.NoError(t, err)
	require.Len(t, result, 4)

	var all []models.ProjectOption
	db.Where("user_id = ?", userID).Order("slug ASC").Find(&all)
	require.Len(t, all, 4)

	bySlug := map[string]models.ProjectOption{}
	for _, p := range all {
		bySlug[p.Slug] = p
	}

	// pinned rows kept their ids and data unchanged
	require.Contains(t, bySlug, "pinned-a")
	require.Contains(t, bySlug, "pinned-b")
	assert.Equal(t, pinnedA.ID, bySlug["pinned-a"].ID)
	assert.Equal(t, pinnedB.ID, bySlug["pinned-b"].ID)
	assert.Equal(t, "seeded", bySlug["pinned-a"].Description)
	assert.True(t, bySlug["pinned-a"].IsSelected)

	// unselected rows were replaced with fresh ids
	assert.NotContains(t, bySlug, "loose-c")
	assert.NotContains(t, bySlug, "loose-d")
	require.Contains(t, bySlug, "fresh-one")
	require.Contains(t, bySlug, "fresh-two")
	assert.False(t, bySlug["fresh-one"].IsSelected)
	assert.Equal(t, models.DifficultyAdvanced, bySlug["fresh-two"].Difficulty)
}

func TestRegenerateUnselectedFailureLeavesRowsAlone(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	seedProject(t, db, userID, "loose-a", false)
	seedProject(t, db, userID, "loose-b", false)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("not json"))
	}))
	defer server.Close()
	LLM = newTestLLM(server.URL)

	_, err := RegenerateUnselected(context.Background(), db, userID)
	require.ErrorIs(t, err, ErrGenerationFailed)

	// nothing was deleted on failure
	var count int64
	db.Model(&models.ProjectOption{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestRegenerateUnselectedAllPinnedSkipsGeneration(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	for i := 0; i < 4; i++ {
		seedProject(t, db, userID, fmt.Sprintf("pinned-%d", i), true)
	}

	// no server: generation must not be attempted
	LLM = nil

	result, err := RegenerateUnselected(context.Background(), db, userID)
	require.NoError(t, err)
	assert.Len(t, result, 4)
}

func TestSelectProjectPinsAndRecordsChoice(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	seedProject(t, db, userID, "chatbot", false)

	project, err := SelectProject(db, userID, "chatbot")
	require.NoError(t, err)
	assert.True(t, project.IsSelected)

	state := LoadExploration(db, userID)
	require.NotNil(t, state.SelectedProjectID)
	assert.Equal(t, "chatbot", *state.SelectedProjectID)
}

func TestSelectProjectUnknownSlug(t *testing.T) {
	db := setupTestDB(t)
	_, err := SelectProject(db, uuid.New(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "ai-study-buddy", slugify("AI Study Buddy"))
	assert.Equal(t, "fresh-one", slugify("fresh-one"))
	assert.Equal(t, "", slugify("!!!"))
}

func TestGeneratedProjectBatchDecoding(t *testing.T) {
	raw := `{"projects":[{"id":"x","name":"X","skills":["a","b"]}]}`
	var batch generatedProjectBatch
	require.NoError(t, json.Unmarshal([]byte(raw), &batch))
	require.Len(t, batch.Projects, 1)
	assert.Equal(t, []string{"a", "b"}, batch.Projects[0].Skills)
}
