package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type generatedProject struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Duration    string   `json:"duration"`
	Skills      []string `json:"skills"`
	Reasoning   string   `json:"reasoning"`
}

type generatedProjectBatch struct {
	Projects []generatedProject `json:"projects"`
}

func normalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "intermediate":
		return models.DifficultyIntermediate
	case "advanced":
		return models.DifficultyAdvanced
	default:
		return models.DifficultyBeginner
	}
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// generateProjectBatch asks the model for count recommendations. This
// consumer needs structural JSON, so a parse failure is a generation
// failure rather than a text fallback.
func generateProjectBatch(ctx context.Context, db *gorm.DB, userID uuid.UUID, count int, exclude []string) ([]generatedProject, error) {
	answers := LoadIkigai(db, userID).DecodedAnswers()

	system := "You recommend hands-on portfolio projects. Respond with JSON only, shaped as " +
		`{"projects":[{"id","name","description","difficulty","duration","skills":[],"reasoning"}]}. ` +
		"Difficulty is one of Beginner, Intermediate, Advanced. Ids are short kebab-case slugs."
	user := fmt.Sprintf("Recommend %d portfolio projects for this profile:\n%s", count, answersContext(answers))
	if len(exclude) > 0 {
		user += "Do not repeat these projects: " + strings.Join(exclude, ", ")
	}

	payload, err := LLM.GenerateJSON(ctx, system, user)
	if err != nil {
		if errors.Is(err, ErrParseFailure) {
			return nil, fmt.Errorf("%w: project batch was not valid JSON", ErrGenerationFailed)
		}
		return nil, err
	}

	var batch generatedProjectBatch
	if err := json.Unmarshal(payload, &batch); err != nil || len(batch.Projects) == 0 {
		return nil, fmt.Errorf("%w: project batch missing projects list", ErrGenerationFailed)
	}
	return batch.Projects, nil
}

func insertProjects(db *gorm.DB, userID uuid.UUID, generated []generatedProject, taken map[string]bool) ([]models.ProjectOption, error) {
	var rows []models.ProjectOption
	for _, g := range generated {
		slug := slugify(g.ID)
		if slug == "" {
			slug = slugify(g.Name)
		}
		if slug == "" || taken[slug] {
			continue
		}
		taken[slug] = true

		skills, _ := json.Marshal(g.Skills)
		row := models.ProjectOption{
			UserID:      userID,
			Slug:        slug,
			Name:        g.Name,
			Description: g.Description,
			Difficulty:  normalizeDifficulty(g.Difficulty),
			Duration:    g.Duration,
			Skills:      datatypes.JSON(skills),
			Reasoning:   g.Reasoning,
		}
		if err := db.Create(&row).Error; err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no usable projects in batch", ErrGenerationFailed)
	}
	return rows, nil
}

// GenerateProjects replaces the user's unselected options with a fresh
// batch. Called for the first batch too, when nothing is selected yet.
func GenerateProjects(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]models.ProjectOption, error) {
	return RegenerateUnselected(ctx, db, userID)
}

// RegenerateUnselected deletes and replaces only rows where IsSelected
// is false. Pinned rows keep their ids and data unchanged.
func RegenerateUnselected(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]models.ProjectOption, error) {
	var pinned []models.ProjectOption
	if err := db.Where("user_id = ? AND is_selected = ?", userID, true).Find(&pinned).Error; err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(pinned))
	exclude := make([]string, 0, len(pinned))
	for _, p := range pinned {
		taken[p.Slug] = true
		exclude = append(exclude, p.Name)
	}

	want := 4 - len(pinned)
	if want <= 0 {
		return pinned, nil
	}

	generated, err := generateProjectBatch(ctx, db, userID, want, exclude)
	if err != nil {
		return nil, err
	}
	if len(generated) > want {
		generated = generated[:want]
	}

	// the generation succeeded; only now touch existing rows
	if err := db.Where("user_id = ? AND is_selected = ?", userID, false).
		Delete(&models.ProjectOption{}).Error; err != nil {
		return nil, err
	}

	fresh, err := insertProjects(db, userID, generated, taken)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"pinned":  len(pinned),
		"fresh":   len(fresh),
	}).Info("regenerated project options")

	return append(pinned, fresh...), nil
}

// SelectProject pins the option and records it as the chosen project
// in the exploration state.
func SelectProject(db *gorm.DB, userID uuid.UUID, slug string) (*models.ProjectOption, error) {
	var project models.ProjectOption
	if err := db.Where("user_id = ? AND slug = ?", userID, slug).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !project.IsSelected {
		project.IsSelected = true
		if err := db.Save(&project).Error; err != nil {
			return nil, err
		}
	}

	if _, err := SaveExploration(db, userID, models.UpdateExplorationRequest{
		SelectedProjectID: &project.Slug,
	}); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns the user's current option batch.
func ListProjects(db *gorm.DB, userID uuid.UUID) ([]models.ProjectOption, error) {
	var projects []models.ProjectOption
	err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&projects).Error
	return projects, err
}
