package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/satish-r-singh/pathfinder-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Generator produces a fresh artifact payload through the LLM
// boundary.
type Generator func(ctx context.Context) (json.RawMessage, error)

// ArtifactCache fronts the artifact table with the freshness policy: a
// stored payload younger than maxAge is returned verbatim without
// calling the generator; anything older is regenerated and the row
// overwritten in place. A short-TTL in-process memo avoids re-reading
// the row on every dashboard render.
type ArtifactCache struct {
	db     *gorm.DB
	memo   *gocache.Cache
	maxAge time.Duration
	log    *logrus.Entry
}

// Artifacts is the process-wide cache, set by InitArtifacts.
var Artifacts *ArtifactCache

func InitArtifacts(db *gorm.DB, maxAge time.Duration) {
	Artifacts = NewArtifactCache(db, maxAge)
}

func NewArtifactCache(db *gorm.DB, maxAge time.Duration) *ArtifactCache {
	return &ArtifactCache{
		db:     db,
		memo:   gocache.New(10*time.Minute, 30*time.Minute),
		maxAge: maxAge,
		log:    logrus.WithField("service", "artifacts"),
	}
}

type memoEntry struct {
	payload   json.RawMessage
	createdAt time.Time
}

func artifactKey(userID uuid.UUID, kind, projectID string) string {
	return fmt.Sprintf("%s:%s:%s", userID, kind, projectID)
}

// GetOrGenerate returns the cached artifact for (user, kind, project),
// invoking generate only when no row exists or the stored one has
// gone stale. Generator failures propagate without writing a row.
func (c *ArtifactCache) GetOrGenerate(ctx context.Context, userID uuid.UUID, kind, projectID string, generate Generator) (json.RawMessage, error) {
	key := artifactKey(userID, kind, projectID)

	if cached, found := c.memo.Get(key); found {
		entry := cached.(memoEntry)
		if time.Since(entry.createdAt) < c.maxAge {
			return entry.payload, nil
		}
		c.memo.Delete(key)
	}

	row, exists, err := c.loadRow(userID, kind, projectID)
	if err != nil {
		return nil, err
	}

	if exists && time.Since(row.CreatedAt) < c.maxAge {
		payload := json.RawMessage(row.Payload)
		c.memo.Set(key, memoEntry{payload: payload, createdAt: row.CreatedAt}, gocache.DefaultExpiration)
		return payload, nil
	}

	return c.generateAndStore(ctx, userID, kind, projectID, generate, row, exists)
}

// Regenerate forces a fresh generation regardless of the stored row's
// age. The previous row is only overwritten after the generator
// succeeds; a failed regeneration leaves the old artifact in place, so
// it can never un-complete a phase.
func (c *ArtifactCache) Regenerate(ctx context.Context, userID uuid.UUID, kind, projectID string, generate Generator) (json.RawMessage, error) {
	row, exists, err := c.loadRow(userID, kind, projectID)
	if err != nil {
		return nil, err
	}
	return c.generateAndStore(ctx, userID, kind, projectID, generate, row, exists)
}

func (c *ArtifactCache) loadRow(userID uuid.UUID, kind, projectID string) (models.ResearchArtifact, bool, error) {
	var row models.ResearchArtifact
	err := c.db.Where("user_id = ? AND kind = ? AND project_id = ?", userID, kind, projectID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, false, nil
		}
		return row, false, err
	}
	return row, true, nil
}

func (c *ArtifactCache) generateAndStore(ctx context.Context, userID uuid.UUID, kind, projectID string, generate Generator, row models.ResearchArtifact, exists bool) (json.RawMessage, error) {
	payload, genErr := generate(ctx)
	if genErr != nil {
		// Every stored kind renders the {"type":"text"} shape, so a
		// parse failure with recoverable content degrades instead of
		// failing. Structural consumers (project option batches) never
		// go through this path.
		if errors.Is(genErr, ErrParseFailure) && payload != nil {
			c.log.WithFields(logrus.Fields{
				"user_id": userID,
				"kind":    kind,
			}).Warn("storing text fallback for malformed generation output")
		} else {
			return nil, genErr
		}
	}

	now := time.Now()
	if exists {
		row.Payload = datatypes.JSON(payload)
		row.CreatedAt = now
		if err := c.db.Save(&row).Error; err != nil {
			return nil, err
		}
	} else {
		row = models.ResearchArtifact{
			UserID:    userID,
			Kind:      kind,
			ProjectID: projectID,
			Payload:   datatypes.JSON(payload),
			CreatedAt: now,
		}
		if err := c.db.Create(&row).Error; err != nil {
			return nil, err
		}
	}

	c.memo.Set(artifactKey(userID, kind, projectID), memoEntry{payload: payload, createdAt: now}, gocache.DefaultExpiration)
	return payload, nil
}

// Has reports whether an artifact row exists, regardless of age. Phase
// completion for research-type artifacts is existence-based so that
// regeneration never un-completes a phase.
func (c *ArtifactCache) Has(userID uuid.UUID, kind string) bool {
	var count int64
	c.db.Model(&models.ResearchArtifact{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Count(&count)
	return count > 0
}
