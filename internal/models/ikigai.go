package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IkigaiAnswers is the structured document built up across the ikigai
// discovery steps. All four buckets are always present, possibly empty.
type IkigaiAnswers struct {
	Love       []string `json:"love"`
	GoodAt     []string `json:"goodAt"`
	WorldNeeds []string `json:"worldNeeds"`
	PaidFor    []string `json:"paidFor"`
}

// Normalize replaces nil buckets with empty lists so a partially decoded
// document never round-trips with absent keys.
func (a *IkigaiAnswers) Normalize() {
	if a.Love == nil {
		a.Love = []string{}
	}
	if a.GoodAt == nil {
		a.GoodAt = []string{}
	}
	if a.WorldNeeds == nil {
		a.WorldNeeds = []string{}
	}
	if a.PaidFor == nil {
		a.PaidFor = []string{}
	}
}

// IsEmpty reports whether every bucket is empty.
func (a IkigaiAnswers) IsEmpty() bool {
	return len(a.Love) == 0 && len(a.GoodAt) == 0 && len(a.WorldNeeds) == 0 && len(a.PaidFor) == 0
}

// Canonical returns the stable serialization used for change detection.
// Struct field order is fixed, so identical answers always serialize
// identically.
func (a IkigaiAnswers) Canonical() []byte {
	a.Normalize()
	raw, _ := json.Marshal(a)
	return raw
}

// IkigaiProgress is the per-user persisted state of the ikigai wizard.
type IkigaiProgress struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	Answers     datatypes.JSON `json:"answers" gorm:"type:json"`
	CurrentStep int            `json:"currentStep" gorm:"not null;default:0"`
	IsCompleted bool           `json:"isCompleted" gorm:"default:false"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (p *IkigaiProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DecodedAnswers unpacks the stored document, always returning a fully
// populated four-bucket structure.
func (p *IkigaiProgress) DecodedAnswers() IkigaiAnswers {
	var answers IkigaiAnswers
	if len(p.Answers) > 0 {
		_ = json.Unmarshal(p.Answers, &answers)
	}
	answers.Normalize()
	return answers
}

type SaveIkigaiRequest struct {
	Answers     IkigaiAnswers `json:"answers"`
	CurrentStep *int          `json:"currentStep"`
}
