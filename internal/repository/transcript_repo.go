package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/arena-go-api/internal/models"
)

// TranscriptRepository manages the append-only debate transcript.
type TranscriptRepository interface {
	Append(ctx context.Context, entry *models.TranscriptEntry) error
	ListByDebate(ctx context.Context, debateID uint) ([]models.TranscriptEntry, error)
}

type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository constructs a transcript repository implementation.
func NewTranscriptRepository(db *gorm.DB) TranscriptRepository {
	return &transcriptRepository{db: db}
}

func (r *transcriptRepository) Append(ctx context.Context, entry *models.TranscriptEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *transcriptRepository) ListByDebate(ctx context.Context, debateID uint) ([]models.TranscriptEntry, error) {
	var entries []models.TranscriptEntry
	err := r.db.WithContext(ctx).
		Where("debate_id = ?", debateID).
		Order("turn ASC, created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}
