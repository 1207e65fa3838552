package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/arena-go-api/internal/models"
)

// FactCheckRepository manages persisted fact-check records.
type FactCheckRepository interface {
	Create(ctx context.Context, record *models.FactCheck) error
	ListByDebate(ctx context.Context, debateID uint) ([]models.FactCheck, error)
}

type factCheckRepository struct {
	db *gorm.DB
}

// NewFactCheckRepository constructs a fact-check repository implementation.
func NewFactCheckRepository(db *gorm.DB) FactCheckRepository {
	return &factCheckRepository{db: db}
}

func (r *factCheckRepository) Create(ctx context.Context, record *models.FactCheck) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *factCheckRepository) ListByDebate(ctx context.Context, debateID uint) ([]models.FactCheck, error) {
	var records []models.FactCheck
	err := r.db.WithContext(ctx).
		Where("debate_id = ?", debateID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	return records, err
}
