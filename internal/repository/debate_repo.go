package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/arena-go-api/internal/models"
)

// DebateRepository manages debate and debater persistence.
type DebateRepository interface {
	Create(ctx context.Context, debate *models.Debate) error
	GetByID(ctx context.Context, id uint) (models.Debate, error)
	AddDebater(ctx context.Context, debater *models.Debater) error
	ListDebaters(ctx context.Context, debateID uint) ([]models.Debater, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type debateRepository struct {
	db *gorm.DB
}

// NewDebateRepository constructs a debate repository implementation.
func NewDebateRepository(db *gorm.DB) DebateRepository {
	return &debateRepository{db: db}
}

func (r *debateRepository) Create(ctx context.Context, debate *models.Debate) error {
	return r.db.WithContext(ctx).Create(debate).Error
}

func (r *debateRepository) GetByID(ctx context.Context, id uint) (models.Debate, error) {
	var debate models.Debate
	err := r.db.WithContext(ctx).
		Preload("Debaters", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&debate, id).Error
	return debate, err
}

func (r *debateRepository) AddDebater(ctx context.Context, debater *models.Debater) error {
	return r.db.WithContext(ctx).Create(debater).Error
}

func (r *debateRepository) ListDebaters(ctx context.Context, debateID uint) ([]models.Debater, error) {
	var debaters []models.Debater
	err := r.db.WithContext(ctx).
		Where("debate_id = ?", debateID).
		Order("position ASC").
		Find(&debaters).Error
	return debaters, err
}

func (r *debateRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Debate{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
