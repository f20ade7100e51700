package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tripweaver/internal/models/db_models"
)

type ItineraryRepository interface {
	Insert(ctx context.Context, itinerary *db_models.Itinerary) error
	FindById(ctx context.Context, id string) (*db_models.Itinerary, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]db_models.Itinerary, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{
		db: db,
	}
}

func (r *itineraryRepository) Insert(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) FindById(ctx context.Context, id string) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).First(&itinerary, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &itinerary, nil
}

func (r *itineraryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]db_models.Itinerary, error) {
	if limit <= 0 {
		limit = 20
	}

	var itineraries []db_models.Itinerary
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&itineraries).Error

	if err != nil {
		return nil, err
	}

	return itineraries, nil
}
