package repositories

import (
	"context"
	"time"

	"equiptrack/internal/database"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"
	"equiptrack/internal/services"

	"gorm.io/gorm"
)

const (
	ENGINEER_ROSTER_CACHE_KEY    = "engineer-roster"
	ENGINEER_ROSTER_CACHE_EXPIRY = 6 * time.Hour
)

type EngineerRepository interface {
	GetActive(ctx context.Context) ([]*Engineer, error)
	Create(ctx context.Context, engineer *Engineer) error
}

type engineerRepository struct {
	db  database.DB
	log logger.Logger
}

func NewEngineer(db database.DB) EngineerRepository {
	return &engineerRepository{
		db:  db,
		log: logger.New("engineerRepository"),
	}
}

func (r *engineerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// GetActive returns the engineer roster, cached because it changes
// rarely and every record form fetches it.
func (r *engineerRepository) GetActive(ctx context.Context) ([]*Engineer, error) {
	log := r.log.Function("GetActive")

	engineers := []*Engineer{}
	found, err := database.NewCacheBuilder(r.db.Cache.Reference, ENGINEER_ROSTER_CACHE_KEY).
		WithContext(ctx).
		Get(&engineers)
	if err == nil && found {
		return engineers, nil
	}

	if err := r.getDB(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&engineers).Error; err != nil {
		return nil, log.Err("failed to get active engineers", err)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Reference, ENGINEER_ROSTER_CACHE_KEY).
		WithStruct(engineers).
		WithTTL(ENGINEER_ROSTER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache engineer roster", "error", err)
	}

	return engineers, nil
}

func (r *engineerRepository) Create(ctx context.Context, engineer *Engineer) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(engineer).Error; err != nil {
		return log.Err("failed to create engineer", err, "name", engineer.Name)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Reference, ENGINEER_ROSTER_CACHE_KEY).Delete(); err != nil {
		log.Warn("failed to invalidate engineer roster cache", "error", err)
	}

	return nil
}
