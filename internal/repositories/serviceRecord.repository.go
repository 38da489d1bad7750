package repositories

import (
	"context"
	"errors"
	"time"

	"equiptrack/internal/database"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"
	"equiptrack/internal/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SERVICE_RECORD_CACHE_EXPIRY = 1 * time.Hour
)

type ServiceRecordRepository interface {
	GetByID(ctx context.Context, id string) (*ServiceRecord, error)
	ListByCompany(ctx context.Context, category Category, companyID string) ([]*ServiceRecord, error)
	Create(ctx context.Context, record *ServiceRecord) error
	Update(ctx context.Context, record *ServiceRecord) error
	Delete(ctx context.Context, id string) error
}

type serviceRecordRepository struct {
	db  database.DB
	log logger.Logger
}

func NewServiceRecord(db database.DB) ServiceRecordRepository {
	return &serviceRecordRepository{
		db:  db,
		log: logger.New("serviceRecordRepository"),
	}
}

func (r *serviceRecordRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *serviceRecordRepository) GetByID(ctx context.Context, id string) (*ServiceRecord, error) {
	log := r.log.Function("GetByID")

	var record ServiceRecord
	if err := r.getCacheByID(ctx, id, &record); err == nil {
		return &record, nil
	}

	if err := r.getDBByID(ctx, id, &record); err != nil {
		return nil, err
	}

	if err := r.addRecordToCache(ctx, &record); err != nil {
		log.Warn("failed to add record to cache", "recordID", id, "error", err)
	}

	return &record, nil
}

func (r *serviceRecordRepository) ListByCompany(ctx context.Context, category Category, companyID string) ([]*ServiceRecord, error) {
	log := r.log.Function("ListByCompany")

	records := []*ServiceRecord{}
	if err := r.getDB(ctx).
		Where("category = ? AND company_id = ?", category, companyID).
		Order("service_date DESC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to list records", err, "category", category, "companyID", companyID)
	}

	return records, nil
}

func (r *serviceRecordRepository) Create(ctx context.Context, record *ServiceRecord) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(record).Error; err != nil {
		return log.Err("failed to create record", err, "category", record.Category)
	}

	if err := r.addRecordToCache(ctx, record); err != nil {
		log.Warn("failed to add record to cache", "recordID", record.ID, "error", err)
	}

	return nil
}

func (r *serviceRecordRepository) Update(ctx context.Context, record *ServiceRecord) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(record).Error; err != nil {
		return log.Err("failed to update record", err, "recordID", record.ID)
	}

	if err := r.addRecordToCache(ctx, record); err != nil {
		log.Warn("failed to update record in cache", "recordID", record.ID, "error", err)
	}

	return nil
}

// Delete is idempotent: removing an id that does not exist is not an
// error.
func (r *serviceRecordRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	if err := r.getDB(ctx).Delete(&ServiceRecord{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete record", err, "id", id)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Record, id).Delete(); err != nil {
		log.Warn("failed to remove record from cache", "recordID", id, "error", err)
	}

	return nil
}

func (r *serviceRecordRepository) getCacheByID(ctx context.Context, recordID string, record *ServiceRecord) error {
	found, err := database.NewCacheBuilder(r.db.Cache.Record, recordID).
		WithContext(ctx).
		Get(record)
	if err != nil {
		return r.log.Function("getCacheByID").
			Err("failed to get record from cache", err, "recordID", recordID)
	}

	if !found {
		return r.log.Function("getCacheByID").
			Error("record not found in cache", "recordID", recordID)
	}

	return nil
}

func (r *serviceRecordRepository) addRecordToCache(ctx context.Context, record *ServiceRecord) error {
	if err := database.NewCacheBuilder(r.db.Cache.Record, record.ID).
		WithStruct(record).
		WithTTL(SERVICE_RECORD_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addRecordToCache").
			Err("failed to add record to cache", err, "recordID", record.ID)
	}
	return nil
}

func (r *serviceRecordRepository) getDBByID(ctx context.Context, recordID string, record *ServiceRecord) error {
	log := r.log.Function("getDBByID")

	id, err := uuid.Parse(recordID)
	if err != nil {
		return ErrNotFound
	}

	if err := r.getDB(ctx).First(record, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return log.Err("failed to get record by id", err, "id", recordID)
	}

	return nil
}
