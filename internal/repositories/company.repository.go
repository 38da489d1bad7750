package repositories

import (
	"context"
	"errors"

	"equiptrack/internal/database"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"
	"equiptrack/internal/services"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*Company, error)
	GetAll(ctx context.Context) ([]*Company, error)
	Create(ctx context.Context, company *Company) error
}

type companyRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCompany(db database.DB) CompanyRepository {
	return &companyRepository{
		db:  db,
		log: logger.New("companyRepository"),
	}
}

func (r *companyRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*Company, error) {
	log := r.log.Function("GetByID")

	var company Company
	if err := r.getDB(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get company by id", err, "id", id)
	}

	return &company, nil
}

func (r *companyRepository) GetAll(ctx context.Context) ([]*Company, error) {
	log := r.log.Function("GetAll")

	companies := []*Company{}
	if err := r.getDB(ctx).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, log.Err("failed to get all companies", err)
	}

	return companies, nil
}

func (r *companyRepository) Create(ctx context.Context, company *Company) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(company).Error; err != nil {
		return log.Err("failed to create company", err, "name", company.Name)
	}

	return nil
}
