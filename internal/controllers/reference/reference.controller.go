package referenceController

import (
	"context"
	"errors"
	"fmt"

	"equiptrack/internal/auth"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"
	"equiptrack/internal/repositories"
	"equiptrack/internal/services"
)

// ErrValidation marks a 400 on company onboarding.
var ErrValidation = errors.New("validation failed")

// ReferenceController serves the lookup data the record forms need —
// the engineer roster and the customer companies — and onboards new
// companies.
type ReferenceController struct {
	engineerRepo       repositories.EngineerRepository
	companyRepo        repositories.CompanyRepository
	userRepo           repositories.UserRepository
	transactionService *services.TransactionService
	log                logger.Logger
}

func New(
	engineerRepo repositories.EngineerRepository,
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	transactionService *services.TransactionService,
) *ReferenceController {
	return &ReferenceController{
		engineerRepo:       engineerRepo,
		companyRepo:        companyRepo,
		userRepo:           userRepo,
		transactionService: transactionService,
		log:                logger.New("ReferenceController"),
	}
}

func (rc *ReferenceController) Engineers(ctx context.Context) ([]*Engineer, error) {
	engineers, err := rc.engineerRepo.GetActive(ctx)
	if err != nil {
		return nil, rc.log.Function("Engineers").
			Err("failed to get engineer roster", err)
	}

	return engineers, nil
}

func (rc *ReferenceController) Companies(ctx context.Context) ([]*Company, error) {
	companies, err := rc.companyRepo.GetAll(ctx)
	if err != nil {
		return nil, rc.log.Function("Companies").
			Err("failed to get companies", err)
	}

	return companies, nil
}

// CreateCompany onboards a company and, when credentials are supplied,
// its first user account. Both rows land in one transaction so a failed
// user insert does not leave an orphaned company.
func (rc *ReferenceController) CreateCompany(ctx context.Context, request *CreateCompanyRequest) (*Company, error) {
	log := rc.log.Function("CreateCompany")

	if request.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if request.UserLogin != "" && request.UserPassword == "" {
		return nil, fmt.Errorf("%w: userPassword is required when userLogin is set", ErrValidation)
	}

	company := &Company{
		Name:         request.Name,
		ContactName:  request.ContactName,
		ContactEmail: request.ContactEmail,
		Address:      request.Address,
	}

	err := rc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := rc.companyRepo.Create(txCtx, company); err != nil {
			return log.Err("failed to create company", err, "name", request.Name)
		}

		if request.UserLogin == "" {
			return nil
		}

		password, err := auth.HashPassword(request.UserPassword)
		if err != nil {
			return log.Err("failed to hash password", err)
		}

		user := &User{
			Login:     request.UserLogin,
			Password:  password,
			Role:      RoleUser,
			CompanyID: company.ID,
		}
		if err := rc.userRepo.Create(txCtx, user); err != nil {
			return log.Err("failed to create company user", err, "login", request.UserLogin)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return company, nil
}
