package recordController

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equiptrack/internal/events"
	"equiptrack/internal/lifecycle"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"
	"equiptrack/internal/repositories"
	"equiptrack/internal/services"
	"equiptrack/internal/utils"

	"github.com/google/uuid"
)

var (
	// ErrValidation marks a 400: a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks a 403: the requester may not touch this record.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a 404.
	ErrNotFound = repositories.ErrNotFound
)

// CreateResult is the outcome of a create. Partial reports the
// degrade-not-fail path: the store write failed but the caller still
// gets a record, tagged with ErrorInfo for operator visibility.
type CreateResult struct {
	Record    *RecordResponse
	Partial   bool
	ErrorInfo string
}

type RecordController struct {
	recordRepo  repositories.ServiceRecordRepository
	certService *services.CertificateService
	eventBus    *events.EventBus
	dates       *utils.DateValidator
	now         func() time.Time
	log         logger.Logger
}

func New(
	recordRepo repositories.ServiceRecordRepository,
	certService *services.CertificateService,
	eventBus *events.EventBus,
) *RecordController {
	return &RecordController{
		recordRepo:  recordRepo,
		certService: certService,
		eventBus:    eventBus,
		dates:       utils.NewDateValidator(),
		now:         time.Now,
		log:         logger.New("RecordController"),
	}
}

// List returns a company's records for one category, newest service date
// first, each with its derived status. companyID is mandatory; a missing
// value is a validation error, never an empty list.
func (rc *RecordController) List(ctx context.Context, requester User, category Category, companyID string) ([]RecordResponse, error) {
	log := rc.log.Function("List")

	if companyID == "" {
		return nil, fmt.Errorf("%w: company_id is required", ErrValidation)
	}

	if !requester.IsAdmin() && requester.CompanyID != companyID {
		return nil, ErrForbidden
	}

	records, err := rc.recordRepo.ListByCompany(ctx, category, companyID)
	if err != nil {
		return nil, log.Err("failed to list records", err, "category", category, "companyID", companyID)
	}

	now := rc.now()
	responses := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, rc.toResponse(record, now))
	}

	return responses, nil
}

func (rc *RecordController) Get(ctx context.Context, requester User, id string) (*RecordResponse, error) {
	record, err := rc.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !requester.IsAdmin() && requester.CompanyID != record.CompanyID {
		return nil, ErrForbidden
	}

	response := rc.toResponse(record, rc.now())
	return &response, nil
}

// Create persists a new record. The retest date is derived from the
// service date unless the caller supplies one; the certificate number is
// allocated when absent. A store failure does not fail the request: the
// caller receives a synthetic, unpersisted record tagged with the error.
func (rc *RecordController) Create(ctx context.Context, requester User, category Category, request *RecordRequest) (*CreateResult, error) {
	log := rc.log.Function("Create")

	if request.CompanyID == "" {
		return nil, fmt.Errorf("%w: company_id is required", ErrValidation)
	}
	if request.ServiceDate == "" {
		return nil, fmt.Errorf("%w: service_date is required", ErrValidation)
	}

	if !requester.IsAdmin() && requester.CompanyID != request.CompanyID {
		return nil, ErrForbidden
	}

	now := rc.now()

	serviceDate := now
	if parsed := rc.dates.ValidateAndConvert(request.ServiceDate); parsed.IsValid {
		serviceDate = parsed.ParsedTime
	} else {
		// Unparseable dates must not fail the request: fall back to now,
		// which puts the retest date 364 days out
		log.Warn("unparseable service date, falling back to now", "serviceDate", request.ServiceDate)
	}

	retestDate := lifecycle.RetestDate(serviceDate)
	if parsed := rc.dates.ValidateAndConvert(request.RetestDate); parsed.IsValid {
		retestDate = parsed.ParsedTime
	}

	record := &ServiceRecord{
		Category:          category,
		CompanyID:         request.CompanyID,
		CertificateNumber: rc.certService.Allocate(ctx, request.CertificateNumber),
		ServiceDate:       serviceDate,
		RetestDate:        &retestDate,
		EngineerName:      request.EngineerName,
		Notes:             request.Notes,
	}
	record.SetSlots(request.Equipment)

	if err := rc.recordRepo.Create(ctx, record); err != nil {
		// Degrade-not-fail: hand back a synthetic record so the form stays
		// usable, tagged for operator visibility
		log.Er("store failure during create, returning synthetic record", err,
			"category", category, "companyID", request.CompanyID)

		syntheticID, _ := uuid.NewV7()
		record.ID = syntheticID.String()
		record.CreatedAt = now
		record.UpdatedAt = now

		response := rc.toResponse(record, now)
		response.ErrorInfo = "record not persisted: " + err.Error()

		return &CreateResult{
			Record:    &response,
			Partial:   true,
			ErrorInfo: response.ErrorInfo,
		}, nil
	}

	rc.eventBus.Publish(ctx, events.Event{
		Type:      events.RecordCreated,
		RecordID:  record.ID,
		CompanyID: record.CompanyID,
		Category:  string(record.Category),
	})

	response := rc.toResponse(record, now)
	return &CreateResult{Record: &response}, nil
}

// Update replaces the date, engineer, equipment and notes fields. When
// the service date changes the retest date is recomputed, unless the
// caller sets retest_date_override and supplies its own.
func (rc *RecordController) Update(ctx context.Context, requester User, id string, request *RecordRequest) (*RecordResponse, error) {
	log := rc.log.Function("Update")

	record, err := rc.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !requester.IsAdmin() && requester.CompanyID != record.CompanyID {
		return nil, ErrForbidden
	}

	serviceDateChanged := false
	if parsed := rc.dates.ValidateAndConvert(request.ServiceDate); parsed.IsValid {
		if !parsed.ParsedTime.Equal(record.ServiceDate) {
			serviceDateChanged = true
		}
		record.ServiceDate = parsed.ParsedTime
	} else if request.ServiceDate != "" {
		log.Warn("unparseable service date on update, keeping stored value",
			"recordID", id, "serviceDate", request.ServiceDate)
	}

	override := rc.dates.ValidateAndConvert(request.RetestDate)
	switch {
	case request.RetestOverride && override.IsValid:
		record.RetestDate = &override.ParsedTime
	case serviceDateChanged:
		retest := lifecycle.RetestDate(record.ServiceDate)
		record.RetestDate = &retest
	}

	record.EngineerName = request.EngineerName
	record.Notes = request.Notes
	record.SetSlots(request.Equipment)

	if err := rc.recordRepo.Update(ctx, record); err != nil {
		return nil, log.Err("failed to update record", err, "recordID", id)
	}

	rc.eventBus.Publish(ctx, events.Event{
		Type:      events.RecordUpdated,
		RecordID:  record.ID,
		CompanyID: record.CompanyID,
		Category:  string(record.Category),
	})

	response := rc.toResponse(record, rc.now())
	return &response, nil
}

// Delete removes a record. Deleting an id that does not exist succeeds:
// the caller cannot tell a repeat delete from the first.
func (rc *RecordController) Delete(ctx context.Context, requester User, id string) error {
	record, err := rc.recordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if !requester.IsAdmin() && requester.CompanyID != record.CompanyID {
		return ErrForbidden
	}

	if err := rc.recordRepo.Delete(ctx, id); err != nil {
		return err
	}

	rc.eventBus.Publish(ctx, events.Event{
		Type:      events.RecordDeleted,
		RecordID:  record.ID,
		CompanyID: record.CompanyID,
		Category:  string(record.Category),
	})

	return nil
}

// ExportCSV renders a company's records for download.
func (rc *RecordController) ExportCSV(ctx context.Context, requester User, category Category, companyID string) ([]byte, error) {
	log := rc.log.Function("ExportCSV")

	if companyID == "" {
		return nil, fmt.Errorf("%w: company_id is required", ErrValidation)
	}

	if !requester.IsAdmin() && requester.CompanyID != companyID {
		return nil, ErrForbidden
	}

	records, err := rc.recordRepo.ListByCompany(ctx, category, companyID)
	if err != nil {
		return nil, log.Err("failed to list records for export", err, "category", category)
	}

	return utils.RecordsCSV(records, rc.now())
}

func (rc *RecordController) toResponse(record *ServiceRecord, now time.Time) RecordResponse {
	return RecordResponse{
		ServiceRecord: *record,
		Status:        string(lifecycle.Classify(record.RetestDate, now)),
	}
}
