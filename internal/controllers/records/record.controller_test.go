package recordController

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"equiptrack/config"
	"equiptrack/internal/database"
	"equiptrack/internal/events"
	"equiptrack/internal/lifecycle"
	. "equiptrack/internal/models"
	"equiptrack/internal/repositories"
	"equiptrack/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminUser   = User{BaseUUIDModel: BaseUUIDModel{ID: "admin-1"}, Role: RoleAdmin}
	companyUser = User{
		BaseUUIDModel: BaseUUIDModel{ID: "user-1"},
		Role:          RoleUser,
		CompanyID:     "company-1",
	}
)

func newTestController(t *testing.T) (*RecordController, repositories.ServiceRecordRepository) {
	db, err := database.New(config.Config{
		DatabaseDriver: "sqlite",
		DatabaseDbPath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate("", &ServiceRecord{}))
	require.NoError(t, db.EnsureSequence(context.Background(), "certificate_numbers", 10000))
	t.Cleanup(func() { _ = db.Close() })

	repo := repositories.NewServiceRecord(db)
	certService := services.NewCertificateService(&db, "BWS-")
	eventBus := events.New(nil, config.Config{})
	t.Cleanup(func() { _ = eventBus.Close() })

	return New(repo, certService, eventBus), repo
}

func TestCreate_DerivesRetestAndCertificate(t *testing.T) {
	controller, _ := newTestController(t)

	result, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:    "company-1",
		ServiceDate:  "2024-01-01",
		EngineerName: "Dave Thompson",
		Equipment:    []EquipmentSlot{{Name: "MIG Welder", Serial: "MW-1"}},
	})
	require.NoError(t, err)
	require.False(t, result.Partial)

	record := result.Record
	assert.Equal(t, "BWS-10001", record.CertificateNumber)
	require.NotNil(t, record.RetestDate)
	assert.WithinDuration(t, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), *record.RetestDate, 0,
		"364 days after 2024-01-01 is 2024-12-30")
	assert.Equal(t, "MIG Welder", record.Equipment1Name)
	assert.Equal(t, "", record.Equipment5Name, "unused slots are empty strings")
}

func TestCreate_Validation(t *testing.T) {
	controller, _ := newTestController(t)

	_, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		ServiceDate: "2024-01-01",
	})
	assert.True(t, errors.Is(err, ErrValidation), "missing company_id")

	_, err = controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID: "company-1",
	})
	assert.True(t, errors.Is(err, ErrValidation), "missing service_date")
}

func TestCreate_Forbidden(t *testing.T) {
	controller, _ := newTestController(t)

	_, err := controller.Create(context.Background(), companyUser, CategoryService, &RecordRequest{
		CompanyID:   "company-2",
		ServiceDate: "2024-01-01",
	})
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestCreate_PreferredCertificateNumber(t *testing.T) {
	controller, _ := newTestController(t)

	result, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:         "company-1",
		ServiceDate:       "2024-01-01",
		CertificateNumber: "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "BWS-1234", result.Record.CertificateNumber)

	result, err = controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:         "company-1",
		ServiceDate:       "2024-01-01",
		CertificateNumber: "BWS-5678",
	})
	require.NoError(t, err)
	assert.Equal(t, "BWS-5678", result.Record.CertificateNumber, "no double prefix")
}

func TestCreate_UnparseableServiceDateFallsBackToNow(t *testing.T) {
	controller, _ := newTestController(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	controller.now = func() time.Time { return now }

	result, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:   "company-1",
		ServiceDate: "not a date",
	})
	require.NoError(t, err)

	record := result.Record
	assert.Equal(t, now, record.ServiceDate)
	require.NotNil(t, record.RetestDate)
	assert.Equal(t, lifecycle.RetestDate(now), *record.RetestDate)
	assert.Equal(t, string(lifecycle.StatusValid), record.Status)
}

func TestCreate_RecordCreatedTodayIsValid(t *testing.T) {
	controller, _ := newTestController(t)

	result, err := controller.Create(context.Background(), companyUser, CategoryService, &RecordRequest{
		CompanyID:   "company-1",
		ServiceDate: time.Now().UTC().Format("2006-01-02"),
	})
	require.NoError(t, err)

	records, err := controller.List(context.Background(), companyUser, CategoryService, "company-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.Record.ID, records[0].ID)
	assert.Equal(t, string(lifecycle.StatusValid), records[0].Status,
		"retest is 364 days out, well past the due-soon window")
}

type failingRecordRepo struct {
	repositories.ServiceRecordRepository
}

func (f *failingRecordRepo) Create(ctx context.Context, record *ServiceRecord) error {
	return errors.New("relation service_records does not exist")
}

func TestCreate_DegradesOnStoreFailure(t *testing.T) {
	controller, _ := newTestController(t)
	controller.recordRepo = &failingRecordRepo{}

	result, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:   "company-1",
		ServiceDate: "2024-01-01",
	})
	require.NoError(t, err, "store failure must not fail the create")

	assert.True(t, result.Partial)
	assert.Contains(t, result.ErrorInfo, "record not persisted")
	require.NotNil(t, result.Record)
	assert.NotEmpty(t, result.Record.ID, "synthetic record still carries an id")
	assert.NotEmpty(t, result.Record.CertificateNumber)
	assert.Equal(t, result.ErrorInfo, result.Record.ErrorInfo)
}

func TestList_RequiresCompanyID(t *testing.T) {
	controller, _ := newTestController(t)

	_, err := controller.List(context.Background(), adminUser, CategoryService, "")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestList_ForbiddenForOtherCompany(t *testing.T) {
	controller, _ := newTestController(t)

	_, err := controller.List(context.Background(), companyUser, CategoryService, "company-2")
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestGet_NotFound(t *testing.T) {
	controller, _ := newTestController(t)

	_, err := controller.Get(context.Background(), adminUser, "018fb9a0-0000-7000-8000-000000000000")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGet_Forbidden(t *testing.T) {
	controller, _ := newTestController(t)

	result, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:   "company-2",
		ServiceDate: "2024-01-01",
	})
	require.NoError(t, err)

	_, err = controller.Get(context.Background(), companyUser, result.Record.ID)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestUpdate_RecomputesRetestWhenServiceDateChanges(t *testing.T) {
	controller, _ := newTestController(t)

	created, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:   "company-1",
		ServiceDate: "2024-01-01",
	})
	require.NoError(t, err)

	updated, err := controller.Update(context.Background(), adminUser, created.Record.ID, &RecordRequest{
		ServiceDate: "2024-03-01",
	})
	require.NoError(t, err)

	require.NotNil(t, updated.RetestDate)
	expected := lifecycle.RetestDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.WithinDuration(t, expected, *updated.RetestDate, 0,
		"retest derivation is symmetric between create and update")
}

func TestUpdate_OverrideKeepsSuppliedRetest(t *testing.T) {
	controller, _ := newTestController(t)

	created, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:   "company-1",
		ServiceDate: "2024-01-01",
	})
	require.NoError(t, err)

	updated, err := controller.Update(context.Background(), adminUser, created.Record.ID, &RecordRequest{
		ServiceDate:    "2024-03-01",
		RetestDate:     "2024-09-01",
		RetestOverride: true,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.RetestDate)
	assert.WithinDuration(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), *updated.RetestDate, 0)
}

func TestUpdate_UnchangedServiceDateKeepsRetest(t *testing.T) {
	controller, _ := newTestController(t)

	created, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:   "company-1",
		ServiceDate: "2024-01-01",
		RetestDate:  "2024-11-15",
	})
	require.NoError(t, err)

	updated, err := controller.Update(context.Background(), adminUser, created.Record.ID, &RecordRequest{
		ServiceDate: "2024-01-01",
		Notes:       "no equipment changes",
	})
	require.NoError(t, err)

	require.NotNil(t, updated.RetestDate)
	assert.WithinDuration(t, time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC), *updated.RetestDate, 0,
		"an explicit retest date survives updates that do not move the service date")
	assert.Equal(t, "no equipment changes", updated.Notes)
}

func TestDelete_Idempotent(t *testing.T) {
	controller, _ := newTestController(t)

	created, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:   "company-1",
		ServiceDate: "2024-01-01",
	})
	require.NoError(t, err)

	assert.NoError(t, controller.Delete(context.Background(), adminUser, created.Record.ID))
	assert.NoError(t, controller.Delete(context.Background(), adminUser, created.Record.ID),
		"repeat delete succeeds")
	assert.NoError(t, controller.Delete(context.Background(), adminUser, "never-existed"))
}

func TestDelete_Forbidden(t *testing.T) {
	controller, _ := newTestController(t)

	created, err := controller.Create(context.Background(), adminUser, CategoryService, &RecordRequest{
		CompanyID:   "company-2",
		ServiceDate: "2024-01-01",
	})
	require.NoError(t, err)

	err = controller.Delete(context.Background(), companyUser, created.Record.ID)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestCreate_PublishesEvent(t *testing.T) {
	controller, _ := newTestController(t)

	eventCh, unsubscribe := controller.eventBus.Subscribe()
	defer unsubscribe()

	result, err := controller.Create(context.Background(), adminUser, CategorySpotWelder, &RecordRequest{
		CompanyID:   "company-1",
		ServiceDate: "2024-01-01",
	})
	require.NoError(t, err)

	select {
	case event := <-eventCh:
		assert.Equal(t, events.RecordCreated, event.Type)
		assert.Equal(t, result.Record.ID, event.RecordID)
		assert.Equal(t, string(CategorySpotWelder), event.Category)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}
