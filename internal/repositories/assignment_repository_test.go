package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

var assignmentCols = []string{"trip_date", "time_slot", "vehicle_id", "driver_id", "notified", "notified_at", "updated_at"}

func TestAssignmentRepositorySaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 5, 2, 7, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO shuttle_assignments .* ON DUPLICATE KEY UPDATE").
		WithArgs("2026-05-03", "08:00", "v1", "d1", true, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	a := models.Assignment{Date: "2026-05-03", TimeSlot: "08:00", VehicleID: "v1", DriverID: "d1", Notified: true, NotifiedAt: &now, UpdatedAt: now}
	if err := (AssignmentRepository{DB: db}).Save(context.Background(), a); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignmentRepositoryGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 5, 2, 7, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM shuttle_assignments").
		WithArgs("2026-05-03", "08:00").
		WillReturnRows(sqlmock.NewRows(assignmentCols).AddRow("2026-05-03", "08:00", "v1", "", false, nil, now))

	a, err := (AssignmentRepository{DB: db}).Get(context.Background(), "2026-05-03", "08:00")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if a.VehicleID != "v1" || a.DriverID != "" || a.Notified || a.NotifiedAt != nil {
		t.Fatalf("unexpected assignment: %+v", a)
	}
	if a.Ready() {
		t.Fatalf("assignment without driver must not be ready")
	}

	mock.ExpectQuery("FROM shuttle_assignments").
		WithArgs("2026-05-03", "09:00").
		WillReturnRows(sqlmock.NewRows(assignmentCols))
	if _, err := (AssignmentRepository{DB: db}).Get(context.Background(), "2026-05-03", "09:00"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEnsureSchemaCreatesMissingTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	for _, tbl := range shuttleTables {
		mock.ExpectQuery("FROM information_schema.tables").
			WithArgs(tbl.name).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + tbl.name).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("shuttle_bookings", "route_id").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("route_id"))

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignmentRepositoryClaimNotifiedOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := AssignmentRepository{DB: db}
	mock.ExpectExec("UPDATE shuttle_assignments").
		WithArgs(true, sqlmock.AnyArg(), sqlmock.AnyArg(), "2026-05-03", "08:00", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE shuttle_assignments").
		WithArgs(true, sqlmock.AnyArg(), sqlmock.AnyArg(), "2026-05-03", "08:00", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.ClaimNotified(context.Background(), "2026-05-03", "08:00", true); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if err := repo.ClaimNotified(context.Background(), "2026-05-03", "08:00", true); !domain.IsConflict(err) {
		t.Fatalf("second claim should conflict, got %v", err)
	}
}
