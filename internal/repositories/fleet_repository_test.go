package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

func TestFleetRepositoryVehicles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM shuttle_vehicles ORDER BY").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "plate", "seats", "status"}).
			AddRow("v1", "Ford Transit", "60A-123.45", 16, "AVAILABLE").
			AddRow("v2", "Toyota Innova", "60A-678.90", 7, "IN_USE"))

	list, err := (FleetRepository{DB: db}).ListVehicles(context.Background())
	if err != nil {
		t.Fatalf("ListVehicles returned error: %v", err)
	}
	if len(list) != 2 || list[0].Seats != 16 || list[1].Status != models.VehicleInUse {
		t.Fatalf("unexpected vehicles: %+v", list)
	}

	mock.ExpectQuery("FROM shuttle_vehicles WHERE id = ").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "plate", "seats", "status"}))
	if _, err := (FleetRepository{DB: db}).GetVehicle(context.Background(), "nope"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFleetRepositorySaveDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO shuttle_drivers").
		WithArgs("d1", "Anh Tuấn", "0901.234.567", "READY").
		WillReturnResult(sqlmock.NewResult(1, 1))

	d := models.Driver{ID: "d1", Name: "Anh Tuấn", Phone: "0901.234.567", Status: models.DriverReady}
	if err := (FleetRepository{DB: db}).SaveDriver(context.Background(), d); err != nil {
		t.Fatalf("SaveDriver returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
