package models

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleInUse       VehicleStatus = "IN_USE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

type Vehicle struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Plate  string        `json:"plate"`
	Seats  int           `json:"seats"`
	Status VehicleStatus `json:"status"`
}

type DriverStatus string

const (
	DriverReady   DriverStatus = "READY"
	DriverDriving DriverStatus = "DRIVING"
	DriverOffDuty DriverStatus = "OFF_DUTY"
)

type Driver struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Phone  string       `json:"phone"`
	Status DriverStatus `json:"status"`
}
