package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/utils"
)

type manifestData struct {
	Trip        TripView
	Vehicle     *models.Vehicle
	Driver      *models.Driver
	GeneratedAt time.Time
}

// ManifestService renders the printable passenger list a driver takes on a trip.
type ManifestService struct {
	Board     TripBoardService
	Fleet     FleetStore
	Now       func() time.Time
	RequestID string

	// Loader replaces the store lookups in tests.
	Loader func(ctx context.Context, date, slot string, capacity int) (manifestData, error)
}

func (s ManifestService) TripManifestPDF(ctx context.Context, date, slot string, capacity int) ([]byte, string, error) {
	load := s.Loader
	if load == nil {
		load = s.loadManifestData
	}
	d, err := load(ctx, date, slot, capacity)
	if err != nil {
		return nil, "", err
	}
	utils.LogEventf(s.RequestID, "manifest", "generate", "date=%s slot=%s passengers=%d", date, slot, len(d.Trip.Passengers))
	return buildManifestPDF(d)
}

func (s ManifestService) loadManifestData(ctx context.Context, date, slot string, capacity int) (manifestData, error) {
	if err := checkTripKey(date, slot); err != nil {
		return manifestData{}, err
	}
	trip, err := s.Board.Trip(ctx, date, slot, capacity)
	if err != nil {
		return manifestData{}, err
	}

	d := manifestData{Trip: trip, GeneratedAt: utils.NowUTC()}
	if s.Now != nil {
		d.GeneratedAt = s.Now()
	}
	if a := trip.Assignment; a != nil {
		if a.VehicleID != "" {
			v, err := fleetStore(s.Fleet).GetVehicle(ctx, a.VehicleID)
			if err != nil && !domain.IsNotFound(err) {
				return manifestData{}, domain.InternalError{Msg: "failed to load vehicle", Err: err}
			}
			if err == nil {
				d.Vehicle = &v
			}
		}
		if a.DriverID != "" {
			dr, err := fleetStore(s.Fleet).GetDriver(ctx, a.DriverID)
			if err != nil && !domain.IsNotFound(err) {
				return manifestData{}, domain.InternalError{Msg: "failed to load driver", Err: err}
			}
			if err == nil {
				d.Driver = &dr
			}
		}
	}
	return d, nil
}

func buildManifestPDF(d manifestData) ([]byte, string, error) {
	trip := d.Trip
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Shuttle manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "SHUTTLE MANIFEST")
	pdf.Ln(12)

	vehicle, driver := "-", "-"
	if d.Vehicle != nil {
		vehicle = fmt.Sprintf("%s (%s, %d seats)", d.Vehicle.Name, d.Vehicle.Plate, d.Vehicle.Seats)
	}
	if d.Driver != nil {
		driver = fmt.Sprintf("%s (%s)", d.Driver.Name, d.Driver.Phone)
	}

	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		fmt.Sprintf("Date / time : %s %s", trip.Date, trip.Time),
		fmt.Sprintf("Vehicle     : %s", vehicle),
		fmt.Sprintf("Driver      : %s", driver),
		fmt.Sprintf("Load        : %d / %d pax", trip.AcceptedPax, trip.Capacity),
		fmt.Sprintf("Printed     : %s", d.GeneratedAt.Format("2006-01-02 15:04")),
	}
	for _, line := range header {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	widths := []float64{8, 42, 26, 54, 10, 28, 22}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"#", "Guest", "Phone", "Pickup", "Pax", "Fare", "Status"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	rows, fareTotal := manifestRows(trip.Accepted())
	for _, row := range rows {
		for j, cell := range row {
			pdf.CellFormat(widths[j], 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, fmt.Sprintf("%d", trip.AcceptedPax), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[5]+widths[6], 7, utils.FormatVND(fareTotal), "1", 0, "L", false, 0, "")
	pdf.Ln(-1)

	if overflow := trip.Overflow(); len(overflow) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("Not boarding this trip (%d pax over capacity)", trip.OverflowPax))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range overflow {
			pdf.Cell(0, 6, tr(fmt.Sprintf("- %s, %s, %d pax", p.GuestName, p.GuestPhone, p.PaxCount)))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	key := domain.TripKey{Date: trip.Date, TimeSlot: trip.Time}
	return buf.Bytes(), fmt.Sprintf("manifest-%s.pdf", key.Slug()), nil
}

// manifestRows lays out the boarding passengers and sums the fares the driver
// collects.
func manifestRows(passengers []models.Passenger) ([][]string, int64) {
	rows := make([][]string, 0, len(passengers))
	var total int64
	for i, p := range passengers {
		name := p.GuestName
		if p.IsVIP {
			name = "[VIP] " + name
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			clip(name, 24),
			p.GuestPhone,
			clip(p.PickupLocation, 32),
			fmt.Sprintf("%d", p.PaxCount),
			utils.FormatVND(p.TotalPrice),
			string(p.Status),
		})
		total += p.TotalPrice
	}
	return rows, total
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
