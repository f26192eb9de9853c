package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

func strPtr(s string) *string { return &s }

func dispatchFixture(assignments ...models.Assignment) (DispatchService, *memAssignments, *recordingNotifier) {
	board := boardFixture()
	store := newMemAssignments(assignments...)
	board.Assignments = store
	notifier := &recordingNotifier{}
	return DispatchService{
		Board:       board,
		Assignments: store,
		Fleet:       newMemFleet(),
		Notifier:    notifier,
		Settings:    DefaultSettings(),
		Now:         clock,
	}, store, notifier
}

func TestDispatchAssignPartialUpdate(t *testing.T) {
	svc, store, _ := dispatchFixture()
	ctx := context.Background()

	a, err := svc.Assign(ctx, "2026-05-03", "08:00", AssignInput{VehicleID: strPtr("v16")})
	require.NoError(t, err)
	assert.Equal(t, "v16", a.VehicleID)
	assert.Empty(t, a.DriverID)
	assert.False(t, a.Ready())

	a, err = svc.Assign(ctx, "2026-05-03", "08:00", AssignInput{DriverID: strPtr("d1")})
	require.NoError(t, err)
	assert.Equal(t, "v16", a.VehicleID)
	assert.Equal(t, "d1", a.DriverID)

	stored, err := store.Get(ctx, "2026-05-03", "08:00")
	require.NoError(t, err)
	assert.True(t, stored.Ready())
	assert.Equal(t, fixedNow, stored.UpdatedAt)
}

func TestDispatchAssignRejectsUnfitFleet(t *testing.T) {
	svc, _, _ := dispatchFixture()
	ctx := context.Background()

	_, err := svc.Assign(ctx, "2026-05-03", "08:00", AssignInput{VehicleID: strPtr("v7")})
	assert.True(t, domain.IsValidation(err), "7-seat car is too small: %v", err)

	_, err = svc.Assign(ctx, "2026-05-03", "08:00", AssignInput{VehicleID: strPtr("vfix")})
	assert.True(t, domain.IsConflict(err), "vehicle in maintenance: %v", err)

	_, err = svc.Assign(ctx, "2026-05-03", "08:00", AssignInput{VehicleID: strPtr("ghost")})
	assert.True(t, domain.IsValidation(err), "unknown vehicle: %v", err)

	_, err = svc.Assign(ctx, "2026-05-03", "08:00", AssignInput{DriverID: strPtr("ghost")})
	assert.True(t, domain.IsValidation(err), "unknown driver: %v", err)

	_, err = svc.Assign(ctx, "2026-05-03", "08:00", AssignInput{})
	assert.True(t, domain.IsValidation(err), "empty input: %v", err)
}

func TestDispatchNotify(t *testing.T) {
	svc, store, notifier := dispatchFixture(models.Assignment{Date: "2026-05-03", TimeSlot: "08:00", VehicleID: "v16", DriverID: "d1"})
	ctx := context.Background()

	a, err := svc.Notify(ctx, "2026-05-03", "08:00", 0)
	require.NoError(t, err)
	assert.True(t, a.Notified)
	require.NotNil(t, a.NotifiedAt)

	require.Len(t, notifier.sent, 1)
	note := notifier.sent[0]
	assert.Equal(t, "08:00", note.TripTime)
	assert.Equal(t, 16, note.AcceptedPax)
	assert.Equal(t, "60A-123.45", note.VehiclePlate)
	assert.Equal(t, "Anh Tuấn", note.DriverName)
	var ids []string
	for _, r := range note.Recipients {
		ids = append(ids, r.BookingID)
	}
	assert.Equal(t, []string{"vip4", "early10", "mid2"}, ids, "only accepted passengers are told")

	stored, _ := store.Get(ctx, "2026-05-03", "08:00")
	assert.True(t, stored.Notified)

	_, err = svc.Notify(ctx, "2026-05-03", "08:00", 0)
	assert.True(t, domain.IsConflict(err))
	assert.Len(t, notifier.sent, 1)
}

func TestDispatchNotifyPreconditions(t *testing.T) {
	ctx := context.Background()

	svc, _, notifier := dispatchFixture()
	_, err := svc.Notify(ctx, "2026-05-03", "08:00", 0)
	assert.True(t, domain.IsValidation(err), "no assignment: %v", err)

	svc, _, _ = dispatchFixture(models.Assignment{Date: "2026-05-03", TimeSlot: "08:00", VehicleID: "v16"})
	_, err = svc.Notify(ctx, "2026-05-03", "08:00", 0)
	assert.True(t, domain.IsValidation(err), "no driver: %v", err)

	svc, _, _ = dispatchFixture(models.Assignment{Date: "2026-05-03", TimeSlot: "11:00", VehicleID: "v16", DriverID: "d1"})
	_, err = svc.Notify(ctx, "2026-05-03", "11:00", 0)
	assert.True(t, domain.IsValidation(err), "empty trip: %v", err)

	assert.Empty(t, notifier.sent)
}

func TestDispatchNotifyFailureReleasesClaim(t *testing.T) {
	svc, store, notifier := dispatchFixture(models.Assignment{Date: "2026-05-03", TimeSlot: "08:00", VehicleID: "v16", DriverID: "d1"})
	notifier.err = errGatewayDown
	ctx := context.Background()

	_, err := svc.Notify(ctx, "2026-05-03", "08:00", 0)
	assert.True(t, domain.IsInternal(err))

	stored, _ := store.Get(ctx, "2026-05-03", "08:00")
	assert.False(t, stored.Notified, "failed send must not leave the trip notified")

	notifier.err = nil
	_, err = svc.Notify(ctx, "2026-05-03", "08:00", 0)
	assert.NoError(t, err)
}

func TestDispatchReassignResetsNotified(t *testing.T) {
	svc, _, _ := dispatchFixture(models.Assignment{Date: "2026-05-03", TimeSlot: "08:00", VehicleID: "v16", DriverID: "d1"})
	ctx := context.Background()

	_, err := svc.Notify(ctx, "2026-05-03", "08:00", 0)
	require.NoError(t, err)

	a, err := svc.Assign(ctx, "2026-05-03", "08:00", AssignInput{DriverID: strPtr("d1")})
	require.NoError(t, err)
	assert.True(t, a.Notified, "same crew keeps the notified flag")

	a, err = svc.Assign(ctx, "2026-05-03", "08:00", AssignInput{VehicleID: strPtr("v29")})
	require.NoError(t, err)
	assert.False(t, a.Notified)
	assert.Nil(t, a.NotifiedAt)
}

func TestDispatchEligibleFleet(t *testing.T) {
	svc, _, _ := dispatchFixture()
	fleet, err := svc.EligibleFleet(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, v := range fleet.Vehicles {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"v29", "v16", "vfix"}, ids)
	assert.Len(t, fleet.Drivers, 2)
}
