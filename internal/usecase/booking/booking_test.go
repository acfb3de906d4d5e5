package booking

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/barberbook/booking-api/internal/audit"
	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	infraRepo "github.com/barberbook/booking-api/internal/infra/repository"
	"github.com/barberbook/booking-api/internal/models"
)

// ======================================================
// TEST SETUP
// ======================================================

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.Schedule{},
		&models.TimeSlot{},
		&models.Appointment{},
		&models.AppointmentTimeSlot{},
		&models.AppointmentService{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

type fixture struct {
	db *gorm.DB

	user    models.User
	barber  models.Barber
	slots   []models.TimeSlot
	service models.Service

	create *CreateAppointment
	get    *GetAppointment
	list   *ListAppointments
	update *UpdateAppointment
	delete *DeleteAppointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)

	f := &fixture{db: db}

	f.user = models.User{
		FirstName:   "Ana",
		LastName:    "Souza",
		Email:       "ana@example.com",
		PhoneNumber: "5511990001",
		ExternalID:  "8d6f1c0e-0000-4000-8000-000000000001",
	}
	if err := db.Create(&f.user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	barberUser := models.User{
		FirstName:   "Carlos",
		LastName:    "Lima",
		Email:       "carlos@example.com",
		PhoneNumber: "5511990002",
		ExternalID:  "8d6f1c0e-0000-4000-8000-000000000002",
	}
	if err := db.Create(&barberUser).Error; err != nil {
		t.Fatalf("seed barber user: %v", err)
	}

	f.barber = models.Barber{UserID: barberUser.ID}
	if err := db.Create(&f.barber).Error; err != nil {
		t.Fatalf("seed barber: %v", err)
	}

	schedule := models.Schedule{BarberID: f.barber.ID, Date: "2026-09-01", IsWorking: true}
	if err := db.Create(&schedule).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	windows := [][2]string{{"09:00", "09:30"}, {"09:30", "10:00"}, {"10:00", "10:30"}}
	for _, w := range windows {
		slot := models.TimeSlot{
			ScheduleID:  schedule.ID,
			StartTime:   w[0],
			EndTime:     w[1],
			IsAvailable: true,
		}
		if err := db.Create(&slot).Error; err != nil {
			t.Fatalf("seed slot: %v", err)
		}
		f.slots = append(f.slots, slot)
	}

	f.service = models.Service{Name: "Corte", DurationMin: 30, Price: 50}
	if err := db.Create(&f.service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	repo := infraRepo.NewBookingGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))
	t.Cleanup(dispatcher.Close)

	f.create = NewCreateAppointment(repo, dispatcher)
	f.get = NewGetAppointment(repo)
	f.list = NewListAppointments(repo)
	f.update = NewUpdateAppointment(repo, dispatcher)
	f.delete = NewDeleteAppointment(repo, dispatcher)

	return f
}

func (f *fixture) slotAvailable(t *testing.T, id uint) bool {
	t.Helper()
	var slot models.TimeSlot
	if err := f.db.First(&slot, id).Error; err != nil {
		t.Fatalf("load slot %d: %v", id, err)
	}
	return slot.IsAvailable
}

func (f *fixture) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

// ======================================================
// CREATE
// ======================================================

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:     f.user.ID,
		BarberID:   f.barber.ID,
		SlotIDs:    []uint{f.slots[0].ID, f.slots[1].ID},
		ServiceIDs: []uint{f.service.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if resp.Status != string(domain.StatusPending) {
		t.Errorf("status = %q, want %q", resp.Status, domain.StatusPending)
	}
	if len(resp.TimeSlotIDs) != 2 {
		t.Errorf("time slot ids = %v, want 2 entries", resp.TimeSlotIDs)
	}

	if f.slotAvailable(t, f.slots[0].ID) || f.slotAvailable(t, f.slots[1].ID) {
		t.Error("claimed slots still marked available")
	}
	if !f.slotAvailable(t, f.slots[2].ID) {
		t.Error("untouched slot lost availability")
	}

	if got := f.countRows(t, &models.AppointmentTimeSlot{}); got != 2 {
		t.Errorf("slot links = %d, want 2", got)
	}
	if got := f.countRows(t, &models.AppointmentService{}); got != 1 {
		t.Errorf("service links = %d, want 1", got)
	}
}

func TestCreateAppointmentInvalidReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		in       domain.CreateInput
		wantCode string
	}{
		{
			name: "unknown user",
			in: domain.CreateInput{
				UserID:   9999,
				BarberID: f.barber.ID,
				SlotIDs:  []uint{f.slots[0].ID},
			},
			wantCode: httperr.CodeInvalidUserRef,
		},
		{
			name: "unknown barber",
			in: domain.CreateInput{
				UserID:   f.user.ID,
				BarberID: 9999,
				SlotIDs:  []uint{f.slots[0].ID},
			},
			wantCode: httperr.CodeInvalidBarberRef,
		},
		{
			name: "unknown slot",
			in: domain.CreateInput{
				UserID:   f.user.ID,
				BarberID: f.barber.ID,
				SlotIDs:  []uint{f.slots[0].ID, 9999},
			},
			wantCode: httperr.CodeInvalidSlotRef,
		},
		{
			name: "unknown service",
			in: domain.CreateInput{
				UserID:     f.user.ID,
				BarberID:   f.barber.ID,
				SlotIDs:    []uint{f.slots[0].ID},
				ServiceIDs: []uint{9999},
			},
			wantCode: httperr.CodeInvalidServiceRef,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.Execute(ctx, tc.in)
			if got := httperr.BusinessCode(err); got != tc.wantCode {
				t.Fatalf("error code = %q, want %q (err: %v)", got, tc.wantCode, err)
			}
		})
	}

	// Fail-fast validation must leave nothing behind.
	if got := f.countRows(t, &models.Appointment{}); got != 0 {
		t.Errorf("appointments = %d, want 0", got)
	}
	if !f.slotAvailable(t, f.slots[0].ID) {
		t.Error("slot availability changed by rejected bookings")
	}
}

func TestCreateAppointmentSlotAlreadyBooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.db.Model(&models.TimeSlot{}).
		Where("id = ?", f.slots[1].ID).
		Update("is_available", false).Error; err != nil {
		t.Fatalf("pre-claim slot: %v", err)
	}

	_, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID, f.slots[1].ID},
	})
	if got := httperr.BusinessCode(err); got != httperr.CodeSlotAlreadyBooked {
		t.Fatalf("error code = %q, want %q", got, httperr.CodeSlotAlreadyBooked)
	}

	// The whole transaction rolls back, including the free slot's flip.
	if got := f.countRows(t, &models.Appointment{}); got != 0 {
		t.Errorf("appointments = %d, want 0", got)
	}
	if got := f.countRows(t, &models.AppointmentTimeSlot{}); got != 0 {
		t.Errorf("slot links = %d, want 0", got)
	}
	if !f.slotAvailable(t, f.slots[0].ID) {
		t.Error("free slot stayed claimed after rollback")
	}
}

// A booking that starts outside the active statuses would claim slots no
// active appointment holds.
func TestCreateAppointmentRejectsInactiveStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, status := range []domain.Status{domain.StatusCancelled, domain.StatusCompleted} {
		_, err := f.create.Execute(ctx, domain.CreateInput{
			UserID:   f.user.ID,
			BarberID: f.barber.ID,
			Status:   status,
			SlotIDs:  []uint{f.slots[0].ID},
		})
		if got := httperr.BusinessCode(err); got != httperr.CodeInvalidState {
			t.Errorf("status %q: error code = %q, want %q", status, got, httperr.CodeInvalidState)
		}
	}

	if got := f.countRows(t, &models.Appointment{}); got != 0 {
		t.Errorf("appointments = %d, want 0", got)
	}
	if !f.slotAvailable(t, f.slots[0].ID) {
		t.Error("slot claimed by a rejected booking")
	}
}

// ======================================================
// GET
// ======================================================

func TestGetAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:     f.user.ID,
		BarberID:   f.barber.ID,
		SlotIDs:    []uint{f.slots[0].ID},
		ServiceIDs: []uint{f.service.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.get.Execute(ctx, created.AppointmentID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("get returned nil for existing appointment")
	}
	if len(got.TimeSlotIDs) != 1 || got.TimeSlotIDs[0] != f.slots[0].ID {
		t.Errorf("time slot ids = %v, want [%d]", got.TimeSlotIDs, f.slots[0].ID)
	}
	if len(got.ServiceIDs) != 1 || got.ServiceIDs[0] != f.service.ID {
		t.Errorf("service ids = %v, want [%d]", got.ServiceIDs, f.service.ID)
	}
}

func TestGetAppointmentMissing(t *testing.T) {
	f := newFixture(t)

	got, err := f.get.Execute(context.Background(), 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("get = %+v, want nil for missing appointment", got)
	}
}

// ======================================================
// LIST
// ======================================================

func TestListAppointmentsPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.create.Execute(ctx, domain.CreateInput{
			UserID:   f.user.ID,
			BarberID: f.barber.ID,
			SlotIDs:  []uint{f.slots[i].ID},
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page1, err := f.list.Execute(ctx, 1, 2)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 size = %d, want 2", len(page1))
	}

	page2, err := f.list.Execute(ctx, 2, 2)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("page 2 size = %d, want 1", len(page2))
	}

	if page1[0].AppointmentID >= page1[1].AppointmentID ||
		page1[1].AppointmentID >= page2[0].AppointmentID {
		t.Error("pages are not ordered by appointment id")
	}

	for _, item := range append(page1, page2...) {
		if len(item.TimeSlotIDs) != 1 {
			t.Errorf("appointment %d slot ids = %v, want exactly one",
				item.AppointmentID, item.TimeSlotIDs)
		}
	}
}

func TestListAppointmentsEmpty(t *testing.T) {
	f := newFixture(t)

	out, err := f.list.Execute(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("list = %v, want empty non-nil slice", out)
	}
}

// ======================================================
// UPDATE
// ======================================================

func TestUpdateAppointmentReplaceSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newSlots := []uint{f.slots[1].ID, f.slots[2].ID}
	resp, err := f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
		SlotIDs: &newSlots,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(resp.TimeSlotIDs) != 2 {
		t.Errorf("time slot ids = %v, want 2 entries", resp.TimeSlotIDs)
	}

	if !f.slotAvailable(t, f.slots[0].ID) {
		t.Error("replaced slot was not released")
	}
	if f.slotAvailable(t, f.slots[1].ID) || f.slotAvailable(t, f.slots[2].ID) {
		t.Error("new slots were not claimed")
	}
}

func TestUpdateAppointmentCancelReleasesSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID, f.slots[1].ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled := domain.StatusCancelled
	resp, err := f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
		Status: &cancelled,
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if resp.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %q, want cancelled", resp.Status)
	}

	if !f.slotAvailable(t, f.slots[0].ID) || !f.slotAvailable(t, f.slots[1].ID) {
		t.Error("cancelled appointment still holds its slots")
	}

	var ap models.Appointment
	if err := f.db.First(&ap, created.AppointmentID).Error; err != nil {
		t.Fatalf("load appointment: %v", err)
	}
	if ap.CancelledAt == nil {
		t.Error("cancellation timestamp not set")
	}
}

func TestUpdateAppointmentCompleteReleasesSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := domain.StatusCompleted
	if _, err := f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
		Status: &completed,
	}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if !f.slotAvailable(t, f.slots[0].ID) {
		t.Error("completed appointment still holds its slot")
	}

	var ap models.Appointment
	if err := f.db.First(&ap, created.AppointmentID).Error; err != nil {
		t.Fatalf("load appointment: %v", err)
	}
	if ap.CompletedAt == nil {
		t.Error("completion timestamp not set")
	}
}

// Replacing the slot set on a cancelled appointment must not claim the new
// slots; only active appointments hold availability.
func TestUpdateAppointmentSlotReplaceOnCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled := domain.StatusCancelled
	if _, err := f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
		Status: &cancelled,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	newSlots := []uint{f.slots[1].ID}
	if _, err := f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
		SlotIDs: &newSlots,
	}); err != nil {
		t.Fatalf("slot replace: %v", err)
	}

	if !f.slotAvailable(t, f.slots[1].ID) {
		t.Error("cancelled appointment claimed a slot through replacement")
	}
	if !f.slotAvailable(t, f.slots[0].ID) {
		t.Error("released slot claimed again")
	}
}

// A cancelled appointment released its slots; letting it back into an active
// status would hold slots that read as available. Another booking must be
// able to take them instead.
func TestUpdateAppointmentReactivateRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled := domain.StatusCancelled
	if _, err := f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
		Status: &cancelled,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	for _, status := range []domain.Status{domain.StatusConfirmed, domain.StatusPending} {
		target := status
		_, err := f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
			Status: &target,
		})
		if got := httperr.BusinessCode(err); got != httperr.CodeInvalidState {
			t.Errorf("reactivate to %q: error code = %q, want %q", status, got, httperr.CodeInvalidState)
		}
	}

	// The released slot belongs to whoever books it next.
	if _, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	}); err != nil {
		t.Fatalf("rebooking released slot: %v", err)
	}
	if f.slotAvailable(t, f.slots[0].ID) {
		t.Error("rebooked slot still marked available")
	}
}

func TestUpdateAppointmentInvalidTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled := domain.StatusCancelled
	if _, err := f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
		Status: &cancelled,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	completed := domain.StatusCompleted
	_, err = f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
		Status: &completed,
	})
	if got := httperr.BusinessCode(err); got != httperr.CodeInvalidState {
		t.Fatalf("error code = %q, want %q", got, httperr.CodeInvalidState)
	}
}

func TestUpdateAppointmentMissing(t *testing.T) {
	f := newFixture(t)

	resp, err := f.update.Execute(context.Background(), 42, domain.UpdateInput{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp != nil {
		t.Fatalf("update = %+v, want nil for missing appointment", resp)
	}
}

func TestUpdateAppointmentRejectsUnknownSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	badSlots := []uint{9999}
	_, err = f.update.Execute(ctx, created.AppointmentID, domain.UpdateInput{
		SlotIDs: &badSlots,
	})
	if got := httperr.BusinessCode(err); got != httperr.CodeInvalidSlotRef {
		t.Fatalf("error code = %q, want %q", got, httperr.CodeInvalidSlotRef)
	}

	// Rejected before the transaction: the held slot stays claimed.
	if f.slotAvailable(t, f.slots[0].ID) {
		t.Error("held slot was released by a rejected update")
	}
}

// ======================================================
// DELETE
// ======================================================

func TestDeleteAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:     f.user.ID,
		BarberID:   f.barber.ID,
		SlotIDs:    []uint{f.slots[0].ID, f.slots[1].ID},
		ServiceIDs: []uint{f.service.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := f.delete.Execute(ctx, created.AppointmentID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !found {
		t.Fatal("delete reported missing for existing appointment")
	}

	if !f.slotAvailable(t, f.slots[0].ID) || !f.slotAvailable(t, f.slots[1].ID) {
		t.Error("deleted appointment still holds its slots")
	}
	if got := f.countRows(t, &models.Appointment{}); got != 0 {
		t.Errorf("appointments = %d, want 0", got)
	}
	if got := f.countRows(t, &models.AppointmentTimeSlot{}); got != 0 {
		t.Errorf("slot links = %d, want 0", got)
	}
	if got := f.countRows(t, &models.AppointmentService{}); got != 0 {
		t.Errorf("service links = %d, want 0", got)
	}
}

func TestDeleteAppointmentMissing(t *testing.T) {
	f := newFixture(t)

	found, err := f.delete.Execute(context.Background(), 42)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if found {
		t.Fatal("delete reported found for missing appointment")
	}
}

// Rebooking a released slot must succeed.
func TestSlotReusableAfterDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	if _, err := f.delete.Execute(ctx, created.AppointmentID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	}); err != nil {
		t.Fatalf("rebooking released slot: %v", err)
	}
}

// Two bookings over an overlapping slot set: exactly one wins.
func TestDoubleBookingConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID},
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := f.create.Execute(ctx, domain.CreateInput{
		UserID:   f.user.ID,
		BarberID: f.barber.ID,
		SlotIDs:  []uint{f.slots[0].ID, f.slots[1].ID},
	})
	if got := httperr.BusinessCode(err); got != httperr.CodeSlotAlreadyBooked {
		t.Fatalf("error code = %q, want %q", got, httperr.CodeSlotAlreadyBooked)
	}

	if got := f.countRows(t, &models.Appointment{}); got != 1 {
		t.Errorf("appointments = %d, want 1", got)
	}
	if !f.slotAvailable(t, f.slots[1].ID) {
		t.Error("loser's free slot stayed claimed")
	}
}

func TestListLimitCap(t *testing.T) {
	f := newFixture(t)

	// Out-of-range paging inputs normalize instead of failing.
	for _, tc := range []struct{ page, limit int }{{0, 0}, {-1, 1000}} {
		if _, err := f.list.Execute(context.Background(), tc.page, tc.limit); err != nil {
			t.Fatalf("list(page=%d, limit=%d): %v", tc.page, tc.limit, err)
		}
	}
}
