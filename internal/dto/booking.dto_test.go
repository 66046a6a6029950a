package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

func TestFromBooking_CapabilitiesPerRole(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	b := &models.Booking{
		ID:            1,
		StudentID:     10,
		InstructorID:  20,
		ScheduledDate: now.Add(48 * time.Hour),
		Status:        string(domain.StatusPending),
		PaymentStatus: domain.PaymentSucceeded,
	}

	asInstructor := FromBooking(b, models.RoleInstructor, now)
	assert.True(t, asInstructor.Capabilities.CanAccept)
	assert.True(t, asInstructor.Capabilities.CanReject)
	assert.False(t, asInstructor.Capabilities.CanStart)
	assert.False(t, asInstructor.Capabilities.CanCancel)
	assert.False(t, asInstructor.Capabilities.CanConfirm)

	asStudent := FromBooking(b, models.RoleStudent, now)
	assert.False(t, asStudent.Capabilities.CanAccept)
	assert.True(t, asStudent.Capabilities.CanCancel)
	assert.False(t, asStudent.Capabilities.CanConfirm)
}

func TestFromBooking_StudentCancelWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	b := &models.Booking{
		ScheduledDate: now.Add(time.Hour),
		Status:        string(domain.StatusAccepted),
		PaymentStatus: domain.PaymentSucceeded,
	}

	assert.True(t, FromBooking(b, models.RoleStudent, now).Capabilities.CanCancel)
	// depois do horário da aula a janela fecha
	assert.False(t, FromBooking(b, models.RoleStudent, now.Add(2*time.Hour)).Capabilities.CanCancel)
}

func TestFromBooking_DisplayStatus(t *testing.T) {
	now := time.Now().UTC()
	b := &models.Booking{
		Status:        string(domain.StatusCompleted),
		PaymentStatus: domain.PaymentSucceeded,
	}

	got := FromBooking(b, models.RoleStudent, now)
	assert.Equal(t, domain.DisplayAwaitingConfirmation, got.DisplayStatus)
	assert.True(t, got.Capabilities.CanConfirm)
	assert.True(t, got.Capabilities.CanDispute)

	b.CompletedByStudentAt = &now
	got = FromBooking(b, models.RoleStudent, now)
	assert.Equal(t, string(domain.StatusCompleted), got.DisplayStatus)
	assert.False(t, got.Capabilities.CanConfirm)
	assert.True(t, got.Capabilities.CanReview)

	b.PaymentStatus = domain.PaymentRefunded
	got = FromBooking(b, models.RoleStudent, now)
	assert.Equal(t, domain.DisplayRefunded, got.DisplayStatus)
	assert.False(t, got.Capabilities.CanReview)
}
