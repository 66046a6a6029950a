package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

var testNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func paidBooking(status Status) *models.Booking {
	return &models.Booking{
		ID:              1,
		StudentID:       10,
		InstructorID:    20,
		ScheduledDate:   testNow.Add(48 * time.Hour),
		DurationMinutes: 60,
		TotalPrice:      decimal.NewFromInt(100),
		Status:          string(status),
		StartCode:       "4821",
		PaymentStatus:   PaymentSucceeded,
	}
}

func assertBusinessCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "expected BusinessError, got %v", err)
	assert.Equal(t, code, be.Code)
}

func TestTotalPrice(t *testing.T) {
	// 80/h por 100 min = 133.33
	got := TotalPrice(decimal.NewFromInt(80), 100)
	assert.True(t, got.Equal(decimal.RequireFromString("133.33")), "got %s", got)

	got = TotalPrice(decimal.NewFromInt(80), 60)
	assert.True(t, got.Equal(decimal.NewFromInt(80)), "got %s", got)
}

func TestNew(t *testing.T) {
	instructor := &models.User{ID: 20, Role: models.RoleInstructor, PricePerHour: decimal.NewFromInt(90)}

	b, err := New(10, instructor, testNow.Add(24*time.Hour), 90, "Av. Paulista, 1000")
	require.NoError(t, err)

	assert.Equal(t, string(StatusPending), b.Status)
	assert.Len(t, b.StartCode, 4)
	assert.True(t, b.TotalPrice.Equal(decimal.NewFromInt(135)), "got %s", b.TotalPrice)
	assert.True(t, b.PricePerHour.Equal(decimal.NewFromInt(90)))

	_, err = New(10, instructor, testNow, 0, "")
	assertBusinessCode(t, err, httperr.CodeValidation)

	_, err = New(10, instructor, time.Time{}, 60, "")
	assertBusinessCode(t, err, httperr.CodeValidation)
}

func TestAccept(t *testing.T) {
	b := paidBooking(StatusPending)
	require.NoError(t, Accept(b, testNow))
	assert.Equal(t, string(StatusAccepted), b.Status)
	require.NotNil(t, b.ConfirmedAt)

	// segunda aceitação falha: não está mais pendente
	err := Accept(b, testNow)
	assertBusinessCode(t, err, httperr.CodeInvalidTransition)
}

func TestAccept_PaymentGate(t *testing.T) {
	b := paidBooking(StatusPending)
	b.PaymentStatus = PaymentProcessing

	err := Accept(b, testNow)
	assertBusinessCode(t, err, httperr.CodePaymentNotConfirmed)

	b.PaymentStatus = PaymentSucceeded
	require.NoError(t, Accept(b, testNow))
}

func TestStart_ConsumesCode(t *testing.T) {
	b := paidBooking(StatusAccepted)

	require.NoError(t, Start(b, "4821", testNow))
	assert.Equal(t, string(StatusInProgress), b.Status)
	assert.True(t, b.StartCodeUsed)
	require.NotNil(t, b.StartedAt)

	// replay com o mesmo código: falha por código já usado,
	// não por transição inválida
	err := Start(b, "4821", testNow)
	assertBusinessCode(t, err, httperr.CodeCodeAlreadyUsed)
}

func TestStart_WrongCode(t *testing.T) {
	b := paidBooking(StatusAccepted)

	err := Start(b, "0000", testNow)
	assertBusinessCode(t, err, httperr.CodeInvalidCode)

	// código errado não consome o correto
	assert.False(t, b.StartCodeUsed)
	require.NoError(t, Start(b, "4821", testNow))
}

func TestStart_InvalidState(t *testing.T) {
	b := paidBooking(StatusPending)
	err := Start(b, "4821", testNow)
	assertBusinessCode(t, err, httperr.CodeInvalidTransition)
}

func TestFinish_OpensConfirmationWindow(t *testing.T) {
	b := paidBooking(StatusInProgress)

	require.NoError(t, Finish(b, testNow, 24*time.Hour))
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.AutoConfirmationDeadline)
	assert.Equal(t, testNow.Add(24*time.Hour), *b.AutoConfirmationDeadline)

	// concluída mas não confirmada: ainda não é terminal
	assert.False(t, IsTerminal(b))
	assert.Equal(t, DisplayAwaitingConfirmation, DisplayStatus(b))
}

func TestConfirmByStudent(t *testing.T) {
	b := paidBooking(StatusCompleted)

	require.NoError(t, ConfirmByStudent(b, testNow))
	require.NotNil(t, b.CompletedByStudentAt)
	assert.True(t, IsTerminal(b))
	assert.Equal(t, string(StatusCompleted), DisplayStatus(b))
	assert.True(t, CanReview(b))

	err := ConfirmByStudent(b, testNow)
	assertBusinessCode(t, err, httperr.CodeInvalidTransition)
}

func TestAutoConfirm(t *testing.T) {
	b := paidBooking(StatusCompleted)
	deadline := testNow.Add(-time.Minute)
	b.AutoConfirmationDeadline = &deadline

	changed, err := AutoConfirm(b, testNow)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, b.CompletedByStudentAt)

	// idempotente: segunda passada é no-op
	changed, err = AutoConfirm(b, testNow)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestAutoConfirm_BeforeDeadline(t *testing.T) {
	b := paidBooking(StatusCompleted)
	deadline := testNow.Add(time.Hour)
	b.AutoConfirmationDeadline = &deadline

	changed, err := AutoConfirm(b, testNow)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Nil(t, b.CompletedByStudentAt)
}

func TestDispute(t *testing.T) {
	b := paidBooking(StatusCompleted)

	err := Dispute(b, "", testNow)
	assertBusinessCode(t, err, httperr.CodeValidation)

	require.NoError(t, Dispute(b, "A aula não aconteceu", testNow))
	assert.Equal(t, string(StatusDisputed), b.Status)
	assert.True(t, IsTerminal(b))
}

func TestDispute_AfterConfirmation(t *testing.T) {
	b := paidBooking(StatusCompleted)
	b.CompletedByStudentAt = &testNow

	err := Dispute(b, "motivo", testNow)
	assertBusinessCode(t, err, httperr.CodeInvalidTransition)
}

func TestReject(t *testing.T) {
	b := paidBooking(StatusPending)

	require.NoError(t, Reject(b, ReasonPayload{Code: "UNAVAILABLE"}, testNow))
	assert.Equal(t, string(StatusRejected), b.Status)
	assert.Equal(t, ActorInstructor, b.CancelledBy)
	assert.True(t, IsTerminal(b))
}

func TestCancelByStudent_Windows(t *testing.T) {
	reason := ReasonPayload{Code: "SCHEDULE_CONFLICT"}

	// pendente: cancela a qualquer momento
	b := paidBooking(StatusPending)
	require.NoError(t, CancelByStudent(b, reason, testNow))
	assert.Equal(t, string(StatusCancelledStudent), b.Status)
	assert.Equal(t, ActorStudent, b.CancelledBy)

	// aceita, antes do horário: cancela
	b = paidBooking(StatusAccepted)
	require.NoError(t, CancelByStudent(b, reason, testNow))

	// aceita, depois do horário: não cancela mais
	b = paidBooking(StatusAccepted)
	err := CancelByStudent(b, reason, b.ScheduledDate.Add(time.Minute))
	assertBusinessCode(t, err, httperr.CodeInvalidTransition)

	// em andamento: nunca
	b = paidBooking(StatusInProgress)
	err = CancelByStudent(b, reason, testNow)
	assertBusinessCode(t, err, httperr.CodeInvalidTransition)
}

func TestCancelByInstructor(t *testing.T) {
	b := paidBooking(StatusAccepted)

	require.NoError(t, CancelByInstructor(b, ReasonPayload{Code: "VEHICLE_PROBLEM"}, testNow))
	assert.Equal(t, string(StatusCancelledInstructor), b.Status)
	assert.Equal(t, ActorInstructor, b.CancelledBy)

	b = paidBooking(StatusPending)
	err := CancelByInstructor(b, ReasonPayload{Code: "VEHICLE_PROBLEM"}, testNow)
	assertBusinessCode(t, err, httperr.CodeInvalidTransition)
}

func TestMarkNoShow(t *testing.T) {
	b := paidBooking(StatusAccepted)
	lessonEnd := b.ScheduledDate.Add(time.Duration(b.DurationMinutes) * time.Minute)

	// antes do fim da janela: no-op
	assert.False(t, MarkNoShow(b, lessonEnd.Add(-time.Minute)))
	assert.Equal(t, string(StatusAccepted), b.Status)

	assert.True(t, MarkNoShow(b, lessonEnd))
	assert.Equal(t, string(StatusNoShow), b.Status)
	assert.Equal(t, ActorSystem, b.CancelledBy)

	// idempotente
	assert.False(t, MarkNoShow(b, lessonEnd))
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	terminals := []Status{
		StatusRejected, StatusCancelledStudent,
		StatusCancelledInstructor, StatusDisputed, StatusNoShow,
	}
	reason := ReasonPayload{Code: "SCHEDULE_CONFLICT"}

	for _, s := range terminals {
		b := paidBooking(s)
		require.True(t, IsTerminal(b), "status %s", s)

		assertBusinessCode(t, Accept(b, testNow), httperr.CodeInvalidTransition)
		assertBusinessCode(t, Start(b, "4821", testNow), httperr.CodeInvalidTransition)
		assertBusinessCode(t, Finish(b, testNow, time.Hour), httperr.CodeInvalidTransition)
		assertBusinessCode(t, ConfirmByStudent(b, testNow), httperr.CodeInvalidTransition)
		assertBusinessCode(t, CancelByStudent(b, reason, testNow), httperr.CodeInvalidTransition)
		assertBusinessCode(t, CancelByInstructor(b, reason, testNow), httperr.CodeInvalidTransition)
	}
}

func TestRefundedFreezesEverything(t *testing.T) {
	b := paidBooking(StatusAccepted)
	b.PaymentStatus = PaymentRefunded

	assert.Equal(t, DisplayRefunded, DisplayStatus(b))

	assertBusinessCode(t, Start(b, "4821", testNow), httperr.CodeAlreadyRefunded)
	assertBusinessCode(t, Finish(b, testNow, time.Hour), httperr.CodeAlreadyRefunded)
	assertBusinessCode(t, CancelByStudent(b, ReasonPayload{Code: "PRICE"}, testNow), httperr.CodeAlreadyRefunded)
	assertBusinessCode(t, CancelByInstructor(b, ReasonPayload{Code: "OTHER", Text: "x"}, testNow), httperr.CodeAlreadyRefunded)

	assert.False(t, CanAccept(b))
	assert.False(t, CanStart(b))
	assert.False(t, CanStudentCancel(b))
	changed, err := AutoConfirm(b, testNow)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, MarkNoShow(b, b.ScheduledDate.Add(24*time.Hour)))
}

func TestApplyPaymentStatus(t *testing.T) {
	b := paidBooking(StatusPending)
	b.PaymentStatus = PaymentProcessing
	b.PaymentMethod = "pix"

	require.NoError(t, ApplyPaymentStatus(b, PaymentSucceeded, "credit_card"))
	assert.Equal(t, PaymentSucceeded, b.PaymentStatus)
	assert.Equal(t, "credit_card", b.PaymentMethod)

	// método vazio preserva o anterior
	require.NoError(t, ApplyPaymentStatus(b, PaymentRefunded, ""))
	assert.Equal(t, PaymentRefunded, b.PaymentStatus)
	assert.Equal(t, "credit_card", b.PaymentMethod)

	err := ApplyPaymentStatus(b, "banana", "")
	assertBusinessCode(t, err, httperr.CodeValidation)
}
