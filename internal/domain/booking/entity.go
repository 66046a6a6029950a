package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cada transição valida o estado atual e muta a aula; a serialização
// por aula (lock de linha na transação) fica a cargo do repositório.

const (
	ActorStudent    = "student"
	ActorInstructor = "instructor"
	ActorSystem     = "system"
)

// TotalPrice deriva o preço congelado da aula: tarifa-hora proporcional
// à duração, arredondado a 2 casas.
func TotalPrice(pricePerHour decimal.Decimal, durationMinutes int) decimal.Decimal {
	return pricePerHour.
		Mul(decimal.NewFromInt(int64(durationMinutes))).
		Div(decimal.NewFromInt(60)).
		Round(2)
}

// New monta uma aula em PENDING com código de início gerado e preço
// derivado da tarifa atual do instrutor.
func New(studentID uint, instructor *models.User, scheduledAt time.Time, durationMinutes int, location string) (*models.Booking, error) {
	if durationMinutes <= 0 {
		return nil, httperr.ErrValidation("duration_minutes")
	}
	if scheduledAt.IsZero() {
		return nil, httperr.ErrValidation("scheduled_date")
	}

	return &models.Booking{
		StudentID:       studentID,
		InstructorID:    instructor.ID,
		ScheduledDate:   scheduledAt.UTC(),
		DurationMinutes: durationMinutes,
		Location:        location,
		PricePerHour:    instructor.PricePerHour,
		TotalPrice:      TotalPrice(instructor.PricePerHour, durationMinutes),
		Status:          string(StatusPending),
		StartCode:       NewStartCode(),
	}, nil
}

func Accept(b *models.Booking, now time.Time) error {
	if IsFrozen(b) {
		return httperr.ErrBusiness(httperr.CodeAlreadyRefunded)
	}
	if Status(b.Status) != StatusPending {
		return httperr.ErrInvalidTransition(b.Status, "accept")
	}
	if b.PaymentStatus != PaymentSucceeded {
		return httperr.ErrBusiness(httperr.CodePaymentNotConfirmed)
	}

	b.Status = string(StatusAccepted)
	b.ConfirmedAt = &now
	return nil
}

func Reject(b *models.Booking, reason ReasonPayload, now time.Time) error {
	if err := ValidateInstructorRejectReason(reason); err != nil {
		return err
	}
	if IsFrozen(b) {
		return httperr.ErrBusiness(httperr.CodeAlreadyRefunded)
	}
	if !CanReject(b) {
		return httperr.ErrInvalidTransition(b.Status, "reject")
	}

	b.Status = string(StatusRejected)
	b.CancelledAt = &now
	b.CancelledBy = ActorInstructor
	b.CancellationReasonCode = reason.Code
	b.CancellationReasonText = reason.Text
	return nil
}

// Start consome o código de início. Uso único: replay falha com
// code_already_used antes de qualquer outra checagem de estado.
func Start(b *models.Booking, presentedCode string, now time.Time) error {
	if IsFrozen(b) {
		return httperr.ErrBusiness(httperr.CodeAlreadyRefunded)
	}
	if b.StartCodeUsed {
		return httperr.ErrBusiness(httperr.CodeCodeAlreadyUsed)
	}
	if !CanStart(b) {
		return httperr.ErrInvalidTransition(b.Status, "start")
	}
	if presentedCode != b.StartCode {
		return httperr.ErrBusiness(httperr.CodeInvalidCode)
	}

	b.Status = string(StatusInProgress)
	b.StartedAt = &now
	b.StartCodeUsed = true
	return nil
}

// Finish conclui pelo instrutor e abre a janela de confirmação do aluno.
func Finish(b *models.Booking, now time.Time, confirmWindow time.Duration) error {
	if IsFrozen(b) {
		return httperr.ErrBusiness(httperr.CodeAlreadyRefunded)
	}
	if !CanFinish(b) {
		return httperr.ErrInvalidTransition(b.Status, "finish")
	}

	deadline := now.Add(confirmWindow)
	b.Status = string(StatusCompleted)
	b.FinishedByInstructorAt = &now
	b.AutoConfirmationDeadline = &deadline
	return nil
}

func ConfirmByStudent(b *models.Booking, now time.Time) error {
	if IsFrozen(b) {
		return httperr.ErrBusiness(httperr.CodeAlreadyRefunded)
	}
	if !CanConfirmCompletion(b) {
		return httperr.ErrInvalidTransition(b.Status, "confirm")
	}

	b.CompletedByStudentAt = &now
	return nil
}

// AutoConfirm tem o mesmo efeito da confirmação do aluno, atribuída ao
// sistema. Idempotente: aula já confirmada é no-op, não erro.
func AutoConfirm(b *models.Booking, now time.Time) (bool, error) {
	if Status(b.Status) != StatusCompleted || IsFrozen(b) {
		return false, nil
	}
	if b.CompletedByStudentAt != nil {
		return false, nil
	}
	if b.AutoConfirmationDeadline == nil || now.Before(*b.AutoConfirmationDeadline) {
		return false, nil
	}

	b.CompletedByStudentAt = &now
	return true, nil
}

func Dispute(b *models.Booking, reasonText string, now time.Time) error {
	if reasonText == "" {
		return httperr.ErrValidation("reason_text")
	}
	if IsFrozen(b) {
		return httperr.ErrBusiness(httperr.CodeAlreadyRefunded)
	}
	if !CanDispute(b) {
		return httperr.ErrInvalidTransition(b.Status, "dispute")
	}

	b.Status = string(StatusDisputed)
	b.CancellationReasonCode = ReasonOther
	b.CancellationReasonText = reasonText
	return nil
}

// StudentCanCancelAt: pendente sempre; aceita só até o horário da aula.
func StudentCanCancelAt(b *models.Booking, now time.Time) bool {
	if Status(b.Status) == StatusAccepted {
		return now.Before(b.ScheduledDate)
	}
	return Status(b.Status) == StatusPending
}

func CancelByStudent(b *models.Booking, reason ReasonPayload, now time.Time) error {
	if err := ValidateStudentCancelReason(reason); err != nil {
		return err
	}
	if IsFrozen(b) {
		return httperr.ErrBusiness(httperr.CodeAlreadyRefunded)
	}
	if !CanStudentCancel(b) || !StudentCanCancelAt(b, now) {
		return httperr.ErrInvalidTransition(b.Status, "student_cancel")
	}

	b.Status = string(StatusCancelledStudent)
	b.CancelledAt = &now
	b.CancelledBy = ActorStudent
	b.CancellationReasonCode = reason.Code
	b.CancellationReasonText = reason.Text
	return nil
}

func CancelByInstructor(b *models.Booking, reason ReasonPayload, now time.Time) error {
	if err := ValidateInstructorCancelReason(reason); err != nil {
		return err
	}
	if IsFrozen(b) {
		return httperr.ErrBusiness(httperr.CodeAlreadyRefunded)
	}
	if !CanInstructorCancel(b) {
		return httperr.ErrInvalidTransition(b.Status, "instructor_cancel")
	}

	b.Status = string(StatusCancelledInstructor)
	b.CancelledAt = &now
	b.CancelledBy = ActorInstructor
	b.CancellationReasonCode = reason.Code
	b.CancellationReasonText = reason.Text
	return nil
}

// MarkNoShow marca aula aceita cuja janela passou sem início.
// Idempotente para a varredura: fora das condições é no-op.
func MarkNoShow(b *models.Booking, now time.Time) bool {
	if Status(b.Status) != StatusAccepted || IsFrozen(b) {
		return false
	}
	lessonEnd := b.ScheduledDate.Add(time.Duration(b.DurationMinutes) * time.Minute)
	if now.Before(lessonEnd) {
		return false
	}

	b.Status = string(StatusNoShow)
	b.CancelledAt = &now
	b.CancelledBy = ActorSystem
	return true
}

// ApplyPaymentStatus registra o sinal assíncrono do provedor de pagamento.
func ApplyPaymentStatus(b *models.Booking, status, method string) error {
	if !ValidPaymentStatus(status) {
		return httperr.ErrValidation("payment_status")
	}

	b.PaymentStatus = status
	if method != "" {
		b.PaymentMethod = method
	}
	return nil
}
