package booking

import "github.com/PilotarApp/lesson-scheduler/internal/models"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending             Status = "pending"
	StatusAccepted            Status = "accepted"
	StatusInProgress          Status = "in_progress"
	StatusCompleted           Status = "completed"
	StatusRejected            Status = "rejected"
	StatusCancelledStudent    Status = "cancelled_student"
	StatusCancelledInstructor Status = "cancelled_instructor"
	StatusDisputed            Status = "disputed"
	StatusNoShow              Status = "no_show"
)

// DisplayStatus vista pelo cliente. "awaiting_student_confirmation" não é um
// status persistido: é uma aula concluída pelo instrutor que o aluno ainda
// não confirmou. Reembolso sobrepõe qualquer status apenas na exibição.
const (
	DisplayAwaitingConfirmation = "awaiting_student_confirmation"
	DisplayRefunded             = "refunded"
)

func DisplayStatus(b *models.Booking) string {
	if b.PaymentStatus == PaymentRefunded {
		return DisplayRefunded
	}
	if Status(b.Status) == StatusCompleted && b.CompletedByStudentAt == nil {
		return DisplayAwaitingConfirmation
	}
	return b.Status
}

// IsTerminal indica que nenhum evento de ator é mais aceito.
// "completed" só é terminal depois da confirmação do aluno (ou automática).
func IsTerminal(b *models.Booking) bool {
	switch Status(b.Status) {
	case StatusRejected, StatusCancelledStudent, StatusCancelledInstructor,
		StatusDisputed, StatusNoShow:
		return true
	case StatusCompleted:
		return b.CompletedByStudentAt != nil
	}
	return false
}

// ===============================
// Capability predicates
// ===============================

// Toda capacidade é função pura do status (e do pagamento, onde indicado).
// Aula reembolsada fica congelada: nenhuma ação de nenhum ator.

func CanAccept(b *models.Booking) bool {
	return !IsFrozen(b) &&
		Status(b.Status) == StatusPending &&
		b.PaymentStatus == PaymentSucceeded
}

func CanReject(b *models.Booking) bool {
	return !IsFrozen(b) && Status(b.Status) == StatusPending
}

func CanStart(b *models.Booking) bool {
	return !IsFrozen(b) && Status(b.Status) == StatusAccepted
}

func CanFinish(b *models.Booking) bool {
	return !IsFrozen(b) && Status(b.Status) == StatusInProgress
}

func CanInstructorCancel(b *models.Booking) bool {
	return !IsFrozen(b) && Status(b.Status) == StatusAccepted
}

func CanStudentCancel(b *models.Booking) bool {
	if IsFrozen(b) {
		return false
	}
	s := Status(b.Status)
	return s == StatusPending || s == StatusAccepted
}

func CanConfirmCompletion(b *models.Booking) bool {
	return !IsFrozen(b) &&
		Status(b.Status) == StatusCompleted &&
		b.CompletedByStudentAt == nil
}

func CanDispute(b *models.Booking) bool {
	return CanConfirmCompletion(b)
}

func CanReview(b *models.Booking) bool {
	return !IsFrozen(b) &&
		Status(b.Status) == StatusCompleted &&
		b.CompletedByStudentAt != nil
}
