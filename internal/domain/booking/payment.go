package booking

import "github.com/PilotarApp/lesson-scheduler/internal/models"

// ===============================
// Payment linkage
// ===============================

// O provedor de pagamento é quem reporta esses estados; o núcleo só os lê.
const (
	PaymentSucceeded  = "succeeded"
	PaymentProcessing = "processing"
	PaymentRefunded   = "refunded"
	PaymentFailed     = "failed"
)

// IsFrozen: aula reembolsada não aceita mais nenhuma ação de ator,
// independente do status. O status persistido fica intacto para auditoria.
func IsFrozen(b *models.Booking) bool {
	return b.PaymentStatus == PaymentRefunded
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentSucceeded, PaymentProcessing, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}
