package payment

import "context"

// PaymentInfo é o retrato do pagamento no provedor, já traduzido para o
// vocabulário do núcleo (succeeded | processing | refunded | failed).
type PaymentInfo struct {
	ProviderID        string
	Status            string
	Method            string
	ExternalReference string
}

// Gateway é o colaborador externo de pagamento. O núcleo nunca calcula
// status de pagamento; só consome o que o provedor reporta.
type Gateway interface {
	FetchPayment(ctx context.Context, providerID string) (*PaymentInfo, error)
	RequestRefund(ctx context.Context, providerID string) error
}
