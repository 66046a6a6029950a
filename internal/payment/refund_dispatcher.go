package payment

import (
	"context"
	"log"
	"time"
)

// RefundDispatcher dispara reembolsos depois que a transição local já
// foi gravada. Fire-and-forget: falha aqui nunca desfaz a transição —
// o estado da aula é a fonte de verdade e a liquidação é eventual.
type RefundDispatcher struct {
	gateway Gateway
	queue   chan string
}

func NewRefundDispatcher(gateway Gateway) *RefundDispatcher {
	d := &RefundDispatcher{
		gateway: gateway,
		queue:   make(chan string, 100),
	}

	go d.worker()
	return d
}

func (d *RefundDispatcher) worker() {
	for providerID := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := d.gateway.RequestRefund(ctx, providerID); err != nil {
			// retry fica a cargo da política do provedor
			log.Println("refund error:", err)
		}
		cancel()
	}
}

func (d *RefundDispatcher) Dispatch(providerID string) {
	if providerID == "" {
		return
	}

	select {
	case d.queue <- providerID:
		// enviado
	default:
		log.Println("refund queue full, dropping request for payment", providerID)
	}
}
