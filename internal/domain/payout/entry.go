package payout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// ===============================
// Payout Entry Status
// ===============================

type Status string

const (
	StatusWaiting         Status = "waiting"
	StatusAvailable       Status = "available"
	StatusPendingTransfer Status = "pending_transfer"
	StatusPaid            Status = "paid"
	StatusBlocked         Status = "blocked"
)

// ===============================
// Fee math
// ===============================

// Fee calcula a taxa da plataforma: gross × pct / 100, 2 casas.
func Fee(gross, pct decimal.Decimal) decimal.Decimal {
	return gross.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
}

// NewEntry cria o lançamento de repasse de uma aula concluída e paga.
// net = gross − fee; disponível após o período padrão de retenção.
func NewEntry(b *models.Booking, baseFeePct decimal.Decimal, now time.Time, standardWait time.Duration) *models.PayoutEntry {
	fee := Fee(b.TotalPrice, baseFeePct)
	return &models.PayoutEntry{
		InstructorID:  b.InstructorID,
		BookingID:     b.ID,
		GrossAmount:   b.TotalPrice,
		FeePercentage: baseFeePct,
		PlatformFee:   fee,
		NetAmount:     b.TotalPrice.Sub(fee),
		Status:        string(StatusWaiting),
		AvailableAt:   now.Add(standardWait),
	}
}

// ===============================
// Domain Actions
// ===============================

// Anticipate troca taxa adicional por janela menor. Irreversível e de
// uso único: recalcula fee e net a partir do gross ORIGINAL. A nova
// janela tem que ser estritamente anterior à vigente; com a retenção já
// perto do fim não há antecipação a vender, e a sobretaxa nunca pode
// EMPURRAR a disponibilidade para frente.
func Anticipate(e *models.PayoutEntry, surchargePct decimal.Decimal, now time.Time, anticipatedWait time.Duration) error {
	if Status(e.Status) != StatusWaiting || e.IsAnticipation {
		return httperr.ErrBusiness(httperr.CodeNotAnticipable)
	}

	newAvailableAt := now.Add(anticipatedWait)
	if !newAvailableAt.Before(e.AvailableAt) {
		return httperr.ErrBusiness(httperr.CodeNotAnticipable)
	}

	e.FeePercentage = e.FeePercentage.Add(surchargePct)
	e.PlatformFee = Fee(e.GrossAmount, e.FeePercentage)
	e.NetAmount = e.GrossAmount.Sub(e.PlatformFee)
	e.AvailableAt = newAvailableAt
	e.IsAnticipation = true
	return nil
}

// Release libera o lançamento cuja retenção venceu. Idempotente para a
// varredura: já liberado (ou além) é no-op, não erro.
func Release(e *models.PayoutEntry, now time.Time) bool {
	if Status(e.Status) != StatusWaiting {
		return false
	}
	if now.Before(e.AvailableAt) {
		return false
	}

	e.Status = string(StatusAvailable)
	return true
}

// RequestTransfer move available → pending_transfer com a referência que
// será casada no retorno do provedor de transferência.
func RequestTransfer(e *models.PayoutEntry, method *models.WithdrawalMethod, transferRef string) error {
	if method == nil || method.Status != models.MethodValidated {
		return httperr.ErrBusiness(httperr.CodeNoValidatedMethod)
	}
	if Status(e.Status) != StatusAvailable {
		return httperr.ErrBusiness(httperr.CodeInsufficientEntry)
	}

	e.Status = string(StatusPendingTransfer)
	e.TransferRef = transferRef
	return nil
}

// SettleTransfer aplica o resultado assíncrono do provedor: sucesso
// torna o lançamento pago (imutável); falha devolve para available.
func SettleTransfer(e *models.PayoutEntry, succeeded bool) error {
	if Status(e.Status) != StatusPendingTransfer {
		return httperr.ErrInvalidTransition(e.Status, "settle_transfer")
	}

	if succeeded {
		e.Status = string(StatusPaid)
	} else {
		e.Status = string(StatusAvailable)
	}
	return nil
}
