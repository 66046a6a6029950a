package payout

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy concentra os parâmetros comerciais do escrow. São configuração
// da plataforma, nunca constantes do domínio.
type Policy struct {
	BaseFeePercent        decimal.Decimal
	AnticipationSurcharge decimal.Decimal
	StandardWait          time.Duration
	AnticipatedWait       time.Duration
}
