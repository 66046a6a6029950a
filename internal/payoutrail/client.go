package payoutrail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// TransferRequest é o que o provedor de transferência recebe: destino
// validado + valor líquido + referência para o retorno assíncrono.
type TransferRequest struct {
	TransferRef  string          `json:"transfer_ref"`
	Amount       decimal.Decimal `json:"amount"`
	MethodType   string          `json:"method_type"`
	PixKeyType   string          `json:"pix_key_type,omitempty"`
	PixKey       string          `json:"pix_key,omitempty"`
	CustodyEmail string          `json:"custody_email,omitempty"`
}

type Client interface {
	RequestTransfer(ctx context.Context, req TransferRequest) error
}

// HTTPClient envia a ordem de transferência para o rail configurado.
// O resultado (sucesso/falha) volta pelo webhook, não por esta chamada.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) RequestTransfer(ctx context.Context, req TransferRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("payout rail returned %d", resp.StatusCode)
	}
	return nil
}

func FromMethod(m *models.WithdrawalMethod, transferRef string, amount decimal.Decimal) TransferRequest {
	return TransferRequest{
		TransferRef:  transferRef,
		Amount:       amount,
		MethodType:   m.MethodType,
		PixKeyType:   m.PixKeyType,
		PixKey:       m.PixKey,
		CustodyEmail: m.CustodyEmail,
	}
}

var _ Client = (*HTTPClient)(nil)
