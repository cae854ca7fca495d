package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"tubelens/domain/model"
	"tubelens/domain/repository"
	"tubelens/infrastructure/configuration"
	"tubelens/infrastructure/logger"
)

// PaymentHost talks to the external payment widget over form-encoded HTTP.
// Only success or failure crosses this boundary; the widget's own state
// machine stays on the widget's side.
type PaymentHost struct {
	endpoint   string
	merchantID string
	secretKey  string
	httpClient *http.Client
}

func NewPaymentHost(cfg configuration.Payment) repository.IPayment {
	return &PaymentHost{
		endpoint:   cfg.Endpoint,
		merchantID: cfg.MerchantID,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type paymentForm struct {
	MerchantID string `url:"merchant_id"`
	SecretKey  string `url:"secret_key"`
	model.PaymentOrder
}

type paymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *PaymentHost) RequestPayment(ctx context.Context, order model.PaymentOrder) (*model.PaymentResult, error) {
	form := paymentForm{
		MerchantID:   h.merchantID,
		SecretKey:    h.secretKey,
		PaymentOrder: order,
	}
	values, err := query.Values(form)
	if err != nil {
		return nil, fmt.Errorf("encode payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("payment: request failed")
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read payment response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &model.PaymentResult{
			Success: false,
			Error:   fmt.Sprintf("payment provider returned %d", resp.StatusCode),
		}, nil
	}

	var pr paymentResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}
	if pr.Status != "paid" {
		return &model.PaymentResult{Success: false, Error: pr.Message}, nil
	}
	return &model.PaymentResult{Success: true}, nil
}
