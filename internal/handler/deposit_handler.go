package handler

import (
	"net/http"
	"time"

	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/service"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// DepositHandler serves the provider-shaped create routes kept for older
// clients: the KeyClub deposit envelope and the flat PodPay PIX form.
type DepositHandler struct {
	transactions service.TransactionService
	logger       *logger.Logger
}

func NewDepositHandler(transactions service.TransactionService, log *logger.Logger) *DepositHandler {
	return &DepositHandler{
		transactions: transactions,
		logger:       log,
	}
}

type payerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Document string `json:"document" validate:"required,document"`
}

type depositRequest struct {
	Amount            *decimal.Decimal `json:"amount" validate:"required"`
	ExternalID        string           `json:"external_id" validate:"required"`
	ClientCallbackURL string           `json:"clientCallbackUrl" validate:"omitempty,url"`
	Payer             payerRequest     `json:"payer"`
	UTM               domain.UTM       `json:"utm_params"`
}

type depositPix struct {
	Payload   string    `json:"payload"`
	QRCode    string    `json:"qr_code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type depositResponse struct {
	ID            string     `json:"id"`
	TransactionID string     `json:"transaction_id"`
	ExternalID    string     `json:"external_id"`
	Pix           depositPix `json:"pix"`
	PixCode       string     `json:"pix_code"`
	QRCode        string     `json:"qr_code"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	ExpiresAt     time.Time  `json:"expires_at"`
	HasError      bool       `json:"hasError"`
}

func (h *DepositHandler) Deposit(c echo.Context) error {
	var req depositRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	tx, err := h.transactions.CreateTransaction(c.Request().Context(), domain.CreateTransactionRequest{
		ExternalID:  req.ExternalID,
		Amount:      *req.Amount,
		PostbackURL: req.ClientCallbackURL,
		Customer: domain.Customer{
			Name:     req.Payer.Name,
			Email:    req.Payer.Email,
			Document: domain.Document{Number: req.Payer.Document},
		},
		UTM: req.UTM,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, depositResponse{
		ID:            tx.ID,
		TransactionID: tx.ID,
		ExternalID:    tx.ExternalID,
		Pix: depositPix{
			Payload:   tx.PixPayload,
			QRCode:    tx.PixPayload,
			ExpiresAt: tx.ExpiresAt,
		},
		PixCode:   tx.PixPayload,
		QRCode:    tx.PixPayload,
		Amount:    tx.Amount.InexactFloat64(),
		Status:    depositStatus(tx),
		ExpiresAt: tx.ExpiresAt,
	})
}

// depositStatus echoes the provider's own token, which older clients match on.
func depositStatus(tx *domain.Transaction) string {
	if tx.ProviderStatus != "" {
		return tx.ProviderStatus
	}
	if tx.Status == domain.StatusPending || tx.Status == domain.StatusWaitingPayment {
		return "PENDING"
	}
	return string(tx.Status)
}

type legacyPixRequest struct {
	Amount           *decimal.Decimal `json:"amount" validate:"required"`
	Description      string           `json:"description"`
	CustomerName     string           `json:"customer_name" validate:"required"`
	CustomerEmail    string           `json:"customer_email" validate:"required,email"`
	CustomerDocument string           `json:"customer_document" validate:"required,document"`
	UTM              domain.UTM       `json:"utm_params"`
}

type legacyPixResponse struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	QRCode    string    `json:"qr_code"`
	PixCode   string    `json:"pix_code"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *DepositHandler) CreatePix(c echo.Context) error {
	var req legacyPixRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	tx, err := h.transactions.CreateTransaction(c.Request().Context(), domain.CreateTransactionRequest{
		Amount:      *req.Amount,
		Description: req.Description,
		Customer: domain.Customer{
			Name:     req.CustomerName,
			Email:    req.CustomerEmail,
			Document: domain.Document{Number: req.CustomerDocument},
		},
		UTM: req.UTM,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	status := tx.Status
	if status == domain.StatusWaitingPayment {
		status = domain.StatusPending
	}

	return c.JSON(http.StatusOK, legacyPixResponse{
		ID:        tx.ID,
		Amount:    tx.Amount.InexactFloat64(),
		QRCode:    tx.PixPayload,
		PixCode:   tx.PixPayload,
		Status:    string(status),
		ExpiresAt: tx.ExpiresAt,
	})
}
