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

type TransactionHandler struct {
	transactions service.TransactionService
	status       service.StatusService
	logger       *logger.Logger
}

func NewTransactionHandler(transactions service.TransactionService, status service.StatusService, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		status:       status,
		logger:       log,
	}
}

type documentRequest struct {
	Number string `json:"number" validate:"required,document"`
	Type   string `json:"type" validate:"omitempty,oneof=cpf cnpj"`
}

type customerRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Document documentRequest `json:"document"`
}

type itemRequest struct {
	ExternalRef string          `json:"externalRef"`
	Title       string          `json:"title" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity" validate:"gte=1"`
}

type createTransactionRequest struct {
	Amount           *decimal.Decimal `json:"amount" validate:"required"`
	ExternalID       string           `json:"external_id"`
	Currency         string           `json:"currency" validate:"omitempty,oneof=BRL"`
	Description      string           `json:"description"`
	Items            []itemRequest    `json:"items" validate:"dive"`
	Customer         customerRequest  `json:"customer"`
	ExpiresInMinutes int              `json:"expires_in_minutes" validate:"gte=0"`
	PostbackURL      string           `json:"postback_url" validate:"omitempty,url"`
	UTM              domain.UTM       `json:"utm_params"`
}

func (r createTransactionRequest) toDomain() domain.CreateTransactionRequest {
	items := make([]domain.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.Item{
			ExternalRef: it.ExternalRef,
			Title:       it.Title,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return domain.CreateTransactionRequest{
		ExternalID:  r.ExternalID,
		Amount:      *r.Amount,
		Currency:    r.Currency,
		Description: r.Description,
		Items:       items,
		Customer: domain.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Document: domain.Document{
				Number: r.Customer.Document.Number,
				Type:   domain.DocumentType(r.Customer.Document.Type),
			},
		},
		PixExpiry:   time.Duration(r.ExpiresInMinutes) * time.Minute,
		PostbackURL: r.PostbackURL,
		UTM:         r.UTM,
	}
}

func (h *TransactionHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req createTransactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	tx, err := h.transactions.CreateTransaction(ctx, req.toDomain())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    tx,
	})
}

// Get serves both /api/transactions/:id and /api/get-transaction?id=.
func (h *TransactionHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		id = c.QueryParam("id")
	}

	tx, err := h.transactions.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    tx,
	})
}

// Status is the rate-limited, cached status check.
func (h *TransactionHandler) Status(c echo.Context) error {
	snapshot, err := h.status.CheckStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

type refundRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

func (h *TransactionHandler) Refund(c echo.Context) error {
	var req refundRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return respondError(c, h.logger, domain.NewValidationError("invalid request body"))
		}
	}

	ack, err := h.transactions.RefundTransaction(c.Request().Context(), c.Param("id"), req.Amount)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    ack,
	})
}

func (h *TransactionHandler) CancelTransfer(c echo.Context) error {
	ack, err := h.transactions.CancelTransfer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    ack,
	})
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	return c.Validate(req)
}
