package handler

import (
	"net/http"

	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/grachmannico95/pix-relay/internal/service"
	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CashoutHandler struct {
	transactions service.TransactionService
	logger       *logger.Logger
}

func NewCashoutHandler(transactions service.TransactionService, log *logger.Logger) *CashoutHandler {
	return &CashoutHandler{
		transactions: transactions,
		logger:       log,
	}
}

type cashoutRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	ExternalID  string           `json:"external_id" validate:"required"`
	PixKey      string           `json:"pix_key" validate:"required"`
	KeyType     string           `json:"key_type" validate:"required,pixkey_type"`
	Description string           `json:"description"`
}

func (h *CashoutHandler) Create(c echo.Context) error {
	var req cashoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	ack, err := h.transactions.CreateCashout(c.Request().Context(), domain.CashoutRequest{
		ExternalID:  req.ExternalID,
		Amount:      *req.Amount,
		PixKey:      req.PixKey,
		KeyType:     domain.PixKeyType(req.KeyType),
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    ack,
		"message": "cashout requested",
	})
}
