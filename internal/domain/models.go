package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CurrencyBRL      = "BRL"
	PaymentMethodPix = "pix"
)

type DocumentType string

const (
	DocumentTypeCPF  DocumentType = "cpf"
	DocumentTypeCNPJ DocumentType = "cnpj"
)

type Document struct {
	Number string       `json:"number"`
	Type   DocumentType `json:"type"`
}

type Customer struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Document Document `json:"document"`
}

type Item struct {
	ExternalRef string          `json:"externalRef"`
	Title       string          `json:"title"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Tangible    bool            `json:"tangible"`
}

// UTM is campaign metadata forwarded to providers untouched.
type UTM struct {
	Source   string `json:"utm_source,omitempty"`
	Medium   string `json:"utm_medium,omitempty"`
	Campaign string `json:"utm_campaign,omitempty"`
	Content  string `json:"utm_content,omitempty"`
	Term     string `json:"utm_term,omitempty"`
}

// CreateTransactionRequest is the provider-agnostic input to CreateTransaction.
type CreateTransactionRequest struct {
	ExternalID  string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Items       []Item
	Customer    Customer
	PixExpiry   time.Duration
	PostbackURL string
	UTM         UTM
}

type Transaction struct {
	ID             string            `json:"id"`
	ExternalID     string            `json:"externalId,omitempty"`
	Provider       string            `json:"provider"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	Status         TransactionStatus `json:"status"`
	ProviderStatus string            `json:"providerStatus,omitempty"`
	PaymentMethod  string            `json:"paymentMethod"`
	PixPayload     string            `json:"pixPayload,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	ExpiresAt      time.Time         `json:"expiresAt"`
	PaidAt         *time.Time        `json:"paidAt,omitempty"`

	// Set on synthesized transactions; read by logging only.
	IsFallback     bool   `json:"-"`
	FallbackReason string `json:"-"`
}

type PixKeyType string

const (
	PixKeyEmail PixKeyType = "EMAIL"
	PixKeyCPF   PixKeyType = "CPF"
	PixKeyCNPJ  PixKeyType = "CNPJ"
	PixKeyPhone PixKeyType = "PHONE"
)

type CashoutRequest struct {
	ExternalID  string
	Amount      decimal.Decimal
	PixKey      string
	KeyType     PixKeyType
	Description string
	CallbackURL string
}

// Ack is the provider acknowledgement of refund, cancel and cashout calls.
type Ack struct {
	ID         string                 `json:"id,omitempty"`
	ExternalID string                 `json:"externalId,omitempty"`
	Status     string                 `json:"status,omitempty"`
	Raw        map[string]interface{} `json:"raw,omitempty"`
}

type WebhookType string

const (
	WebhookTypeDeposit    WebhookType = "DEPOSIT"
	WebhookTypeWithdrawal WebhookType = "WITHDRAWAL"
	WebhookTypeMED        WebhookType = "MED"
)

type ProcessingStatus string

const (
	ProcessingSuccess ProcessingStatus = "SUCCESS"
	ProcessingError   ProcessingStatus = "ERROR"
)

// WebhookRecord is one audit entry per provider callback.
type WebhookRecord struct {
	EventID          string           `json:"event_id"`
	Timestamp        time.Time        `json:"timestamp"`
	Provider         string           `json:"provider"`
	Type             WebhookType      `json:"type"`
	TransactionID    string           `json:"transaction_id"`
	ExternalID       string           `json:"external_id,omitempty"`
	Status           string           `json:"status"`
	Amount           string           `json:"amount,omitempty"`
	SourceIP         string           `json:"source_ip"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
	Error            string           `json:"error,omitempty"`
}

func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidDocument checks digit counts only: 11 for CPF, 14 for CNPJ.
func ValidDocument(number string, docType DocumentType) bool {
	digits := OnlyDigits(number)
	switch docType {
	case DocumentTypeCPF:
		return len(digits) == 11
	case DocumentTypeCNPJ:
		return len(digits) == 14
	default:
		return false
	}
}

// DocumentTypeFor infers the document type from its digit count.
func DocumentTypeFor(number string) DocumentType {
	if len(OnlyDigits(number)) == 14 {
		return DocumentTypeCNPJ
	}
	return DocumentTypeCPF
}
