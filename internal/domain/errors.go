package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrProviderAuth        = errors.New("provider authorization failed")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderRejected    = errors.New("provider rejected request")
	ErrInternal            = errors.New("internal error")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrNotSupported        = errors.New("operation not supported by provider")
	ErrAlreadyPolling      = errors.New("transaction is already being polled")
	ErrNotFound            = errors.New("not found")
)

type ErrorKind string

const (
	KindProviderAuth        ErrorKind = "provider_auth"
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	KindProviderRejected    ErrorKind = "provider_rejected"
)

// Reasons attached to a ProviderError. The first four are fallback triggers.
const (
	ReasonNotConfigured = "not_configured"
	ReasonTransport     = "transport"
	ReasonNonJSON       = "non_json"
	ReasonMissingID     = "missing_id"
	ReasonDecode        = "decode"
	ReasonHTTPStatus    = "http_status"
	ReasonMissingPix    = "missing_pix"
	ReasonNotSupported  = "not_supported"
)

type ProviderError struct {
	Kind       ErrorKind
	Provider   string
	Op         string
	Reason     string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", e.Provider, e.Op, e.Kind)
	if e.Reason != "" {
		fmt.Fprintf(&b, " (%s)", e.Reason)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " status=%d", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrProviderAuth:
		return e.Kind == KindProviderAuth
	case ErrProviderUnavailable:
		return e.Kind == KindProviderUnavailable
	case ErrProviderRejected:
		return e.Kind == KindProviderRejected
	case ErrNotSupported:
		return e.Reason == ReasonNotSupported
	}
	return false
}

func NewUnavailable(provider, op, reason string, err error) *ProviderError {
	return &ProviderError{Kind: KindProviderUnavailable, Provider: provider, Op: op, Reason: reason, Err: err}
}

func NewNotSupported(provider, op string) *ProviderError {
	return &ProviderError{Kind: KindProviderRejected, Provider: provider, Op: op, Reason: ReasonNotSupported}
}

// AsProviderError unwraps err into a *ProviderError when it carries one.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}
