// Package errors provides the error types returned by the ledger service.
// Service-layer errors are AppErrors so handlers can render a stable code and
// message without leaking internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Product errors.
var (
	ErrProductNotFound   = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found", StatusCode: http.StatusNotFound}
	ErrDuplicateSKU      = &AppError{Code: "DUPLICATE_SKU", Message: "A product with this SKU already exists", StatusCode: http.StatusConflict}
	ErrInsufficientStock = &AppError{Code: "INSUFFICIENT_STOCK", Message: "Insufficient stock for this sale", StatusCode: http.StatusConflict}
)

// Party errors.
var (
	ErrPartyNotFound    = &AppError{Code: "PARTY_NOT_FOUND", Message: "Party not found", StatusCode: http.StatusNotFound}
	ErrInvalidPartyType = &AppError{Code: "INVALID_PARTY_TYPE", Message: "Party type does not fit this transaction", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrEmptyCart              = &AppError{Code: "EMPTY_CART", Message: "At least one item is required", StatusCode: http.StatusBadRequest}
	ErrInvoiceNotFound        = &AppError{Code: "INVOICE_NOT_FOUND", Message: "Invoice not found", StatusCode: http.StatusNotFound}
	ErrReturnExceedsSale      = &AppError{Code: "RETURN_EXCEEDS_SALE", Message: "Returned quantity exceeds the quantity sold", StatusCode: http.StatusBadRequest}
)

// Expense errors.
var (
	ErrInvalidExpenseAmount   = &AppError{Code: "INVALID_EXPENSE_AMOUNT", Message: "Expense amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidExpenseCategory = &AppError{Code: "INVALID_EXPENSE_CATEGORY", Message: "Unknown expense category", StatusCode: http.StatusBadRequest}
)
