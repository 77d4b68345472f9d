package utils

import (
	"fmt"
	"net/http"
)

// DomainError is a recoverable request-level failure carrying a stable code
// for clients and the HTTP status it maps to.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// Error codes surfaced in the response envelope.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeNotFound          = "NOT_FOUND"
	CodeItemNotFound      = "ITEM_NOT_FOUND"
	CodeEmptyCart         = "EMPTY_CART"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeCouponNotFound    = "COUPON_NOT_FOUND"
	CodeCouponInactive    = "COUPON_INACTIVE"
	CodeCouponExpired     = "COUPON_EXPIRED"
	CodeCouponExhausted   = "COUPON_EXHAUSTED"
	CodeMinimumNotMet     = "MINIMUM_NOT_MET"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeForbidden         = "FORBIDDEN"
)

func NewValidationError(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: CodeValidation, Message: fmt.Sprintf(format, args...), Status: http.StatusBadRequest}
}

func NewInvalidQuantityError() *DomainError {
	return &DomainError{Code: CodeInvalidQuantity, Message: "quantity must be a positive integer", Status: http.StatusBadRequest}
}

func NewNotFoundError(what string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: what + " not found", Status: http.StatusNotFound}
}

func NewItemNotFoundError() *DomainError {
	return &DomainError{Code: CodeItemNotFound, Message: "cart item not found", Status: http.StatusNotFound}
}

func NewEmptyCartError() *DomainError {
	return &DomainError{Code: CodeEmptyCart, Message: "cart is empty", Status: http.StatusBadRequest}
}

func NewInsufficientStockError(productName string) *DomainError {
	return &DomainError{
		Code:    CodeInsufficientStock,
		Message: "insufficient stock for product: " + productName,
		Status:  http.StatusBadRequest,
	}
}

func NewCouponError(code, message string) *DomainError {
	status := http.StatusBadRequest
	switch code {
	case CodeCouponNotFound:
		status = http.StatusNotFound
	case CodeCouponExhausted:
		status = http.StatusConflict
	}
	return &DomainError{Code: code, Message: message, Status: status}
}

func NewInvalidTransitionError(from, to string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition order from %s to %s", from, to),
		Status:  http.StatusConflict,
	}
}

func NewForbiddenError() *DomainError {
	return &DomainError{Code: CodeForbidden, Message: "you are not allowed to perform this action", Status: http.StatusForbidden}
}
