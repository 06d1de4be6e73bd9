package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents the standard error body returned to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorKind tags a DomainError so callers can switch on it.
type ErrorKind string

// Error kinds produced by the catalogue and the order engine.
const (
	KindInvalidInput      ErrorKind = "INVALID_INPUT"
	KindProductNotFound   ErrorKind = "PRODUCT_NOT_FOUND"
	KindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
	KindPersistence       ErrorKind = "PERSISTENCE"
)

// Client-facing validation messages shared by the HTTP boundary and the services.
const (
	MsgProductFieldsRequired = "Nom, prix et stock requis"
	MsgProductNegative       = "Le prix et le stock doivent être positifs"
	MsgStockNotInteger       = "Le stock doit être un nombre entier"
	MsgItemsInvalid          = "Items invalides"
	MsgQuantityInvalid       = "La quantité doit être supérieure à zéro"
	MsgTotalOutOfRange       = "Total de commande hors limites"
)

// DomainError is the single error type returned by business operations.
type DomainError struct {
	Kind        ErrorKind
	Message     string
	ProductID   int
	ProductName string
	Err         error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError reports a malformed or incomplete request.
func NewInvalidInputError(message string) *DomainError {
	return &DomainError{Kind: KindInvalidInput, Message: message}
}

// NewProductNotFoundError reports a produitId with no matching product.
func NewProductNotFoundError(productID int) *DomainError {
	return &DomainError{
		Kind:      KindProductNotFound,
		Message:   fmt.Sprintf("Produit %d introuvable", productID),
		ProductID: productID,
	}
}

// NewInsufficientStockError reports a quantity above the product's current stock.
func NewInsufficientStockError(product *Product) *DomainError {
	return &DomainError{
		Kind:        KindInsufficientStock,
		Message:     fmt.Sprintf("Stock insuffisant pour %s", product.Name),
		ProductID:   product.ID,
		ProductName: product.Name,
	}
}

// NewPersistenceError wraps a store failure. Its message is never shown to clients.
func NewPersistenceError(op string, err error) *DomainError {
	return &DomainError{
		Kind:    KindPersistence,
		Message: fmt.Sprintf("failed to %s", op),
		Err:     err,
	}
}

// KindOf returns the kind of the first DomainError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
