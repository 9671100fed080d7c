package shop

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateID          = errors.New("duplicate id")
	ErrUnknownComputer      = errors.New("unknown computer")
	ErrUnknownVariant       = errors.New("unknown variant")
	ErrNoMatchingComponent  = errors.New("no matching component")
	ErrNoMatchingPeripheral = errors.New("no matching peripheral")
	ErrDuplicateAttachment  = errors.New("duplicate attachment")
	ErrBudgetTooLow         = errors.New("budget too low")
	ErrInvalidProduct       = errors.New("invalid product")
	ErrInvalidBudget        = errors.New("invalid budget")
)

// IDError reports an id that already exists or does not exist in one of the
// catalog collections.
type IDError struct {
	Kind   error
	Entity Kind
	ID     int
}

func (e *IDError) Error() string {
	switch e.Kind {
	case ErrDuplicateID:
		return fmt.Sprintf("%s with id %d already exists", e.Entity, e.ID)
	case ErrUnknownComputer:
		return fmt.Sprintf("computer with id %d does not exist", e.ID)
	}
	return fmt.Sprintf("%s %d: %v", e.Entity, e.ID, e.Kind)
}

func (e *IDError) Unwrap() error { return e.Kind }

// VariantError reports a type tag that is not recognized, not attached to the
// named computer, or already attached to it.
type VariantError struct {
	Kind            error
	Entity          Kind
	Variant         string
	ComputerVariant ComputerVariant
	ComputerID      int
}

func (e *VariantError) Error() string {
	switch e.Kind {
	case ErrUnknownVariant:
		return fmt.Sprintf("%s type %q is invalid", e.Entity, e.Variant)
	case ErrNoMatchingComponent, ErrNoMatchingPeripheral:
		return fmt.Sprintf("%s %s does not exist in %s with id %d", e.Entity, e.Variant, e.ComputerVariant, e.ComputerID)
	case ErrDuplicateAttachment:
		return fmt.Sprintf("%s %s already exists in %s with id %d", e.Entity, e.Variant, e.ComputerVariant, e.ComputerID)
	}
	return fmt.Sprintf("%s %s: %v", e.Entity, e.Variant, e.Kind)
}

func (e *VariantError) Unwrap() error { return e.Kind }

type BudgetError struct {
	Budget decimal.Decimal
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("can't buy a computer with a budget of $%s", e.Budget.StringFixed(2))
}

func (e *BudgetError) Unwrap() error { return ErrBudgetTooLow }

// ValidationError reports a rejected input field. Kind defaults to
// ErrInvalidProduct.
type ValidationError struct {
	Kind   error
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return ErrInvalidProduct
}
