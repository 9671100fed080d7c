// Package shop holds the computer shop domain model and the catalog
// controller that keeps computers, components and peripherals in sync.
package shop

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindComputer   Kind = "computer"
	KindComponent  Kind = "component"
	KindPeripheral Kind = "peripheral"
)

// ProductInfo is the identity and base values shared by every entity.
type ProductInfo struct {
	ID                 int
	Manufacturer       string
	Model              string
	Price              decimal.Decimal
	OverallPerformance decimal.Decimal
}

// Amounts carry at most 8 decimal places and stay within ±1e12.
const (
	minAmountExp = -8
	maxAmountExp = 12
)

var maxAmount = decimal.New(1, maxAmountExp)

// amountProblem returns why d is out of range, or "" if it is fine. The
// exponent is checked first so the magnitude comparison never rescales an
// unbounded value.
func amountProblem(d decimal.Decimal) string {
	switch {
	case d.Exponent() < minAmountExp:
		return fmt.Sprintf("can not have more than %d decimal places", -minAmountExp)
	case d.Exponent() > maxAmountExp, d.Abs().GreaterThan(maxAmount):
		return "can not exceed " + maxAmount.String()
	}
	return ""
}

func (p ProductInfo) validate() error {
	if reason := amountProblem(p.Price); reason != "" {
		return &ValidationError{Field: "price", Reason: reason}
	}
	if reason := amountProblem(p.OverallPerformance); reason != "" {
		return &ValidationError{Field: "overall performance", Reason: reason}
	}

	switch {
	case p.ID <= 0:
		return &ValidationError{Field: "id", Reason: "must be greater than 0"}
	case strings.TrimSpace(p.Manufacturer) == "":
		return &ValidationError{Field: "manufacturer", Reason: "can not be empty"}
	case strings.TrimSpace(p.Model) == "":
		return &ValidationError{Field: "model", Reason: "can not be empty"}
	case p.Price.IsNegative():
		return &ValidationError{Field: "price", Reason: "can not be negative"}
	case p.OverallPerformance.IsNegative():
		return &ValidationError{Field: "overall performance", Reason: "can not be negative"}
	}
	return nil
}

func productLine(variant string, p ProductInfo, performance, price decimal.Decimal) string {
	return fmt.Sprintf("Overall Performance: %s. Price: %s - %s: %s %s (Id: %d)",
		performance.StringFixed(2),
		price.StringFixed(2),
		variant,
		p.Manufacturer,
		p.Model,
		p.ID,
	)
}

func average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}
