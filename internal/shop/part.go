package shop

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Component struct {
	ProductInfo
	Variant    ComponentVariant
	Generation int
}

func (c Component) String() string {
	return fmt.Sprintf("%s Generation: %d",
		productLine(string(c.Variant), c.ProductInfo, c.OverallPerformance, c.Price), c.Generation)
}

func (c Component) View() ComponentView {
	return ComponentView{
		ID:                 c.ID,
		Variant:            string(c.Variant),
		Manufacturer:       c.Manufacturer,
		Model:              c.Model,
		Price:              c.Price,
		OverallPerformance: c.OverallPerformance,
		Generation:         c.Generation,
	}
}

type Peripheral struct {
	ProductInfo
	Variant        PeripheralVariant
	ConnectionType string
}

func (p Peripheral) String() string {
	return fmt.Sprintf("%s Connection Type: %s",
		productLine(string(p.Variant), p.ProductInfo, p.OverallPerformance, p.Price), p.ConnectionType)
}

func (p Peripheral) View() PeripheralView {
	return PeripheralView{
		ID:                 p.ID,
		Variant:            string(p.Variant),
		Manufacturer:       p.Manufacturer,
		Model:              p.Model,
		Price:              p.Price,
		OverallPerformance: p.OverallPerformance,
		ConnectionType:     p.ConnectionType,
	}
}

type ComponentView struct {
	ID                 int             `json:"id"`
	Variant            string          `json:"variant"`
	Manufacturer       string          `json:"manufacturer"`
	Model              string          `json:"model"`
	Price              decimal.Decimal `json:"price"`
	OverallPerformance decimal.Decimal `json:"overall_performance"`
	Generation         int             `json:"generation"`
}

type PeripheralView struct {
	ID                 int             `json:"id"`
	Variant            string          `json:"variant"`
	Manufacturer       string          `json:"manufacturer"`
	Model              string          `json:"model"`
	Price              decimal.Decimal `json:"price"`
	OverallPerformance decimal.Decimal `json:"overall_performance"`
	ConnectionType     string          `json:"connection_type"`
}
