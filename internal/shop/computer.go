package shop

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Computer owns its attached parts. The slices keep insertion order, which
// decides which part RemoveComponent and RemovePeripheral pick first.
type Computer struct {
	ProductInfo
	Variant     ComputerVariant
	components  []*Component
	peripherals []*Peripheral
}

func newComputer(v ComputerVariant, p ProductInfo) *Computer {
	return &Computer{ProductInfo: p, Variant: v}
}

// EffectivePrice is the base price plus every attached part.
func (c *Computer) EffectivePrice() decimal.Decimal {
	total := c.Price
	for _, comp := range c.components {
		total = total.Add(comp.Price)
	}
	for _, p := range c.peripherals {
		total = total.Add(p.Price)
	}
	return total
}

// EffectivePerformance is the base performance plus the average of the
// attached components. Peripherals do not count.
func (c *Computer) EffectivePerformance() decimal.Decimal {
	perf := make([]decimal.Decimal, 0, len(c.components))
	for _, comp := range c.components {
		perf = append(perf, comp.OverallPerformance)
	}
	return c.OverallPerformance.Add(average(perf))
}

func (c *Computer) PeripheralsAveragePerformance() decimal.Decimal {
	perf := make([]decimal.Decimal, 0, len(c.peripherals))
	for _, p := range c.peripherals {
		perf = append(perf, p.OverallPerformance)
	}
	return average(perf)
}

func (c *Computer) Components() []Component {
	out := make([]Component, 0, len(c.components))
	for _, comp := range c.components {
		out = append(out, *comp)
	}
	return out
}

func (c *Computer) Peripherals() []Peripheral {
	out := make([]Peripheral, 0, len(c.peripherals))
	for _, p := range c.peripherals {
		out = append(out, *p)
	}
	return out
}

func (c *Computer) AddComponent(comp *Component) error {
	for _, existing := range c.components {
		if existing == comp || (existing.Variant == comp.Variant && existing.ID == comp.ID) {
			return &VariantError{
				Kind:            ErrDuplicateAttachment,
				Entity:          KindComponent,
				Variant:         string(comp.Variant),
				ComputerVariant: c.Variant,
				ComputerID:      c.ID,
			}
		}
	}
	c.components = append(c.components, comp)
	return nil
}

func (c *Computer) RemoveComponent(v ComponentVariant) (*Component, error) {
	for i, comp := range c.components {
		if comp.Variant == v {
			c.components = append(c.components[:i:i], c.components[i+1:]...)
			return comp, nil
		}
	}
	return nil, &VariantError{
		Kind:            ErrNoMatchingComponent,
		Entity:          KindComponent,
		Variant:         string(v),
		ComputerVariant: c.Variant,
		ComputerID:      c.ID,
	}
}

func (c *Computer) AddPeripheral(p *Peripheral) error {
	for _, existing := range c.peripherals {
		if existing == p || (existing.Variant == p.Variant && existing.ID == p.ID) {
			return &VariantError{
				Kind:            ErrDuplicateAttachment,
				Entity:          KindPeripheral,
				Variant:         string(p.Variant),
				ComputerVariant: c.Variant,
				ComputerID:      c.ID,
			}
		}
	}
	c.peripherals = append(c.peripherals, p)
	return nil
}

func (c *Computer) RemovePeripheral(v PeripheralVariant) (*Peripheral, error) {
	for i, p := range c.peripherals {
		if p.Variant == v {
			c.peripherals = append(c.peripherals[:i:i], c.peripherals[i+1:]...)
			return p, nil
		}
	}
	return nil, &VariantError{
		Kind:            ErrNoMatchingPeripheral,
		Entity:          KindPeripheral,
		Variant:         string(v),
		ComputerVariant: c.Variant,
		ComputerID:      c.ID,
	}
}

// Snapshot copies the computer and its parts as they are right now.
func (c *Computer) Snapshot() ComputerSnapshot {
	s := ComputerSnapshot{
		ID:                            c.ID,
		Variant:                       string(c.Variant),
		Manufacturer:                  c.Manufacturer,
		Model:                         c.Model,
		BasePrice:                     c.Price,
		BasePerformance:               c.OverallPerformance,
		Price:                         c.EffectivePrice(),
		OverallPerformance:            c.EffectivePerformance(),
		PeripheralsAveragePerformance: c.PeripheralsAveragePerformance(),
		Components:                    make([]ComponentView, 0, len(c.components)),
		Peripherals:                   make([]PeripheralView, 0, len(c.peripherals)),
	}
	for _, comp := range c.components {
		s.Components = append(s.Components, comp.View())
	}
	for _, p := range c.peripherals {
		s.Peripherals = append(s.Peripherals, p.View())
	}
	return s
}

func (c *Computer) String() string { return c.Snapshot().String() }

type ComputerSnapshot struct {
	ID                            int              `json:"id"`
	Variant                       string           `json:"variant"`
	Manufacturer                  string           `json:"manufacturer"`
	Model                         string           `json:"model"`
	BasePrice                     decimal.Decimal  `json:"base_price"`
	BasePerformance               decimal.Decimal  `json:"base_performance"`
	Price                         decimal.Decimal  `json:"price"`
	OverallPerformance            decimal.Decimal  `json:"overall_performance"`
	PeripheralsAveragePerformance decimal.Decimal  `json:"peripherals_average_performance"`
	Components                    []ComponentView  `json:"components"`
	Peripherals                   []PeripheralView `json:"peripherals"`
}

func (s ComputerSnapshot) String() string {
	var b strings.Builder

	info := ProductInfo{ID: s.ID, Manufacturer: s.Manufacturer, Model: s.Model}
	b.WriteString(productLine(s.Variant, info, s.OverallPerformance, s.Price))
	b.WriteString("\n")

	fmt.Fprintf(&b, " Components (%d):\n", len(s.Components))
	for _, v := range s.Components {
		fmt.Fprintf(&b, "  %s\n", v.component())
	}

	fmt.Fprintf(&b, " Peripherals (%d); Average Overall Performance (%s):\n",
		len(s.Peripherals), s.PeripheralsAveragePerformance.StringFixed(2))
	for _, v := range s.Peripherals {
		fmt.Fprintf(&b, "  %s\n", v.peripheral())
	}

	return strings.TrimSpace(b.String())
}

func (v ComponentView) component() Component {
	return Component{
		ProductInfo: ProductInfo{
			ID:                 v.ID,
			Manufacturer:       v.Manufacturer,
			Model:              v.Model,
			Price:              v.Price,
			OverallPerformance: v.OverallPerformance,
		},
		Variant:    ComponentVariant(v.Variant),
		Generation: v.Generation,
	}
}

func (v PeripheralView) peripheral() Peripheral {
	return Peripheral{
		ProductInfo: ProductInfo{
			ID:                 v.ID,
			Manufacturer:       v.Manufacturer,
			Model:              v.Model,
			Price:              v.Price,
			OverallPerformance: v.OverallPerformance,
		},
		Variant:        PeripheralVariant(v.Variant),
		ConnectionType: v.ConnectionType,
	}
}
