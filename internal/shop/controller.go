package shop

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

type ComputerSpec struct {
	Variant      string
	ID           int
	Manufacturer string
	Model        string
	Price        decimal.Decimal
	// Performance falls back to the variant default when not Valid.
	Performance decimal.NullDecimal
}

type PartSpec struct {
	ComputerID   int
	ID           int
	Variant      string
	Manufacturer string
	Model        string
	Price        decimal.Decimal
	Performance  decimal.Decimal
}

func (s PartSpec) info() ProductInfo {
	return ProductInfo{
		ID:                 s.ID,
		Manufacturer:       s.Manufacturer,
		Model:              s.Model,
		Price:              s.Price,
		OverallPerformance: s.Performance,
	}
}

type ComponentSpec struct {
	PartSpec
	Generation int
}

type PeripheralSpec struct {
	PartSpec
	ConnectionType string
}

type Op string

const (
	OpAdded   Op = "added"
	OpRemoved Op = "removed"
)

// Confirmation is the success payload of the add and remove operations.
type Confirmation struct {
	Op         Op     `json:"op"`
	Kind       Kind   `json:"kind"`
	Variant    string `json:"variant"`
	ID         int    `json:"id"`
	ComputerID int    `json:"computer_id"`
}

func (c Confirmation) String() string {
	switch {
	case c.Op == OpRemoved:
		return fmt.Sprintf("Successfully removed %s with id %d.", c.Variant, c.ID)
	case c.Kind == KindComputer:
		return fmt.Sprintf("Computer with id %d added successfully.", c.ID)
	case c.Kind == KindComponent:
		return fmt.Sprintf("Component %s with id %d added successfully in computer with id %d.", c.Variant, c.ID, c.ComputerID)
	default:
		return fmt.Sprintf("Peripheral %s with id %d added successfully in computer with id %d.", c.Variant, c.ID, c.ComputerID)
	}
}

type ComponentRemoval struct {
	Confirmation
	Component Component `json:"component"`
}

type PeripheralRemoval struct {
	Confirmation
	Peripheral Peripheral `json:"peripheral"`
}

type Counts struct {
	Computers   int `json:"computers"`
	Components  int `json:"components"`
	Peripherals int `json:"peripherals"`
}

type Option func(*Controller)

// WithCascadeOnPurchase controls whether buying a computer also drops its
// attached parts from the component and peripheral collections.
func WithCascadeOnPurchase(on bool) Option {
	return func(c *Controller) { c.cascade = on }
}

// Controller is the catalog. One mutex covers the three collections and the
// part lists of every computer so each attach/detach and its registration
// happen together.
type Controller struct {
	mu          sync.Mutex
	computers   map[int]*Computer
	components  map[int]*Component
	peripherals map[int]*Peripheral
	cascade     bool
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		computers:   map[int]*Computer{},
		components:  map[int]*Component{},
		peripherals: map[int]*Peripheral{},
		cascade:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) AddComputer(spec ComputerSpec) (Confirmation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.computers[spec.ID]; ok {
		return Confirmation{}, &IDError{Kind: ErrDuplicateID, Entity: KindComputer, ID: spec.ID}
	}

	variant, err := ParseComputerVariant(spec.Variant)
	if err != nil {
		return Confirmation{}, err
	}

	perf := defaultPerformance[variant]
	if spec.Performance.Valid {
		perf = spec.Performance.Decimal
	}
	info := ProductInfo{
		ID:                 spec.ID,
		Manufacturer:       spec.Manufacturer,
		Model:              spec.Model,
		Price:              spec.Price,
		OverallPerformance: perf,
	}
	if err := info.validate(); err != nil {
		return Confirmation{}, err
	}

	c.computers[spec.ID] = computerFactories[variant](info)

	return Confirmation{Op: OpAdded, Kind: KindComputer, Variant: string(variant), ID: spec.ID}, nil
}

func (c *Controller) AddComponent(spec ComponentSpec) (Confirmation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	computer, err := c.computer(spec.ComputerID)
	if err != nil {
		return Confirmation{}, err
	}
	if _, ok := c.components[spec.ID]; ok {
		return Confirmation{}, &IDError{Kind: ErrDuplicateID, Entity: KindComponent, ID: spec.ID}
	}

	variant, err := ParseComponentVariant(spec.Variant)
	if err != nil {
		return Confirmation{}, err
	}
	info := spec.info()
	if err := info.validate(); err != nil {
		return Confirmation{}, err
	}

	comp := componentFactories[variant](info, spec.Generation)
	if err := computer.AddComponent(comp); err != nil {
		return Confirmation{}, err
	}
	c.components[comp.ID] = comp

	return Confirmation{
		Op:         OpAdded,
		Kind:       KindComponent,
		Variant:    string(variant),
		ID:         comp.ID,
		ComputerID: computer.ID,
	}, nil
}

func (c *Controller) RemoveComponent(variant string, computerID int) (ComponentRemoval, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	computer, err := c.computer(computerID)
	if err != nil {
		return ComponentRemoval{}, err
	}

	removed, err := computer.RemoveComponent(ComponentVariant(variant))
	if err != nil {
		return ComponentRemoval{}, err
	}
	delete(c.components, removed.ID)

	return ComponentRemoval{
		Confirmation: Confirmation{
			Op:         OpRemoved,
			Kind:       KindComponent,
			Variant:    variant,
			ID:         removed.ID,
			ComputerID: computerID,
		},
		Component: *removed,
	}, nil
}

func (c *Controller) AddPeripheral(spec PeripheralSpec) (Confirmation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	computer, err := c.computer(spec.ComputerID)
	if err != nil {
		return Confirmation{}, err
	}
	if _, ok := c.peripherals[spec.ID]; ok {
		return Confirmation{}, &IDError{Kind: ErrDuplicateID, Entity: KindPeripheral, ID: spec.ID}
	}

	variant, err := ParsePeripheralVariant(spec.Variant)
	if err != nil {
		return Confirmation{}, err
	}
	info := spec.info()
	if err := info.validate(); err != nil {
		return Confirmation{}, err
	}

	p := peripheralFactories[variant](info, spec.ConnectionType)
	if err := computer.AddPeripheral(p); err != nil {
		return Confirmation{}, err
	}
	c.peripherals[p.ID] = p

	return Confirmation{
		Op:         OpAdded,
		Kind:       KindPeripheral,
		Variant:    string(variant),
		ID:         p.ID,
		ComputerID: computer.ID,
	}, nil
}

func (c *Controller) RemovePeripheral(variant string, computerID int) (PeripheralRemoval, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	computer, err := c.computer(computerID)
	if err != nil {
		return PeripheralRemoval{}, err
	}

	removed, err := computer.RemovePeripheral(PeripheralVariant(variant))
	if err != nil {
		return PeripheralRemoval{}, err
	}
	delete(c.peripherals, removed.ID)

	return PeripheralRemoval{
		Confirmation: Confirmation{
			Op:         OpRemoved,
			Kind:       KindPeripheral,
			Variant:    variant,
			ID:         removed.ID,
			ComputerID: computerID,
		},
		Peripheral: *removed,
	}, nil
}

func (c *Controller) BuyComputer(id int) (ComputerSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	computer, err := c.computer(id)
	if err != nil {
		return ComputerSnapshot{}, err
	}
	return c.sell(computer), nil
}

// BuyBestComputer sells the best performing computer whose effective price
// fits the budget. Equal performance goes to the lowest id.
func (c *Controller) BuyBestComputer(budget decimal.Decimal) (ComputerSnapshot, error) {
	if reason := amountProblem(budget); reason != "" {
		return ComputerSnapshot{}, &ValidationError{Kind: ErrInvalidBudget, Field: "budget", Reason: reason}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		best     *Computer
		bestPerf decimal.Decimal
	)
	for _, id := range c.sortedComputerIDs() {
		computer := c.computers[id]
		if computer.EffectivePrice().GreaterThan(budget) {
			continue
		}
		perf := computer.EffectivePerformance()
		if best == nil || perf.GreaterThan(bestPerf) {
			best, bestPerf = computer, perf
		}
	}

	if best == nil {
		return ComputerSnapshot{}, &BudgetError{Budget: budget}
	}
	return c.sell(best), nil
}

func (c *Controller) GetComputerData(id int) (ComputerSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	computer, err := c.computer(id)
	if err != nil {
		return ComputerSnapshot{}, err
	}
	return computer.Snapshot(), nil
}

func (c *Controller) ListComputers() []ComputerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ComputerSnapshot, 0, len(c.computers))
	for _, id := range c.sortedComputerIDs() {
		out = append(out, c.computers[id].Snapshot())
	}
	return out
}

func (c *Controller) Component(id int) (Component, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	comp, ok := c.components[id]
	if !ok {
		return Component{}, false
	}
	return *comp, true
}

func (c *Controller) Peripheral(id int) (Peripheral, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.peripherals[id]
	if !ok {
		return Peripheral{}, false
	}
	return *p, true
}

func (c *Controller) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Counts{
		Computers:   len(c.computers),
		Components:  len(c.components),
		Peripherals: len(c.peripherals),
	}
}

func (c *Controller) computer(id int) (*Computer, error) {
	computer, ok := c.computers[id]
	if !ok {
		return nil, &IDError{Kind: ErrUnknownComputer, Entity: KindComputer, ID: id}
	}
	return computer, nil
}

// sell must be called with mu held.
func (c *Controller) sell(computer *Computer) ComputerSnapshot {
	snap := computer.Snapshot()
	delete(c.computers, computer.ID)

	if c.cascade {
		for _, comp := range computer.components {
			delete(c.components, comp.ID)
		}
		for _, p := range computer.peripherals {
			delete(c.peripherals, p.ID)
		}
	}
	return snap
}

func (c *Controller) sortedComputerIDs() []int {
	ids := make([]int, 0, len(c.computers))
	for id := range c.computers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
