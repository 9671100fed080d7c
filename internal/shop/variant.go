package shop

import (
	"sort"

	"github.com/shopspring/decimal"
)

type ComputerVariant string

const (
	DesktopComputer ComputerVariant = "DesktopComputer"
	Laptop          ComputerVariant = "Laptop"
)

type ComponentVariant string

const (
	CentralProcessingUnit ComponentVariant = "CentralProcessingUnit"
	Motherboard           ComponentVariant = "Motherboard"
	PowerSupply           ComponentVariant = "PowerSupply"
	RandomAccessMemory    ComponentVariant = "RandomAccessMemory"
	SolidStateDrive       ComponentVariant = "SolidStateDrive"
	VideoCard             ComponentVariant = "VideoCard"
)

type PeripheralVariant string

const (
	Headset  PeripheralVariant = "Headset"
	Keyboard PeripheralVariant = "Keyboard"
	Monitor  PeripheralVariant = "Monitor"
	Mouse    PeripheralVariant = "Mouse"
)

type (
	computerFactory   func(ProductInfo) *Computer
	componentFactory  func(ProductInfo, int) *Component
	peripheralFactory func(ProductInfo, string) *Peripheral
)

// Base performance each computer variant gets when the caller does not set one.
var defaultPerformance = map[ComputerVariant]decimal.Decimal{
	DesktopComputer: decimal.NewFromInt(15),
	Laptop:          decimal.NewFromInt(10),
}

var computerFactories = map[ComputerVariant]computerFactory{
	DesktopComputer: func(p ProductInfo) *Computer { return newComputer(DesktopComputer, p) },
	Laptop:          func(p ProductInfo) *Computer { return newComputer(Laptop, p) },
}

var componentFactories = map[ComponentVariant]componentFactory{
	CentralProcessingUnit: componentOf(CentralProcessingUnit),
	Motherboard:           componentOf(Motherboard),
	PowerSupply:           componentOf(PowerSupply),
	RandomAccessMemory:    componentOf(RandomAccessMemory),
	SolidStateDrive:       componentOf(SolidStateDrive),
	VideoCard:             componentOf(VideoCard),
}

var peripheralFactories = map[PeripheralVariant]peripheralFactory{
	Headset:  peripheralOf(Headset),
	Keyboard: peripheralOf(Keyboard),
	Monitor:  peripheralOf(Monitor),
	Mouse:    peripheralOf(Mouse),
}

func componentOf(v ComponentVariant) componentFactory {
	return func(p ProductInfo, generation int) *Component {
		return &Component{ProductInfo: p, Variant: v, Generation: generation}
	}
}

func peripheralOf(v PeripheralVariant) peripheralFactory {
	return func(p ProductInfo, connectionType string) *Peripheral {
		return &Peripheral{ProductInfo: p, Variant: v, ConnectionType: connectionType}
	}
}

func ParseComputerVariant(s string) (ComputerVariant, error) {
	v := ComputerVariant(s)
	if _, ok := computerFactories[v]; !ok {
		return "", &VariantError{Kind: ErrUnknownVariant, Entity: KindComputer, Variant: s}
	}
	return v, nil
}

func ParseComponentVariant(s string) (ComponentVariant, error) {
	v := ComponentVariant(s)
	if _, ok := componentFactories[v]; !ok {
		return "", &VariantError{Kind: ErrUnknownVariant, Entity: KindComponent, Variant: s}
	}
	return v, nil
}

func ParsePeripheralVariant(s string) (PeripheralVariant, error) {
	v := PeripheralVariant(s)
	if _, ok := peripheralFactories[v]; !ok {
		return "", &VariantError{Kind: ErrUnknownVariant, Entity: KindPeripheral, Variant: s}
	}
	return v, nil
}

func ComputerVariants() []string   { return sortedKeys(computerFactories) }
func ComponentVariants() []string  { return sortedKeys(componentFactories) }
func PeripheralVariants() []string { return sortedKeys(peripheralFactories) }

func sortedKeys[K ~string, V any](m map[K]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}
