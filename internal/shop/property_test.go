package shop

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawMoney(t *rapid.T, label string) decimal.Decimal {
	return decimal.New(int64(rapid.IntRange(0, 500000).Draw(t, label)), -2)
}

// TestProperty_EffectiveValues checks price = base + all parts and
// performance = base + average(components).
func TestProperty_EffectiveValues(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewController()
		basePrice := drawMoney(t, "basePrice")
		basePerf := drawMoney(t, "basePerf")
		_, err := c.AddComputer(ComputerSpec{
			Variant: "DesktopComputer", ID: 1, Manufacturer: "Dell", Model: "XPS",
			Price: basePrice, Performance: decimal.NewNullDecimal(basePerf),
		})
		require.NoError(t, err)

		wantPrice := basePrice
		compPerf := decimal.Zero
		numComponents := rapid.IntRange(0, 8).Draw(t, "numComponents")
		for i := 0; i < numComponents; i++ {
			price := drawMoney(t, fmt.Sprintf("componentPrice-%d", i))
			perf := drawMoney(t, fmt.Sprintf("componentPerf-%d", i))
			variant := rapid.SampledFrom(ComponentVariants()).Draw(t, fmt.Sprintf("componentVariant-%d", i))
			_, err := c.AddComponent(ComponentSpec{PartSpec: PartSpec{
				ComputerID: 1, ID: i + 1, Variant: variant, Manufacturer: "m", Model: "m",
				Price: price, Performance: perf,
			}})
			require.NoError(t, err)
			wantPrice = wantPrice.Add(price)
			compPerf = compPerf.Add(perf)
		}

		numPeripherals := rapid.IntRange(0, 5).Draw(t, "numPeripherals")
		for i := 0; i < numPeripherals; i++ {
			price := drawMoney(t, fmt.Sprintf("peripheralPrice-%d", i))
			variant := rapid.SampledFrom(PeripheralVariants()).Draw(t, fmt.Sprintf("peripheralVariant-%d", i))
			_, err := c.AddPeripheral(PeripheralSpec{PartSpec: PartSpec{
				ComputerID: 1, ID: i + 1, Variant: variant, Manufacturer: "m", Model: "m",
				Price: price, Performance: decimal.NewFromInt(1),
			}})
			require.NoError(t, err)
			wantPrice = wantPrice.Add(price)
		}

		snap, err := c.GetComputerData(1)
		require.NoError(t, err)
		require.True(t, snap.Price.Equal(wantPrice), "price %s != %s", snap.Price, wantPrice)

		wantPerf := basePerf
		if numComponents > 0 {
			wantPerf = basePerf.Add(compPerf.Div(decimal.NewFromInt(int64(numComponents))))
		}
		require.True(t, snap.OverallPerformance.Equal(wantPerf), "performance %s != %s", snap.OverallPerformance, wantPerf)
	})
}

// TestProperty_FlatCollectionsMatchComputers runs random add/remove sequences
// and checks that every registered part is attached to exactly one computer.
func TestProperty_FlatCollectionsMatchComputers(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewController()
		numComputers := rapid.IntRange(1, 4).Draw(t, "numComputers")
		for id := 1; id <= numComputers; id++ {
			_, err := c.AddComputer(ComputerSpec{
				Variant: "Laptop", ID: id, Manufacturer: "m", Model: "m", Price: decimal.NewFromInt(100),
			})
			require.NoError(t, err)
		}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			computerID := rapid.IntRange(1, numComputers+1).Draw(t, fmt.Sprintf("computer-%d", i))
			partID := rapid.IntRange(1, 10).Draw(t, fmt.Sprintf("part-%d", i))
			before := c.Counts()

			switch rapid.IntRange(0, 4).Draw(t, fmt.Sprintf("op-%d", i)) {
			case 0:
				variant := rapid.SampledFrom(ComponentVariants()).Draw(t, fmt.Sprintf("cv-%d", i))
				_, err := c.AddComponent(ComponentSpec{PartSpec: PartSpec{
					ComputerID: computerID, ID: partID, Variant: variant, Manufacturer: "m", Model: "m",
				}})
				if err != nil {
					require.Equal(t, before, c.Counts())
				}
			case 1:
				variant := rapid.SampledFrom(PeripheralVariants()).Draw(t, fmt.Sprintf("pv-%d", i))
				_, err := c.AddPeripheral(PeripheralSpec{PartSpec: PartSpec{
					ComputerID: computerID, ID: partID, Variant: variant, Manufacturer: "m", Model: "m",
				}})
				if err != nil {
					require.Equal(t, before, c.Counts())
				}
			case 2:
				variant := rapid.SampledFrom(ComponentVariants()).Draw(t, fmt.Sprintf("rcv-%d", i))
				_, err := c.RemoveComponent(variant, computerID)
				if err != nil {
					require.Equal(t, before, c.Counts())
				} else {
					require.Equal(t, before.Components-1, c.Counts().Components)
				}
			case 3:
				variant := rapid.SampledFrom(PeripheralVariants()).Draw(t, fmt.Sprintf("rpv-%d", i))
				_, err := c.RemovePeripheral(variant, computerID)
				if err != nil {
					require.Equal(t, before, c.Counts())
				} else {
					require.Equal(t, before.Peripherals-1, c.Counts().Peripherals)
				}
			case 4:
				_, err := c.AddComputer(ComputerSpec{
					Variant: "Laptop", ID: computerID, Manufacturer: "m", Model: "m", Price: decimal.NewFromInt(1),
				})
				if computerID <= numComputers {
					require.ErrorIs(t, err, ErrDuplicateID)
				} else if err == nil {
					numComputers++
				}
			}

			assertSynchronized(t, c)
		}
	})
}

func assertSynchronized(t *rapid.T, c *Controller) {
	seenComponents := map[int]int{}
	seenPeripherals := map[int]int{}
	for _, snap := range c.ListComputers() {
		for _, v := range snap.Components {
			seenComponents[v.ID]++
		}
		for _, v := range snap.Peripherals {
			seenPeripherals[v.ID]++
		}
	}

	counts := c.Counts()
	require.Len(t, seenComponents, counts.Components)
	require.Len(t, seenPeripherals, counts.Peripherals)
	for id, n := range seenComponents {
		require.Equal(t, 1, n, "component %d attached %d times", id, n)
		_, ok := c.Component(id)
		require.True(t, ok, "component %d attached but not registered", id)
	}
	for id, n := range seenPeripherals {
		require.Equal(t, 1, n, "peripheral %d attached %d times", id, n)
		_, ok := c.Peripheral(id)
		require.True(t, ok, "peripheral %d attached but not registered", id)
	}
}
