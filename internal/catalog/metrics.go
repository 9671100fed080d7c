package catalog

import (
	"github.com/prometheus/client_golang/prometheus"

	"OnlineShop/internal/shop"
)

type shopMetrics struct {
	sold    *prometheus.CounterVec
	revenue prometheus.Counter
}

func newShopMetrics(reg prometheus.Registerer, ctrl *shop.Controller) *shopMetrics {
	m := &shopMetrics{
		sold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_computers_sold_total",
			Help: "Computers sold, by variant",
		}, []string{"variant"}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_revenue_total",
			Help: "Sum of effective prices of sold computers",
		}),
	}
	reg.MustRegister(m.sold, m.revenue)

	entities := func(kind shop.Kind, pick func(shop.Counts) int) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "shop_catalog_entities",
			Help:        "Entities currently in the catalog",
			ConstLabels: prometheus.Labels{"kind": string(kind)},
		}, func() float64 { return float64(pick(ctrl.Counts())) })
	}
	reg.MustRegister(
		entities(shop.KindComputer, func(c shop.Counts) int { return c.Computers }),
		entities(shop.KindComponent, func(c shop.Counts) int { return c.Components }),
		entities(shop.KindPeripheral, func(c shop.Counts) int { return c.Peripherals }),
	)
	return m
}

func (m *shopMetrics) observeSale(s shop.ComputerSnapshot) {
	if m == nil {
		return
	}
	m.sold.WithLabelValues(s.Variant).Inc()
	m.revenue.Add(s.Price.InexactFloat64())
}
