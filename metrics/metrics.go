package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricewatch_fetch_total",
			Help: "Price fetch attempts by result (ok or error).",
		},
		[]string{"result"},
	)

	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricewatch_signals_total",
			Help: "Crossover classifications by signal (Buy, Sell, None).",
		},
		[]string{"signal"},
	)

	TradesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricewatch_trades_recorded_total",
			Help: "Trades appended to the in-run journal.",
		},
	)

	SinkErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricewatch_sink_errors_total",
			Help: "Readings a signal sink failed to deliver.",
		},
	)

	LastPrice = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pricewatch_last_price",
			Help: "Most recently fetched price.",
		},
	)

	MovingAverage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pricewatch_moving_average",
			Help: "Current mean of each rolling window.",
		},
		[]string{"window"},
	)
)

func init() {
	prometheus.MustRegister(FetchTotal, SignalsTotal, TradesRecorded, SinkErrors, LastPrice, MovingAverage)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
