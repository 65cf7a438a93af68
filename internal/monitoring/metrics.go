package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Bookings created, by initial status",
		},
		[]string{"status"},
	)

	coinFlips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lucky_confirm_flips_total",
			Help: "Lucky-confirm coin flips, by result",
		},
		[]string{"result"},
	)

	cancellations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_cancellations_total",
			Help: "Bookings cancelled",
		},
	)

	chainPromotions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upgrade_chain_promotions_total",
			Help: "Promotions triggered by cancellations, by transition",
		},
		[]string{"transition"},
	)
)

func TrackBookingCreated(status string) {
	bookingsCreated.WithLabelValues(status).Inc()
}

func TrackCoinFlip(result string) {
	coinFlips.WithLabelValues(result).Inc()
}

func TrackCancellation() {
	cancellations.Inc()
}

func TrackChainPromotion(transition string) {
	chainPromotions.WithLabelValues(transition).Inc()
}
