package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotfavs_searches_total",
		Help: "Feed searches by outcome (ok, empty, unavailable)",
	}, []string{"outcome"})

	Hydrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotfavs_hydrations_total",
		Help: "Favorite rehydration fetches by outcome (ok, failed, untitled, stale)",
	}, []string{"outcome"})

	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotfavs_favorite_mutations_total",
		Help: "Favorite add/remove operations that changed the set",
	}, []string{"kind"})

	SlotWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotfavs_slot_write_errors_total",
		Help: "Failed writes of the favorites slot",
	})

	Favorites = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hotfavs_favorites",
		Help: "Number of ids in the durable favorites sequence",
	})
)
