package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Connections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_connections_active",
			Help: "Currently open websocket connections",
		},
	)
	RoomsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "game_rooms_active",
			Help: "Rooms currently held by the registry",
		},
	)
	GamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_started_total",
			Help: "Matches that reached game-start",
		},
		[]string{"game"},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_finished_total",
			Help: "Matches that reached game-end",
		},
		[]string{"game", "outcome"},
	)
	EventsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_events_rejected_total",
			Help: "Client events rejected by the registry",
		},
		[]string{"code"},
	)
	RoomsReaped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_rooms_reaped_total",
			Help: "Rooms evicted by the reaper",
		},
	)
)

func init() {
	prometheus.MustRegister(Connections)
	prometheus.MustRegister(RoomsActive)
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(GamesFinished)
	prometheus.MustRegister(EventsRejected)
	prometheus.MustRegister(RoomsReaped)
}
