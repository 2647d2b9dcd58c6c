package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	viewerOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lightbox",
		Subsystem: "viewer",
		Name:      "operations_total",
		Help:      "Total viewer state operations, by operation.",
	}, []string{"op"})

	keyPressesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lightbox",
		Subsystem: "viewer",
		Name:      "key_presses_total",
		Help:      "Key presses the router acted on, by key.",
	}, []string{"key"})

	viewerOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lightbox",
		Subsystem: "viewer",
		Name:      "open",
		Help:      "1 while the viewer is open.",
	})

	collectionSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lightbox",
		Subsystem: "viewer",
		Name:      "items",
		Help:      "Number of items in the collection.",
	})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lightbox",
		Subsystem: "server",
		Name:      "websocket_connections_active",
		Help:      "Number of connected state stream clients.",
	})
)
