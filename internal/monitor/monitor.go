// Package monitor exposes Prometheus metrics for the game server.
package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server-wide instruments. All recording methods are
// nil-safe so wiring metrics stays optional.
type Metrics struct {
	ActiveLobbies          prometheus.Gauge
	LiveMatches            prometheus.Gauge
	MessagesReceived       prometheus.Counter
	CardAskRequests        prometheus.Counter
	SetDeclarationRequests prometheus.Counter
	MatchesCompleted       prometheus.Counter
}

// NewMetrics registers and returns the server metrics under the given
// namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		ActiveLobbies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_lobbies",
			Help:      "Number of open lobbies",
		}),
		LiveMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_matches",
			Help:      "Number of matches currently in play",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of client messages received",
		}),
		CardAskRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "card_ask_requests_total",
			Help:      "Total number of ask requests received, including rejected ones",
		}),
		SetDeclarationRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "set_declaration_requests_total",
			Help:      "Total number of declaration requests received, including rejected ones",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_completed_total",
			Help:      "Total number of matches played to completion",
		}),
	}

	prometheus.MustRegister(
		m.ActiveLobbies,
		m.LiveMatches,
		m.MessagesReceived,
		m.CardAskRequests,
		m.SetDeclarationRequests,
		m.MatchesCompleted,
	)

	return m
}

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) LobbyOpened() {
	if m != nil {
		m.ActiveLobbies.Inc()
	}
}

func (m *Metrics) LobbyClosed() {
	if m != nil {
		m.ActiveLobbies.Dec()
	}
}

func (m *Metrics) MatchStarted() {
	if m != nil {
		m.LiveMatches.Inc()
	}
}

func (m *Metrics) MatchCompleted() {
	if m != nil {
		m.LiveMatches.Dec()
		m.MatchesCompleted.Inc()
	}
}

func (m *Metrics) MessageReceived() {
	if m != nil {
		m.MessagesReceived.Inc()
	}
}

func (m *Metrics) AskRequested() {
	if m != nil {
		m.CardAskRequests.Inc()
	}
}

func (m *Metrics) DeclareRequested() {
	if m != nil {
		m.SetDeclarationRequests.Inc()
	}
}
