package monitor

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRequestCounters verifies the ask/declare counters count inbound
// requests under names that say so, since rejected requests are included.
func TestRequestCounters(t *testing.T) {
	m := NewMetrics("literature_test")

	m.AskRequested()
	m.AskRequested()
	m.DeclareRequested()

	if got := testutil.ToFloat64(m.CardAskRequests); got != 2 {
		t.Errorf("card ask requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.SetDeclarationRequests); got != 1 {
		t.Errorf("set declaration requests = %v, want 1", got)
	}

	if n := testutil.CollectAndCount(m.CardAskRequests, "literature_test_card_ask_requests_total"); n != 1 {
		t.Errorf("card ask counter name mismatch, matched %d series", n)
	}
	if n := testutil.CollectAndCount(m.SetDeclarationRequests, "literature_test_set_declaration_requests_total"); n != 1 {
		t.Errorf("set declaration counter name mismatch, matched %d series", n)
	}
}

// TestNilMetricsSafe verifies every recording method is a no-op on nil.
func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	m.LobbyOpened()
	m.LobbyClosed()
	m.MatchStarted()
	m.MatchCompleted()
	m.MessageReceived()
	m.AskRequested()
	m.DeclareRequested()
}
