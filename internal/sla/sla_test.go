package sla

import (
	"testing"
	"time"

	"github.com/lumis/servicedesk/internal/domain"
)

func TestDueAtPerType(t *testing.T) {
	cfg := DefaultConfig()
	created := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)

	if got := cfg.DueAt(domain.TicketTypeRMA, created); !got.Equal(time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("rma due = %v, want 2026-02-17T10:00Z", got)
	}
	if got := cfg.DueAt(domain.TicketTypeInquiry, created); !got.Equal(created.Add(8 * time.Hour)) {
		t.Errorf("inquiry due = %v, want created+8h", got)
	}
	if got := cfg.DueAt(domain.TicketTypeDealerRepair, created); !got.Equal(created.Add(72 * time.Hour)) {
		t.Errorf("dealer_repair due = %v, want created+72h", got)
	}
}

func TestStatusAtThresholds(t *testing.T) {
	entered := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	due := entered.Add(48 * time.Hour)

	cases := []struct {
		at   time.Time
		want domain.SlaStatus
	}{
		{entered, domain.SlaNormal},
		{entered.Add(30 * time.Hour), domain.SlaNormal},
		// 25% of 48h is 12h: warning window opens 36h in.
		{entered.Add(36 * time.Hour), domain.SlaWarning},
		{entered.Add(47 * time.Hour), domain.SlaWarning},
		{due, domain.SlaBreached},
		{due.Add(time.Hour), domain.SlaBreached},
	}
	for _, tc := range cases {
		if got := StatusAt(due, entered, tc.at); got != tc.want {
			t.Errorf("StatusAt at %v = %s, want %s", tc.at, got, tc.want)
		}
	}
}

func TestStatusSeverityIsMonotonic(t *testing.T) {
	entered := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	due := entered.Add(48 * time.Hour)

	rank := map[domain.SlaStatus]int{
		domain.SlaNormal:   0,
		domain.SlaWarning:  1,
		domain.SlaBreached: 2,
	}
	prev := -1
	for at := entered; at.Before(due.Add(6 * time.Hour)); at = at.Add(30 * time.Minute) {
		got := rank[StatusAt(due, entered, at)]
		if got < prev {
			t.Fatalf("severity regressed at %v", at)
		}
		prev = got
	}
}

func TestWorsePicksHigherSeverity(t *testing.T) {
	cases := []struct {
		a, b, want domain.SlaStatus
	}{
		{domain.SlaNormal, domain.SlaBreached, domain.SlaBreached},
		{domain.SlaWarning, domain.SlaNormal, domain.SlaWarning},
		{domain.SlaBreached, domain.SlaWarning, domain.SlaBreached},
		{domain.SlaNormal, domain.SlaNormal, domain.SlaNormal},
	}
	for _, tc := range cases {
		if got := Worse(tc.a, tc.b); got != tc.want {
			t.Errorf("Worse(%s, %s) = %s, want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEvaluateFreezesAtTerminal(t *testing.T) {
	entered := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	due := entered.Add(48 * time.Hour)
	ticket := &domain.Ticket{
		Type:          domain.TicketTypeRMA,
		SlaDueAt:      &due,
		SlaStatus:     domain.SlaWarning,
		NodeEnteredAt: entered,
	}

	// Well past the deadline, but the ticket is closed: keep the stored state.
	got := Evaluate(ticket, due.Add(100*time.Hour), true)
	if got != domain.SlaWarning {
		t.Fatalf("terminal evaluate = %s, want stored %s", got, domain.SlaWarning)
	}

	// Open ticket at the same instant breaches.
	got = Evaluate(ticket, due.Add(100*time.Hour), false)
	if got != domain.SlaBreached {
		t.Fatalf("open evaluate = %s, want %s", got, domain.SlaBreached)
	}
}

func TestEvaluateWithoutDeadline(t *testing.T) {
	ticket := &domain.Ticket{Type: domain.TicketTypeInquiry}
	if got := Evaluate(ticket, time.Now(), false); got != domain.SlaNormal {
		t.Fatalf("no-deadline evaluate = %s, want %s", got, domain.SlaNormal)
	}
}
