package service

import (
	"testing"
	"time"

	"github.com/lumis/servicedesk/internal/domain"
)

func TestYearMonth(t *testing.T) {
	if got := yearMonth(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)); got != "2602" {
		t.Fatalf("yearMonth = %q, want 2602", got)
	}
	if got := yearMonth(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)); got != "2512" {
		t.Fatalf("yearMonth = %q, want 2512", got)
	}
}

func TestFormatSequencePadding(t *testing.T) {
	cases := []struct {
		seq  int64
		want string
	}{
		{1, "0001"},
		{42, "0042"},
		{9999, "9999"},
		// Past four digits the counter renders as upper-case base-36,
		// still left-padded so the number keeps its width.
		{10000, "07PS"},
		{46655, "0ZZZ"},
		{46656, "1000"},
		{1679615, "ZZZZ"},
	}
	for _, tc := range cases {
		got := formatSequence(tc.seq)
		if got != tc.want {
			t.Errorf("formatSequence(%d) = %q, want %q", tc.seq, got, tc.want)
		}
		if len(got) != 4 {
			t.Errorf("formatSequence(%d) = %q, want width 4", tc.seq, got)
		}
	}
}

func TestFormatTicketNumber(t *testing.T) {
	cases := []struct {
		ticketType domain.TicketType
		channel    string
		want       string
	}{
		{domain.TicketTypeInquiry, "-", "K2602-0001"},
		{domain.TicketTypeRMA, "D", "RMA-D-2602-0001"},
		{domain.TicketTypeDealerRepair, "-", "SVC-D-2602-0001"},
	}
	for _, tc := range cases {
		if got := FormatTicketNumber(tc.ticketType, tc.channel, "2602", 1); got != tc.want {
			t.Errorf("FormatTicketNumber(%s) = %q, want %q", tc.ticketType, got, tc.want)
		}
	}
}
