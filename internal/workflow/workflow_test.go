package workflow

import (
	"testing"

	"github.com/lumis/servicedesk/internal/domain"
)

func TestValidateTables(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("tables inconsistent: %v", err)
	}
}

func TestNormalizeLegacySpellings(t *testing.T) {
	cases := []struct {
		ticketType domain.TicketType
		raw        string
		want       domain.Status
	}{
		{domain.TicketTypeInquiry, "draft", domain.StatusDraft},
		{domain.TicketTypeInquiry, "In Progress", domain.StatusInProgress},
		{domain.TicketTypeInquiry, "waiting_customer", domain.StatusAwaitingFeedback},
		{domain.TicketTypeInquiry, "closed", domain.StatusAutoClosed},
		{domain.TicketTypeRMA, "Pending", domain.StatusPending},
		{domain.TicketTypeRMA, "ms-review", domain.StatusMSReview},
		{domain.TicketTypeRMA, "InProgress", domain.StatusRepairing},
		{domain.TicketTypeRMA, "Completed", domain.StatusClosed},
		{domain.TicketTypeDealerRepair, "InProgress", domain.StatusDiagnosing},
		{domain.TicketTypeDealerRepair, "Completed", domain.StatusCompleted},
		{domain.TicketTypeDealerRepair, "canceled", domain.StatusCancelled},
	}
	for _, tc := range cases {
		got, known := Normalize(tc.ticketType, tc.raw)
		if !known {
			t.Errorf("Normalize(%s, %q) reported unknown", tc.ticketType, tc.raw)
		}
		if got != tc.want {
			t.Errorf("Normalize(%s, %q) = %s, want %s", tc.ticketType, tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeUnknownFallsBackToDefault(t *testing.T) {
	got, known := Normalize(domain.TicketTypeRMA, "definitely-not-a-status")
	if known {
		t.Fatal("unknown value reported as known")
	}
	if got != domain.StatusPending {
		t.Fatalf("fallback = %s, want %s", got, domain.StatusPending)
	}

	got, known = Normalize(domain.TicketTypeInquiry, "")
	if known {
		t.Fatal("empty value reported as known")
	}
	if got != domain.StatusDraft {
		t.Fatalf("fallback = %s, want %s", got, domain.StatusDraft)
	}
}

func TestSameStatusRoutesToDifferentNodesPerType(t *testing.T) {
	rmaNode, err := NodeFor(domain.TicketTypeRMA, domain.StatusDiagnosing)
	if err != nil {
		t.Fatalf("NodeFor rma: %v", err)
	}
	svcNode, err := NodeFor(domain.TicketTypeDealerRepair, domain.StatusDiagnosing)
	if err != nil {
		t.Fatalf("NodeFor dealer_repair: %v", err)
	}
	if rmaNode != domain.NodeOpDiagnosing {
		t.Errorf("rma Diagnosing node = %s, want %s", rmaNode, domain.NodeOpDiagnosing)
	}
	if svcNode != domain.NodeDlRepairing {
		t.Errorf("dealer_repair Diagnosing node = %s, want %s", svcNode, domain.NodeDlRepairing)
	}
}

func TestNodeForUnknownStatus(t *testing.T) {
	if _, err := NodeFor(domain.TicketTypeInquiry, domain.StatusQA); err == nil {
		t.Fatal("expected error for status outside the type's vocabulary")
	}
}

func TestEveryCanonicalStatusHasNode(t *testing.T) {
	for _, ticketType := range []domain.TicketType{
		domain.TicketTypeInquiry, domain.TicketTypeRMA, domain.TicketTypeDealerRepair,
	} {
		for _, status := range Statuses(ticketType) {
			if _, err := NodeFor(ticketType, status); err != nil {
				t.Errorf("NodeFor(%s, %s): %v", ticketType, status, err)
			}
		}
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(domain.TicketTypeRMA, domain.StatusPending, domain.StatusMSReview) {
		t.Error("Pending -> MSReview should be allowed")
	}
	if CanTransition(domain.TicketTypeRMA, domain.StatusClosed, domain.StatusRepairing) {
		t.Error("transitions out of a terminal status must be rejected")
	}
	if CanTransition(domain.TicketTypeRMA, domain.StatusPending, domain.StatusPending) {
		t.Error("self transition must be rejected")
	}
	if CanTransition(domain.TicketTypeInquiry, domain.StatusDraft, domain.StatusQA) {
		t.Error("target outside the type's vocabulary must be rejected")
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []struct {
		ticketType domain.TicketType
		status     domain.Status
	}{
		{domain.TicketTypeInquiry, domain.StatusResolved},
		{domain.TicketTypeInquiry, domain.StatusUpgraded},
		{domain.TicketTypeRMA, domain.StatusClosed},
		{domain.TicketTypeRMA, domain.StatusCancelled},
		{domain.TicketTypeDealerRepair, domain.StatusCompleted},
	}
	for _, tc := range terminal {
		if !IsTerminal(tc.ticketType, tc.status) {
			t.Errorf("IsTerminal(%s, %s) = false, want true", tc.ticketType, tc.status)
		}
	}
	if IsTerminal(domain.TicketTypeRMA, domain.StatusRepairing) {
		t.Error("Repairing must not be terminal")
	}
}
