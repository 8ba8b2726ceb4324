package workflow

import "github.com/lumis/servicedesk/internal/domain"

// The three ticket domains evolved their status vocabularies independently
// before being unified. All mapping data is kept here, in one place, so a
// (type, status) pair used anywhere in the system is guaranteed to resolve.
// New legacy spellings are added to the synonym tables, nothing else changes.

// statusNodes maps each canonical status to its workflow node, per type.
// The same canonical label can route differently: RMA Diagnosing is handled
// by operations, dealer-repair Diagnosing happens on the dealer bench.
var statusNodes = map[domain.TicketType]map[domain.Status]domain.Node{
	domain.TicketTypeInquiry: {
		domain.StatusDraft:            domain.NodeDraft,
		domain.StatusInProgress:       domain.NodeInProgress,
		domain.StatusAwaitingFeedback: domain.NodeWaitingCustomer,
		domain.StatusResolved:         domain.NodeResolved,
		domain.StatusAutoClosed:       domain.NodeAutoClosed,
		domain.StatusUpgraded:         domain.NodeConverted,
	},
	domain.TicketTypeRMA: {
		domain.StatusPending:    domain.NodeSubmitted,
		domain.StatusMSReview:   domain.NodeMSReview,
		domain.StatusReceiving:  domain.NodeOpReceiving,
		domain.StatusDiagnosing: domain.NodeOpDiagnosing,
		domain.StatusRepairing:  domain.NodeOpRepairing,
		domain.StatusQA:         domain.NodeOpQA,
		domain.StatusMSClosing:  domain.NodeMSClosing,
		domain.StatusClosed:     domain.NodeClosed,
		domain.StatusCancelled:  domain.NodeCancelled,
	},
	domain.TicketTypeDealerRepair: {
		domain.StatusPending:    domain.NodeGEReview,
		domain.StatusReceiving:  domain.NodeDlReceiving,
		domain.StatusDiagnosing: domain.NodeDlRepairing,
		domain.StatusQA:         domain.NodeDlQA,
		domain.StatusClosing:    domain.NodeGEClosing,
		domain.StatusCompleted:  domain.NodeClosed,
		domain.StatusCancelled:  domain.NodeCancelled,
	},
}

// statusSynonyms collapses every historical spelling onto a canonical
// status. Keys are folded (lower-case, separators stripped) before lookup.
var statusSynonyms = map[domain.TicketType]map[string]domain.Status{
	domain.TicketTypeInquiry: {
		"draft":            domain.StatusDraft,
		"open":             domain.StatusDraft,
		"new":              domain.StatusDraft,
		"pending":          domain.StatusDraft,
		"inprogress":       domain.StatusInProgress,
		"processing":       domain.StatusInProgress,
		"awaitingfeedback": domain.StatusAwaitingFeedback,
		"waiting":          domain.StatusAwaitingFeedback,
		"waitingcustomer":  domain.StatusAwaitingFeedback,
		"resolved":         domain.StatusResolved,
		"autoclosed":       domain.StatusAutoClosed,
		"closed":           domain.StatusAutoClosed,
		"upgraded":         domain.StatusUpgraded,
		"converted":        domain.StatusUpgraded,
	},
	domain.TicketTypeRMA: {
		"pending":    domain.StatusPending,
		"open":       domain.StatusPending,
		"new":        domain.StatusPending,
		"draft":      domain.StatusPending,
		"submitted":  domain.StatusPending,
		"msreview":   domain.StatusMSReview,
		"review":     domain.StatusMSReview,
		"receiving":  domain.StatusReceiving,
		"received":   domain.StatusReceiving,
		"diagnosing": domain.StatusDiagnosing,
		"diagnosis":  domain.StatusDiagnosing,
		"repairing":  domain.StatusRepairing,
		"inrepair":   domain.StatusRepairing,
		"inprogress": domain.StatusRepairing,
		"qa":         domain.StatusQA,
		"qc":         domain.StatusQA,
		"testing":    domain.StatusQA,
		"msclosing":  domain.StatusMSClosing,
		"closing":    domain.StatusMSClosing,
		"closed":     domain.StatusClosed,
		"completed":  domain.StatusClosed,
		"done":       domain.StatusClosed,
		"cancelled":  domain.StatusCancelled,
		"canceled":   domain.StatusCancelled,
	},
	domain.TicketTypeDealerRepair: {
		"pending":    domain.StatusPending,
		"open":       domain.StatusPending,
		"new":        domain.StatusPending,
		"draft":      domain.StatusPending,
		"submitted":  domain.StatusPending,
		"receiving":  domain.StatusReceiving,
		"received":   domain.StatusReceiving,
		"diagnosing": domain.StatusDiagnosing,
		"repairing":  domain.StatusDiagnosing,
		"inrepair":   domain.StatusDiagnosing,
		"inprogress": domain.StatusDiagnosing,
		"qa":         domain.StatusQA,
		"qc":         domain.StatusQA,
		"closing":    domain.StatusClosing,
		"completed":  domain.StatusCompleted,
		"closed":     domain.StatusCompleted,
		"done":       domain.StatusCompleted,
		"cancelled":  domain.StatusCancelled,
		"canceled":   domain.StatusCancelled,
	},
}

// defaultStatus is the safe fallback for unknown raw values, per type.
var defaultStatus = map[domain.TicketType]domain.Status{
	domain.TicketTypeInquiry:      domain.StatusDraft,
	domain.TicketTypeRMA:          domain.StatusPending,
	domain.TicketTypeDealerRepair: domain.StatusPending,
}

// terminalStatuses stop SLA advancement and make a ticket indexable.
var terminalStatuses = map[domain.TicketType]map[domain.Status]bool{
	domain.TicketTypeInquiry: {
		domain.StatusResolved:   true,
		domain.StatusAutoClosed: true,
		domain.StatusUpgraded:   true,
	},
	domain.TicketTypeRMA: {
		domain.StatusClosed:    true,
		domain.StatusCancelled: true,
	},
	domain.TicketTypeDealerRepair: {
		domain.StatusCompleted: true,
		domain.StatusCancelled: true,
	},
}
