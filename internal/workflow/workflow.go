// Package workflow reconciles the three independently evolved ticket status
// vocabularies onto one canonical status set and one shared node vocabulary.
// Every status write in the system passes through Normalize/NodeFor, so a
// ticket can never hold a (type, status) pair the tables do not know.
package workflow

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lumis/servicedesk/internal/domain"
)

// Normalize maps a raw or legacy status value onto the canonical status for
// the ticket type. The second return reports whether the value was known;
// unknown values fall back to the type's default status rather than failing.
func Normalize(ticketType domain.TicketType, raw string) (domain.Status, bool) {
	table, ok := statusSynonyms[ticketType]
	if !ok {
		return "", false
	}
	if status, ok := table[foldStatus(raw)]; ok {
		return status, true
	}
	return defaultStatus[ticketType], false
}

// NormalizeLogged is Normalize with a data-quality warning on fallback.
// Unknown legacy values are recovered silently for the caller but surfaced
// for operations.
func NormalizeLogged(logger *zap.Logger, ticketType domain.TicketType, raw string) domain.Status {
	status, known := Normalize(ticketType, raw)
	if !known && logger != nil {
		logger.Warn("unknown legacy status, using default",
			zap.String("ticket_type", string(ticketType)),
			zap.String("raw_status", raw),
			zap.String("fallback", string(status)))
	}
	return status
}

// NodeFor derives the workflow node for a canonical status.
func NodeFor(ticketType domain.TicketType, status domain.Status) (domain.Node, error) {
	table, ok := statusNodes[ticketType]
	if !ok {
		return "", fmt.Errorf("workflow: unknown ticket type %q", ticketType)
	}
	node, ok := table[status]
	if !ok {
		return "", fmt.Errorf("workflow: no node for %s status %q", ticketType, status)
	}
	return node, nil
}

// Statuses returns the canonical vocabulary for a type.
func Statuses(ticketType domain.TicketType) []domain.Status {
	table := statusNodes[ticketType]
	out := make([]domain.Status, 0, len(table))
	for status := range table {
		out = append(out, status)
	}
	return out
}

// InitialStatus is the status a freshly created ticket starts in.
func InitialStatus(ticketType domain.TicketType) domain.Status {
	return defaultStatus[ticketType]
}

// IsTerminal reports whether a status ends the lifecycle for the type.
func IsTerminal(ticketType domain.TicketType, status domain.Status) bool {
	return terminalStatuses[ticketType][status]
}

// CanTransition validates a requested transition. The target must exist in
// the type's status table and the current status must not be terminal.
func CanTransition(ticketType domain.TicketType, from, to domain.Status) bool {
	if IsTerminal(ticketType, from) {
		return false
	}
	if from == to {
		return false
	}
	_, ok := statusNodes[ticketType][to]
	return ok
}

// Validate checks the mapping tables for internal consistency: every
// canonical status resolves to a node, every synonym points at a canonical
// status, and every type has a default. Run at startup.
func Validate() error {
	for ticketType, synonyms := range statusSynonyms {
		nodes, ok := statusNodes[ticketType]
		if !ok {
			return fmt.Errorf("workflow: synonym table for %q has no node table", ticketType)
		}
		for raw, status := range synonyms {
			if _, ok := nodes[status]; !ok {
				return fmt.Errorf("workflow: synonym %q of %s maps to %q which has no node", raw, ticketType, status)
			}
		}
		def, ok := defaultStatus[ticketType]
		if !ok {
			return fmt.Errorf("workflow: no default status for %q", ticketType)
		}
		if _, ok := nodes[def]; !ok {
			return fmt.Errorf("workflow: default status %q of %s has no node", def, ticketType)
		}
		for status := range terminalStatuses[ticketType] {
			if _, ok := nodes[status]; !ok {
				return fmt.Errorf("workflow: terminal status %q of %s has no node", status, ticketType)
			}
		}
	}
	return nil
}

func foldStatus(raw string) string {
	folded := strings.ToLower(strings.TrimSpace(raw))
	folded = strings.ReplaceAll(folded, "_", "")
	folded = strings.ReplaceAll(folded, "-", "")
	folded = strings.ReplaceAll(folded, " ", "")
	return folded
}
