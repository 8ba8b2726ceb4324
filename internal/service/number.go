package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lumis/servicedesk/internal/domain"
)

// yearMonth renders t as the two-digit year plus two-digit month bucket
// used in ticket numbers and sequence keys, e.g. 2602 for February 2026.
func yearMonth(t time.Time) string {
	return t.Format("0601")
}

// formatSequence pads the counter to four digits. Counters that outgrow
// four digits switch to upper-case base-36, still left-padded to four, so
// the number never changes width under what downstream systems parse.
func formatSequence(seq int64) string {
	if seq <= 9999 {
		return fmt.Sprintf("%04d", seq)
	}
	s := strings.ToUpper(strconv.FormatInt(seq, 36))
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// FormatTicketNumber renders the human-facing ticket number for the given
// type, channel and allocation.
func FormatTicketNumber(ticketType domain.TicketType, channelCode, ym string, seq int64) string {
	switch ticketType {
	case domain.TicketTypeRMA:
		return fmt.Sprintf("RMA-%s-%s-%s", channelCode, ym, formatSequence(seq))
	case domain.TicketTypeDealerRepair:
		return fmt.Sprintf("SVC-D-%s-%s", ym, formatSequence(seq))
	default:
		return fmt.Sprintf("K%s-%s", ym, formatSequence(seq))
	}
}
