package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lumis/servicedesk/internal/assign"
	"github.com/lumis/servicedesk/internal/directory"
	"github.com/lumis/servicedesk/internal/domain"
	"github.com/lumis/servicedesk/internal/events"
	"github.com/lumis/servicedesk/internal/repository"
	"github.com/lumis/servicedesk/internal/sla"
	"github.com/lumis/servicedesk/pkg/util"
)

type fixture struct {
	store  *memStore
	svc    *TicketService
	staff  *domain.User
	op     *domain.User
	dealer *domain.User
}

func newFixture(t *testing.T, pools map[domain.Node][]string) *fixture {
	t.Helper()
	store := newMemStore()

	staff := store.addUser(domain.User{ID: "user-ms", Name: "Mira", Email: "mira@example.com", Department: domain.DepartmentMarketing})
	op := store.addUser(domain.User{ID: "user-op", Name: "Otto", Email: "otto@example.com", Department: domain.DepartmentProduction})
	dealerID := "dealer-9"
	dealer := store.addUser(domain.User{ID: "user-dl", Name: "Dana", Email: "dana@example.com", Department: domain.DepartmentDealer, DealerID: &dealerID})

	if pools == nil {
		pools = map[domain.Node][]string{}
	}
	dir := directory.New(store.Users(), nil, time.Minute, zap.NewNop())

	svc := NewTicketService(TicketDependencies{
		Store:      store,
		Directory:  dir,
		Router:     assign.NewRouter(assign.PoolConfig{Pools: pools}),
		Sla:        sla.DefaultConfig(),
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     zap.NewNop(),
	})
	svc.now = func() time.Time { return time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC) }

	return &fixture{store: store, svc: svc, staff: staff, op: op, dealer: dealer}
}

func repositoryFilterAll() repository.TicketFilter {
	return repository.TicketFilter{Limit: 100}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	return util.ToDomainError(err).Code
}

func TestCreateRMAAllocatesNumberAndSla(t *testing.T) {
	f := newFixture(t, map[domain.Node][]string{domain.NodeSubmitted: {"user-op"}})
	ctx := context.Background()

	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if ticket.TicketNumber != "RMA-D-2602-0001" {
		t.Errorf("ticket number = %q, want RMA-D-2602-0001", ticket.TicketNumber)
	}
	if ticket.Status != domain.StatusPending || ticket.CurrentNode != domain.NodeSubmitted {
		t.Errorf("initial state = %s/%s, want Pending/submitted", ticket.Status, ticket.CurrentNode)
	}
	wantDue := time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC)
	if ticket.SlaDueAt == nil || !ticket.SlaDueAt.Equal(wantDue) {
		t.Errorf("sla due = %v, want %v", ticket.SlaDueAt, wantDue)
	}
	if ticket.AssignedTo == nil || *ticket.AssignedTo != "user-op" {
		t.Errorf("assignee = %v, want user-op", ticket.AssignedTo)
	}

	// Second allocation in the same scope advances the sequence.
	second, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if second.TicketNumber != "RMA-D-2602-0002" {
		t.Errorf("second number = %q, want RMA-D-2602-0002", second.TicketNumber)
	}

	// A different channel starts its own sequence.
	other, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "E",
	})
	if err != nil {
		t.Fatalf("Create other channel: %v", err)
	}
	if other.TicketNumber != "RMA-E-2602-0001" {
		t.Errorf("other channel number = %q, want RMA-E-2602-0001", other.TicketNumber)
	}
}

func TestConcurrentCreatesYieldContiguousNumbers(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	const n = 25
	numbers := make(chan string, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
				Type:        domain.TicketTypeRMA,
				ChannelCode: "D",
			})
			if err != nil {
				errs <- err
				return
			}
			numbers <- ticket.TicketNumber
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)
	for err := range errs {
		t.Fatalf("Create: %v", err)
	}

	issued := map[string]bool{}
	for num := range numbers {
		if issued[num] {
			t.Fatalf("duplicate ticket number %s", num)
		}
		issued[num] = true
	}
	// The scope's counter starts at 1 and has no holes.
	for seq := 1; seq <= n; seq++ {
		want := fmt.Sprintf("RMA-D-2602-%04d", seq)
		if !issued[want] {
			t.Fatalf("missing ticket number %s in %v", want, issued)
		}
	}
}

func TestCreateInquiryNumberFormat(t *testing.T) {
	f := newFixture(t, nil)

	ticket, err := f.svc.Create(context.Background(), f.staff.ID, CreateTicketInput{
		Type: domain.TicketTypeInquiry,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.TicketNumber != "K2602-0001" {
		t.Errorf("ticket number = %q, want K2602-0001", ticket.TicketNumber)
	}
	if ticket.Status != domain.StatusDraft {
		t.Errorf("status = %s, want Draft", ticket.Status)
	}
}

func TestCreateSeedsParticipantsAndLedger(t *testing.T) {
	f := newFixture(t, map[domain.Node][]string{domain.NodeSubmitted: {"user-op"}})
	ctx := context.Background()

	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	participants, err := f.svc.ListParticipants(ctx, f.staff.ID, ticket.ID)
	if err != nil {
		t.Fatalf("ListParticipants: %v", err)
	}
	roles := map[string]domain.ParticipantRole{}
	for _, p := range participants {
		roles[p.UserID] = p.Role
	}
	if roles[f.staff.ID] != domain.RoleOwner {
		t.Errorf("submitter role = %s, want owner", roles[f.staff.ID])
	}
	if roles["user-op"] != domain.RoleAssignee {
		t.Errorf("assignee role = %s, want assignee", roles["user-op"])
	}

	activities, err := f.svc.ListActivities(ctx, f.staff.ID, ticket.ID)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(activities))
	}
	if activities[0].Type != domain.ActivityStatusChange {
		t.Errorf("creation entry type = %s", activities[0].Type)
	}
	if activities[0].Metadata["ticket_number"] != ticket.TicketNumber {
		t.Errorf("creation metadata ticket_number = %v", activities[0].Metadata["ticket_number"])
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{Type: "warranty"})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("unknown type code = %s", code)
	}

	_, err = f.svc.Create(ctx, f.staff.ID, CreateTicketInput{Type: domain.TicketTypeRMA})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("missing channel code = %s", code)
	}
}

func TestCreateToleratesMissingReferences(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.store.accounts["acct-1"] = true

	ghostAccount := "acct-ghost"
	ghostProduct := "prod-ghost"
	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
		AccountID:   &ghostAccount,
		ProductID:   &ghostProduct,
	})
	// Dangling references never fail the create; they are nulled instead.
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.AccountID != nil || ticket.ProductID != nil {
		t.Fatalf("dangling references not dropped: account=%v product=%v",
			ticket.AccountID, ticket.ProductID)
	}

	known := "acct-1"
	kept, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
		AccountID:   &known,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if kept.AccountID == nil || *kept.AccountID != known {
		t.Fatalf("resolvable account reference dropped: %v", kept.AccountID)
	}
}

func TestChangeStatusRecordsTransition(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Legacy spelling resolves to the canonical status.
	updated, err := f.svc.ChangeStatus(ctx, f.staff.ID, ticket.ID, "ms-review", "")
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if updated.Status != domain.StatusMSReview || updated.CurrentNode != domain.NodeMSReview {
		t.Errorf("state = %s/%s, want MSReview/ms_review", updated.Status, updated.CurrentNode)
	}

	activities, err := f.svc.ListActivities(ctx, f.staff.ID, ticket.ID)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	last := activities[len(activities)-1]
	if last.Metadata["from_status"] != string(domain.StatusPending) ||
		last.Metadata["to_status"] != string(domain.StatusMSReview) {
		t.Errorf("transition metadata = %v", last.Metadata)
	}
	if last.Metadata["from_node"] != string(domain.NodeSubmitted) ||
		last.Metadata["to_node"] != string(domain.NodeMSReview) {
		t.Errorf("node metadata = %v", last.Metadata)
	}
}

func TestChangeStatusRejectsInvalidMoves(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.svc.ChangeStatus(ctx, f.staff.ID, ticket.ID, "Closed", ""); err != nil {
		t.Fatalf("close: %v", err)
	}

	before, _ := f.svc.ListActivities(ctx, f.staff.ID, ticket.ID)

	_, err = f.svc.ChangeStatus(ctx, f.staff.ID, ticket.ID, "Repairing", "")
	if code := domainCode(t, err); code != "INVALID_TRANSITION" {
		t.Errorf("code = %s, want INVALID_TRANSITION", code)
	}

	// A rejected transition must not write to the ledger.
	after, _ := f.svc.ListActivities(ctx, f.staff.ID, ticket.ID)
	if len(after) != len(before) {
		t.Errorf("ledger grew on rejected transition: %d -> %d", len(before), len(after))
	}

	_, err = f.svc.ChangeStatus(ctx, f.staff.ID, ticket.ID, "NotAStatus!", "")
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("unknown status code = %s, want VALIDATION_FAILED", code)
	}
}

func TestTerminalStatusFreezesSlaAndSetsClosedAt(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Move time into the warning window, sweep, then close.
	f.svc.now = func() time.Time { return time.Date(2026, 2, 17, 3, 0, 0, 0, time.UTC) }
	if _, err := f.svc.SweepSla(ctx); err != nil {
		t.Fatalf("SweepSla: %v", err)
	}
	closed, err := f.svc.ChangeStatus(ctx, f.staff.ID, ticket.ID, "Closed", "")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.ClosedAt == nil {
		t.Fatal("closed_at not set on terminal transition")
	}
	if closed.SlaStatus != domain.SlaWarning {
		t.Fatalf("sla at close = %s, want warning", closed.SlaStatus)
	}

	// Long past the deadline a further sweep must not touch the closed ticket.
	f.svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	if _, err := f.svc.SweepSla(ctx); err != nil {
		t.Fatalf("SweepSla: %v", err)
	}
	got, err := f.svc.Get(ctx, f.staff.ID, ticket.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SlaStatus != domain.SlaWarning {
		t.Fatalf("sla after close = %s, want frozen warning", got.SlaStatus)
	}
}

func TestTerminalStatusRecomputesSlaBeforeFreeze(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// No sweep runs between the breach and the close; the stored value is
	// still "normal" when the terminal transition lands.
	f.svc.now = func() time.Time { return time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC) }
	closed, err := f.svc.ChangeStatus(ctx, f.staff.ID, ticket.ID, "Closed", "")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.SlaStatus != domain.SlaBreached {
		t.Fatalf("sla at close = %s, want breached", closed.SlaStatus)
	}

	// And the breach stays frozen afterwards.
	f.svc.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }
	if _, err := f.svc.SweepSla(ctx); err != nil {
		t.Fatalf("SweepSla: %v", err)
	}
	got, err := f.svc.Get(ctx, f.staff.ID, ticket.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SlaStatus != domain.SlaBreached {
		t.Fatalf("sla after close = %s, want frozen breached", got.SlaStatus)
	}
}

func TestSweepSlaEscalatesOpenTickets(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.svc.now = func() time.Time { return time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC) }
	changed, err := f.svc.SweepSla(ctx)
	if err != nil {
		t.Fatalf("SweepSla: %v", err)
	}
	if changed != 1 {
		t.Fatalf("changed = %d, want 1", changed)
	}
	got, _ := f.svc.Get(ctx, f.staff.ID, ticket.ID)
	if got.SlaStatus != domain.SlaBreached {
		t.Fatalf("sla = %s, want breached", got.SlaStatus)
	}

	// Idempotent: nothing left to escalate.
	changed, err = f.svc.SweepSla(ctx)
	if err != nil {
		t.Fatalf("SweepSla second: %v", err)
	}
	if changed != 0 {
		t.Fatalf("second sweep changed = %d, want 0", changed)
	}
}

func TestAssignKeepsPreviousAssigneeAsWatcher(t *testing.T) {
	f := newFixture(t, map[domain.Node][]string{domain.NodeSubmitted: {"user-op"}})
	ctx := context.Background()

	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := f.svc.Assign(ctx, f.staff.ID, ticket.ID, f.staff.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != f.staff.ID {
		t.Fatalf("assignee = %v, want %s", updated.AssignedTo, f.staff.ID)
	}

	participants, _ := f.svc.ListParticipants(ctx, f.staff.ID, ticket.ID)
	var opStillThere bool
	for _, p := range participants {
		if p.UserID == "user-op" {
			opStillThere = true
		}
	}
	if !opStillThere {
		t.Error("previous assignee dropped from participants")
	}

	_, err = f.svc.Assign(ctx, f.staff.ID, ticket.ID, "no-such-user")
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Errorf("code = %s, want NOT_FOUND", code)
	}
}

func TestAddCommentExtractsMentions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:        domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	activity, err := f.svc.AddComment(ctx, f.staff.ID, ticket.ID,
		"needs a bench check @[Otto](user-op), also ping @Dana", domain.VisibilityInternal)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	mentioned, ok := activity.Metadata["mentioned_users"].([]events.Mention)
	if !ok {
		t.Fatalf("mentioned_users metadata missing: %v", activity.Metadata)
	}
	// The resolved display name rides along with each id.
	want := map[string]string{"user-op": "Otto", "user-dl": "Dana"}
	if len(mentioned) != 2 {
		t.Fatalf("mentioned = %v, want user-op and user-dl", mentioned)
	}
	for _, m := range mentioned {
		if want[m.UserID] != m.Name {
			t.Errorf("mention %s carries name %q, want %q", m.UserID, m.Name, want[m.UserID])
		}
	}

	participants, _ := f.svc.ListParticipants(ctx, f.staff.ID, ticket.ID)
	roles := map[string]domain.ParticipantRole{}
	for _, p := range participants {
		roles[p.UserID] = p.Role
	}
	if roles["user-op"] != domain.RoleMentioned || roles["user-dl"] != domain.RoleMentioned {
		t.Errorf("mention roles = %v", roles)
	}

	// Mentioning again must not duplicate the membership.
	if _, err := f.svc.AddComment(ctx, f.staff.ID, ticket.ID, "again @Otto", domain.VisibilityInternal); err != nil {
		t.Fatalf("AddComment second: %v", err)
	}
	after, _ := f.svc.ListParticipants(ctx, f.staff.ID, ticket.ID)
	if len(after) != len(participants) {
		t.Errorf("participants grew on repeat mention: %d -> %d", len(participants), len(after))
	}
}

func TestDealerScoping(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	dealerID := "dealer-9"
	otherDealer := "dealer-7"

	mine, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:     domain.TicketTypeDealerRepair,
		DealerID: &dealerID,
	})
	if err != nil {
		t.Fatalf("Create mine: %v", err)
	}
	foreign, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:     domain.TicketTypeDealerRepair,
		DealerID: &otherDealer,
	})
	if err != nil {
		t.Fatalf("Create foreign: %v", err)
	}

	if _, err := f.svc.Get(ctx, f.dealer.ID, mine.ID); err != nil {
		t.Fatalf("dealer should see own ticket: %v", err)
	}
	_, err = f.svc.Get(ctx, f.dealer.ID, foreign.ID)
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Errorf("foreign ticket code = %s, want FORBIDDEN", code)
	}

	// Listing is pinned to the dealer's own tickets.
	tickets, err := f.svc.List(ctx, f.dealer.ID, repositoryFilterAll())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, ticket := range tickets {
		if ticket.DealerID == nil || *ticket.DealerID != dealerID {
			t.Errorf("dealer list leaked ticket %s", ticket.TicketNumber)
		}
	}
}

func TestDealerSeesOnlyExternalLedger(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	dealerID := "dealer-9"
	ticket, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:     domain.TicketTypeDealerRepair,
		DealerID: &dealerID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.svc.AddComment(ctx, f.staff.ID, ticket.ID, "internal note", domain.VisibilityInternal); err != nil {
		t.Fatalf("internal comment: %v", err)
	}
	if _, err := f.svc.AddComment(ctx, f.staff.ID, ticket.ID, "customer update", domain.VisibilityExternal); err != nil {
		t.Fatalf("external comment: %v", err)
	}

	staffView, _ := f.svc.ListActivities(ctx, f.staff.ID, ticket.ID)
	dealerView, _ := f.svc.ListActivities(ctx, f.dealer.ID, ticket.ID)
	if len(dealerView) >= len(staffView) {
		t.Fatalf("dealer view %d entries, staff view %d; internal entries leaked", len(dealerView), len(staffView))
	}
	for _, activity := range dealerView {
		if activity.Visibility != domain.VisibilityExternal {
			t.Errorf("dealer saw %s entry", activity.Visibility)
		}
	}
}

func TestConvertInquiry(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	summary := "sensor dead pixels"
	inquiry, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
		Type:           domain.TicketTypeInquiry,
		ProblemSummary: &summary,
	})
	if err != nil {
		t.Fatalf("Create inquiry: %v", err)
	}

	child, err := f.svc.Convert(ctx, f.staff.ID, inquiry.ID, ConvertInput{
		TargetType:  domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if child.Type != domain.TicketTypeRMA {
		t.Errorf("child type = %s", child.Type)
	}
	if child.ParentTicketID == nil || *child.ParentTicketID != inquiry.ID {
		t.Errorf("child parent = %v, want %s", child.ParentTicketID, inquiry.ID)
	}
	if child.ProblemDescription == nil || *child.ProblemDescription != summary {
		t.Errorf("problem description not carried over: %v", child.ProblemDescription)
	}

	source, _ := f.svc.Get(ctx, f.staff.ID, inquiry.ID)
	if source.Status != domain.StatusUpgraded {
		t.Errorf("source status = %s, want Upgraded", source.Status)
	}
	if source.ClosedAt == nil {
		t.Error("upgraded inquiry should be closed")
	}

	// Converting twice fails: the source is terminal now.
	_, err = f.svc.Convert(ctx, f.staff.ID, inquiry.ID, ConvertInput{
		TargetType:  domain.TicketTypeRMA,
		ChannelCode: "D",
	})
	if code := domainCode(t, err); code != "PRECONDITION_FAILED" {
		t.Errorf("second convert code = %s, want PRECONDITION_FAILED", code)
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{
			Type:        domain.TicketTypeRMA,
			ChannelCode: "D",
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := f.svc.Create(ctx, f.staff.ID, CreateTicketInput{Type: domain.TicketTypeInquiry}); err != nil {
		t.Fatalf("Create inquiry: %v", err)
	}

	stats, err := f.svc.Stats(ctx, f.staff.ID, repositoryFilterAll())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Total)
	}
	if stats.ByType[domain.TicketTypeRMA] != 3 {
		t.Errorf("rma count = %d, want 3", stats.ByType[domain.TicketTypeRMA])
	}
}
