package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lumis/servicedesk/internal/domain"
	"github.com/lumis/servicedesk/internal/repository"
)

// memStore is an in-memory repository.Store used by the service tests.
type memStore struct {
	mu           sync.Mutex
	nextID       int
	sequences    map[string]int64
	tickets      map[string]*domain.Ticket
	activities   map[string][]domain.TicketActivity
	participants map[string][]domain.TicketParticipant
	search       map[string]*domain.SearchIndexEntry
	users        map[string]*domain.User
	accounts     map[string]bool
	products     map[string]bool
	now          time.Time
}

func newMemStore() *memStore {
	return &memStore{
		sequences:    map[string]int64{},
		tickets:      map[string]*domain.Ticket{},
		activities:   map[string][]domain.TicketActivity{},
		participants: map[string][]domain.TicketParticipant{},
		search:       map[string]*domain.SearchIndexEntry{},
		users:        map[string]*domain.User{},
		accounts:     map[string]bool{},
		products:     map[string]bool{},
		now:          time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) addUser(u domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		s.nextID++
		u.ID = fmt.Sprintf("user-%d", s.nextID)
	}
	u.Active = true
	s.users[u.ID] = &u
	return &u
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *memStore) Tickets() repository.TicketRepository           { return (*memTickets)(s) }
func (s *memStore) Sequences() repository.SequenceRepository       { return (*memSequences)(s) }
func (s *memStore) Activities() repository.ActivityRepository      { return (*memActivities)(s) }
func (s *memStore) Participants() repository.ParticipantRepository { return (*memParticipants)(s) }
func (s *memStore) SearchIndex() repository.SearchIndexRepository  { return (*memSearch)(s) }
func (s *memStore) Users() repository.UserRepository               { return (*memUsers)(s) }
func (s *memStore) References() repository.ReferenceRepository     { return (*memReferences)(s) }

func (s *memStore) InTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

type memSequences memStore

func (s *memSequences) Next(ctx context.Context, ticketType domain.TicketType, channelCode, yearMonth string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(ticketType) + "|" + channelCode + "|" + yearMonth
	s.sequences[key]++
	return s.sequences[key], nil
}

type memReferences memStore

func (s *memReferences) AccountExists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id], nil
}

func (s *memReferences) ProductExists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id], nil
}

type memTickets memStore

func (s *memTickets) Create(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket.ID = (*memStore)(s).id("ticket")
	ticket.CreatedAt = s.now
	ticket.UpdatedAt = s.now
	copied := *ticket
	s.tickets[ticket.ID] = &copied
	return nil
}

func (s *memTickets) Update(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[ticket.ID]; !ok {
		return repository.ErrNotFound
	}
	ticket.UpdatedAt = s.now
	copied := *ticket
	s.tickets[ticket.ID] = &copied
	return nil
}

func (s *memTickets) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (s *memTickets) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ticket := range s.tickets {
		if ticket.TicketNumber == number {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memTickets) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Ticket
	for _, ticket := range s.tickets {
		if filter.Type != nil && ticket.Type != *filter.Type {
			continue
		}
		if filter.DealerID != nil && (ticket.DealerID == nil || *ticket.DealerID != *filter.DealerID) {
			continue
		}
		out = append(out, *ticket)
	}
	return out, nil
}

func (s *memTickets) ListOpenWithDue(ctx context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Ticket
	for _, ticket := range s.tickets {
		if ticket.ClosedAt == nil && ticket.SlaDueAt != nil {
			out = append(out, *ticket)
		}
	}
	return out, nil
}

func (s *memTickets) Stats(ctx context.Context, filter repository.TicketFilter) (*domain.TicketStats, error) {
	tickets, err := s.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats := &domain.TicketStats{
		ByStatus:   map[domain.Status]int64{},
		ByPriority: map[domain.Priority]int64{},
		BySla:      map[domain.SlaStatus]int64{},
		ByType:     map[domain.TicketType]int64{},
	}
	for _, ticket := range tickets {
		stats.Total++
		stats.ByStatus[ticket.Status]++
		stats.ByPriority[ticket.Priority]++
		stats.BySla[ticket.SlaStatus]++
		stats.ByType[ticket.Type]++
	}
	return stats, nil
}

type memActivities memStore

func (s *memActivities) Append(ctx context.Context, activity *domain.TicketActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	activity.ID = (*memStore)(s).id("activity")
	activity.CreatedAt = s.now
	s.activities[activity.TicketID] = append(s.activities[activity.TicketID], *activity)
	return nil
}

func (s *memActivities) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.TicketActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TicketActivity
	for _, activity := range s.activities[ticketID] {
		if !includeInternal && activity.Visibility != domain.VisibilityExternal {
			continue
		}
		out = append(out, activity)
	}
	return out, nil
}

type memParticipants memStore

func (s *memParticipants) Add(ctx context.Context, participant *domain.TicketParticipant) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.participants[participant.TicketID] {
		if existing.UserID == participant.UserID {
			return false, nil
		}
	}
	participant.JoinedAt = s.now
	s.participants[participant.TicketID] = append(s.participants[participant.TicketID], *participant)
	return true, nil
}

func (s *memParticipants) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TicketParticipant{}, s.participants[ticketID]...), nil
}

func (s *memParticipants) SetNotifyLevel(ctx context.Context, ticketID, userID string, level domain.NotifyLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.participants[ticketID] {
		if s.participants[ticketID][i].UserID == userID {
			s.participants[ticketID][i].NotifyLevel = level
		}
	}
	return nil
}

type memSearch memStore

func searchKey(ticketType domain.TicketType, ticketID string) string {
	return string(ticketType) + "|" + ticketID
}

func (s *memSearch) Upsert(ctx context.Context, entry *domain.SearchIndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.IndexedAt = s.now
	copied := *entry
	s.search[searchKey(entry.TicketType, entry.TicketID)] = &copied
	return nil
}

func (s *memSearch) Get(ctx context.Context, ticketType domain.TicketType, ticketID string) (*domain.SearchIndexEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.search[searchKey(ticketType, ticketID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (s *memSearch) Search(ctx context.Context, keyword string, visibility *domain.SearchVisibility, dealerID *string, limit int) ([]domain.SearchIndexEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(keyword)
	var out []domain.SearchIndexEntry
	for _, entry := range s.search {
		if visibility != nil && entry.Visibility != *visibility {
			continue
		}
		if dealerID != nil && (entry.DealerID == nil || *entry.DealerID != *dealerID) {
			continue
		}
		haystack := strings.ToLower(entry.TicketNumber + " " + entry.Title + " " + entry.Description + " " + entry.Resolution + " " + entry.SerialNumber)
		if !strings.Contains(haystack, needle) {
			continue
		}
		out = append(out, *entry)
	}
	return out, nil
}

type memUsers memStore

func (s *memUsers) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = (*memStore)(s).id("user")
	user.CreatedAt = s.now
	user.UpdatedAt = s.now
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUsers) FindByName(ctx context.Context, name string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Name, name) && user.Active {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUsers) ListByDepartment(ctx context.Context, dept domain.Department) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.User
	for _, user := range s.users {
		if user.Department == dept && user.Active {
			out = append(out, *user)
		}
	}
	return out, nil
}
