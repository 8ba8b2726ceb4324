package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lumis/servicedesk/internal/assign"
	"github.com/lumis/servicedesk/internal/domain"
	"github.com/lumis/servicedesk/internal/repository"
)

// nodeDepartments maps workflow nodes to the department that staffs them.
var nodeDepartments = map[domain.Node]domain.Department{
	domain.NodeDraft:           domain.DepartmentMarketing,
	domain.NodeInProgress:      domain.DepartmentMarketing,
	domain.NodeWaitingCustomer: domain.DepartmentMarketing,
	domain.NodeSubmitted:       domain.DepartmentMarketing,
	domain.NodeMSReview:        domain.DepartmentMarketing,
	domain.NodeMSClosing:       domain.DepartmentMarketing,
	domain.NodeOpReceiving:     domain.DepartmentProduction,
	domain.NodeOpDiagnosing:    domain.DepartmentProduction,
	domain.NodeOpRepairing:     domain.DepartmentProduction,
	domain.NodeOpQA:            domain.DepartmentProduction,
	domain.NodeGEReview:        domain.DepartmentFinance,
	domain.NodeGEClosing:       domain.DepartmentFinance,
	domain.NodeDlReceiving:     domain.DepartmentDealer,
	domain.NodeDlRepairing:     domain.DepartmentDealer,
	domain.NodeDlQA:            domain.DepartmentDealer,
}

// Directory resolves users for mentions, routing pools and display names.
// Display names are cached in Redis since activity rendering hits them on
// every ticket view.
type Directory struct {
	users    repository.UserRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// New builds a Directory. cache may be nil, lookups then always hit the DB.
func New(users repository.UserRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *Directory {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &Directory{users: users, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func nameCacheKey(userID string) string {
	return "directory:name:" + userID
}

// DisplayName returns the user's name, consulting the cache first.
func (d *Directory) DisplayName(ctx context.Context, userID string) (string, error) {
	if d.cache != nil {
		if name, err := d.cache.Get(ctx, nameCacheKey(userID)).Result(); err == nil {
			return name, nil
		} else if !errors.Is(err, redis.Nil) {
			d.logger.Warn("directory cache read failed", zap.Error(err))
		}
	}

	user, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, nameCacheKey(userID), user.Name, d.cacheTTL).Err(); err != nil {
			d.logger.Warn("directory cache write failed", zap.Error(err))
		}
	}
	return user.Name, nil
}

// Lookup fetches the full user record by id.
func (d *Directory) Lookup(ctx context.Context, userID string) (*domain.User, error) {
	return d.users.GetByID(ctx, userID)
}

// ResolveName finds an active user by display name. Used when a mention
// carries only a name without an id.
func (d *Directory) ResolveName(ctx context.Context, name string) (*domain.User, error) {
	return d.users.FindByName(ctx, name)
}

// BuildPools loads the routing pools, one per workflow node, from the
// department rosters.
func (d *Directory) BuildPools(ctx context.Context) (assign.PoolConfig, error) {
	rosters := map[domain.Department][]string{}
	for _, dept := range []domain.Department{
		domain.DepartmentMarketing, domain.DepartmentProduction, domain.DepartmentRD,
		domain.DepartmentFinance, domain.DepartmentDealer,
	} {
		users, err := d.users.ListByDepartment(ctx, dept)
		if err != nil {
			return assign.PoolConfig{}, fmt.Errorf("list %s roster: %w", dept, err)
		}
		ids := make([]string, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		rosters[dept] = ids
	}

	pools := assign.PoolConfig{Pools: map[domain.Node][]string{}}
	for node, dept := range nodeDepartments {
		pools.Pools[node] = rosters[dept]
	}
	return pools, nil
}
