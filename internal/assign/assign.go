// Package assign routes tickets to owning pools based on workflow node.
package assign

import (
	"fmt"
	"math/rand"

	"github.com/lumis/servicedesk/internal/domain"
)

// PoolConfig declares the disjoint assignable pools per node. Built once at
// startup from the user directory and passed in; the router itself holds no
// mutable global state.
type PoolConfig struct {
	Pools map[domain.Node][]string
}

// Router picks assignees for tickets entering a node.
type Router struct {
	cfg  PoolConfig
	pick func(n int) int
}

// NewRouter constructs a router over the given pools.
func NewRouter(cfg PoolConfig) *Router {
	return &Router{cfg: cfg, pick: rand.Intn}
}

// Pick selects an assignee for the node. Pools are small and human-curated,
// so uniform random selection is enough for load distribution. Returns an
// error when no pool is registered for the node; the router never assigns
// outside the registered pool.
func (r *Router) Pick(node domain.Node, ticketType domain.TicketType) (string, error) {
	pool := r.cfg.Pools[node]
	if len(pool) == 0 {
		return "", fmt.Errorf("assign: no pool registered for node %q (%s)", node, ticketType)
	}
	return pool[r.pick(len(pool))], nil
}

// HasPool reports whether a node has an assignable pool.
func (r *Router) HasPool(node domain.Node) bool {
	return len(r.cfg.Pools[node]) > 0
}
