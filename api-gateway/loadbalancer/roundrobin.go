package loadbalancer

import (
	"sync"
	"time"

	"github.com/openorigin/traceability/pkg/logger"
)

// Pool hands out traceability replicas in round-robin order. Replicas
// the proxy reports as unreachable are skipped until their cooldown
// expires.
type Pool struct {
	replicas  []string
	downUntil map[string]time.Time
	cooldown  time.Duration
	current   int
	mu        sync.Mutex
}

// NewPool creates a round-robin pool over the given replica base URLs.
func NewPool(replicas []string, cooldown time.Duration) *Pool {
	if len(replicas) == 0 {
		replicas = []string{"http://localhost:8084"}
	}

	logger.Logger.Info().
		Int("replica_count", len(replicas)).
		Strs("replicas", replicas).
		Dur("cooldown", cooldown).
		Msg("Round-robin pool initialized")

	return &Pool{
		replicas:  replicas,
		downUntil: make(map[string]time.Time),
		cooldown:  cooldown,
	}
}

// Next returns the next replica considered up, or "" when every replica
// is cooling down.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	for range p.replicas {
		replica := p.replicas[p.current]
		p.current = (p.current + 1) % len(p.replicas)

		if until, down := p.downUntil[replica]; down {
			if now.Before(until) {
				continue
			}
			delete(p.downUntil, replica)
		}
		return replica
	}

	return ""
}

// MarkDown takes a replica out of rotation for the pool's cooldown.
func (p *Pool) MarkDown(replica string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.downUntil[replica] = time.Now().Add(p.cooldown)

	logger.Logger.Warn().
		Str("replica", replica).
		Dur("cooldown", p.cooldown).
		Msg("Replica taken out of rotation")
}

// Replicas returns all configured replicas, up or down.
func (p *Pool) Replicas() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.replicas...)
}

// GetStats returns pool state for the stats endpoint.
func (p *Pool) GetStats() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	down := []string{}
	now := time.Now()
	for replica, until := range p.downUntil {
		if now.Before(until) {
			down = append(down, replica)
		}
	}

	return map[string]interface{}{
		"algorithm":     "round-robin",
		"replica_count": len(p.replicas),
		"replicas":      p.replicas,
		"down":          down,
	}
}
