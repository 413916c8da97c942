// Package service implements the ledger's use cases.
package service

import (
	"sync"

	"github.com/kaiyue77/arkledger/config"
	"github.com/kaiyue77/arkledger/policy"
	"github.com/kaiyue77/arkledger/store"
)

// Service coordinates the store, configuration and policy engine.
type Service struct {
	store  store.Store
	config *config.Config
	policy *policy.Engine
	resets userLocks
}

// New creates a new service.
func New(store store.Store, cfg *config.Config, policyEngine *policy.Engine) *Service {
	return &Service{
		store:  store,
		config: cfg,
		policy: policyEngine,
		resets: userLocks{held: make(map[string]struct{})},
	}
}

// userLocks is a keyed try-lock serializing per-user operations within
// this process.
type userLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func (l *userLocks) tryLock(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false
	}
	l.held[key] = struct{}{}
	return true
}

func (l *userLocks) unlock(key string) {
	l.mu.Lock()
	delete(l.held, key)
	l.mu.Unlock()
}
