// file: service/account_service.go

package service

import (
	"context"

	"bankist/model"
	"bankist/repository"
)

const defaultActivityLimit = 50

// AccountService serves read-only views of the session's account.
type AccountService struct {
	sessions *SessionService
	accounts repository.IAccountRepository
	audit    repository.IAuditRepository
}

// NewAccountService wires the account views. audit may be nil when the
// activity history is disabled.
func NewAccountService(sessions *SessionService, accounts repository.IAccountRepository, audit repository.IAuditRepository) *AccountService {
	return &AccountService{
		sessions: sessions,
		accounts: accounts,
		audit:    audit,
	}
}

// Snapshot returns the current view of the session's account, optionally with
// movements ordered by amount. Reading does not refresh the session.
func (s *AccountService) Snapshot(sess *Session, sorted bool) (*model.Snapshot, error) {
	m := s.sessions
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActiveLocked(sess); err != nil {
		return nil, err
	}
	acc, err := s.accounts.FindByUsername(sess.username)
	if err != nil {
		return nil, ErrSessionExpired
	}
	return BuildSnapshot(acc, sorted), nil
}

// Activity lists the recorded events of the session's account, newest first.
func (s *AccountService) Activity(ctx context.Context, sess *Session, limit int) ([]*model.AuditRecord, error) {
	if s.audit == nil {
		return nil, ErrAuditDisabled
	}
	if !sess.Active() {
		return nil, ErrSessionExpired
	}
	if limit <= 0 || limit > defaultActivityLimit {
		limit = defaultActivityLimit
	}
	return s.audit.ListByUsername(ctx, sess.Username(), limit)
}
