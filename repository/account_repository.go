package repository

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"bankist/logger"
	"bankist/model"

	"github.com/sirupsen/logrus"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrEmptyOwner        = errors.New("account owner is empty")
)

// IAccountRepository defines the contract for the account registry.
type IAccountRepository interface {
	FindByUsername(username string) (*model.Account, error)
	AppendMovement(username string, movement model.Movement) error
	Remove(username string) error
	All() []*model.Account
	Len() int
}

// AccountRepository is the in-memory registry. Accounts keep their insertion order.
// Every read returns a copy; the ledger only changes through AppendMovement.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts []*model.Account
}

// DeriveUsername lowercases owner and joins the first letter of each name part,
// so "Sarah Louise Newton" becomes "sln".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, part := range strings.Fields(strings.ToLower(owner)) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// NewAccountRepository derives the username of every account and builds the registry.
// It fails if two owners derive the same username.
func NewAccountRepository(accounts []*model.Account) (*AccountRepository, error) {
	r := &AccountRepository{accounts: make([]*model.Account, 0, len(accounts))}
	seen := make(map[string]struct{}, len(accounts))

	for _, acc := range accounts {
		username := DeriveUsername(acc.Owner)
		if username == "" {
			return nil, ErrEmptyOwner
		}
		if _, dup := seen[username]; dup {
			return nil, fmt.Errorf("%w: %q (owner %q)", ErrDuplicateUsername, username, acc.Owner)
		}
		seen[username] = struct{}{}

		cp := acc.Clone()
		cp.Username = username
		r.accounts = append(r.accounts, cp)
	}

	logger.Log.WithField("accounts", len(r.accounts)).Info("Account registry initialized")
	return r, nil
}

func (r *AccountRepository) indexOf(username string) int {
	for i, acc := range r.accounts {
		if acc.Username == username {
			return i
		}
	}
	return -1
}

// FindByUsername returns a copy of the account with the given username.
func (r *AccountRepository) FindByUsername(username string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(username)
	if i < 0 {
		return nil, ErrAccountNotFound
	}
	return r.accounts[i].Clone(), nil
}

// AppendMovement adds one entry to the end of the account's ledger.
func (r *AccountRepository) AppendMovement(username string, movement model.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(username)
	if i < 0 {
		return ErrAccountNotFound
	}
	acc := r.accounts[i]
	acc.Movements = append(acc.Movements, movement)

	logger.Log.WithFields(logrus.Fields{
		"username": username,
		"amount":   movement.Amount.String(),
		"count":    len(acc.Movements),
	}).Debug("Movement appended")
	return nil
}

// Remove deletes the account with the given username, preserving the order of the rest.
func (r *AccountRepository) Remove(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(username)
	if i < 0 {
		return ErrAccountNotFound
	}
	r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)

	logger.Log.WithFields(logrus.Fields{
		"username":  username,
		"remaining": len(r.accounts),
	}).Info("Account removed from registry")
	return nil
}

// All returns copies of every account in registry order.
func (r *AccountRepository) All() []*model.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		out = append(out, acc.Clone())
	}
	return out
}

func (r *AccountRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}
