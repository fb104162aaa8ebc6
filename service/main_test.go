// service/main_test.go
package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"bankist/logger"
	"bankist/model"
	"bankist/repository"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// recordingSink keeps every published event for later inspection.
type recordingSink struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *recordingSink) Publish(_ context.Context, event model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingSink) ofType(t model.EventType) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Event
	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

type fixture struct {
	clock    *clockwork.FakeClock
	accounts *repository.AccountRepository
	auth     *AuthService
	sink     *recordingSink
	sessions *SessionService
	tx       *TransactionService
	views    *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	auth := NewAuthService("test-secret", bcrypt.MinCost, time.Hour, clock)

	accounts, err := SeedRegistry(repository.DefaultSeed(), auth)
	require.NoError(t, err)

	sink := &recordingSink{}
	sessions := NewSessionService(accounts, auth, clock, sink, nil, SessionOptions{})
	tx := NewTransactionService(sessions, accounts, auth, LoanOptions{})
	views := NewAccountService(sessions, accounts, nil)

	f := &fixture{
		clock:    clock,
		accounts: accounts,
		auth:     auth,
		sink:     sink,
		sessions: sessions,
		tx:       tx,
		views:    views,
	}
	t.Cleanup(func() {
		tx.Shutdown()
		sessions.Shutdown(context.Background())
	})
	return f
}

func (f *fixture) login(t *testing.T, username, pin string) *Session {
	t.Helper()
	sess, err := f.sessions.Login(context.Background(), username, pin)
	require.NoError(t, err)
	return sess
}

func (f *fixture) balance(t *testing.T, username string) string {
	t.Helper()
	acc, err := f.accounts.FindByUsername(username)
	require.NoError(t, err)
	return Balance(acc.Movements).String()
}

// tickN drives the current countdown of sess directly, one second per call.
func (f *fixture) tickN(sess *Session, n int) {
	for i := 0; i < n; i++ {
		f.sessions.mu.Lock()
		c := sess.countdown
		f.sessions.mu.Unlock()
		if f.sessions.tick(sess, c) {
			return
		}
	}
}
