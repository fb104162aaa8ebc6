// file: service/session_service.go

package service

import (
	"context"
	"sync"
	"time"

	"bankist/logger"
	"bankist/model"
	"bankist/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSessionTimeout = 120
	DefaultTickInterval   = time.Second
)

// SessionOptions tunes the logout countdown.
type SessionOptions struct {
	TimeoutSeconds int
	TickInterval   time.Duration
}

// SessionService owns the single active session and the dispatch lock that
// serializes every state change: login, logout, ledger mutations and countdown ticks.
type SessionService struct {
	mu sync.Mutex

	accounts repository.IAccountRepository
	auth     *AuthService
	clock    clockwork.Clock
	events   EventSink
	metrics  *Metrics

	timeout  int
	interval time.Duration

	active *Session
}

// Session is one login of one account. Its identity is immutable; its remaining
// time and liveness are guarded by the owning SessionService.
type Session struct {
	id        string
	username  string
	startedAt time.Time
	mgr       *SessionService

	remaining int
	countdown *countdown
	ended     bool
	reason    model.EndReason
}

// countdown is the cancellable handle of one running ticker.
type countdown struct {
	ticker clockwork.Ticker
	stop   chan struct{}
	once   sync.Once
}

func (c *countdown) cancel() {
	c.once.Do(func() {
		c.ticker.Stop()
		close(c.stop)
	})
}

func NewSessionService(accounts repository.IAccountRepository, auth *AuthService, clock clockwork.Clock, events EventSink, metrics *Metrics, opts SessionOptions) *SessionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if events == nil {
		events = FanOut{}
	}
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = DefaultSessionTimeout
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	return &SessionService{
		accounts: accounts,
		auth:     auth,
		clock:    clock,
		events:   events,
		metrics:  metrics,
		timeout:  opts.TimeoutSeconds,
		interval: opts.TickInterval,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Username() string     { return s.username }
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Remaining returns the seconds left before the session times out.
func (s *Session) Remaining() int {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	return s.remaining
}

// Active reports whether s is still the live session.
func (s *Session) Active() bool {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	return s.mgr.requireActiveLocked(s) == nil
}

// EndReason is empty while the session is active.
func (s *Session) EndReason() model.EndReason {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	return s.reason
}

// Login opens a session for username if pinText parses to the account's pin.
// A failed attempt leaves any current session untouched. A successful one
// replaces it.
func (m *SessionService) Login(ctx context.Context, username, pinText string) (*Session, error) {
	log := logger.Log.WithField("username", username)

	pin, parseErr := ParsePin(pinText)
	acc, findErr := m.accounts.FindByUsername(username)
	if parseErr != nil || findErr != nil || !m.auth.CheckPin(acc.PinHash, pin) {
		log.Warn("Login failed")
		m.metrics.observe("login", "rejected")
		m.publish(ctx, model.Event{Type: model.EventLoginFailed, Username: username, At: m.clock.Now()})
		return nil, ErrAuthenticationFailed
	}

	m.mu.Lock()
	// the account may have been closed while the pin was being checked
	acc, err := m.accounts.FindByUsername(username)
	if err != nil {
		m.mu.Unlock()
		m.metrics.observe("login", "rejected")
		return nil, ErrAuthenticationFailed
	}

	var events []model.Event
	if prev := m.active; prev != nil {
		events = append(events, m.endLocked(prev, model.EndReplaced))
	}

	sess := &Session{
		id:        uuid.NewString(),
		username:  acc.Username,
		startedAt: m.clock.Now(),
		mgr:       m,
	}
	m.active = sess
	m.startCountdownLocked(sess)
	m.metrics.setActive(true)

	events = append(events, model.Event{
		Type:      model.EventSessionStarted,
		Username:  sess.username,
		SessionID: sess.id,
		Remaining: sess.remaining,
		Label:     FormatCountdown(sess.remaining),
		Snapshot:  BuildSnapshot(acc, false),
		At:        sess.startedAt,
	})
	m.mu.Unlock()

	log.WithField("session_id", sess.id).Info("Session started")
	m.metrics.observe("login", "ok")
	m.publish(ctx, events...)
	return sess, nil
}

// Logout ends sess on request.
func (m *SessionService) Logout(ctx context.Context, sess *Session) error {
	m.mu.Lock()
	if err := m.requireActiveLocked(sess); err != nil {
		m.mu.Unlock()
		return err
	}
	ev := m.endLocked(sess, model.EndLogout)
	m.mu.Unlock()

	m.metrics.observe("logout", "ok")
	m.publish(ctx, ev)
	return nil
}

// Current returns the active session.
func (m *SessionService) Current() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil, ErrNoActiveSession
	}
	return m.active, nil
}

// Lookup resolves a session id carried by a token. Ids of ended sessions
// yield ErrSessionExpired.
func (m *SessionService) Lookup(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || m.active.id != id {
		return nil, ErrSessionExpired
	}
	return m.active, nil
}

// Info describes sess for clients.
func (m *SessionService) Info(sess *Session) (model.SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireActiveLocked(sess); err != nil {
		return model.SessionInfo{}, err
	}
	return model.SessionInfo{
		ID:        sess.id,
		Username:  sess.username,
		Remaining: sess.remaining,
		Label:     FormatCountdown(sess.remaining),
		StartedAt: sess.startedAt,
	}, nil
}

// Shutdown ends the active session, if any, and stops its countdown.
func (m *SessionService) Shutdown(ctx context.Context) {
	m.mu.Lock()
	sess := m.active
	if sess == nil {
		m.mu.Unlock()
		return
	}
	ev := m.endLocked(sess, model.EndLogout)
	m.mu.Unlock()
	m.publish(ctx, ev)
}

func (m *SessionService) requireActiveLocked(sess *Session) error {
	if sess == nil || sess.ended || m.active != sess {
		return ErrSessionExpired
	}
	return nil
}

// startCountdownLocked (re)starts the countdown of sess from the full timeout.
// The previous ticker, if any, is cancelled first so only one is ever live.
func (m *SessionService) startCountdownLocked(sess *Session) {
	if sess.countdown != nil {
		sess.countdown.cancel()
	}
	c := &countdown{
		ticker: m.clock.NewTicker(m.interval),
		stop:   make(chan struct{}),
	}
	sess.countdown = c
	sess.remaining = m.timeout
	go m.run(sess, c)
}

// refreshLocked restarts the countdown after a successful operation.
func (m *SessionService) refreshLocked(sess *Session) {
	m.startCountdownLocked(sess)
}

func (m *SessionService) run(sess *Session, c *countdown) {
	for {
		select {
		case <-c.stop:
			return
		case <-c.ticker.Chan():
			if done := m.tick(sess, c); done {
				return
			}
		}
	}
}

// tick advances the countdown c of sess by one second. It returns true once
// the countdown is finished or no longer current.
func (m *SessionService) tick(sess *Session, c *countdown) bool {
	m.mu.Lock()
	if m.active != sess || sess.countdown != c || sess.ended {
		m.mu.Unlock()
		return true
	}

	sess.remaining--
	var ev model.Event
	done := false
	if sess.remaining <= 0 {
		sess.remaining = 0
		ev = m.endLocked(sess, model.EndExpired)
		done = true
	} else {
		ev = model.Event{
			Type:      model.EventSessionTick,
			Username:  sess.username,
			SessionID: sess.id,
			Remaining: sess.remaining,
			Label:     FormatCountdown(sess.remaining),
			At:        m.clock.Now(),
		}
	}
	m.mu.Unlock()

	if done {
		logger.Log.WithFields(logrus.Fields{
			"username":   sess.username,
			"session_id": sess.id,
		}).Info("Session expired")
		m.metrics.observe("session", "expired")
	}
	m.publish(context.Background(), ev)
	return done
}

// endLocked terminates sess and cancels its countdown. It returns the event
// to publish once the lock is released.
func (m *SessionService) endLocked(sess *Session, reason model.EndReason) model.Event {
	sess.ended = true
	sess.reason = reason
	if sess.countdown != nil {
		sess.countdown.cancel()
	}
	if m.active == sess {
		m.active = nil
		m.metrics.setActive(false)
	}

	logger.Log.WithFields(logrus.Fields{
		"username":   sess.username,
		"session_id": sess.id,
		"reason":     reason,
	}).Debug("Session ended")

	return model.Event{
		Type:      model.EventSessionEnded,
		Username:  sess.username,
		SessionID: sess.id,
		Remaining: sess.remaining,
		Label:     FormatCountdown(sess.remaining),
		Reason:    string(reason),
		At:        m.clock.Now(),
	}
}

func (m *SessionService) publish(ctx context.Context, events ...model.Event) {
	for _, ev := range events {
		_ = m.events.Publish(ctx, ev)
	}
}
