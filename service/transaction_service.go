package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bankist/logger"
	"bankist/model"
	"bankist/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLoanDelay       = 2500 * time.Millisecond
	DefaultCollateralRatio = "0.1"
)

// LoanOptions tunes loan processing.
type LoanOptions struct {
	Delay           time.Duration
	CollateralRatio decimal.Decimal
}

// TransactionService applies transfers, loans and account closures on behalf
// of the active session. Every mutation runs under the session dispatch lock.
type TransactionService struct {
	sessions *SessionService
	accounts repository.IAccountRepository
	auth     *AuthService
	clock    clockwork.Clock

	loanDelay       time.Duration
	collateralRatio decimal.Decimal

	pendingMu sync.Mutex
	pending   map[string]*PendingLoan
}

// PendingLoan is a loan accepted for processing but not yet credited.
type PendingLoan struct {
	ID          string
	Username    string
	Amount      decimal.Decimal
	RequestedAt time.Time
	DueAt       time.Time

	timer clockwork.Timer
	done  chan struct{}
	once  sync.Once
	err   error
}

// Done is closed once the loan has been applied or discarded.
func (p *PendingLoan) Done() <-chan struct{} { return p.done }

// Err is nil if the loan was credited and wraps ErrLoanDiscarded otherwise.
// It is only meaningful after Done is closed.
func (p *PendingLoan) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the loan is resolved or ctx ends.
func (p *PendingLoan) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *PendingLoan) resolve(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

func NewTransactionService(sessions *SessionService, accounts repository.IAccountRepository, auth *AuthService, opts LoanOptions) *TransactionService {
	if opts.Delay <= 0 {
		opts.Delay = DefaultLoanDelay
	}
	if !opts.CollateralRatio.IsPositive() {
		opts.CollateralRatio = decimal.RequireFromString(DefaultCollateralRatio)
	}
	return &TransactionService{
		sessions:        sessions,
		accounts:        accounts,
		auth:            auth,
		clock:           sessions.clock,
		loanDelay:       opts.Delay,
		collateralRatio: opts.CollateralRatio,
		pending:         make(map[string]*PendingLoan),
	}
}

// Transfer moves amount from the session's account to toUsername. Both sides get
// their own timestamp. On success the session is refreshed and the sender's
// fresh snapshot returned; on rejection nothing changes.
func (s *TransactionService) Transfer(ctx context.Context, sess *Session, toUsername string, amount decimal.Decimal) (*model.Snapshot, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from":   sess.Username(),
		"to":     toUsername,
		"amount": amount.String(),
	})
	log.Info("Starting money transfer")

	m := s.sessions
	m.mu.Lock()
	snap, events, err := s.transferLocked(sess, toUsername, amount)
	m.mu.Unlock()

	m.metrics.observe("transfer", outcomeOf(err))
	if err != nil {
		log.WithError(err).Warn("Transfer declined")
		return nil, err
	}
	m.publish(ctx, events...)
	log.Info("Transfer completed successfully")
	return snap, nil
}

func (s *TransactionService) transferLocked(sess *Session, toUsername string, amount decimal.Decimal) (*model.Snapshot, []model.Event, error) {
	if err := s.sessions.requireActiveLocked(sess); err != nil {
		return nil, nil, err
	}
	if !amount.IsPositive() {
		return nil, nil, reject(ErrTransferRejected, ErrInvalidAmount)
	}

	receiver, err := s.accounts.FindByUsername(toUsername)
	if err != nil {
		return nil, nil, reject(ErrTransferRejected, ErrReceiverNotFound)
	}
	if receiver.Username == sess.username {
		return nil, nil, reject(ErrTransferRejected, ErrSameAccountTransfer)
	}

	sender, err := s.accounts.FindByUsername(sess.username)
	if err != nil {
		return nil, nil, ErrSessionExpired
	}
	if Balance(sender.Movements).LessThan(amount) {
		return nil, nil, reject(ErrTransferRejected, ErrInsufficientFunds)
	}

	if err := s.accounts.AppendMovement(sender.Username, model.Movement{Amount: amount.Neg(), Date: s.clock.Now()}); err != nil {
		return nil, nil, fmt.Errorf("could not debit sender: %w", err)
	}
	if err := s.accounts.AppendMovement(receiver.Username, model.Movement{Amount: amount, Date: s.clock.Now()}); err != nil {
		return nil, nil, fmt.Errorf("could not credit receiver: %w", err)
	}
	s.sessions.refreshLocked(sess)

	senderSnap, err := s.snapshotLocked(sender.Username)
	if err != nil {
		return nil, nil, err
	}
	receiverSnap, err := s.snapshotLocked(receiver.Username)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	events := []model.Event{
		{Type: model.EventAccountUpdated, Username: sender.Username, SessionID: sess.id, Remaining: sess.remaining, Label: FormatCountdown(sess.remaining), Amount: decimalPtr(amount.Neg()), Reason: "transfer", Snapshot: senderSnap, At: now},
		{Type: model.EventAccountUpdated, Username: receiver.Username, Amount: decimalPtr(amount), Reason: "transfer", Snapshot: receiverSnap, At: now},
	}
	return senderSnap, events, nil
}

// RequestLoan floors amount to a whole number and, if some movement is at least
// the collateral share of it, schedules the credit after the loan delay.
// The credit is discarded if the session has ended by then.
func (s *TransactionService) RequestLoan(ctx context.Context, sess *Session, amount decimal.Decimal) (*PendingLoan, error) {
	floored := amount.Floor()
	log := logger.Log.WithFields(logrus.Fields{
		"username": sess.Username(),
		"amount":   floored.String(),
	})

	m := s.sessions
	m.mu.Lock()
	loan, err := s.requestLoanLocked(sess, floored)
	m.mu.Unlock()

	if err != nil {
		m.metrics.observe("loan_request", outcomeOf(err))
		log.WithError(err).Warn("Loan declined")
		return nil, err
	}

	m.metrics.observe("loan_request", "ok")
	log.WithField("loan_id", loan.ID).Info("Loan scheduled")
	m.publish(ctx, model.Event{
		Type:      model.EventLoanScheduled,
		Username:  loan.Username,
		SessionID: sess.id,
		Amount:    decimalPtr(loan.Amount),
		At:        loan.RequestedAt,
	})
	return loan, nil
}

func (s *TransactionService) requestLoanLocked(sess *Session, amount decimal.Decimal) (*PendingLoan, error) {
	if err := s.sessions.requireActiveLocked(sess); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, reject(ErrLoanRejected, ErrInvalidAmount)
	}

	acc, err := s.accounts.FindByUsername(sess.username)
	if err != nil {
		return nil, ErrSessionExpired
	}
	if !HasQualifyingDeposit(acc.Movements, amount, s.collateralRatio) {
		return nil, reject(ErrLoanRejected, ErrNoQualifyingDeposit)
	}

	now := s.clock.Now()
	loan := &PendingLoan{
		ID:          uuid.NewString(),
		Username:    sess.username,
		Amount:      amount,
		RequestedAt: now,
		DueAt:       now.Add(s.loanDelay),
		done:        make(chan struct{}),
	}

	s.pendingMu.Lock()
	loan.timer = s.clock.AfterFunc(s.loanDelay, func() {
		s.completeLoan(sess, loan)
	})
	s.pending[loan.ID] = loan
	s.pendingMu.Unlock()
	return loan, nil
}

func (s *TransactionService) completeLoan(sess *Session, loan *PendingLoan) {
	log := logger.Log.WithFields(logrus.Fields{
		"username": loan.Username,
		"loan_id":  loan.ID,
		"amount":   loan.Amount.String(),
	})

	m := s.sessions
	m.mu.Lock()
	events, err := s.applyLoanLocked(sess, loan)
	m.mu.Unlock()

	s.forget(loan)
	loan.resolve(err)
	m.metrics.observe("loan_apply", outcomeOf(err))

	ctx := context.Background()
	if err != nil {
		log.WithError(err).Warn("Loan discarded")
		m.publish(ctx, model.Event{
			Type:      model.EventLoanDiscarded,
			Username:  loan.Username,
			SessionID: sess.id,
			Amount:    decimalPtr(loan.Amount),
			Reason:    err.Error(),
			At:        s.clock.Now(),
		})
		return
	}
	log.Info("Loan applied")
	m.publish(ctx, events...)
}

func (s *TransactionService) applyLoanLocked(sess *Session, loan *PendingLoan) ([]model.Event, error) {
	if err := s.sessions.requireActiveLocked(sess); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoanDiscarded, err)
	}
	now := s.clock.Now()
	if err := s.accounts.AppendMovement(loan.Username, model.Movement{Amount: loan.Amount, Date: now}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoanDiscarded, err)
	}
	s.sessions.refreshLocked(sess)

	snap, err := s.snapshotLocked(loan.Username)
	if err != nil {
		return nil, err
	}
	return []model.Event{
		{Type: model.EventLoanApplied, Username: loan.Username, SessionID: sess.id, Amount: decimalPtr(loan.Amount), At: now},
		{Type: model.EventAccountUpdated, Username: loan.Username, SessionID: sess.id, Remaining: sess.remaining, Label: FormatCountdown(sess.remaining), Amount: decimalPtr(loan.Amount), Reason: "loan", Snapshot: snap, At: now},
	}, nil
}

// CloseAccount removes the session's account when username and pinText repeat
// its credentials, and ends the session. A mismatch leaves everything as it was.
func (s *TransactionService) CloseAccount(ctx context.Context, sess *Session, username, pinText string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"username":  sess.Username(),
		"requested": username,
	})

	m := s.sessions
	m.mu.Lock()
	if err := m.requireActiveLocked(sess); err != nil {
		m.mu.Unlock()
		m.metrics.observe("close", outcomeOf(err))
		return err
	}
	acc, err := s.accounts.FindByUsername(sess.username)
	m.mu.Unlock()
	if err != nil {
		m.metrics.observe("close", "expired")
		return ErrSessionExpired
	}

	pin, parseErr := ParsePin(pinText)
	if username != acc.Username || parseErr != nil || !s.auth.CheckPin(acc.PinHash, pin) {
		log.Warn("Close account declined")
		m.metrics.observe("close", "rejected")
		return reject(ErrCloseRejected, ErrIdentityMismatch)
	}

	m.mu.Lock()
	if err := m.requireActiveLocked(sess); err != nil {
		m.mu.Unlock()
		m.metrics.observe("close", outcomeOf(err))
		return err
	}
	if err := s.accounts.Remove(acc.Username); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("could not remove account: %w", err)
	}
	ended := m.endLocked(sess, model.EndClosed)
	m.mu.Unlock()

	m.metrics.observe("close", "ok")
	log.Info("Account closed")
	m.publish(ctx,
		model.Event{Type: model.EventAccountClosed, Username: acc.Username, SessionID: sess.id, At: s.clock.Now()},
		ended,
	)
	return nil
}

// Shutdown stops every pending loan timer and resolves those loans as discarded.
func (s *TransactionService) Shutdown() {
	s.pendingMu.Lock()
	loans := make([]*PendingLoan, 0, len(s.pending))
	for id, loan := range s.pending {
		loan.timer.Stop()
		loans = append(loans, loan)
		delete(s.pending, id)
	}
	s.pendingMu.Unlock()

	for _, loan := range loans {
		loan.resolve(fmt.Errorf("%w: %w", ErrLoanDiscarded, ErrSessionExpired))
	}
}

// Pending returns the number of loans waiting for their delay to elapse.
func (s *TransactionService) Pending() int {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return len(s.pending)
}

func (s *TransactionService) forget(loan *PendingLoan) {
	s.pendingMu.Lock()
	delete(s.pending, loan.ID)
	s.pendingMu.Unlock()
}

func (s *TransactionService) snapshotLocked(username string) (*model.Snapshot, error) {
	acc, err := s.accounts.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	return BuildSnapshot(acc, false), nil
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
