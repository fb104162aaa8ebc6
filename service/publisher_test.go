package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bankist/model"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisherClient struct{ mock.Mock }

func (m *MockPublisherClient) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	args := m.Called(ctx, channel, message)
	return args.Get(0).(*redis.IntCmd)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Record(ctx context.Context, record *model.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByUsername(ctx context.Context, username string, limit int) ([]*model.AuditRecord, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AuditRecord), args.Error(1)
}

func TestRedisPublisher(t *testing.T) {
	client := new(MockPublisherClient)
	p := NewRedisPublisher(client, "bankist:events")
	assert.Equal(t, "bankist:events:af", p.Channel("af"))

	ev := model.Event{Type: model.EventAccountUpdated, Username: "af", Remaining: 42, Label: "00:42"}

	client.On("Publish", mock.Anything, "bankist:events:af", mock.MatchedBy(func(msg interface{}) bool {
		var got model.Event
		data, ok := msg.([]byte)
		return ok && json.Unmarshal(data, &got) == nil && got.Remaining == 42
	})).Return(redis.NewIntResult(1, nil)).Once()

	require.NoError(t, p.Publish(context.Background(), ev))
	client.AssertExpectations(t)

	// ticks stay in-process
	require.NoError(t, p.Publish(context.Background(), model.Event{Type: model.EventSessionTick, Username: "af", Remaining: 41}))
	client.AssertNumberOfCalls(t, "Publish", 1)

	boom := errors.New("connection refused")
	client.On("Publish", mock.Anything, "bankist:events:mc", mock.Anything).Return(redis.NewIntResult(0, boom)).Once()
	assert.ErrorIs(t, p.Publish(context.Background(), model.Event{Type: model.EventLoginFailed, Username: "mc"}), boom)
}

func TestAuditSink(t *testing.T) {
	repo := new(MockAuditRepository)
	sink := NewAuditSink(repo)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	amt := decimal.RequireFromString("-100")

	repo.On("Record", mock.Anything, mock.MatchedBy(func(r *model.AuditRecord) bool {
		return r.EventType == "account.updated" && r.Username == "af" &&
			r.Amount != nil && *r.Amount == "-100" && r.OccurredAt.Equal(at)
	})).Return(nil).Once()

	require.NoError(t, sink.Publish(context.Background(), model.Event{
		Type: model.EventAccountUpdated, Username: "af", Amount: &amt, Reason: "transfer", At: at,
	}))

	// sub-cent amounts are recorded exactly as the ledger holds them
	subCent := decimal.RequireFromString("0.005")
	repo.On("Record", mock.Anything, mock.MatchedBy(func(r *model.AuditRecord) bool {
		return r.Amount != nil && *r.Amount == "0.005"
	})).Return(nil).Once()
	require.NoError(t, sink.Publish(context.Background(), model.Event{
		Type: model.EventAccountUpdated, Username: "mc", Amount: &subCent, Reason: "transfer", At: at,
	}))

	// ticks are not recorded
	require.NoError(t, sink.Publish(context.Background(), model.Event{Type: model.EventSessionTick, Username: "af"}))
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "Record", 2)
}

func TestAccountService_Activity(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "af", "1111")

	_, err := f.views.Activity(context.Background(), sess, 10)
	assert.ErrorIs(t, err, ErrAuditDisabled)

	repo := new(MockAuditRepository)
	views := NewAccountService(f.sessions, f.accounts, repo)
	records := []*model.AuditRecord{{ID: 2, EventType: "session.started", Username: "af"}}
	repo.On("ListByUsername", mock.Anything, "af", 50).Return(records, nil).Once()

	got, err := views.Activity(context.Background(), sess, 500)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	repo.AssertExpectations(t)

	require.NoError(t, f.sessions.Logout(context.Background(), sess))
	_, err = views.Activity(context.Background(), sess, 10)
	assert.ErrorIs(t, err, ErrSessionExpired)
}
