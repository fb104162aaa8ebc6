package service

import (
	"context"
	"errors"
	"testing"

	"bankist/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ err error }

func (f failingSink) Publish(context.Context, model.Event) error { return f.err }

func TestFanOut_DeliversDespiteFailures(t *testing.T) {
	boom := errors.New("boom")
	first, last := &recordingSink{}, &recordingSink{}
	fan := FanOut{first, failingSink{err: boom}, nil, last}

	err := fan.Publish(context.Background(), model.Event{Type: model.EventSessionTick, Username: "af"})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, first.ofType(model.EventSessionTick), 1)
	assert.Len(t, last.ofType(model.EventSessionTick), 1)
}

func TestHub(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	af, cancelAF := hub.Subscribe("af")
	mc, cancelMC := hub.Subscribe("mc")
	defer cancelMC()
	assert.Equal(t, 1, hub.Subscribers("af"))

	require.NoError(t, hub.Publish(ctx, model.Event{Type: model.EventSessionTick, Username: "af", Remaining: 7}))

	ev := <-af
	assert.Equal(t, 7, ev.Remaining)
	select {
	case <-mc:
		t.Fatal("event leaked to another account")
	default:
	}

	cancelAF()
	cancelAF()
	_, open := <-af
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers("af"))

	// publishing without subscribers is fine
	require.NoError(t, hub.Publish(ctx, model.Event{Type: model.EventSessionTick, Username: "af"}))
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("af")
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		require.NoError(t, hub.Publish(context.Background(), model.Event{Type: model.EventSessionTick, Username: "af", Remaining: i}))
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestSessionEvents_ReachHub(t *testing.T) {
	f := newFixture(t)
	hub := NewHub()
	f.sessions.events = FanOut{f.sink, hub}

	events, cancel := hub.Subscribe("af")
	defer cancel()

	sess := f.login(t, "af", "1111")
	started := <-events
	assert.Equal(t, model.EventSessionStarted, started.Type)
	assert.Equal(t, sess.ID(), started.SessionID)
	require.NotNil(t, started.Snapshot)
	assert.Equal(t, "Alena Fleming", started.Snapshot.Owner)

	f.tickN(sess, 1)
	tick := <-events
	assert.Equal(t, model.EventSessionTick, tick.Type)
	assert.Equal(t, "01:59", tick.Label)
}
