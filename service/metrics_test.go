package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, operation, outcome string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() != "bankist_operations_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["operation"] == operation && labels["outcome"] == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)
	reg := prometheus.NewRegistry()
	f.sessions.metrics = NewMetrics(reg)
	// a second registration reuses the collectors
	assert.NotNil(t, NewMetrics(reg))

	_, err := f.sessions.Login(context.Background(), "af", "0000")
	require.Error(t, err)
	sess := f.login(t, "af", "1111")
	_, err = f.tx.Transfer(context.Background(), sess, "af", amount("1"))
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, reg, "login", "rejected"))
	assert.Equal(t, 1.0, counterValue(t, reg, "login", "ok"))
	assert.Equal(t, 1.0, counterValue(t, reg, "transfer", "rejected"))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, "ok", outcomeOf(nil))
	assert.Equal(t, "expired", outcomeOf(ErrSessionExpired))
	assert.Equal(t, "rejected", outcomeOf(reject(ErrLoanRejected, ErrInvalidAmount)))
	assert.Equal(t, "discarded", outcomeOf(fmt.Errorf("%w: %w", ErrLoanDiscarded, ErrSessionExpired)))

	var nilMetrics *Metrics
	nilMetrics.observe("login", "ok")
	nilMetrics.setActive(true)
}
