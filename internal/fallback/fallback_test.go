package fallback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/store"
)

func ok(name, v string) Strategy[string] {
	return Strategy[string]{Name: name, Run: func(context.Context) (string, error) { return v, nil }}
}

func fail(name string, err error) Strategy[string] {
	return Strategy[string]{Name: name, Run: func(context.Context) (string, error) { return "", err }}
}

func TestDoFirstSuccess(t *testing.T) {
	c := New[string]("test", Options{})
	res, err := c.Do(context.Background(), ok("a", "A"), ok("b", "B"))
	require.NoError(t, err)
	assert.Equal(t, "A", res.Value)
	assert.Equal(t, "a", res.Strategy)
	assert.False(t, res.Degraded())
}

func TestDoFallsThrough(t *testing.T) {
	c := New[string]("test", Options{})
	res, err := c.Do(context.Background(),
		fail("lecto", ErrSkip),
		fail("mymemory", errors.New("connection refused")),
		fail("invalid", fmt.Errorf("decode: %w", ErrInvalid)),
		Strategy[string]{Name: "echo", Local: true, Run: func(context.Context) (string, error) { return "hola", nil }},
	)
	require.NoError(t, err)
	assert.Equal(t, "hola", res.Value)
	assert.Equal(t, "echo", res.Strategy)
	require.Len(t, res.Failures, 3)
	assert.Equal(t, ReasonSkipped, res.Failures[0].Reason)
	assert.Equal(t, ReasonUnavailable, res.Failures[1].Reason)
	assert.Equal(t, ReasonInvalid, res.Failures[2].Reason)
}

func TestDoExhausted(t *testing.T) {
	c := New[string]("test", Options{})
	res, err := c.Do(context.Background(), fail("a", errors.New("x")), fail("b", ErrQuota))
	require.ErrorIs(t, err, ErrExhausted)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, ReasonQuota, res.Failures[1].Reason)
	assert.Contains(t, err.Error(), "a=unavailable")
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	c := New[string]("test", Options{FailureThreshold: 2, OpenTimeout: time.Hour})
	calls := 0
	flaky := Strategy[string]{Name: "flaky", Run: func(context.Context) (string, error) {
		calls++
		return "", errors.New("boom")
	}}

	for range 2 {
		_, _ = c.Do(context.Background(), flaky, ok("backup", "ok"))
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, gobreaker.StateOpen, c.BreakerState("flaky"))

	res, err := c.Do(context.Background(), flaky, ok("backup", "ok"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "open breaker short-circuits the call")
	require.Len(t, res.Failures, 1)
	assert.Equal(t, ReasonCircuitOpen, res.Failures[0].Reason)
}

func TestSkipsDoNotTrip(t *testing.T) {
	c := New[string]("test", Options{FailureThreshold: 1})
	for range 5 {
		_, _ = c.Do(context.Background(), fail("nokey", ErrSkip), ok("b", "B"))
	}
	assert.Equal(t, gobreaker.StateClosed, c.BreakerState("nokey"))
}

func TestLocalBypassesBreaker(t *testing.T) {
	c := New[string]("test", Options{FailureThreshold: 1})
	for range 3 {
		_, _ = c.Do(context.Background(), Strategy[string]{Name: "static", Local: true, Run: func(context.Context) (string, error) {
			return "", errors.New("nope")
		}})
	}
	assert.Equal(t, gobreaker.StateClosed, c.BreakerState("static"))
}

func TestCustomClassifier(t *testing.T) {
	errBilling := errors.New("billing hard limit reached")
	c := New[string]("images", Options{Classify: func(err error) Reason {
		if errors.Is(err, errBilling) {
			return ReasonQuota
		}
		return ""
	}})
	res, err := c.Do(context.Background(), fail("openai", errBilling), fail("gemini", errors.New("x")), ok("c", "C"))
	require.NoError(t, err)
	assert.Equal(t, ReasonQuota, res.Failures[0].Reason)
	assert.Equal(t, ReasonUnavailable, res.Failures[1].Reason)
}

func TestCanceledContextStops(t *testing.T) {
	c := New[string]("test", Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := c.Do(ctx, ok("a", "A"))
	require.ErrorIs(t, err, ErrExhausted)
	require.Len(t, res.Failures, 1)
	assert.ErrorIs(t, res.Failures[0].Err, context.Canceled)
}

type recordingRepo struct {
	store.EventRepo
	mu    sync.Mutex
	calls []store.ServiceCallEventData
}

func (r *recordingRepo) AppendServiceCall(_ context.Context, d store.ServiceCallEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, d)
	return nil
}

func TestEventObserver(t *testing.T) {
	repo := &recordingRepo{}
	c := New[string]("translate", Options{Observer: EventObserver(repo, store.KindTranslate)})

	_, err := c.Do(context.Background(), fail("lecto", ErrSkip), fail("mymemory", errors.New("503")), ok("echo", "x"))
	require.NoError(t, err)

	require.Len(t, repo.calls, 2, "skipped strategies are not recorded")
	assert.Equal(t, "mymemory", repo.calls[0].Provider)
	assert.False(t, repo.calls[0].Success)
	assert.Equal(t, "unavailable: 503", repo.calls[0].ErrorMessage)
	assert.Equal(t, store.KindTranslate, repo.calls[1].Kind)
	assert.True(t, repo.calls[1].Success)
}

func TestHaltStopsChain(t *testing.T) {
	c := New[string]("images", Options{})
	boom := errors.New("content policy violation")
	reached := false
	res, err := c.Do(context.Background(),
		fail("openai", Halt(boom)),
		Strategy[string]{Name: "gemini", Run: func(context.Context) (string, error) {
			reached = true
			return "png", nil
		}},
	)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrExhausted)
	assert.False(t, reached)
	require.Len(t, res.Failures, 1)
	assert.Nil(t, Halt(nil))
}
