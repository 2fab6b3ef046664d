package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingTicker struct {
	calls int
	err   error
	// stop cancels the driver after the given number of calls.
	stop   int
	cancel context.CancelFunc
}

func (c *countingTicker) Tick(ctx context.Context) error {
	c.calls++
	if c.stop > 0 && c.calls >= c.stop && c.cancel != nil {
		c.cancel()
	}
	return c.err
}

func TestDriver_Tick(t *testing.T) {
	tests := map[string]struct {
		errs     []error
		expCalls []int
		expErr   string
	}{
		"all tickers run": {
			errs:     []error{nil, nil},
			expCalls: []int{1, 1},
		},
		"first error stops the tick": {
			errs:     []error{errors.New("boom"), nil},
			expCalls: []int{1, 0},
			expErr:   "boom",
		},
		"no tickers": {},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var tickers []Ticker
			var counters []*countingTicker
			for _, err := range tt.errs {
				c := &countingTicker{err: err}
				counters = append(counters, c)
				tickers = append(tickers, c)
			}

			err := NewDriver(tickers).Tick(context.Background())
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, c := range counters {
				testutil.AssertEqual(t, "calls", c.calls, tt.expCalls[i])
			}
		})
	}
}

func TestDriver_StartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &countingTicker{stop: 3, cancel: cancel}
	d := NewDriver([]Ticker{c}, WithTickLength(time.Millisecond), WithName("test"))

	if err := d.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.calls < 3 {
		t.Errorf("expected at least 3 ticks, got %d", c.calls)
	}
}

func TestDriver_StartReturnsTickError(t *testing.T) {
	c := &countingTicker{err: errors.New("tick failed")}
	d := NewDriver([]Ticker{c}, WithTickLength(time.Millisecond))

	err := d.Start(context.Background())
	testutil.AssertErrorContains(t, err, "tick failed")
}
