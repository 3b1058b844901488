package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/scout/internal/adapters/mq/worker"
	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/roles"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

type countingAnalyzer struct {
	inner *scoring.Analyzer
	calls atomic.Int64
	delay time.Duration
}

func (a *countingAnalyzer) Analyze(s *attributes.Snapshot) scoring.Analysis {
	a.calls.Add(1)
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	return a.inner.Analyze(s)
}

func newAnalyzer() *countingAnalyzer {
	catalog := roles.NewCatalog()
	_ = catalog.Replace([]roles.Definition{{
		ID: "in-st", Name: "Poacher", Category: "Striker", Phase: roles.PhaseInPossession,
		Weights: map[string]float64{"Finishing": 3, "OffTheBall": 3},
	}})
	return &countingAnalyzer{inner: scoring.NewAnalyzer(catalog)}
}

func TestPool(t *testing.T) {
	convey.Convey("Given a started pool of four workers", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		analyzer := newAnalyzer()
		pool := worker.NewPool(4, analyzer, worker.WithQueueCapacity(8))
		pool.Start(ctx)
		pool.Start(ctx)
		defer func() { _ = pool.Shutdown(context.Background()) }()

		convey.So(pool.Size(), convey.ShouldEqual, 4)

		convey.Convey("When a batch larger than the queue is analysed", func() {
			snaps := make([]*attributes.Snapshot, 100)
			for i := range snaps {
				snaps[i] = attributes.Uniform(i%21, false)
			}

			results, err := pool.Analyze(ctx, snaps)

			convey.Convey("Then every snapshot is analysed once, in input order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(results), convey.ShouldEqual, 100)
				convey.So(analyzer.calls.Load(), convey.ShouldEqual, 100)
				for i, r := range results {
					convey.So(r.InPossessionFits[0].Score, convey.ShouldEqual, float64(i%21)*5)
				}
			})
		})

		convey.Convey("When the batch holds a nil snapshot", func() {
			results, err := pool.Analyze(ctx, []*attributes.Snapshot{nil, attributes.Uniform(20, false)})

			convey.Convey("Then it yields the empty analysis", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(results[0].InPossessionFits, convey.ShouldBeEmpty)
				convey.So(results[1].InPossessionFits[0].Score, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When the batch is empty", func() {
			results, err := pool.Analyze(ctx, nil)
			convey.So(err, convey.ShouldBeNil)
			convey.So(results, convey.ShouldNotBeNil)
			convey.So(results, convey.ShouldBeEmpty)
		})

		convey.Convey("When the caller's context is already cancelled", func() {
			done, stop := context.WithCancel(ctx)
			stop()

			_, err := pool.Analyze(done, []*attributes.Snapshot{attributes.Uniform(10, false)})

			convey.Convey("Then the batch fails with the context error", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the pool is shut down", func() {
			convey.So(pool.Shutdown(context.Background()), convey.ShouldBeNil)

			_, err := pool.Analyze(ctx, []*attributes.Snapshot{attributes.Uniform(10, false)})

			convey.Convey("Then new batches are refused", func() {
				convey.So(errors.Is(err, worker.ErrStopped), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a pool that was never started", t, func() {
		pool := worker.NewPool(0, newAnalyzer())

		convey.Convey("Then batches are refused", func() {
			_, err := pool.Analyze(context.Background(), []*attributes.Snapshot{nil})
			convey.So(errors.Is(err, worker.ErrNotStarted), convey.ShouldBeTrue)
			convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
			convey.So(pool.Shutdown(context.Background()), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given slow analyses and a short deadline", t, func() {
		analyzer := newAnalyzer()
		analyzer.delay = 50 * time.Millisecond
		pool := worker.NewPool(1, analyzer, worker.WithQueueCapacity(1))
		pool.Start(context.Background())
		defer func() { _ = pool.Shutdown(context.Background()) }()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		snaps := make([]*attributes.Snapshot, 10)
		_, err := pool.Analyze(ctx, snaps)

		convey.Convey("Then the batch is abandoned with the deadline error", func() {
			convey.So(errors.Is(err, context.DeadlineExceeded), convey.ShouldBeTrue)
			convey.So(analyzer.calls.Load(), convey.ShouldBeLessThan, 10)
		})
	})
}
