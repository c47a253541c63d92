// Package world runs the periodic world simulation: bucketed system
// scheduling, spatial partitioning around the player, and adaptive
// throttling under frame budget pressure.
package world

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/quailworks/quail-api/internal/errors"
	"github.com/quailworks/quail-api/internal/pkg/clock"
)

// Bucket is an update cadence class
type Bucket string

// Buckets
const (
	BucketFast   Bucket = "1m"
	BucketMedium Bucket = "5m"
	BucketSlow   Bucket = "1h"
)

// bucketIntervals maps each bucket to its firing interval
var bucketIntervals = map[Bucket]time.Duration{
	BucketFast:   time.Minute,
	BucketMedium: 5 * time.Minute,
	BucketSlow:   time.Hour,
}

// System is one simulation subsystem updated on a bucket cadence
type System interface {
	// Name identifies the system in logs
	Name() string
	// Update advances the system to now
	Update(ctx context.Context, now time.Time) error
}

// Config holds the dependencies for the coordinator
type Config struct {
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Coordinator schedules registered systems across three independent
// update buckets. Each bucket fires when its interval has elapsed
// since its own last run; a slow tick never delays a fast one.
type Coordinator struct {
	mu sync.Mutex

	clock   clock.Clock
	systems map[Bucket][]System
	lastRun map[Bucket]time.Time
	running bool
}

// NewCoordinator creates a coordinator with no systems registered
func NewCoordinator(cfg *Config) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Coordinator{
		clock:   cfg.Clock,
		systems: make(map[Bucket][]System),
		lastRun: make(map[Bucket]time.Time),
	}, nil
}

// Register adds a system to a bucket. Registration order is update
// order within the bucket.
func (c *Coordinator) Register(bucket Bucket, system System) error {
	if _, ok := bucketIntervals[bucket]; !ok {
		return errors.InvalidArgumentf("unknown bucket %q", bucket)
	}
	if system == nil {
		return errors.InvalidArgument("system is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.systems[bucket] = append(c.systems[bucket], system)
	return nil
}

// Start arms every bucket at the current time. Buckets fire only
// after a full interval has elapsed from here.
func (c *Coordinator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for bucket := range bucketIntervals {
		c.lastRun[bucket] = now
	}
	c.running = true
	slog.Info("world coordinator started")
}

// Stop halts bucket firing. Update becomes a no-op until Start.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	slog.Info("world coordinator stopped")
}

// Update fires every bucket whose interval has elapsed. Buckets are
// independent: at t=61s only the 1m bucket fires.
func (c *Coordinator) Update(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	now := c.clock.Now()
	for _, bucket := range []Bucket{BucketFast, BucketMedium, BucketSlow} {
		if now.Sub(c.lastRun[bucket]) >= bucketIntervals[bucket] {
			c.runBucket(ctx, bucket, now)
			c.lastRun[bucket] = now
		}
	}
}

// ForceUpdate runs every registered system immediately and resets all
// three bucket timers.
func (c *Coordinator) ForceUpdate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	now := c.clock.Now()
	for _, bucket := range []Bucket{BucketFast, BucketMedium, BucketSlow} {
		c.runBucket(ctx, bucket, now)
		c.lastRun[bucket] = now
	}
}

// ForceBucket fires one bucket immediately regardless of elapsed time
func (c *Coordinator) ForceBucket(ctx context.Context, bucket Bucket) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	now := c.clock.Now()
	c.runBucket(ctx, bucket, now)
	c.lastRun[bucket] = now
}

func (c *Coordinator) runBucket(ctx context.Context, bucket Bucket, now time.Time) {
	for _, system := range c.systems[bucket] {
		runSystem(ctx, bucket, system, now)
	}
}

// runSystem isolates one system invocation. A panicking system is
// logged and its siblings in the same tick still run.
func runSystem(ctx context.Context, bucket Bucket, system System, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("world system panicked",
				"bucket", bucket,
				"system", system.Name(),
				"panic", r,
			)
		}
	}()

	if err := system.Update(ctx, now); err != nil {
		slog.Error("world system update failed",
			"bucket", bucket,
			"system", system.Name(),
			"error", err,
		)
	}
}
