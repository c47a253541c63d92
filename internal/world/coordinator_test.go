package world_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quailworks/quail-api/internal/pkg/clock"
	"github.com/quailworks/quail-api/internal/world"
)

// recordingSystem counts updates and can be made to panic
type recordingSystem struct {
	name    string
	updates int
	panics  bool
}

func (s *recordingSystem) Name() string { return s.name }

func (s *recordingSystem) Update(_ context.Context, _ time.Time) error {
	if s.panics {
		panic("boom")
	}
	s.updates++
	return nil
}

type CoordinatorTestSuite struct {
	suite.Suite

	manualClock *clock.Manual
	coordinator *world.Coordinator
	ctx         context.Context

	fast   *recordingSystem
	medium *recordingSystem
	slow   *recordingSystem
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.manualClock = clock.NewManual(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	c, err := world.NewCoordinator(&world.Config{Clock: s.manualClock})
	s.Require().NoError(err)
	s.coordinator = c

	s.fast = &recordingSystem{name: "fast"}
	s.medium = &recordingSystem{name: "medium"}
	s.slow = &recordingSystem{name: "slow"}
	s.Require().NoError(c.Register(world.BucketFast, s.fast))
	s.Require().NoError(c.Register(world.BucketMedium, s.medium))
	s.Require().NoError(c.Register(world.BucketSlow, s.slow))
}

func (s *CoordinatorTestSuite) TestOnlyElapsedBucketsFire() {
	s.coordinator.Start()

	s.manualClock.Advance(61 * time.Second)
	s.coordinator.Update(s.ctx)

	s.Equal(1, s.fast.updates)
	s.Equal(0, s.medium.updates)
	s.Equal(0, s.slow.updates)
}

func (s *CoordinatorTestSuite) TestBucketsFireIndependently() {
	s.coordinator.Start()

	s.manualClock.Advance(5 * time.Minute)
	s.coordinator.Update(s.ctx)
	s.Equal(1, s.fast.updates)
	s.Equal(1, s.medium.updates)
	s.Equal(0, s.slow.updates)

	s.manualClock.Advance(time.Hour)
	s.coordinator.Update(s.ctx)
	s.Equal(2, s.fast.updates)
	s.Equal(2, s.medium.updates)
	s.Equal(1, s.slow.updates)
}

func (s *CoordinatorTestSuite) TestNoFireBeforeInterval() {
	s.coordinator.Start()

	s.manualClock.Advance(30 * time.Second)
	s.coordinator.Update(s.ctx)

	s.Equal(0, s.fast.updates)
}

func (s *CoordinatorTestSuite) TestUpdateBeforeStartIsNoop() {
	s.manualClock.Advance(time.Hour)
	s.coordinator.Update(s.ctx)

	s.Equal(0, s.fast.updates)
	s.Equal(0, s.slow.updates)
}

func (s *CoordinatorTestSuite) TestStopHaltsFiring() {
	s.coordinator.Start()
	s.coordinator.Stop()

	s.manualClock.Advance(time.Hour)
	s.coordinator.Update(s.ctx)

	s.Equal(0, s.fast.updates)
}

func (s *CoordinatorTestSuite) TestForceBucketIgnoresInterval() {
	s.coordinator.Start()

	s.coordinator.ForceBucket(s.ctx, world.BucketSlow)
	s.Equal(1, s.slow.updates)
	s.Equal(0, s.fast.updates)
}

func (s *CoordinatorTestSuite) TestForceUpdateRunsAllBuckets() {
	s.coordinator.Start()

	s.coordinator.ForceUpdate(s.ctx)
	s.Equal(1, s.fast.updates)
	s.Equal(1, s.medium.updates)
	s.Equal(1, s.slow.updates)
}

func (s *CoordinatorTestSuite) TestForceUpdateResetsAllTimers() {
	s.coordinator.Start()

	s.manualClock.Advance(59 * time.Second)
	s.coordinator.ForceUpdate(s.ctx)
	s.Equal(1, s.fast.updates)

	// Timers were rearmed at the force, not at Start.
	s.manualClock.Advance(59 * time.Second)
	s.coordinator.Update(s.ctx)
	s.Equal(1, s.fast.updates)

	s.manualClock.Advance(time.Second)
	s.coordinator.Update(s.ctx)
	s.Equal(2, s.fast.updates)
}

func (s *CoordinatorTestSuite) TestPanickingSystemDoesNotStopSiblings() {
	bad := &recordingSystem{name: "bad", panics: true}
	after := &recordingSystem{name: "after"}
	c, err := world.NewCoordinator(&world.Config{Clock: s.manualClock})
	s.Require().NoError(err)
	s.Require().NoError(c.Register(world.BucketFast, bad))
	s.Require().NoError(c.Register(world.BucketFast, after))

	c.Start()
	s.manualClock.Advance(time.Minute)
	c.Update(s.ctx)

	s.Equal(1, after.updates)
}

func (s *CoordinatorTestSuite) TestRegisterUnknownBucket() {
	err := s.coordinator.Register(world.Bucket("2m"), s.fast)
	s.Error(err)
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}
