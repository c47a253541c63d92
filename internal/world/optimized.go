package world

import (
	"context"
	"time"

	"github.com/quailworks/quail-api/internal/catalogs"
	"github.com/quailworks/quail-api/internal/errors"
	"github.com/quailworks/quail-api/internal/pkg/clock"
)

// SpatialSystem is a simulation subsystem updated per location under
// the adaptive plan. Critical systems (weather) receive every active
// location and are never throttled; non-critical ones receive only
// the plan's surviving tiers and never see INACTIVE locations.
type SpatialSystem interface {
	// Name identifies the system in logs
	Name() string
	// Critical marks a system exempt from throttling
	Critical() bool
	// Update advances the system for the eligible locations
	Update(ctx context.Context, now time.Time, locationIDs []string) error
}

// OptimizedConfig holds the dependencies for the optimized coordinator
type OptimizedConfig struct {
	Clock     clock.Clock
	Locations catalogs.LocationCatalog
	Monitor   *FrameBudgetMonitor
	// Locate reports the player's current location id per tick
	Locate func() string
}

// Validate ensures all required dependencies are provided
func (c *OptimizedConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Locations == nil {
		vb.RequiredField("Locations")
	}
	if c.Monitor == nil {
		vb.RequiredField("Monitor")
	}
	if c.Locate == nil {
		vb.RequiredField("Locate")
	}

	return vb.Build()
}

// OptimizedCoordinator layers spatial planning onto the bucket
// scheduler: each bucket cycle consults the adaptive planner and
// feeds every spatial system only the locations it should touch.
type OptimizedCoordinator struct {
	*Coordinator

	locations catalogs.LocationCatalog
	monitor   *FrameBudgetMonitor
	locate    func() string
	planner   *AdaptivePlanner
}

// NewOptimizedCoordinator creates an optimized coordinator
func NewOptimizedCoordinator(cfg *OptimizedConfig) (*OptimizedCoordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	base, err := NewCoordinator(&Config{Clock: cfg.Clock})
	if err != nil {
		return nil, err
	}

	return &OptimizedCoordinator{
		Coordinator: base,
		locations:   cfg.Locations,
		monitor:     cfg.Monitor,
		locate:      cfg.Locate,
	}, nil
}

// Start builds the spatial index and planner, then arms the buckets
func (c *OptimizedCoordinator) Start() {
	index := NewSpatialIndex(c.locations)
	c.planner = NewAdaptivePlanner(index, c.monitor)
	c.Coordinator.Start()
}

// RegisterSpatial adds a spatial system to a bucket
func (c *OptimizedCoordinator) RegisterSpatial(bucket Bucket, system SpatialSystem) error {
	if system == nil {
		return errors.InvalidArgument("system is required")
	}
	return c.Coordinator.Register(bucket, &spatialAdapter{owner: c, system: system})
}

// spatialAdapter fits a SpatialSystem into the bucket scheduler,
// resolving the plan at update time and feeding measured cost back
// into the frame budget monitor.
type spatialAdapter struct {
	owner  *OptimizedCoordinator
	system SpatialSystem
}

func (a *spatialAdapter) Name() string {
	return a.system.Name()
}

func (a *spatialAdapter) Update(ctx context.Context, now time.Time) error {
	plan := a.owner.planner.PlanUpdates(a.owner.locate())

	locs := plan.Locations()
	if a.system.Critical() {
		locs = plan.AllLocations()
	}

	start := time.Now()
	err := a.system.Update(ctx, now, locs)
	a.owner.monitor.Record(time.Since(start))
	return err
}
