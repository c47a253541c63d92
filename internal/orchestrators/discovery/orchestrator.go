package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/quailworks/quail-api/internal/catalogs"
	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/errors"
	"github.com/quailworks/quail-api/internal/ledger"
	"github.com/quailworks/quail-api/internal/pkg/clock"
	"github.com/quailworks/quail-api/internal/pkg/idgen"
	playerrepo "github.com/quailworks/quail-api/internal/repositories/player"
)

// Reward scaling and milestone thresholds
const (
	regionRewardBase   = 50
	locationRewardBase = 10
	fastTravelerCount  = 5
)

// regionCountMilestones and locationCountMilestones trigger on the
// exactly-Nth discovery.
var (
	regionCountMilestones   = []int{5, 10}
	locationCountMilestones = []int{10, 25, 50}
)

// Config holds the dependencies for the discovery orchestrator
type Config struct {
	PlayerRepo  playerrepo.Repository
	Locations   catalogs.LocationCatalog
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.Locations == nil {
		vb.RequiredField("Locations")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the discovery Service interface
type Orchestrator struct {
	mu sync.Mutex

	playerRepo playerrepo.Repository
	locations  catalogs.LocationCatalog
	clock      clock.Clock
	idGen      idgen.Generator
}

// New creates a new discovery orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		playerRepo: cfg.PlayerRepo,
		locations:  cfg.Locations,
		clock:      cfg.Clock,
		idGen:      cfg.IDGenerator,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// rewardFor scales a base payout by difficulty and doubles it for
// hidden content. Difficulty below 1 pays the base.
func rewardFor(base int64, difficulty int, hidden bool) int64 {
	if difficulty < 1 {
		difficulty = 1
	}
	reward := base * int64(difficulty)
	if hidden {
		reward *= 2
	}
	return reward
}

// grantIfNew adds an achievement unless already held, returning the
// updated state and whether it was newly granted.
func grantIfNew(w entities.WorldExploration, id string) (entities.WorldExploration, bool) {
	if w.HasAchievement(id) {
		return w, false
	}
	next := w.Clone()
	next.Achievements[id] = true
	return next, true
}

// ProcessRegionDiscovery records a first visit to a region
func (o *Orchestrator) ProcessRegionDiscovery(ctx context.Context, input *ProcessRegionDiscoveryInput) (*ProcessRegionDiscoveryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("regionID", input.RegionID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	region, ok := o.locations.Region(input.RegionID)
	if !ok {
		return &ProcessRegionDiscoveryOutput{Result: ResultUnknownID}, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	if player.WorldExploration.DiscoveredRegions[input.RegionID] {
		return &ProcessRegionDiscoveryOutput{
			Result: ResultAlreadyDiscovered,
			Wallet: player.Wallet,
		}, nil
	}

	now := o.clock.Now()
	next := player.Clone()

	exploration := next.WorldExploration.Clone()
	exploration.DiscoveredRegions[input.RegionID] = true

	var granted []string
	count := len(exploration.DiscoveredRegions)
	for _, n := range regionCountMilestones {
		if count == n {
			id := fmt.Sprintf("wayfarer_%d", n)
			var added bool
			if exploration, added = grantIfNew(exploration, id); added {
				granted = append(granted, id)
			}
		}
	}
	next.WorldExploration = exploration

	reward := rewardFor(regionRewardBase, region.Difficulty, region.Hidden)
	next.Wallet, err = next.Wallet.Add(reward, ledger.TransactionDiscoveryReward, now, o.idGen.Generate(), &ledger.TxDetails{
		Metadata: map[string]string{"region_id": input.RegionID},
	})
	if err != nil {
		return nil, err
	}
	next.ChoiceLog = next.ChoiceLog.Append("discovery.region", now, map[string]string{
		"region_id": input.RegionID,
	})

	updateOut, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	slog.Info("region discovered",
		"player_id", input.PlayerID,
		"region_id", input.RegionID,
		"reward", reward,
		"achievements", len(granted),
	)

	return &ProcessRegionDiscoveryOutput{
		Result:        ResultDiscovered,
		RewardGlimmer: reward,
		Achievements:  granted,
		Wallet:        updateOut.Player.Wallet,
	}, nil
}

// ProcessLocationDiscovery records a first visit to a location
func (o *Orchestrator) ProcessLocationDiscovery(ctx context.Context, input *ProcessLocationDiscoveryInput) (*ProcessLocationDiscoveryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("locationID", input.LocationID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	loc, ok := o.locations.Location(input.LocationID)
	if !ok {
		return &ProcessLocationDiscoveryOutput{Result: ResultUnknownID}, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	if player.WorldExploration.DiscoveredLocations[input.LocationID] {
		return &ProcessLocationDiscoveryOutput{
			Result: ResultAlreadyDiscovered,
			Wallet: player.Wallet,
		}, nil
	}

	now := o.clock.Now()
	next := player.Clone()

	exploration := next.WorldExploration.Clone()
	exploration.DiscoveredLocations[input.LocationID] = true
	exploration.CurrentLocationID = input.LocationID
	if loc.RegionID != "" {
		exploration.DiscoveredRegions[loc.RegionID] = true
	}
	if loc.FastTravel {
		exploration.FastTravelUnlocks[input.LocationID] = true
	}

	var granted []string
	if loc.BiomeID != "" && !exploration.DiscoveredBiomes[loc.BiomeID] {
		exploration.DiscoveredBiomes[loc.BiomeID] = true
		id := "first_" + loc.BiomeID
		var added bool
		if exploration, added = grantIfNew(exploration, id); added {
			granted = append(granted, id)
		}
	}
	count := len(exploration.DiscoveredLocations)
	for _, n := range locationCountMilestones {
		if count == n {
			id := fmt.Sprintf("explorer_%d", n)
			var added bool
			if exploration, added = grantIfNew(exploration, id); added {
				granted = append(granted, id)
			}
		}
	}
	next.WorldExploration = exploration

	reward := rewardFor(locationRewardBase, loc.Difficulty, loc.Hidden)
	next.Wallet, err = next.Wallet.Add(reward, ledger.TransactionDiscoveryReward, now, o.idGen.Generate(), &ledger.TxDetails{
		Metadata: map[string]string{"location_id": input.LocationID},
	})
	if err != nil {
		return nil, err
	}
	next.ChoiceLog = next.ChoiceLog.Append("discovery.location", now, map[string]string{
		"location_id": input.LocationID,
	})

	updateOut, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	slog.Info("location discovered",
		"player_id", input.PlayerID,
		"location_id", input.LocationID,
		"reward", reward,
		"achievements", len(granted),
	)

	return &ProcessLocationDiscoveryOutput{
		Result:        ResultDiscovered,
		RewardGlimmer: reward,
		Achievements:  granted,
		Wallet:        updateOut.Player.Wallet,
	}, nil
}

// CheckMilestoneAchievements polls for set-completion milestones
func (o *Orchestrator) CheckMilestoneAchievements(ctx context.Context, input *CheckMilestoneAchievementsInput) (*CheckMilestoneAchievementsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("playerID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	exploration := player.WorldExploration
	var granted []string

	allRegions := o.locations.RegionIDs()
	if len(allRegions) > 0 && countDiscovered(allRegions, exploration.DiscoveredRegions) == len(allRegions) {
		var added bool
		if exploration, added = grantIfNew(exploration, "all_regions"); added {
			granted = append(granted, "all_regions")
		}
	}

	allBiomes := o.locations.BiomeIDs()
	if len(allBiomes) > 0 && countDiscovered(allBiomes, exploration.DiscoveredBiomes) == len(allBiomes) {
		var added bool
		if exploration, added = grantIfNew(exploration, "all_biomes"); added {
			granted = append(granted, "all_biomes")
		}
	}

	if len(exploration.FastTravelUnlocks) >= fastTravelerCount {
		var added bool
		if exploration, added = grantIfNew(exploration, "fast_traveler"); added {
			granted = append(granted, "fast_traveler")
		}
	}

	if len(granted) == 0 {
		return &CheckMilestoneAchievementsOutput{}, nil
	}

	next := player.Clone()
	next.WorldExploration = exploration
	next.ChoiceLog = next.ChoiceLog.Append("discovery.milestones", o.clock.Now(), map[string]string{
		"granted": fmt.Sprintf("%d", len(granted)),
	})

	if _, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next}); err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	slog.Info("milestone achievements granted",
		"player_id", input.PlayerID,
		"granted", granted,
	)

	return &CheckMilestoneAchievementsOutput{NewlyGranted: granted}, nil
}

func countDiscovered(ids []string, discovered map[string]bool) int {
	count := 0
	for _, id := range ids {
		if discovered[id] {
			count++
		}
	}
	return count
}
