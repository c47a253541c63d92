// Package discovery orchestrates exploration rewards: region and
// location discoveries, their glimmer payouts, and idempotent
// achievement grants over cumulative exploration state.
package discovery

import (
	"context"

	"github.com/quailworks/quail-api/internal/ledger"
)

//go:generate mockgen -destination=mock/mock_service.go -package=discoverymock github.com/quailworks/quail-api/internal/orchestrators/discovery Service

// Result tags the expected outcomes of a discovery call
type Result string

const (
	// ResultDiscovered means this call recorded a new discovery.
	ResultDiscovered Result = "DISCOVERED"
	// ResultAlreadyDiscovered means the id was discovered before; no
	// reward is granted twice.
	ResultAlreadyDiscovered Result = "ALREADY_DISCOVERED"
	// ResultUnknownID means the catalog has no such region/location.
	ResultUnknownID Result = "UNKNOWN_ID"
)

// Service handles discovery rewards and milestones
type Service interface {
	// ProcessRegionDiscovery records a first visit to a region,
	// granting a difficulty-scaled glimmer reward and any count or
	// completion achievements it triggers.
	ProcessRegionDiscovery(ctx context.Context, input *ProcessRegionDiscoveryInput) (*ProcessRegionDiscoveryOutput, error)

	// ProcessLocationDiscovery records a first visit to a location,
	// including biome-first bookkeeping.
	ProcessLocationDiscovery(ctx context.Context, input *ProcessLocationDiscoveryInput) (*ProcessLocationDiscoveryOutput, error)

	// CheckMilestoneAchievements polls cumulative exploration state
	// for set-completion milestones. Each is granted at most once.
	CheckMilestoneAchievements(ctx context.Context, input *CheckMilestoneAchievementsInput) (*CheckMilestoneAchievementsOutput, error)
}

// ProcessRegionDiscoveryInput records a region visit
type ProcessRegionDiscoveryInput struct {
	PlayerID string
	RegionID string
}

// ProcessRegionDiscoveryOutput reports the reward and achievements
type ProcessRegionDiscoveryOutput struct {
	Result        Result
	RewardGlimmer int64
	Achievements  []string
	Wallet        ledger.Wallet
}

// ProcessLocationDiscoveryInput records a location visit
type ProcessLocationDiscoveryInput struct {
	PlayerID   string
	LocationID string
}

// ProcessLocationDiscoveryOutput reports the reward and achievements
type ProcessLocationDiscoveryOutput struct {
	Result        Result
	RewardGlimmer int64
	Achievements  []string
	Wallet        ledger.Wallet
}

// CheckMilestoneAchievementsInput identifies the player to poll
type CheckMilestoneAchievementsInput struct {
	PlayerID string
}

// CheckMilestoneAchievementsOutput lists milestones granted by this
// poll only
type CheckMilestoneAchievementsOutput struct {
	NewlyGranted []string
}
