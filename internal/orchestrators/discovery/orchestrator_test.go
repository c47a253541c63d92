package discovery_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/quailworks/quail-api/internal/catalogs"
	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/orchestrators/discovery"
	"github.com/quailworks/quail-api/internal/pkg/clock"
	"github.com/quailworks/quail-api/internal/pkg/idgen"
	playerrepo "github.com/quailworks/quail-api/internal/repositories/player"
	playermock "github.com/quailworks/quail-api/internal/repositories/player/mock"
)

type DiscoveryOrchestratorTestSuite struct {
	suite.Suite

	ctrl         *gomock.Controller
	mockRepo     *playermock.MockRepository
	manualClock  *clock.Manual
	orchestrator *discovery.Orchestrator
	ctx          context.Context
}

func (s *DiscoveryOrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = playermock.NewMockRepository(s.ctrl)
	s.manualClock = clock.NewManual(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	locations := catalogs.NewStaticLocations(
		[]catalogs.Location{
			{ID: "meadow_pond", RegionID: "meadow", BiomeID: "wetland", Difficulty: 1, FastTravel: true},
			{ID: "meadow_thicket", RegionID: "meadow", BiomeID: "grassland", Difficulty: 2},
			{ID: "cliff_cave", RegionID: "cliffs", BiomeID: "alpine", Difficulty: 3, Hidden: true},
		},
		[]catalogs.Region{
			{ID: "meadow", Difficulty: 1},
			{ID: "cliffs", Difficulty: 3, Hidden: true},
		},
		map[string][]string{
			"meadow_pond":    {"meadow_thicket"},
			"meadow_thicket": {"meadow_pond", "cliff_cave"},
			"cliff_cave":     {"meadow_thicket"},
		},
	)

	orc, err := discovery.New(&discovery.Config{
		PlayerRepo:  s.mockRepo,
		Locations:   locations,
		Clock:       s.manualClock,
		IDGenerator: idgen.NewSequential("disc"),
	})
	s.Require().NoError(err)
	s.orchestrator = orc
}

func (s *DiscoveryOrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DiscoveryOrchestratorTestSuite) expectGet(p *entities.Player) {
	s.mockRepo.EXPECT().Get(s.ctx, playerrepo.GetInput{ID: p.ID}).
		Return(&playerrepo.GetOutput{Player: p}, nil)
}

func (s *DiscoveryOrchestratorTestSuite) expectUpdatePassthrough() *entities.Player {
	var saved entities.Player
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input playerrepo.UpdateInput) (*playerrepo.UpdateOutput, error) {
			saved = *input.Player
			return &playerrepo.UpdateOutput{Player: input.Player}, nil
		})
	return &saved
}

func (s *DiscoveryOrchestratorTestSuite) TestProcessRegionDiscovery() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	s.expectGet(player)
	s.expectUpdatePassthrough()

	output, err := s.orchestrator.ProcessRegionDiscovery(s.ctx, &discovery.ProcessRegionDiscoveryInput{
		PlayerID: "player-1",
		RegionID: "meadow",
	})
	s.Require().NoError(err)
	s.Equal(discovery.ResultDiscovered, output.Result)
	s.Equal(int64(50), output.RewardGlimmer)
	s.Equal(int64(50), output.Wallet.Balance)
}

func (s *DiscoveryOrchestratorTestSuite) TestProcessRegionDiscoveryHiddenDoubles() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	s.expectGet(player)
	s.expectUpdatePassthrough()

	output, err := s.orchestrator.ProcessRegionDiscovery(s.ctx, &discovery.ProcessRegionDiscoveryInput{
		PlayerID: "player-1",
		RegionID: "cliffs",
	})
	s.Require().NoError(err)
	// 50 * difficulty 3, doubled for hidden.
	s.Equal(int64(300), output.RewardGlimmer)
}

func (s *DiscoveryOrchestratorTestSuite) TestProcessRegionDiscoveryIdempotent() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	player.WorldExploration.DiscoveredRegions["meadow"] = true
	s.expectGet(player)

	output, err := s.orchestrator.ProcessRegionDiscovery(s.ctx, &discovery.ProcessRegionDiscoveryInput{
		PlayerID: "player-1",
		RegionID: "meadow",
	})
	s.Require().NoError(err)
	s.Equal(discovery.ResultAlreadyDiscovered, output.Result)
	s.Zero(output.RewardGlimmer)
	s.Zero(output.Wallet.Balance)
}

func (s *DiscoveryOrchestratorTestSuite) TestProcessRegionDiscoveryUnknown() {
	output, err := s.orchestrator.ProcessRegionDiscovery(s.ctx, &discovery.ProcessRegionDiscoveryInput{
		PlayerID: "player-1",
		RegionID: "atlantis",
	})
	s.Require().NoError(err)
	s.Equal(discovery.ResultUnknownID, output.Result)
}

func (s *DiscoveryOrchestratorTestSuite) TestProcessLocationDiscovery() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	s.expectGet(player)
	saved := s.expectUpdatePassthrough()

	output, err := s.orchestrator.ProcessLocationDiscovery(s.ctx, &discovery.ProcessLocationDiscoveryInput{
		PlayerID:   "player-1",
		LocationID: "meadow_pond",
	})
	s.Require().NoError(err)
	s.Equal(discovery.ResultDiscovered, output.Result)
	s.Equal(int64(10), output.RewardGlimmer)
	// First wetland location grants the biome-first achievement.
	s.Contains(output.Achievements, "first_wetland")

	s.True(saved.WorldExploration.DiscoveredLocations["meadow_pond"])
	s.True(saved.WorldExploration.DiscoveredRegions["meadow"])
	s.True(saved.WorldExploration.FastTravelUnlocks["meadow_pond"])
	s.Equal("meadow_pond", saved.WorldExploration.CurrentLocationID)
}

func (s *DiscoveryOrchestratorTestSuite) TestProcessLocationDiscoveryBiomeFirstOnce() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	player.WorldExploration.DiscoveredBiomes["alpine"] = true
	player.WorldExploration.Achievements["first_alpine"] = true
	s.expectGet(player)
	s.expectUpdatePassthrough()

	output, err := s.orchestrator.ProcessLocationDiscovery(s.ctx, &discovery.ProcessLocationDiscoveryInput{
		PlayerID:   "player-1",
		LocationID: "cliff_cave",
	})
	s.Require().NoError(err)
	s.Equal(discovery.ResultDiscovered, output.Result)
	s.NotContains(output.Achievements, "first_alpine")
}

func (s *DiscoveryOrchestratorTestSuite) TestCheckMilestoneAchievements() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	player.WorldExploration.DiscoveredRegions["meadow"] = true
	player.WorldExploration.DiscoveredRegions["cliffs"] = true
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		player.WorldExploration.FastTravelUnlocks[id] = true
	}
	s.expectGet(player)
	s.expectUpdatePassthrough()

	output, err := s.orchestrator.CheckMilestoneAchievements(s.ctx, &discovery.CheckMilestoneAchievementsInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Contains(output.NewlyGranted, "all_regions")
	s.Contains(output.NewlyGranted, "fast_traveler")
	s.NotContains(output.NewlyGranted, "all_biomes")
}

func (s *DiscoveryOrchestratorTestSuite) TestCheckMilestoneAchievementsGrantedOnce() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	player.WorldExploration.DiscoveredRegions["meadow"] = true
	player.WorldExploration.DiscoveredRegions["cliffs"] = true
	player.WorldExploration.Achievements["all_regions"] = true
	s.expectGet(player)

	output, err := s.orchestrator.CheckMilestoneAchievements(s.ctx, &discovery.CheckMilestoneAchievementsInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Empty(output.NewlyGranted)
}

func TestDiscoveryOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(DiscoveryOrchestratorTestSuite))
}
