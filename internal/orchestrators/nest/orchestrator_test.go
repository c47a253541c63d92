package nest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/quailworks/quail-api/internal/catalogs"
	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/ledger"
	"github.com/quailworks/quail-api/internal/nest"
	nestorc "github.com/quailworks/quail-api/internal/orchestrators/nest"
	"github.com/quailworks/quail-api/internal/pkg/clock"
	"github.com/quailworks/quail-api/internal/pkg/idgen"
	playerrepo "github.com/quailworks/quail-api/internal/repositories/player"
	playermock "github.com/quailworks/quail-api/internal/repositories/player/mock"
)

type NestOrchestratorTestSuite struct {
	suite.Suite

	ctrl         *gomock.Controller
	mockRepo     *playermock.MockRepository
	manualClock  *clock.Manual
	orchestrator *nestorc.Orchestrator
	ctx          context.Context
}

func (s *NestOrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = playermock.NewMockRepository(s.ctrl)
	s.manualClock = clock.NewManual(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	upgrades := &catalogs.StaticNestUpgrades{
		Defs: map[nest.UpgradeType]map[nest.Tier]nest.TierDef{
			nest.UpgradeSeedStorage: {
				nest.Tier2: {
					UpgradeType:         nest.UpgradeSeedStorage,
					Tier:                nest.Tier2,
					RequiredPlayerLevel: 3,
					PrerequisiteTier:    nest.Tier1,
					SeedCost:            50,
					GlimmerCost:         200,
					IngredientCosts:     map[string]int{"moss": 5, "twigs": 10},
					BonusMagnitude:      0.2,
				},
				nest.Tier1: {
					UpgradeType:    nest.UpgradeSeedStorage,
					Tier:           nest.Tier1,
					BonusMagnitude: 0.1,
				},
			},
		},
	}

	orc, err := nestorc.New(&nestorc.Config{
		PlayerRepo:  s.mockRepo,
		Upgrades:    upgrades,
		Clock:       s.manualClock,
		IDGenerator: idgen.NewSequential("nest"),
	})
	s.Require().NoError(err)
	s.orchestrator = orc
}

func (s *NestOrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// readyPlayer owns an active TIER_1 seed storage at level 3 with every
// resource the TIER_2 definition costs.
func (s *NestOrchestratorTestSuite) readyPlayer() *entities.Player {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	player.ArchetypeProgress.Level = 3

	c := player.NestCustomization.GrantUpgrade(nest.UpgradeSeedStorage)
	c, _ = c.SetUpgradeActive(nest.UpgradeSeedStorage, true)
	player.NestCustomization = c

	player.Inventory = player.Inventory.Add(entities.SeedItemID, 60)
	w, err := player.Wallet.Add(500, ledger.TransactionIAPPurchase, s.manualClock.Now(), "tx-1", nil)
	s.Require().NoError(err)
	player.Wallet = w
	player.IngredientInventory = player.IngredientInventory.Add("moss", 5)
	player.IngredientInventory = player.IngredientInventory.Add("twigs", 12)
	return player
}

func (s *NestOrchestratorTestSuite) expectGet(p *entities.Player) {
	s.mockRepo.EXPECT().Get(s.ctx, playerrepo.GetInput{ID: p.ID}).
		Return(&playerrepo.GetOutput{Player: p}, nil)
}

func (s *NestOrchestratorTestSuite) TestUpgradeFunctionalTier() {
	player := s.readyPlayer()
	s.expectGet(player)

	var saved *entities.Player
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input playerrepo.UpdateInput) (*playerrepo.UpdateOutput, error) {
			saved = input.Player
			return &playerrepo.UpdateOutput{Player: input.Player}, nil
		})

	output, err := s.orchestrator.UpgradeFunctionalTier(s.ctx, &nestorc.UpgradeFunctionalTierInput{
		PlayerID: "player-1",
		Type:     nest.UpgradeSeedStorage,
	})
	s.Require().NoError(err)
	s.Equal(nest.UpgradeOK, output.Code)
	s.Equal(nest.Tier2, output.NewTier)

	// Seeds, glimmer and ingredients all deducted in one save.
	s.Equal(10, saved.Inventory.Quantity(entities.SeedItemID))
	s.Equal(int64(300), saved.Wallet.Balance)
	s.Equal(0, saved.IngredientInventory.Ingredients["moss"])
	s.Equal(2, saved.IngredientInventory.Ingredients["twigs"])

	tier, _ := saved.NestCustomization.CurrentTier(nest.UpgradeSeedStorage)
	s.Equal(nest.Tier2, tier)
}

func (s *NestOrchestratorTestSuite) TestUpgradeFunctionalTierNotOwned() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	s.expectGet(player)

	output, err := s.orchestrator.UpgradeFunctionalTier(s.ctx, &nestorc.UpgradeFunctionalTierInput{
		PlayerID: "player-1",
		Type:     nest.UpgradeSeedStorage,
	})
	s.Require().NoError(err)
	s.Equal(nest.UpgradeNotOwned, output.Code)
}

func (s *NestOrchestratorTestSuite) TestUpgradeFunctionalTierLevelTooLow() {
	player := s.readyPlayer()
	player.ArchetypeProgress.Level = 2
	s.expectGet(player)

	output, err := s.orchestrator.UpgradeFunctionalTier(s.ctx, &nestorc.UpgradeFunctionalTierInput{
		PlayerID: "player-1",
		Type:     nest.UpgradeSeedStorage,
	})
	s.Require().NoError(err)
	s.Equal(nest.UpgradeLevelTooLow, output.Code)
}

func (s *NestOrchestratorTestSuite) TestUpgradeFunctionalTierShortage() {
	player := s.readyPlayer()
	inv, ok := player.Inventory.Remove(entities.SeedItemID, 40)
	s.Require().True(ok)
	player.Inventory = inv
	s.expectGet(player)

	output, err := s.orchestrator.UpgradeFunctionalTier(s.ctx, &nestorc.UpgradeFunctionalTierInput{
		PlayerID: "player-1",
		Type:     nest.UpgradeSeedStorage,
	})
	s.Require().NoError(err)
	s.Equal(nest.UpgradeInsufficientSeeds, output.Code)
	s.Equal(30, output.Shortage.Seeds)
}

func (s *NestOrchestratorTestSuite) TestCanAffordUpgradeTier() {
	player := s.readyPlayer()
	s.expectGet(player)

	output, err := s.orchestrator.CanAffordUpgradeTier(s.ctx, &nestorc.CanAffordUpgradeTierInput{
		PlayerID: "player-1",
		Type:     nest.UpgradeSeedStorage,
	})
	s.Require().NoError(err)
	s.True(output.Affordable)
	s.Equal(nest.Tier2, output.NextTier)
	s.True(output.Shortage.IsZero())
}

func (s *NestOrchestratorTestSuite) TestCanAffordUpgradeTierShortage() {
	player := s.readyPlayer()
	w, ok := player.Wallet.Spend(450, ledger.TransactionShopPurchase, s.manualClock.Now(), "sp-1")
	s.Require().True(ok)
	player.Wallet = w
	s.expectGet(player)

	output, err := s.orchestrator.CanAffordUpgradeTier(s.ctx, &nestorc.CanAffordUpgradeTierInput{
		PlayerID: "player-1",
		Type:     nest.UpgradeSeedStorage,
	})
	s.Require().NoError(err)
	s.False(output.Affordable)
	s.Equal(nest.UpgradeInsufficientGlimmer, output.Code)
	s.Equal(int64(150), output.Shortage.Glimmer)
}

func (s *NestOrchestratorTestSuite) TestPlaceCosmetic() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	player.NestCustomization = player.NestCustomization.AddCosmetic("pebble_fountain")
	s.expectGet(player)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input playerrepo.UpdateInput) (*playerrepo.UpdateOutput, error) {
			return &playerrepo.UpdateOutput{Player: input.Player}, nil
		})

	output, err := s.orchestrator.PlaceCosmetic(s.ctx, &nestorc.PlaceCosmeticInput{
		PlayerID:   "player-1",
		CosmeticID: "pebble_fountain",
		X:          4.5,
		Y:          7,
	})
	s.Require().NoError(err)
	s.Equal(nest.PlaceOK, output.Code)
	s.NotEmpty(output.InstanceID)
}

func (s *NestOrchestratorTestSuite) TestPlaceCosmeticNotOwned() {
	player := entities.NewPlayer("player-1", "acct-1", s.manualClock.Now())
	s.expectGet(player)

	output, err := s.orchestrator.PlaceCosmetic(s.ctx, &nestorc.PlaceCosmeticInput{
		PlayerID:   "player-1",
		CosmeticID: "pebble_fountain",
		X:          1,
		Y:          1,
	})
	s.Require().NoError(err)
	s.Equal(nest.PlaceNotOwned, output.Code)
}

func (s *NestOrchestratorTestSuite) TestGetUpgradeBonus() {
	player := s.readyPlayer()
	s.expectGet(player)

	output, err := s.orchestrator.GetUpgradeBonus(s.ctx, &nestorc.GetUpgradeBonusInput{
		PlayerID: "player-1",
		Type:     nest.UpgradeSeedStorage,
	})
	s.Require().NoError(err)
	s.Equal(0.1, output.Magnitude)
	s.Equal(nest.Tier1, output.Tier)
}

func (s *NestOrchestratorTestSuite) TestGetUpgradeBonusInactive() {
	player := s.readyPlayer()
	c, _ := player.NestCustomization.SetUpgradeActive(nest.UpgradeSeedStorage, false)
	player.NestCustomization = c
	s.expectGet(player)

	output, err := s.orchestrator.GetUpgradeBonus(s.ctx, &nestorc.GetUpgradeBonusInput{
		PlayerID: "player-1",
		Type:     nest.UpgradeSeedStorage,
	})
	s.Require().NoError(err)
	s.Zero(output.Magnitude)
}

func TestNestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(NestOrchestratorTestSuite))
}
