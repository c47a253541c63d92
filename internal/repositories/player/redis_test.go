package player_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/errors"
	"github.com/quailworks/quail-api/internal/ledger"
	redisclient "github.com/quailworks/quail-api/internal/redis"
	"github.com/quailworks/quail-api/internal/repositories/player"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    redisclient.Client
	repo      player.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo, err := player.NewRedis(&player.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func (s *RedisRepositoryTestSuite) newPlayer(id, accountID string) *entities.Player {
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	p := entities.NewPlayer(id, accountID, created)
	var err error
	p.Wallet, err = p.Wallet.Add(250, ledger.TransactionQuestReward, created, "tx_1", nil)
	s.Require().NoError(err)
	return p
}

func (s *RedisRepositoryTestSuite) TestLifecycle() {
	p := s.newPlayer("slot_1", "acct_1")

	createOut, err := s.repo.Create(s.ctx, player.CreateInput{Player: p})
	s.Require().NoError(err)
	s.NotNil(createOut)

	s.True(s.miniRedis.Exists("player:slot_1"))

	getOut, err := s.repo.Get(s.ctx, player.GetInput{ID: "slot_1"})
	s.Require().NoError(err)
	s.Equal(int64(250), getOut.Player.Wallet.Balance)
	s.Equal("acct_1", getOut.Player.AccountID)

	updated := getOut.Player.Clone()
	updated.Inventory = updated.Inventory.Add(entities.SeedItemID, 40)
	_, err = s.repo.Update(s.ctx, player.UpdateInput{Player: updated})
	s.Require().NoError(err)

	getOut2, err := s.repo.Get(s.ctx, player.GetInput{ID: "slot_1"})
	s.Require().NoError(err)
	s.Equal(40, getOut2.Player.Inventory.Quantity(entities.SeedItemID))

	_, err = s.repo.Delete(s.ctx, player.DeleteInput{ID: "slot_1"})
	s.Require().NoError(err)
	s.False(s.miniRedis.Exists("player:slot_1"))

	_, err = s.repo.Get(s.ctx, player.GetInput{ID: "slot_1"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	p := s.newPlayer("slot_1", "acct_1")

	_, err := s.repo.Create(s.ctx, player.CreateInput{Player: p})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, player.CreateInput{Player: p})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateMissing() {
	p := s.newPlayer("slot_404", "acct_1")
	_, err := s.repo.Update(s.ctx, player.UpdateInput{Player: p})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.Create(s.ctx, player.CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, player.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.ListByAccountID(s.ctx, player.ListByAccountIDInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestListByAccountID() {
	_, err := s.repo.Create(s.ctx, player.CreateInput{Player: s.newPlayer("slot_1", "acct_1")})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, player.CreateInput{Player: s.newPlayer("slot_2", "acct_1")})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, player.CreateInput{Player: s.newPlayer("slot_3", "acct_2")})
	s.Require().NoError(err)

	listOut, err := s.repo.ListByAccountID(s.ctx, player.ListByAccountIDInput{AccountID: "acct_1"})
	s.Require().NoError(err)
	s.Len(listOut.Players, 2)
	for _, p := range listOut.Players {
		s.Equal("acct_1", p.AccountID)
	}
}

func (s *RedisRepositoryTestSuite) TestListCleansStaleIndex() {
	_, err := s.repo.Create(s.ctx, player.CreateInput{Player: s.newPlayer("slot_1", "acct_1")})
	s.Require().NoError(err)

	// document vanished; index entry survives
	s.miniRedis.Del("player:slot_1")

	listOut, err := s.repo.ListByAccountID(s.ctx, player.ListByAccountIDInput{AccountID: "acct_1"})
	s.Require().NoError(err)
	s.Len(listOut.Players, 0)

	members, _ := s.miniRedis.SMembers("player:account:acct_1")
	s.Len(members, 0)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
