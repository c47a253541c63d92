package account

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/errors"
	redisclient "github.com/quailworks/quail-api/internal/redis"
)

const (
	accountKeyPrefix = "account:"

	errAccountNil     = "account cannot be nil"
	errAccountIDEmpty = "account ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis account repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed account repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Account == nil {
		return nil, errors.InvalidArgument(errAccountNil)
	}
	if input.Account.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	key := accountKeyPrefix + input.Account.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("account with ID %s already exists", input.Account.ID)
	}

	data, err := json.Marshal(input.Account)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal account")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to create account")
	}

	return &CreateOutput{Account: input.Account}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	result, err := r.client.Get(ctx, accountKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("account with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get account")
	}

	var a entities.CharacterAccount
	if err := json.Unmarshal([]byte(result), &a); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal account")
	}

	return &GetOutput{Account: &a}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Account == nil {
		return nil, errors.InvalidArgument(errAccountNil)
	}
	if input.Account.ID == "" {
		return nil, errors.InvalidArgument(errAccountIDEmpty)
	}

	key := accountKeyPrefix + input.Account.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("account with ID %s not found", input.Account.ID)
	}

	data, err := json.Marshal(input.Account)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal account")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update account")
	}

	return &UpdateOutput{Account: input.Account}, nil
}
