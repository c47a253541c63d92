// Package redis wraps the go-redis client library for easier testing.
package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mock/mock.go -package=redismock -source=interface.go

// Client wraps redis.UniversalClient so repositories can be tested
// against miniredis or a generated mock.
type Client interface {
	redis.UniversalClient
}

// Pipeliner wraps redis.Pipeliner for batch operations
type Pipeliner interface {
	redis.Pipeliner
}
