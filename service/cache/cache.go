package cache

import (
	"errors"
	"time"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// OneTimeGetter loads the value on a cache miss.
type OneTimeGetter func() (interface{}, error)

// Service is a json cache over an arbitrary provider. Keys are namespaced
// with the configured prefix.
type Service interface {
	// GetByFunc reads through the cache, falling back to getter and
	// filling the cache on a miss. container must be a pointer.
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl   time.Duration
	Pfx   string
	Cache provider.Provider
}
