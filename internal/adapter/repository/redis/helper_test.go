package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// redisFixture is a miniredis server plus a connected client, both torn
// down with the test.
type redisFixture struct {
	server *miniredis.Miniredis
	client *redislib.Client
	ctx    context.Context
}

func newRedisFixture(t *testing.T) *redisFixture {
	t.Helper()

	server := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &redisFixture{server: server, client: client, ctx: context.Background()}
}

func (f *redisFixture) raw(t *testing.T, key string) (string, bool) {
	t.Helper()

	if !f.server.Exists(key) {
		return "", false
	}

	val, err := f.server.Get(key)
	if err != nil {
		t.Fatalf("read %s: %v", key, err)
	}
	return val, true
}
