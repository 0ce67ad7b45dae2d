package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestSetGetDelRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.CacheKey("skills")
	if err := client.Set(ctx, key, "payload", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "payload" {
		t.Fatalf("expected stored payload, got %q", value)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); err != Nil {
		t.Fatalf("expected Nil after delete, got %v", err)
	}
}

func TestIncr(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.CounterKey("submissions")
	for want := int64(1); want <= 3; want++ {
		got, err := client.Incr(ctx, key)
		if err != nil {
			t.Fatalf("incr failed: %v", err)
		}
		if got != want {
			t.Fatalf("expected counter %d got %d", want, got)
		}
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.CacheKey("skills"); got != "tf:cache:skills" {
		t.Fatalf("unexpected cache key %s", got)
	}
	if got := client.CacheKey("skills", ""); got != "tf:cache:skills" {
		t.Fatalf("cache key should skip empty parts, got %s", got)
	}
	if got := client.CounterKey("hits"); got != "tf:counter:hits" {
		t.Fatalf("unexpected counter key %s", got)
	}
}

type mockCmdable struct {
	data map[string]string
	incr map[string]int64
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		incr: make(map[string]int64),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
