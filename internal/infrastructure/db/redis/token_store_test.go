package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func TestKey(t *testing.T) {
	if got := key("3f1c"); got != "clinicweb:token:3f1c" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestOpen_Unreachable(t *testing.T) {
	_, err := Open(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestTokenStore_LoadWrapsClientErrors(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	s := NewTokenStore(client)

	_, err := s.Load(context.Background(), "c1")
	if err == nil || errors.Is(err, goredis.Nil) {
		t.Fatalf("expected a connection error, got %v", err)
	}
}
