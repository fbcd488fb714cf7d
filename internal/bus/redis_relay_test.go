package bus

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRelayFansOutAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	newClient := func() *redis.Client {
		c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = c.Close() })
		return c
	}

	hubA, hubB := NewHub(), NewHub()
	relayA := NewRedisRelay(hubA, newClient())
	relayB := NewRedisRelay(hubB, newClient())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	readyA, readyB := make(chan struct{}), make(chan struct{})
	go func() { _ = relayA.Run(ctx, readyA) }()
	go func() { _ = relayB.Run(ctx, readyB) }()
	<-readyA
	<-readyB

	gotB := make(chan struct{}, 1)
	hubB.Subscribe("sess", func() {
		select {
		case gotB <- struct{}{}:
		default:
		}
	})
	localA := 0
	hubA.Subscribe("sess", func() { localA++ })

	relayA.Publish("sess")
	require.Equal(t, 1, localA, "local subscribers are notified synchronously")

	select {
	case <-gotB:
	case <-time.After(2 * time.Second):
		t.Fatal("remote instance was not notified")
	}
}
