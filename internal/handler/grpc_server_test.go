package handler

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestGRPCServer_Health(t *testing.T) {
	srv, hs := NewGRPCServer(zerolog.Nop())
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := healthpb.NewHealthClient(conn)
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	SetServing(hs, true)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestSyncServing_FollowsStorageCheck(t *testing.T) {
	_, hs := NewGRPCServer(zerolog.Nop())
	var checkErr error
	h := NewHealth(func(ctx context.Context) error { return checkErr })
	ctx := context.Background()

	status := func() healthpb.HealthCheckResponse_ServingStatus {
		resp, err := hs.Check(ctx, &healthpb.HealthCheckRequest{})
		require.NoError(t, err)
		return resp.Status
	}

	// startup not finished
	assert.False(t, SyncServing(ctx, h, hs))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status())

	h.SetReady(true)
	assert.True(t, SyncServing(ctx, h, hs))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status())

	checkErr = fmt.Errorf("db down")
	assert.False(t, SyncServing(ctx, h, hs))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status())
}

func TestWatchReadiness(t *testing.T) {
	_, hs := NewGRPCServer(zerolog.Nop())
	h := NewHealth(nil)
	h.SetReady(true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		WatchReadiness(ctx, h, hs, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{})
		return err == nil && resp.Status == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	h.SetReady(false)
	assert.Eventually(t, func() bool {
		resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{})
		return err == nil && resp.Status == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
