package history

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRedisBackendIntegration runs the backend against a real Redis server.
func TestRedisBackendIntegration(t *testing.T) {
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	b, err := NewRedisBackend(fmt.Sprintf("redis://%s:%s/0", host, port.Port()), "it:history")
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	want := snapshot(3, 4)
	require.NoError(t, b.Write(ctx, want))
	got, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	smaller := snapshot(1, 1)
	require.NoError(t, b.Write(ctx, smaller))
	got, err = b.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, smaller, got)
}
