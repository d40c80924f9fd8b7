//go:build !integration

package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageProbe_Resolves(t *testing.T) {
	probe := NewImageProbe(time.Second)
	var gotName string
	var gotArgs []string
	probe.runner = func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return []byte(`{"schemaVersion": 2}`), nil
	}

	err := probe.Probe(context.Background(), "ghcr.io/acme/myapp:v1.0.0")

	require.NoError(t, err)
	assert.Equal(t, "docker", gotName)
	assert.Equal(t, []string{"manifest", "inspect", "ghcr.io/acme/myapp:v1.0.0"}, gotArgs)
}

func TestImageProbe_UnresolvedReference(t *testing.T) {
	probe := NewImageProbe(time.Second)
	probe.runner = func(context.Context, string, ...string) ([]byte, error) {
		return []byte("manifest unknown: manifest unknown"), errors.New("exit status 1")
	}

	err := probe.Probe(context.Background(), "ghcr.io/acme/missing:v9")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ghcr.io/acme/missing:v9"`)
	assert.Contains(t, err.Error(), "did not resolve")
}

func TestImageProbe_NotFoundIsDefinitive(t *testing.T) {
	probe := NewImageProbe(time.Second)
	probe.runner = func(context.Context, string, ...string) ([]byte, error) {
		return []byte("manifest unknown: manifest unknown"), errors.New("exit status 1")
	}

	err := probe.Probe(context.Background(), "ghcr.io/acme/missing:v9")

	require.Error(t, err)
	assert.True(t, IsImageNotFound(err))
}

func TestImageProbe_TransportFailureIsNotDefinitive(t *testing.T) {
	probe := NewImageProbe(time.Second)
	probe.runner = func(context.Context, string, ...string) ([]byte, error) {
		return []byte("error: Get https://ghcr.io/v2/: connection refused"), errors.New("exit status 1")
	}

	err := probe.Probe(context.Background(), "ghcr.io/acme/myapp:v1")

	require.Error(t, err)
	assert.False(t, IsImageNotFound(err), "a registry we cannot reach says nothing about the image")
	assert.Contains(t, err.Error(), "could not complete")
}

func TestImageProbe_Timeout(t *testing.T) {
	probe := NewImageProbe(20 * time.Millisecond)
	probe.runner = func(ctx context.Context, _ string, _ ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	err := probe.Probe(context.Background(), "ghcr.io/acme/slow:v1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestImageProbe_CanceledContext(t *testing.T) {
	probe := NewImageProbe(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := probe.Probe(ctx, "ghcr.io/acme/myapp:v1")

	require.Error(t, err, "a canceled context stops the probe at the limiter")
}

func TestNewImageProbe_DefaultTimeout(t *testing.T) {
	probe := NewImageProbe(0)
	assert.Positive(t, probe.timeout)
}
