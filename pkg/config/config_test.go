package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/brokview/pkg/logger"
	"github.com/carverauto/brokview/pkg/models"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "brokview.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidateFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"nats": {"url": "nats://127.0.0.1:4222"},
		"duplicate_dump_window": "90s",
		"livestate": {"endpoint": "http://localhost:7770", "poll_interval": "5s"}
	}`)

	var cfg models.BrokviewConfig

	c := NewConfig(logger.NewTestLogger())
	require.NoError(t, c.LoadAndValidate(context.Background(), path, &cfg))

	require.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	require.Equal(t, models.Duration(90*time.Second), cfg.DuplicateDumpWindow)
	require.Equal(t, models.Duration(5*time.Second), cfg.LiveState.PollInterval)
}

func TestLoadAndValidateRunsValidator(t *testing.T) {
	path := writeConfigFile(t, `{"duplicate_dump_window": "90s"}`)

	var cfg models.BrokviewConfig

	c := NewConfig(logger.NewTestLogger())
	err := c.LoadAndValidate(context.Background(), path, &cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "nats.url is required")
}

func TestLoadAndValidateRejectsNonPointer(t *testing.T) {
	c := NewConfig(logger.NewTestLogger())

	var cfg models.BrokviewConfig

	err := c.LoadAndValidate(context.Background(), "ignored.json", cfg)
	require.ErrorIs(t, err, errInvalidConfigPtr)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	c := NewConfig(logger.NewTestLogger())

	var cfg models.BrokviewConfig

	err := c.LoadAndValidate(context.Background(), filepath.Join(t.TempDir(), "nope.json"), &cfg)
	require.ErrorIs(t, err, errLoadConfigFailed)
}

type failingLoader struct{}

var errBoom = errors.New("boom")

func (*failingLoader) Load(_ context.Context, _ string, _ interface{}) error { return errBoom }

func TestLoadAndValidateWrapsLoaderError(t *testing.T) {
	c := NewConfig(logger.NewTestLogger())
	c.SetLoader(&failingLoader{})

	var cfg models.BrokviewConfig

	err := c.LoadAndValidate(context.Background(), "any.json", &cfg)
	require.ErrorIs(t, err, errBoom)
}
