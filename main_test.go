package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noelruault/awstop/internal/config"
)

func parse(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(args))
	return configFromFlags(cmd)
}

func TestConfigFromFlagsDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRegion, cfg.Region)
	assert.Equal(t, config.ServiceEC2, cfg.Service)
	assert.Equal(t, config.DefaultRefreshInterval, cfg.RefreshInterval)
}

func TestConfigFromFlagsOverrides(t *testing.T) {
	cfg, err := parse(t,
		"-r", "eu-west-1",
		"--service", "lambda",
		"-i", "5s",
		"-a", "AKIA", "-s", "secret", "-S", "token",
		"-p", "work",
		"--debug",
	)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, config.ServiceLambda, cfg.Service)
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "AKIA", cfg.AccessKey)
	assert.Equal(t, "secret", cfg.SecretKey)
	assert.Equal(t, "token", cfg.SessionToken)
	assert.Equal(t, "work", cfg.Profile)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfigFromFlagsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awstop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: ap-south-1\nservice: s3\n"), 0o600))

	cfg, err := parse(t, "-c", path, "--service", "EC2")
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", cfg.Region, "file value survives when the flag is unset")
	assert.Equal(t, config.ServiceEC2, cfg.Service)
}

func TestConfigFromFlagsRejectsBadInput(t *testing.T) {
	_, err := parse(t, "--service", "rds")
	assert.ErrorIs(t, err, config.ErrConfig)

	_, err = parse(t, "--interval=-1s")
	assert.ErrorIs(t, err, config.ErrConfig)
}
