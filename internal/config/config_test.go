package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telnet: TelnetConfig{
			Host:         "0.0.0.0",
			Port:         4000,
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 30 * time.Second,
		},
		Battle: BattleConfig{
			MaxTurns: 0,
			Seed:     0,
			Color:    true,
		},
		Simulation: SimulationConfig{
			Trials:    1000,
			Workers:   4,
			OutputDir: "output",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestTelnetAddr(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "0.0.0.0:4000", cfg.Telnet.Addr())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
telnet:
  host: 127.0.0.1
  port: 4001
  read_timeout: 1m
  write_timeout: 10s
logging:
  level: debug
  format: console
battle:
  max_turns: 200
  seed: 42
  color: false
simulation:
  trials: 50
  workers: 2
  output_dir: reports
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4001, cfg.Telnet.Port)
	assert.Equal(t, time.Minute, cfg.Telnet.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 200, cfg.Battle.MaxTurns)
	assert.Equal(t, uint64(42), cfg.Battle.Seed)
	assert.False(t, cfg.Battle.Color)
	assert.Equal(t, 50, cfg.Simulation.Trials)
	assert.Equal(t, "reports", cfg.Simulation.OutputDir)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, 0, cfg.Battle.MaxTurns)
	assert.True(t, cfg.Battle.Color)
	assert.Equal(t, 1000, cfg.Simulation.Trials)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DUEL_BATTLE_MAX_TURNS", "75")
	t.Setenv("DUEL_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Battle.MaxTurns)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadDevConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "dev.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Telnet.Port)
	assert.Equal(t, 4, cfg.Simulation.Workers)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViper_Invalid(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)
	v.Set("simulation.trials", 0)
	_, err = LoadFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.trials")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateTelnetPort(t *testing.T) {
	cfg := validConfig()
	cfg.Telnet.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateBattleMaxTurns(t *testing.T) {
	cfg := validConfig()
	cfg.Battle.MaxTurns = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.Trials = 0
	cfg.Simulation.Workers = 0
	cfg.Telnet.Port = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.trials")
	assert.Contains(t, err.Error(), "simulation.workers")
	assert.Contains(t, err.Error(), "telnet.port")
}

// Property-based tests

func TestPropertyValidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.IntRange(1, 65535).Draw(t, "port")
		cfg := validConfig()
		cfg.Telnet.Port = port
		err := cfg.Validate()
		if err != nil {
			t.Fatalf("valid port %d rejected: %v", port, err)
		}
	})
}

func TestPropertyInvalidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65536, 100000),
		).Draw(t, "port")
		cfg := validConfig()
		cfg.Telnet.Port = port
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("invalid port %d accepted", port)
		}
	})
}

func TestPropertySimulationBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		trials := rapid.IntRange(-10, 10000).Draw(t, "trials")
		workers := rapid.IntRange(-10, 64).Draw(t, "workers")
		cfg := validConfig()
		cfg.Simulation.Trials = trials
		cfg.Simulation.Workers = workers
		err := cfg.Validate()
		if (trials >= 1 && workers >= 1) != (err == nil) {
			t.Fatalf("trials=%d workers=%d: unexpected validation result %v", trials, workers, err)
		}
	})
}
