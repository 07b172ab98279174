// Package config loads pool settings from files and the environment
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/jzx17/easythread/pkg/types"
	"github.com/jzx17/easythread/pkg/worker"
)

// Configuration keys
const (
	KeyDaemon = "pool.daemon"
	KeyLevel  = "pool.level"
	KeySink   = "pool.sink"

	// EnvPrefix is prepended to environment variables, e.g. EASYTHREAD_POOL_LEVEL
	EnvPrefix = "EASYTHREAD"
)

// Supported log sink names
const (
	SinkStdout  = "stdout"
	SinkDiscard = "discard"
	SinkLogrus  = "logrus"
)

// Settings holds the pool settings read from configuration
type Settings struct {
	Daemon bool
	Level  types.Level
	Sink   string
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDaemon, false)
	v.SetDefault(KeyLevel, types.LevelInfo.String())
	v.SetDefault(KeySink, SinkStdout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadFile reads a config file into a fresh viper instance and loads the settings
func LoadFile(path string) (*Settings, error) {
	v := New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Load(v)
}

// Load extracts and validates pool settings
func Load(v *viper.Viper) (*Settings, error) {
	if v == nil {
		v = New()
	}

	daemon, err := cast.ToBoolE(v.Get(KeyDaemon))
	if err != nil {
		return nil, &types.ConfigError{Component: "pool", Field: KeyDaemon, Reason: err.Error()}
	}

	level, err := types.ParseLevel(cast.ToString(v.Get(KeyLevel)))
	if err != nil {
		return nil, &types.ConfigError{Component: "pool", Field: KeyLevel, Reason: err.Error()}
	}

	sink := strings.ToLower(cast.ToString(v.Get(KeySink)))
	switch sink {
	case SinkStdout, SinkDiscard, SinkLogrus:
	default:
		return nil, &types.ConfigError{Component: "pool", Field: KeySink, Reason: fmt.Sprintf("unknown sink %q", sink)}
	}

	return &Settings{Daemon: daemon, Level: level, Sink: sink}, nil
}

// PoolConfig converts the settings into a worker pool configuration.
// logger backs the logrus sink; nil means the logrus standard logger.
func (s *Settings) PoolConfig(logger logrus.FieldLogger) *worker.PoolConfig {
	config := worker.DefaultPoolConfig()
	config.Daemon = s.Daemon
	config.Level = s.Level

	switch s.Sink {
	case SinkDiscard:
		config.LogSink = types.DiscardSink
	case SinkLogrus:
		config.LogSink = worker.LogrusSink(logger)
	default:
		config.LogSink = types.StdoutSink
	}
	return config
}
