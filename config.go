package texshare

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration shared by
// the texshare tools.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Client   ClientConfig `yaml:"client"`
	Spout    SpoutConfig  `yaml:"spout"`
	LogLevel string       `yaml:"log_level"`
}

// ServerConfig holds Syphon server creation settings.
type ServerConfig struct {
	Name      string `yaml:"name"`
	Private   bool   `yaml:"private"`
	Antialias uint32 `yaml:"antialias"`
	Depth     uint32 `yaml:"depth"`
	Stencil   uint32 `yaml:"stencil"`
}

// ClientConfig selects servers and sets how often
// directory listings are refreshed.
type ClientConfig struct {
	Name         string        `yaml:"name"`
	AppName      string        `yaml:"app_name"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// SpoutConfig holds Spout sender and receiver settings.
type SpoutConfig struct {
	SenderName       string        `yaml:"sender_name"`
	FrameSyncTimeout time.Duration `yaml:"frame_sync_timeout"`
	BufferMode       bool          `yaml:"buffer_mode"`
	Buffers          int           `yaml:"buffers"`
	CPUMode          bool          `yaml:"cpu_mode"`
}

// SpoutSettings is implemented by SpoutSender
// and SpoutReceiver.
type SpoutSettings interface {
	SetBufferMode(active bool)
	SetBuffers(buffers int)
	SetCPUMode(cpu bool) bool
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Name: "texshare",
		},
		Client: ClientConfig{
			PollInterval: time.Second,
		},
		Spout: SpoutConfig{
			FrameSyncTimeout: 67 * time.Millisecond,
			Buffers:          2,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}

	return cfg, nil
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}

	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, errors.Wrap(err, "log level")
	}

	return lvl, nil
}

// Apply writes the server settings into opts. Zero
// values leave the framework defaults in place.
func (c ServerConfig) Apply(opts *Options) {
	if opts == nil {
		return
	}
	if c.Private {
		opts.SetPrivate(true)
	}
	if c.Antialias > 0 {
		opts.SetAntialiasSampleCount(c.Antialias)
	}
	if c.Depth > 0 {
		opts.SetDepthBufferResolution(c.Depth)
	}
	if c.Stencil > 0 {
		opts.SetStencilBufferResolution(c.Stencil)
	}
}

// Apply writes the buffering and CPU settings into s.
func (c SpoutConfig) Apply(s SpoutSettings) {
	s.SetBufferMode(c.BufferMode)
	if c.Buffers > 0 {
		s.SetBuffers(c.Buffers)
	}
	s.SetCPUMode(c.CPUMode)
}
