// Package config loads the geomath server configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/geomath/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root of the YAML document.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Service ServiceConfig `json:"service" yaml:"service"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// ServerConfig holds network settings.
type ServerConfig struct {
	ListenAddr      string        `json:"listen_addr" yaml:"listen_addr"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `json:"max_body_bytes" yaml:"max_body_bytes"`

	// QUICAddr enables the QUIC listener when set.
	QUICAddr string `json:"quic_addr" yaml:"quic_addr"`
	// TLSCertFile and TLSKeyFile secure the QUIC listener. When both are empty
	// a self-signed certificate is generated at start.
	TLSCertFile string `json:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile  string `json:"tls_key_file" yaml:"tls_key_file"`
}

// ServiceConfig bounds the conversion service.
type ServiceConfig struct {
	MaxBatch int `json:"max_batch" yaml:"max_batch"`
	Workers  int `json:"workers" yaml:"workers"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:      "127.0.0.1:8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1024 * 1024, // 1MB
		},
		Service: ServiceConfig{
			MaxBatch: 1024,
			Workers:  8,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load decodes YAML from r on top of Default and validates the result.
func Load(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile is Load over the file at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Server.ListenAddr == "":
		return fmt.Errorf("%w: server.listen_addr is empty", ErrInvalidConfig)
	case c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0:
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalidConfig)
	case c.Server.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: server.max_body_bytes must be positive", ErrInvalidConfig)
	case (c.Server.TLSCertFile == "") != (c.Server.TLSKeyFile == ""):
		return fmt.Errorf("%w: server.tls_cert_file and server.tls_key_file must be set together", ErrInvalidConfig)
	case c.Service.MaxBatch <= 0:
		return fmt.Errorf("%w: service.max_batch must be positive", ErrInvalidConfig)
	case c.Service.Workers <= 0:
		return fmt.Errorf("%w: service.workers must be positive", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}
