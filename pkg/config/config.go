package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nspcc-dev/neo-hypervm/pkg/core/storage/dbconfig"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the default path to the config file.
const DefaultConfigPath = "./config/hypervm.yml"

// Version is the version of the engine, set at build time.
var Version string

// Config is the top-level configuration of hypervm.
type Config struct {
	VM      VM                       `yaml:"VM"`
	Storage dbconfig.DBConfiguration `yaml:"Storage"`
	Logger  Logger                   `yaml:"Logger"`
	Metrics BasicService             `yaml:"Metrics"`
	Pprof   BasicService             `yaml:"Pprof"`
	Host    Host                     `yaml:"Host"`
}

// Host configures the reference host.
type Host struct {
	// AllowDynamicInvoke permits calls with the script hash taken from the
	// stack.
	AllowDynamicInvoke bool `yaml:"AllowDynamicInvoke"`
	// ScriptCacheSize is the number of scripts kept in memory.
	ScriptCacheSize int `yaml:"ScriptCacheSize"`
	// Trace logs every executed instruction at debug level.
	Trace bool `yaml:"Trace"`
}

// DefaultScriptCacheSize is the default number of cached scripts.
const DefaultScriptCacheSize = 128

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		VM: DefaultVM(),
		Storage: dbconfig.DBConfiguration{
			Type: dbconfig.InMemoryDB,
		},
		Logger: Logger{
			LogLevel:    "info",
			LogEncoding: "console",
		},
		Host: Host{
			ScriptCacheSize: DefaultScriptCacheSize,
		},
	}
}

// Load attempts to load the config from the given path, the default one is
// used if path is empty.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	return LoadFile(path)
}

// LoadFile loads config from the provided path. Values missing in the file
// keep their defaults.
func LoadFile(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config '%s' doesn't exist", configPath)
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Unmarshal(configData)
}

// Unmarshal decodes YAML configuration on top of the defaults and validates
// the result.
func Unmarshal(data []byte) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if err := c.VM.Validate(); err != nil {
		return err
	}
	switch c.Storage.Type {
	case dbconfig.InMemoryDB:
	case dbconfig.LevelDB:
		if c.Storage.LevelDBOptions.DataDirectoryPath == "" {
			return errors.New("LevelDB storage needs DataDirectoryPath")
		}
	case dbconfig.BoltDB:
		if c.Storage.BoltDBOptions.FilePath == "" {
			return errors.New("BoltDB storage needs FilePath")
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}
	if c.Host.ScriptCacheSize <= 0 {
		return fmt.Errorf("invalid ScriptCacheSize: %d", c.Host.ScriptCacheSize)
	}
	return c.Logger.Validate()
}
