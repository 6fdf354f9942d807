package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/gorchard/farmhand/internal/domain"
	"github.com/gorchard/farmhand/internal/ports"
)

const (
	settingsName    = "settings"
	settingsType    = "json"
	configPathKey   = "config.path"
	configFileMode  = 0o600
	configDirMode   = 0o700
	configHomeDir   = ".farmhand"
	configFileName  = "config.json"
	tempFilePattern = ".config-*.json.tmp"
)

// Repository persists the runtime configuration as a JSON document with
// atomic replace-on-write. A missing document yields the defaults.
type Repository struct {
	configPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ConfigRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configHomeDir, configFileName)

	cfg.SetConfigName(settingsName)
	cfg.SetConfigType(settingsType)
	cfg.AddConfigPath(filepath.Join(homeDir, configHomeDir))
	cfg.SetDefault(configPathKey, defaultPath)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings file: %w", err)
		}
	}

	configPath := cfg.GetString(configPathKey)
	if configPath == "" {
		return nil, errors.New("config path is empty")
	}
	configPath, err = normalizeConfigPath(configPath)
	if err != nil {
		return nil, err
	}

	return &Repository{configPath: configPath, mu: lockForPath(configPath)}, nil
}

// NewRepositoryAt builds a repository on an explicit document path,
// bypassing viper resolution. Used by tests and the sim wiring.
func NewRepositoryAt(path string) (*Repository, error) {
	path, err := normalizeConfigPath(path)
	if err != nil {
		return nil, err
	}
	return &Repository{configPath: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Load(ctx context.Context) (domain.RuntimeConfig, error) {
	if err := ctx.Err(); err != nil {
		return domain.RuntimeConfig{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.RuntimeConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var doc documentSchema
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.RuntimeConfig{}, fmt.Errorf("decode config file: %w", err)
	}

	return fromSchema(doc)
}

func (r *Repository) Save(ctx context.Context, cfg domain.RuntimeConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := toSchema(cfg)
	if err != nil {
		return err
	}
	return r.writeDocument(doc)
}

func (r *Repository) writeDocument(doc documentSchema) error {
	if err := os.MkdirAll(filepath.Dir(r.configPath), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.configPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(append(data, '\n')); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, r.configPath); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false
	return nil
}

func normalizeConfigPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
