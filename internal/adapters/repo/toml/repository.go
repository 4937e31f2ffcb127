package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName       = "config"
	configType       = "toml"
	presetsPathKey   = "presets.path"
	presetsFileMode  = 0o600
	presetsDirMode   = 0o700
	presetsConfigDir = ".clickloop"
	presetsFile      = "presets.toml"
	tempFilePattern  = ".presets-*.toml.tmp"
)

// Repository persists named click presets in a TOML file. Writes go
// through a temp file + rename so a crash never leaves a torn file.
type Repository struct {
	presetsPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.PresetRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, presetsConfigDir, presetsFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, presetsConfigDir))
	cfg.SetDefault(presetsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	presetsPath := cfg.GetString(presetsPathKey)
	if presetsPath == "" {
		return nil, errors.New("presets path is empty")
	}
	presetsPath, err = normalizePresetsPath(presetsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{presetsPath: presetsPath, mu: lockForPath(presetsPath)}, nil
}

func (r *Repository) Save(ctx context.Context, preset domain.Preset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := preset.Validate(); err != nil {
		return fmt.Errorf("validate preset: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(preset)
	updated := false
	for i := range file.Presets {
		if file.Presets[i].Name == encoded.Name {
			file.Presets[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Presets = append(file.Presets, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByName(ctx context.Context, name string) (domain.Preset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Preset{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Preset{}, err
	}
	file.applyDefaults()

	for _, entry := range file.Presets {
		if entry.Name == name {
			return fromSchema(entry), nil
		}
	}

	return domain.Preset{}, domain.ErrPresetNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Preset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	file.applyDefaults()

	presets := make([]domain.Preset, 0, len(file.Presets))
	for _, entry := range file.Presets {
		presets = append(presets, fromSchema(entry))
	}

	return presets, nil
}

func (r *Repository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	remaining := make([]presetSchema, 0, len(file.Presets))
	found := false
	for _, entry := range file.Presets {
		if entry.Name == name {
			found = true
			continue
		}
		remaining = append(remaining, entry)
	}
	if !found {
		return domain.ErrPresetNotFound
	}

	file.Presets = remaining

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.presetsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read presets file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode presets file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.presetsPath), presetsDirMode); err != nil {
		return fmt.Errorf("create presets directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode presets file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.presetsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp presets file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp presets file: %w", err)
	}

	if err := tempFile.Chmod(presetsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp presets file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp presets file: %w", err)
	}

	if err := os.Rename(tempName, r.presetsPath); err != nil {
		return fmt.Errorf("replace presets file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.presetsPath, presetsFileMode); err != nil {
		return fmt.Errorf("chmod presets file: %w", err)
	}

	return nil
}

func normalizePresetsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve presets path: %w", err)
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
