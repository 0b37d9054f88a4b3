package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/termdemo/internal/adapters/markup"
	"github.com/bnema/termdemo/internal/domain"
	"github.com/bnema/termdemo/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "toml"
	ScriptsDirKey   = "scripts.dir"
	scriptFileMode  = 0o644
	scriptsDirMode  = 0o755
	configDir       = ".config"
	appConfigDir    = "termdemo"
	scriptsSubdir   = "scripts"
	scriptExtension = ".toml"
	tempFilePattern = ".script-*.toml.tmp"
)

type Repository struct {
	scriptsDir string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ScriptRepository = (*Repository)(nil)

// NewRepository reads the application config into cfg (a missing file is
// fine) and resolves the scripts directory from it.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, configDir, appConfigDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(appDir)
	cfg.SetDefault(ScriptsDirKey, filepath.Join(appDir, scriptsSubdir))

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	scriptsDir := cfg.GetString(ScriptsDirKey)
	if scriptsDir == "" {
		return nil, errors.New("scripts directory is empty")
	}
	scriptsDir, err = normalizePath(expandHome(scriptsDir, homeDir))
	if err != nil {
		return nil, err
	}

	return &Repository{scriptsDir: scriptsDir, mu: lockForPath(scriptsDir)}, nil
}

func (r *Repository) Dir() string {
	return r.scriptsDir
}

// Load reads a script by path when ref names an existing file, otherwise by
// name from the scripts directory.
func (r *Repository) Load(ctx context.Context, ref string) (domain.Script, error) {
	if err := ctx.Err(); err != nil {
		return domain.Script{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	path := r.Path(ref)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Script{}, fmt.Errorf("%w: %s", domain.ErrScriptNotFound, ref)
		}
		return domain.Script{}, fmt.Errorf("read script file: %w", err)
	}

	script, err := Decode(data)
	if err != nil {
		return domain.Script{}, fmt.Errorf("script %s: %w", ref, err)
	}
	script.Name = scriptName(path)

	return script, nil
}

func (r *Repository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.scriptsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read scripts directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != scriptExtension || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), scriptExtension))
	}
	sort.Strings(names)

	return names, nil
}

// Create writes script under name in the scripts directory and returns the
// file path.
func (r *Repository) Create(ctx context.Context, name string, script domain.Script, overwrite bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid script name %q", name)
	}
	if err := script.Validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.scriptsDir, name+scriptExtension)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", domain.ErrScriptExists, path)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := Encode(script)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}

	return path, nil
}

// Path is the file a script reference resolves to: ref itself when it names
// an existing file, otherwise <name>.toml in the scripts directory.
func (r *Repository) Path(ref string) string {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return ref
	}

	name := ref
	if filepath.Ext(name) != scriptExtension {
		name += scriptExtension
	}
	return filepath.Join(r.scriptsDir, name)
}

// Decode parses a TOML script. Structural misuse is reported with the
// domain sentinel errors; malformed attribute values are dropped.
func Decode(data []byte) (domain.Script, error) {
	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Script{}, fmt.Errorf("decode script file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.Script{}, err
	}
	file.applyDefaults()

	return fromSchema(file)
}

func Encode(script domain.Script) ([]byte, error) {
	file := toSchema(script)
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("encode script file: %w", err)
	}

	return data, nil
}

func fromSchema(file fileSchema) (domain.Script, error) {
	var script domain.Script

	if file.Window != nil {
		script.Window = &domain.WindowConfig{
			Mode:       domain.ParseMode(file.Window.Mode),
			Kind:       domain.ParseLineKind(file.Window.Kind),
			Attributes: domain.ParseAttributes(file.Window.raw()),
			Init:       file.Window.Init,
			Static:     file.Window.Static,
		}
	}

	script.Lines = make([]domain.Line, 0, len(file.Lines))
	for i, entry := range file.Lines {
		segments, err := markup.Parse(entry.Content)
		if err != nil {
			return domain.Script{}, fmt.Errorf("line %d: %w", i, err)
		}
		script.Lines = append(script.Lines, domain.Line{
			Kind:       domain.ParseLineKind(entry.Kind),
			Segments:   segments,
			Attributes: domain.ParseAttributes(entry.raw()),
		})
	}

	image, err := imageFromSchema(file.Image, len(script.Lines))
	if err != nil {
		return domain.Script{}, err
	}
	script.Image = image

	if err := script.Validate(); err != nil {
		return domain.Script{}, err
	}

	return script, nil
}

// imageFromSchema accepts the image table as decoded into an untyped value.
// A missing index places the image after the last line.
func imageFromSchema(raw any, lineCount int) (*domain.Image, error) {
	var table map[string]any
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		table = value
	case []any:
		if len(value) > 1 {
			return nil, fmt.Errorf("%w: %d declared", domain.ErrMultipleImages, len(value))
		}
		if len(value) == 0 {
			return nil, nil
		}
		entry, ok := value[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("image must be a table, got %T", value[0])
		}
		table = entry
	default:
		return nil, fmt.Errorf("image must be a table, got %T", raw)
	}

	image := &domain.Image{
		Source:     cast.ToString(table["src"]),
		Alt:        cast.ToString(table["alt"]),
		Index:      lineCount,
		Attributes: domain.ParseAttributes(table),
	}
	if rawIndex, ok := table["index"]; ok {
		index, err := cast.ToIntE(rawIndex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrImageIndexOutOfRange, rawIndex)
		}
		image.Index = index
	}

	return image, nil
}

func toSchema(script domain.Script) fileSchema {
	file := fileSchema{Version: currentSchemaVersion}

	if script.Window != nil {
		file.Window = &windowSchema{
			Mode:             string(script.Window.Mode),
			Kind:             string(script.Window.Kind),
			Init:             script.Window.Init,
			Static:           script.Window.Static,
			AttributesSchema: toAttributesSchema(script.Window.Attributes),
		}
	}

	for _, line := range script.Lines {
		file.Lines = append(file.Lines, lineSchema{
			Kind:             string(line.Kind),
			Content:          segmentsMarkup(line.Segments),
			AttributesSchema: toAttributesSchema(line.Attributes),
		})
	}

	if script.Image != nil {
		file.Image = imageSchema{
			Source:           script.Image.Source,
			Alt:              script.Image.Alt,
			Index:            int64(script.Image.Index),
			AttributesSchema: toAttributesSchema(script.Image.Attributes),
		}
	}

	return file
}

func segmentsMarkup(segments []domain.Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		if segment.Style == "" {
			b.WriteString(domain.EscapeMarkup(segment.Text))
			continue
		}
		fmt.Fprintf(&b, `<span class="%s">%s</span>`, domain.EscapeMarkup(segment.Style), domain.EscapeMarkup(segment.Text))
	}

	return b.String()
}

func scriptName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve scripts directory: %w", err)
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

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), scriptsDirMode); err != nil {
		return fmt.Errorf("create scripts directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp script file: %w", err)
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
		return fmt.Errorf("write temp script file: %w", err)
	}

	if err := tempFile.Chmod(scriptFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp script file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp script file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace script file: %w", err)
	}

	cleanup = false
	return nil
}
