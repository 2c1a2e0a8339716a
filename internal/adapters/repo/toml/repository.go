package toml

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ScriptPathKey = "script.path"

	// BuiltinSource names the script compiled into the binary.
	BuiltinSource = "builtin"

	scriptFileMode  = 0o644
	scriptDirMode   = 0o755
	tempFilePattern = ".script-*.toml.tmp"
)

//go:embed default_script.toml
var defaultScript []byte

// Repository reads a conversation script from a TOML file, or the built-in script when no
// path is configured.
type Repository struct {
	scriptPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ScriptRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	return NewFileRepository(cfg.GetString(ScriptPathKey))
}

// NewFileRepository reads path; an empty path selects the built-in script.
func NewFileRepository(path string) (*Repository, error) {
	if path == "" {
		return &Repository{mu: &sync.RWMutex{}}, nil
	}

	scriptPath, err := normalizeScriptPath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{scriptPath: scriptPath, mu: lockForPath(scriptPath)}, nil
}

// Path is the resolved script file, or BuiltinSource.
func (r *Repository) Path() string {
	if r.scriptPath == "" {
		return BuiltinSource
	}
	return r.scriptPath
}

func (r *Repository) Load(ctx context.Context) (domain.ScriptDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScriptDocument{}, err
	}

	if r.scriptPath == "" {
		return DefaultDocument()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.scriptPath)
	if err != nil {
		return domain.ScriptDocument{}, fmt.Errorf("read script file: %w", err)
	}

	file, err := decode(data)
	if err != nil {
		return domain.ScriptDocument{}, fmt.Errorf("%s: %w", r.scriptPath, err)
	}

	return fromSchema(file, r.scriptPath), nil
}

// Save writes doc to the configured path atomically. The built-in script is read-only.
func (r *Repository) Save(ctx context.Context, doc domain.ScriptDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.scriptPath == "" {
		return errors.New("builtin script is read-only")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(doc))
}

// DefaultDocument decodes the script compiled into the binary.
func DefaultDocument() (domain.ScriptDocument, error) {
	file, err := decode(defaultScript)
	if err != nil {
		return domain.ScriptDocument{}, fmt.Errorf("builtin script: %w", err)
	}

	return fromSchema(file, BuiltinSource), nil
}

func decode(data []byte) (fileSchema, error) {
	var file fileSchema
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&file); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fileSchema{}, fmt.Errorf("decode script file: %s", strict.String())
		}
		return fileSchema{}, fmt.Errorf("decode script file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeScriptPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
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

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.scriptPath), scriptDirMode); err != nil {
		return fmt.Errorf("create script directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode script file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.scriptPath), tempFilePattern)
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

	if err := os.Rename(tempName, r.scriptPath); err != nil {
		return fmt.Errorf("replace script file: %w", err)
	}

	cleanup = false
	return nil
}
