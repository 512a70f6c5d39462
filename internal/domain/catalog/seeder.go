package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/appshell/internal/infrastructure/logging"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// DefaultPattern matches YAML and TOML manifests at any depth
const DefaultPattern = "**/*.{yaml,yml,toml}"

var ErrUnknownFormat = errors.New("unknown manifest format")

// Seeder loads manifests from disk into a catalog
type Seeder struct {
	catalog *Catalog
	dir     string
	pattern string
	logger  *logging.Logger
}

// NewSeeder creates a seeder for dir. An empty pattern uses DefaultPattern.
func NewSeeder(catalog *Catalog, dir, pattern string, logger *logging.Logger) *Seeder {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Seeder{
		catalog: catalog,
		dir:     dir,
		pattern: pattern,
		logger:  logger.Component("catalog"),
	}
}

// Seed registers every manifest found. Malformed manifests are logged and
// counted, they do not stop seeding.
func (s *Seeder) Seed(ctx context.Context) (loaded, failed int, err error) {
	if !doublestar.ValidatePattern(s.pattern) {
		return 0, 0, fmt.Errorf("invalid manifest pattern %q", s.pattern)
	}
	if _, err := os.Stat(s.dir); errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Apps directory not found", zap.String("dir", s.dir))
		return 0, 0, nil
	}

	paths, err := s.discover(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("discover manifests: %w", err)
	}

	for _, path := range paths {
		m, err := LoadManifest(path)
		if err == nil {
			_, err = s.catalog.Register(m)
		}
		if err != nil {
			s.logger.Warn("Failed to load manifest", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}
		s.logger.Debug("Loaded manifest", zap.String("app", m.Name), zap.String("path", path))
		loaded++
	}

	s.logger.Info("Seeding complete", zap.Int("loaded", loaded), zap.Int("failed", failed))
	return loaded, failed, nil
}

// discover returns matching manifest paths in lexical order
func (s *Seeder) discover(ctx context.Context) ([]string, error) {
	var (
		mu    sync.Mutex
		paths []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, s.dir, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(s.pattern, filepath.ToSlash(rel)); ok {
			mu.Lock()
			paths = append(paths, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadManifest reads and decodes one manifest file. Relative local font
// URLs resolve against the manifest's directory.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}

	m, err := DecodeManifest(filepath.Ext(path), data)
	if err != nil {
		return Manifest{}, err
	}
	m.Path = path

	base := filepath.Dir(path)
	for i, f := range m.Fonts {
		if isLocal(f.URL) && !filepath.IsAbs(f.URL) {
			m.Fonts[i].URL = filepath.Join(base, f.URL)
		}
	}
	return m, m.Validate()
}

// DecodeManifest decodes data according to a file extension
func DecodeManifest(ext string, data []byte) (Manifest, error) {
	var m Manifest
	var err error

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".json":
		err = sonic.Unmarshal(data, &m)
	default:
		return Manifest{}, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("decode %s manifest: %w", strings.TrimPrefix(ext, "."), err)
	}
	return m, nil
}

func isLocal(url string) bool {
	return url != "" &&
		!strings.HasPrefix(url, "http://") &&
		!strings.HasPrefix(url, "https://") &&
		!strings.HasPrefix(url, "file://")
}
