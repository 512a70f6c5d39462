package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/appshell/internal/domain/fonts"
	"github.com/GriffinCanCode/appshell/internal/shared/utils"
)

var (
	ErrInvalidManifest = errors.New("invalid manifest")
	ErrDuplicate       = errors.New("app already registered")
)

// Manifest describes one hosted application
type Manifest struct {
	Name        string           `json:"name" yaml:"name" toml:"name"`
	Title       string           `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Version     string           `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Fonts       []fonts.FontSpec `json:"fonts,omitempty" yaml:"fonts,omitempty" toml:"fonts,omitempty"`
	Path        string           `json:"path,omitempty" yaml:"-" toml:"-"`
}

// Validate checks the manifest is usable
func (m Manifest) Validate() error {
	checks := []error{
		utils.ValidateID(m.Name, "name", true),
		utils.ValidateName(m.Title, "title", false),
		utils.ValidateDescription(m.Description, "description", false),
		utils.ValidateVersion(m.Version),
	}
	for _, err := range checks {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
	}
	for i, f := range m.Fonts {
		if err := utils.ValidateName(f.Family, fmt.Sprintf("fonts[%d].family", i), true); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
		if err := utils.ValidateURL(f.URL, fmt.Sprintf("fonts[%d].url", i), true); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
	}
	return nil
}

// App is a registered application type
type App struct {
	manifest Manifest
}

// Name returns the application name
func (a *App) Name() string { return a.manifest.Name }

// Fonts returns the fonts the application needs, in manifest order
func (a *App) Fonts() []fonts.FontSpec {
	out := make([]fonts.FontSpec, len(a.manifest.Fonts))
	copy(out, a.manifest.Fonts)
	return out
}

// Manifest returns the manifest the app was registered from
func (a *App) Manifest() Manifest { return a.manifest }

// Catalog is the set of known application types
type Catalog struct {
	mu   sync.RWMutex
	apps map[string]*App
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{apps: make(map[string]*App)}
}

// Register adds m to the catalog
func (c *Catalog) Register(m Manifest) (*App, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.apps[m.Name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, m.Name)
	}
	app := &App{manifest: m}
	c.apps[m.Name] = app
	return app, nil
}

// Get looks up an application by name
func (c *Catalog) Get(name string) (*App, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	app, ok := c.apps[name]
	return app, ok
}

// List returns every manifest sorted by name
func (c *Catalog) List() []Manifest {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Manifest, 0, len(c.apps))
	for _, app := range c.apps {
		out = append(out, app.manifest)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered applications
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.apps)
}
