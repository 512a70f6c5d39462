package headless

import (
	"sync"

	"github.com/GriffinCanCode/appshell/internal/shared/types"
)

// Surface is an in-memory render surface
type Surface struct {
	mu      sync.RWMutex
	options map[string]any
	clear   types.Color
	updates int
}

// NewSurface creates a surface with the given stage options
func NewSurface(options map[string]any) *Surface {
	opts := make(map[string]any, len(options))
	for k, v := range options {
		opts[k] = v
	}
	return &Surface{options: opts}
}

// Option returns a stage option
func (s *Surface) Option(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.options[name]
	return v, ok
}

// SetOption changes a stage option
func (s *Surface) SetOption(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[name] = value
}

// SetClearColor records the clear color
func (s *Surface) SetClearColor(c types.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear = c
	s.updates++
}

// ClearColor returns the last applied clear color and how many times one was applied
func (s *Surface) ClearColor() (types.Color, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clear, s.updates
}
