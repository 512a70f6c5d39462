package fonts

import (
	"sort"
	"sync"
)

// Registry is the runtime font set. Faces are registered before they load so
// lookups can see pending faces, the way a document font set does.
type Registry struct {
	mu       sync.RWMutex
	faces    []*Face
	byFamily map[string][]*Face
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byFamily: make(map[string][]*Face)}
}

// Add registers a face
func (r *Registry) Add(f *Face) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.faces = append(r.faces, f)
	r.byFamily[f.Family] = append(r.byFamily[f.Family], f)
}

// Remove unregisters faces and reports how many were registered
func (r *Registry) Remove(faces ...*Face) int {
	if len(faces) == 0 {
		return 0
	}
	drop := make(map[*Face]struct{}, len(faces))
	for _, f := range faces {
		drop[f] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.faces[:0]
	removed := 0
	for _, f := range r.faces {
		if _, ok := drop[f]; ok {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	clear(r.faces[len(kept):])
	r.faces = kept

	for family, list := range r.byFamily {
		out := list[:0]
		for _, f := range list {
			if _, ok := drop[f]; !ok {
				out = append(out, f)
			}
		}
		clear(list[len(out):])
		if len(out) == 0 {
			delete(r.byFamily, family)
		} else {
			r.byFamily[family] = out
		}
	}
	return removed
}

// Lookup returns the faces registered for family
func (r *Registry) Lookup(family string) []*Face {
	r.mu.RLock()
	defer r.mu.RUnlock()

	faces := r.byFamily[family]
	out := make([]*Face, len(faces))
	copy(out, faces)
	return out
}

// Check reports whether family has at least one loaded face
func (r *Registry) Check(family string) bool {
	for _, f := range r.Lookup(family) {
		if f.Status() == StatusLoaded {
			return true
		}
	}
	return false
}

// Families returns the registered family names in sorted order
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byFamily))
	for family := range r.byFamily {
		out = append(out, family)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns info for every registered face in registration order
func (r *Registry) Snapshot() []FaceInfo {
	r.mu.RLock()
	faces := make([]*Face, len(r.faces))
	copy(faces, r.faces)
	r.mu.RUnlock()

	out := make([]FaceInfo, len(faces))
	for i, f := range faces {
		out[i] = f.Info()
	}
	return out
}

// Len returns the number of registered faces
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.faces)
}
