package fonts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/image/font/sfnt"
)

var (
	ErrNotFont   = errors.New("payload is not a font")
	ErrEmptyFont = errors.New("empty font payload")
)

// FaceStatus mirrors the lifecycle of a font face object
type FaceStatus string

const (
	StatusUnloaded FaceStatus = "unloaded"
	StatusLoading  FaceStatus = "loading"
	StatusLoaded   FaceStatus = "loaded"
	StatusError    FaceStatus = "error"
)

// fontTypes are the payload types a face accepts
var fontTypes = []string{"font/ttf", "font/otf", "font/woff", "font/woff2", "font/collection"}

// Face is a font face handle
type Face struct {
	ID          uuid.UUID
	Family      string
	Source      string
	Descriptors map[string]string

	mu         sync.RWMutex
	status     FaceStatus
	format     string
	fullFamily string
	glyphs     int
	size       int
	err        error
}

// FaceInfo is an immutable snapshot of a Face
type FaceInfo struct {
	ID          string            `json:"id"`
	Family      string            `json:"family"`
	Source      string            `json:"source"`
	Descriptors map[string]string `json:"descriptors,omitempty"`
	Status      FaceStatus        `json:"status"`
	Format      string            `json:"format,omitempty"`
	NameTable   string            `json:"name_table_family,omitempty"`
	Glyphs      int               `json:"glyphs,omitempty"`
	Size        int               `json:"size,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// NewFace creates an unloaded face for spec
func NewFace(spec FontSpec) *Face {
	descriptors := make(map[string]string, len(spec.Descriptors))
	for k, v := range spec.Descriptors {
		descriptors[k] = v
	}
	return &Face{
		ID:          uuid.New(),
		Family:      spec.Family,
		Source:      spec.URL,
		Descriptors: descriptors,
		status:      StatusUnloaded,
	}
}

// FaceFromData creates a face that is already loaded from data.
// Native backends use it to build their resource list.
func FaceFromData(spec FontSpec, data []byte) (*Face, error) {
	f := NewFace(spec)
	if err := f.setData(data); err != nil {
		return nil, err
	}
	return f, nil
}

// Load fetches and decodes the face. Loading an already loaded face is a no-op.
func (f *Face) Load(ctx context.Context, src Source) error {
	f.mu.Lock()
	if f.status == StatusLoaded {
		f.mu.Unlock()
		return nil
	}
	f.status = StatusLoading
	f.err = nil
	f.mu.Unlock()

	data, err := src.Fetch(ctx, f.Source)
	if err != nil {
		err = fmt.Errorf("load %s: %w", f.Family, err)
		f.fail(err)
		return err
	}
	if err := f.setData(data); err != nil {
		err = fmt.Errorf("load %s: %w", f.Family, err)
		f.fail(err)
		return err
	}
	return nil
}

func (f *Face) fail(err error) {
	f.mu.Lock()
	f.status = StatusError
	f.err = err
	f.mu.Unlock()
}

func (f *Face) setData(data []byte) error {
	format, family, glyphs, err := decode(data)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.status = StatusLoaded
	f.format = format
	f.fullFamily = family
	f.glyphs = glyphs
	f.size = len(data)
	f.mu.Unlock()
	return nil
}

// Status returns the current load status
func (f *Face) Status() FaceStatus {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.status
}

// Info returns a snapshot of the face
func (f *Face) Info() FaceInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()

	info := FaceInfo{
		ID:          f.ID.String(),
		Family:      f.Family,
		Source:      f.Source,
		Descriptors: f.Descriptors,
		Status:      f.status,
		Format:      f.format,
		NameTable:   f.fullFamily,
		Glyphs:      f.glyphs,
		Size:        f.size,
	}
	if f.err != nil {
		info.Error = f.err.Error()
	}
	return info
}

// decode sniffs the payload type and, for TrueType and OpenType, parses the
// name table. WOFF containers are accepted without parsing.
func decode(data []byte) (format, family string, glyphs int, err error) {
	if len(data) == 0 {
		return "", "", 0, ErrEmptyFont
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), fontTypes...) {
		return "", "", 0, fmt.Errorf("%w: detected %s", ErrNotFont, mtype.String())
	}
	format = mtype.String()

	switch format {
	case "font/ttf", "font/otf":
		fnt, err := sfnt.Parse(data)
		if err != nil {
			return "", "", 0, fmt.Errorf("parse %s: %w", format, err)
		}
		var buf sfnt.Buffer
		family, err = fnt.Name(&buf, sfnt.NameIDFamily)
		if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
			return "", "", 0, fmt.Errorf("read name table: %w", err)
		}
		return format, family, fnt.NumGlyphs(), nil
	default:
		return format, "", 0, nil
	}
}
