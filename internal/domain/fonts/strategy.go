package fonts

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// strategy loads one font set. It reports the faces that are usable, how
// many specs failed and the aggregated failure.
type strategy interface {
	load(ctx context.Context, l *Load, specs []FontSpec) ([]*Face, int, error)
}

type noneStrategy struct{}

func (noneStrategy) load(context.Context, *Load, []FontSpec) ([]*Face, int, error) {
	return nil, 0, nil
}

// nativeStrategy is all or nothing: one failed pending operation yields no faces.
type nativeStrategy struct {
	backend PlatformFontBackend
}

func (s nativeStrategy) load(ctx context.Context, _ *Load, specs []FontSpec) ([]*Face, int, error) {
	batch, err := s.backend.LoadFonts(ctx, specs)
	if err != nil {
		return nil, len(specs), fmt.Errorf("native font backend: %w", err)
	}

	errs := make([]error, len(batch.Pending))
	var g errgroup.Group
	for i, pending := range batch.Pending {
		g.Go(func() error {
			errs[i] = pending.Wait(ctx)
			return nil
		})
	}
	_ = g.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return nil, len(multierr.Errors(err)), err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if batch.Resources == nil {
		return nil, 0, nil
	}
	return batch.Resources(), 0, nil
}

// webStrategy registers one face per spec and loads them all, keeping the
// ones that succeeded in input order.
type webStrategy struct {
	registry *Registry
	source   Source
	limit    int
}

func (s webStrategy) load(ctx context.Context, l *Load, specs []FontSpec) ([]*Face, int, error) {
	faces := make([]*Face, len(specs))
	for i, spec := range specs {
		faces[i] = NewFace(spec)
		l.register(s.registry, faces[i])
	}

	errs := make([]error, len(faces))
	var g errgroup.Group
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}
	for i, face := range faces {
		g.Go(func() error {
			errs[i] = face.Load(ctx, s.source)
			return nil
		})
	}
	_ = g.Wait()

	loaded := make([]*Face, 0, len(faces))
	failed := 0
	for i, face := range faces {
		if errs[i] != nil {
			failed++
			continue
		}
		loaded = append(loaded, face)
	}
	return loaded, failed, multierr.Combine(errs...)
}
