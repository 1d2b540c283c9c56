// Package resolver resolves polymorphic references into display summaries.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

//go:generate mockgen -destination=./mock/resolver.go -package=mock -source=resolver.go

// ErrNotFound is returned when referenced entity doesn't exist.
var ErrNotFound = storage.ErrNotFound

// ErrUnknownKind is returned for references of unsupported kind.
var ErrUnknownKind = errors.New("unknown reference kind")

// Resolver resolves one reference at a time.
type Resolver interface {
	Resolve(ctx context.Context, ref entities.Ref) (*entities.Summary, error)
}

type lookup func(ctx context.Context, id ...string) ([]*entities.Summary, error)

type resolver struct {
	lookups map[entities.RefKind]lookup
}

// SystemSummary is a summary of system actor.
// nolint: gochecknoglobals
var SystemSummary = entities.Summary{
	Kind: entities.SystemKind,
	Name: "System",
}

// New creates resolver over storage.
func New(s storage.Storage) Resolver {
	return resolver{
		lookups: map[entities.RefKind]lookup{
			entities.UserKind:         s.GetProfiles,
			entities.ProfileKind:      s.GetProfiles,
			entities.ProjectKind:      s.GetProjects,
			entities.OrganizationKind: s.GetOrganizations,
		},
	}
}

func (r resolver) Resolve(ctx context.Context, ref entities.Ref) (*entities.Summary, error) {
	if ref.Kind == entities.SystemKind {
		s := SystemSummary
		return &s, nil
	}

	f, ok := r.lookups[ref.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, ref.Kind)
	}

	out, err := f(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", ref, err)
	}

	for _, v := range out {
		if v.ID == ref.ID {
			// profiles are shared between user and profile kinds
			v.Kind = ref.Kind
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
}
