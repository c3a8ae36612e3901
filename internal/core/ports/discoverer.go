// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
)

// Discoverer turns file paths into schema units. The engine treats the
// extraction step as opaque: it never inspects unit contents beyond
// size, hash and import list.
//
//go:generate mockgen -source=discoverer.go -destination=mocks/mock_discoverer.go -package=mocks
type Discoverer interface {
	// DiscoverUnits analyzes the given paths and returns one unit per
	// readable schema file. Unreadable paths are skipped, not fatal.
	DiscoverUnits(ctx context.Context, paths []string) ([]domain.Unit, error)
}
