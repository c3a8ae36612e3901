package ports

import "github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"

// ConfigLoader loads engine settings from the working directory.
type ConfigLoader interface {
	// Load reads zodkit.yaml from cwd, applying defaults for anything
	// unset. A missing file yields pure defaults, not an error.
	Load(cwd string) (*domain.Settings, error)
}
