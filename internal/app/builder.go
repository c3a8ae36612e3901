package app

import (
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}
