// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/adapters/cache"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/adapters/config"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/adapters/discovery"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/adapters/linear"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/adapters/logger"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/adapters/telemetry"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/app"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/engine/executor"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/engine/hotreload"
	_ "github.com/mrcacomacaco/zodkit-sub002/internal/engine/loader"
)
