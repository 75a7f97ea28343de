// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/brew/internal/adapters/bundle"
	_ "go.trai.ch/brew/internal/adapters/cas"
	_ "go.trai.ch/brew/internal/adapters/config"
	_ "go.trai.ch/brew/internal/adapters/fs"
	_ "go.trai.ch/brew/internal/adapters/logger"
	_ "go.trai.ch/brew/internal/adapters/server"
	_ "go.trai.ch/brew/internal/adapters/shell"
	_ "go.trai.ch/brew/internal/adapters/style"
	_ "go.trai.ch/brew/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/brew/internal/adapters/wasmpack"
	_ "go.trai.ch/brew/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/brew/internal/app"
	_ "go.trai.ch/brew/internal/engine/scheduler"
)
