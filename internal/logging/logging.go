// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging configures the process-wide structured logger used by the
// cmd/ entrypoints. Library packages never reach for the global logger:
// nodeview, nodeview/cache and client take a *zap.SugaredLogger from their
// caller, and selection, essence, unlock, address and secretmanager do not
// log.
package logging

import (
	"github.com/blinklabs-io/meshledger/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.SugaredLogger

// Configure (re)builds the global logger from the current config.
func Configure() {
	cfg := config.GetConfig()
	var level zapcore.Level
	if err := level.Set(cfg.Logging.Level); err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	logger, err := zapCfg.Build()
	if err != nil {
		// Fall back to a no-op logger rather than leave globalLogger nil
		logger = zap.NewNop()
	}
	globalLogger = logger.Sugar().With("component", "meshledger")
}

// GetLogger returns the global logger, configuring it with defaults on
// first use.
func GetLogger() *zap.SugaredLogger {
	if globalLogger == nil {
		Configure()
	}
	return globalLogger
}

// Named returns a child logger tagged with the given component name.
func Named(component string) *zap.SugaredLogger {
	return GetLogger().With("component", component)
}
