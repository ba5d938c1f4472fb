package main

import (
	"path/filepath"

	"go.uber.org/zap"
)

var scanLog = zap.NewNop()

func enableDebugLogging(l *zap.Logger) {
	scanLog = l.Named("scan")
}

// fileLogger tags decoder diagnostics with the file they came from.
func fileLogger(path string) *zap.Logger {
	return scanLog.Named(filepath.Base(path)).With(zap.String("path", path))
}
