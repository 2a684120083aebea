// Package logging configures the application logger. Output goes to a
// rotating file so the terminal stays free for the interface.
package logging

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a sugared logger writing to <dataDir>/chatapp.log with
// rotation.
func New(dataDir string) *zap.SugaredLogger {
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dataDir, "chatapp.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	})

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		writer,
		zapcore.InfoLevel,
	)
	return zap.New(core).Sugar()
}

// Nop returns a logger that discards everything, for tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
