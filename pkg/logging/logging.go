// Package logging builds the zap logger shared by the CLI.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// Setup builds the global logger. Debug selects zap's development config
// (console output, debug level); otherwise the production JSON config is used
// at warn level, so a clean run prints nothing but the summary line.
// Either way records go to stderr.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return Logger, err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return Logger, nil
}
