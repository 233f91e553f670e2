// Package logging provides structured logging using uber/zap.
//
// The server, shell executor and save store all log through this package,
// each under its own component name.
//
// Two modes:
//   - Production: JSON lines, no sampling, no stack traces
//   - Development: Colored console output with stack traces on errors
//
// OutputPaths takes zap sinks, so `termquest play --log-file game.log`
// sends the game's logs to a file while the terminal owns stdout.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	if err != nil {
//		return err
//	}
//	log := logger.Component("persistence")
//	log.Info("Save store ready", zap.String("dir", dir))
package logging
