// Package main is the entry point for the TermQuest backend server.
//
// The server gives every browser tab its own simulated Linux machine and
// runs the command lines the terminal sends.
//
// Architecture:
//
//	Browser terminal → REST / WebSocket → session manager → shell → vfs
//	                                                  ↘ save store (badger)
//
// The server provides:
//   - REST API for sessions, commands and save slots
//   - WebSocket terminal at /terminal
//   - Prometheus metrics at /metrics
//   - Rate limiting and request size limits
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -save-dir /var/lib/termquest
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
