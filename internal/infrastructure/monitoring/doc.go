/*
Package monitoring provides metrics collection for the TermQuest backend.

# Overview

This package implements Prometheus-based metrics, tracking HTTP requests,
executed shell commands, save store operations, game sessions and
WebSocket terminals. Each Metrics value owns its registry so several
servers can run in one process.

# Usage

	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Shell command outcomes
	sh := shell.New(session, registry, shell.WithRecorder(metrics))

	// Session lifecycle and save store timings
	manager := session.NewManager(seed, registry, saves, session.WithObserver(metrics))

# Metrics Endpoint

	handler := promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})
	router.GET("/metrics", gin.WrapH(handler))
*/
package monitoring
