/*
Package monitoring provides metrics collection for the gallery server.

# Overview

Every Metrics value owns a private prometheus.Registry, so several servers
can live in one process (tests) without duplicate registration panics.

# Features

- HTTP request metrics labelled by gin route template, never by raw path
- Gallery operation metrics (duration, status)
- Resource registry metrics (live entries, minted, evicted by reason)
- Image delivery outcomes (ok, not_modified, head)
- Uptime, Go runtime and process collectors

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Metrics satisfies registry.Observer
	reg := registry.New(base).WithObserver(metrics)

	timer := monitoring.NewTimer(metrics, "rename_subdirectory")
	// ... perform operation ...
	timer.Stop("success")
*/
package monitoring
