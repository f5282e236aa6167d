// Package cache provides process-local caches for driven ports.
package cache
