// Package store defines the persistence interfaces the services depend on,
// together with the sentinel errors every implementation maps its backend
// failures onto. Concrete implementations live under internal/platform.
package store
