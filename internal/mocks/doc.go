// Package mocks provides hand-rolled test doubles for the store and service
// interfaces. Each mock exposes one function field per method; a nil field
// falls back to the mock's default values, so tests only wire the behavior
// they care about.
package mocks
