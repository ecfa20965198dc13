// Package middleware wraps settings stores with extra behaviour, such as
// encryption at rest.
package middleware

import "github.com/aretw0/stepwise/pkg/ports"

// Middleware allows wrapping a SettingsStore to add behavior.
type Middleware func(ports.SettingsStore) ports.SettingsStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.SettingsStore, mws ...Middleware) ports.SettingsStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
