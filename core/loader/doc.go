// Package loader registers and mounts application features.
//
// Each feature (documents, integrity) implements the Feature interface and
// is registered with a Manager at startup; LoadAll then mounts every
// enabled feature's routes onto the Fiber app.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// A feature that fails to load aborts startup, so a misconfigured module
// is caught before the server accepts traffic. Keeping features behind
// this interface lets each one be wired and tested in isolation.
package loader
