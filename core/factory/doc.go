// Package factory provides a small generic registry used to instantiate
// components from configuration, and the builtin registry that turns a family
// name plus a raw parameter map into a density.Distribution.
//
// Components are defined by a type string and a map of raw settings.
// Factories decode the settings into typed structs and return the concrete
// implementation.
//
// Example usage:
//
//	d, err := factory.NewDistribution(factory.Config{
//	    Family: "normal",
//	    Params: map[string]any{"mean": 1, "variance": 4},
//	})
//
// or, in the short form accepted on the command line:
//
//	cfg, err := factory.ParseSpec("normal:mean=1,variance=4")
package factory
