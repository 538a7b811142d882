package plugins

import (
	"github.com/kilianp07/distalg/core/factory"
	"github.com/kilianp07/distalg/core/runlog"
)

var runStores = factory.NewRegistry[runlog.Store]()

// RegisterRunStore adds a run-history store factory identified by name.
func RegisterRunStore(name string, f factory.Factory[runlog.Store]) error {
	return runStores.Register(name, f)
}

// NewRunStore builds the store selected by cfg. An empty type disables run
// history and yields a nil store.
func NewRunStore(cfg factory.ModuleConfig) (runlog.Store, error) {
	if cfg.Type == "" {
		return nil, nil
	}
	return runStores.Create(cfg)
}

// RunStores lists the registered store types.
func RunStores() []string { return runStores.Names() }
