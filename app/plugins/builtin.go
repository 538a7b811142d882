package plugins

import (
	"github.com/kilianp07/distalg/core/factory"
	"github.com/kilianp07/distalg/core/runlog"
)

// storeConfig defines the location and rotation of a run-history store.
type storeConfig struct {
	// Path is the file location of the store.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int  `json:"max_age_days"`
	Compress   bool `json:"compress"`
}

func decodeStore(conf map[string]any, defPath string) (storeConfig, error) {
	sc := storeConfig{Path: defPath}
	if err := factory.DecodeStrict(conf, &sc); err != nil {
		return sc, err
	}
	if sc.Path == "" {
		sc.Path = defPath
	}
	return sc, nil
}

func init() {
	_ = RegisterRunStore("jsonl", func(conf map[string]any) (runlog.Store, error) {
		sc, err := decodeStore(conf, "runs.jsonl")
		if err != nil {
			return nil, err
		}
		return runlog.NewJSONLStore(sc.Path)
	})
	_ = RegisterRunStore("rotating", func(conf map[string]any) (runlog.Store, error) {
		sc, err := decodeStore(conf, "runs.jsonl")
		if err != nil {
			return nil, err
		}
		return runlog.NewRotatingJSONLStore(sc.Path, sc.MaxSizeMB, sc.MaxBackups, sc.MaxAgeDays, sc.Compress)
	})
	_ = RegisterRunStore("sqlite", func(conf map[string]any) (runlog.Store, error) {
		sc, err := decodeStore(conf, "runs.db")
		if err != nil {
			return nil, err
		}
		return runlog.NewSQLiteStore(sc.Path)
	})
}
