package plugins

import (
	"path/filepath"
	"testing"

	"github.com/kilianp07/distalg/core/factory"
	"github.com/kilianp07/distalg/core/runlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStores_Builtins(t *testing.T) {
	assert.Equal(t, []string{"jsonl", "rotating", "sqlite"}, RunStores())
}

func TestNewRunStore(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]struct {
		cfg  factory.ModuleConfig
		want runlog.Store
	}{
		"jsonl":    {factory.ModuleConfig{Type: "jsonl", Conf: map[string]any{"path": filepath.Join(dir, "a.jsonl")}}, &runlog.JSONLStore{}},
		"rotating": {factory.ModuleConfig{Type: "rotating", Conf: map[string]any{"path": filepath.Join(dir, "b.jsonl"), "max_size_mb": 5}}, &runlog.RotatingJSONLStore{}},
		"sqlite":   {factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": filepath.Join(dir, "c.db")}}, &runlog.SQLiteStore{}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := NewRunStore(tc.cfg)
			require.NoError(t, err)
			defer func() { _ = s.Close() }()
			assert.IsType(t, tc.want, s)
		})
	}
}

func TestNewRunStore_Disabled(t *testing.T) {
	s, err := NewRunStore(factory.ModuleConfig{})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestNewRunStore_Errors(t *testing.T) {
	_, err := NewRunStore(factory.ModuleConfig{Type: "influx"})
	assert.Error(t, err)

	_, err = NewRunStore(factory.ModuleConfig{Type: "jsonl", Conf: map[string]any{"file": "x"}})
	assert.Error(t, err)
}

func TestRegisterRunStore_Duplicate(t *testing.T) {
	err := RegisterRunStore("jsonl", func(map[string]any) (runlog.Store, error) { return nil, nil })
	assert.Error(t, err)
}
