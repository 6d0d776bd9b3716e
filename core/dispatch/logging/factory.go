package logging

import "github.com/kilianp07/powerplan/core/factory"

// StoreConfig defines the location and rotation of a log store.
type StoreConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

var storeRegistry = factory.NewRegistry[LogStore]("log store")

// RegisterLogStore adds a log store factory identified by name.
func RegisterLogStore(name string, f factory.Factory[LogStore]) error {
	return storeRegistry.Register(name, f)
}

// NewLogStore creates the LogStore selected by cfg.
func NewLogStore(cfg factory.ModuleConfig) (LogStore, error) {
	return storeRegistry.Create(cfg)
}

func init() {
	_ = RegisterLogStore("jsonl", func(conf map[string]any) (LogStore, error) {
		var c StoreConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
		}
		return NewJSONLStore(c.Path)
	})
	_ = RegisterLogStore("sqlite", func(conf map[string]any) (LogStore, error) {
		var c StoreConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLiteStore(c.Path)
	})
}
