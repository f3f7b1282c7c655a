package history

import (
	"github.com/kilianp07/nhltiers/core/factory"
	corehistory "github.com/kilianp07/nhltiers/core/history"
)

// init registers the persistent history backends.
func init() {
	_ = corehistory.RegisterBackend("jsonfile", func(conf map[string]any) (corehistory.Backend, error) {
		var c struct {
			Path     string `json:"path"`
			MaxBytes int    `json:"max_bytes"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		b, err := NewJSONFileBackend(c.Path, c.MaxBytes)
		if err != nil {
			return nil, err
		}
		return b, nil
	})

	_ = corehistory.RegisterBackend("sqlite", func(conf map[string]any) (corehistory.Backend, error) {
		var c struct {
			Path         string `json:"path"`
			MaxPageCount int    `json:"max_page_count"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		b, err := NewSQLiteBackend(c.Path, c.MaxPageCount)
		if err != nil {
			return nil, err
		}
		return b, nil
	})

	_ = corehistory.RegisterBackend("redis", func(conf map[string]any) (corehistory.Backend, error) {
		var c struct {
			URL string `json:"url"`
			Key string `json:"key"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		b, err := NewRedisBackend(c.URL, c.Key)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}
