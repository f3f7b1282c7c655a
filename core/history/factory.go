package history

import "github.com/kilianp07/nhltiers/core/factory"

var backendRegistry = factory.NewRegistry[Backend]()

func init() {
	_ = RegisterBackend("memory", func(conf map[string]any) (Backend, error) {
		var c struct {
			MaxEntries int `json:"max_entries"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewMemoryBackend(c.MaxEntries), nil
	})
}

// RegisterBackend adds a backend factory identified by name.
func RegisterBackend(name string, f factory.Factory[Backend]) error {
	return backendRegistry.Register(name, f)
}

// NewBackend creates a Backend from its module configuration.
func NewBackend(cfg factory.ModuleConfig) (Backend, error) {
	return backendRegistry.Create(cfg)
}

// BackendTypes lists the registered backend names.
func BackendTypes() []string { return backendRegistry.Types() }
