// Package factory provides a small generic registry used to instantiate
// pluggable modules (history backends, metrics sinks) from configuration. A
// module is described by a type string and a map of raw settings; factories
// decode the settings into typed structs and return the implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[history.Backend]()
//	reg.Register("jsonfile", func(conf map[string]any) (history.Backend, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewJSONFileBackend(c.Path, 0)
//	})
//	b, err := reg.Create(factory.ModuleConfig{Type: "jsonfile", Conf: map[string]any{"path": "history.json"}})
package factory
