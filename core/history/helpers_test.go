package history

import "github.com/kilianp07/nhltiers/core/factory"

func factoryConfig(typ string, conf map[string]any) factory.ModuleConfig {
	return factory.ModuleConfig{Type: typ, Conf: conf}
}
