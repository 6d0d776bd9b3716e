package dispatch

import "github.com/kilianp07/powerplan/core/factory"

var dispatcherRegistry = factory.NewRegistry[Dispatcher]("dispatcher")

// RegisterDispatcher adds a dispatcher factory identified by name.
func RegisterDispatcher(name string, f factory.Factory[Dispatcher]) error {
	return dispatcherRegistry.Register(name, f)
}

// NewDispatcher creates the dispatcher selected by cfg. An empty type selects
// the merit order dispatcher.
func NewDispatcher(cfg factory.ModuleConfig) (Dispatcher, error) {
	if cfg.Type == "" {
		cfg.Type = "merit"
	}
	return dispatcherRegistry.Create(cfg)
}

func decodeConfig(conf map[string]any) (Config, error) {
	var c Config
	if err := factory.Decode(conf, &c); err != nil {
		return c, err
	}
	c.SetDefaults()
	return c, c.Validate()
}

func init() {
	_ = RegisterDispatcher("merit", func(conf map[string]any) (Dispatcher, error) {
		c, err := decodeConfig(conf)
		if err != nil {
			return nil, err
		}
		return NewMeritOrderDispatcher(c.Tolerance), nil
	})
	_ = RegisterDispatcher("lp", func(conf map[string]any) (Dispatcher, error) {
		c, err := decodeConfig(conf)
		if err != nil {
			return nil, err
		}
		return NewLPDispatcher(c), nil
	})
}
