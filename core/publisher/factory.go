package publisher

import "github.com/kilianp07/powerplan/core/factory"

var registry = factory.NewRegistry[Publisher]("plan publisher")

// RegisterPublisher adds a publisher factory identified by name.
func RegisterPublisher(name string, f factory.Factory[Publisher]) error {
	return registry.Register(name, f)
}

// NewPublisher creates a Publisher from the provided configuration.
func NewPublisher(cfgs []factory.ModuleConfig) (Publisher, error) {
	if len(cfgs) == 0 {
		return NopPublisher{}, nil
	}
	pubs := make([]Publisher, 0, len(cfgs))
	for _, c := range cfgs {
		p, err := registry.Create(c)
		if err != nil {
			for _, created := range pubs {
				_ = created.Close()
			}
			return nil, err
		}
		pubs = append(pubs, p)
	}
	if len(pubs) == 1 {
		return pubs[0], nil
	}
	return NewMultiPublisher(pubs...), nil
}

func init() {
	_ = RegisterPublisher("nop", func(map[string]any) (Publisher, error) {
		return NopPublisher{}, nil
	})
}
