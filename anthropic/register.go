package anthropic

import "github.com/randalmurphal/ola/provider"

func init() {
	provider.Register("anthropic", func(cfg provider.Config) (provider.Client, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
