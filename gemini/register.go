package gemini

import "github.com/randalmurphal/ola/provider"

func init() {
	provider.Register("gemini", func(cfg provider.Config) (provider.Client, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}
