package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ola/config"
	"github.com/randalmurphal/ola/console"
	"github.com/randalmurphal/ola/ollama"
)

// curatedModels are the menu suggestions per hosted provider. Ollama
// gets a live list from the daemon when reachable.
var curatedModels = map[string][]string{
	config.ProviderOpenAI: {
		"gpt-5",
		"gpt-4o",
		"gpt-4o-mini",
		"o3-mini",
	},
	config.ProviderAnthropic: {
		"claude-3-opus-20240229",
		"claude-3-5-sonnet-20241022",
		"claude-3-haiku-20240307",
	},
	config.ProviderGemini: {
		"gemini-1.5-pro",
		"gemini-1.5-flash",
		"gemini-2.0-flash",
	},
	config.ProviderOllama: {
		"llama3.2",
		"qwen2.5-coder",
		"deepseek-r1",
	},
}

var modelsQuiet bool

var modelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List known models, per provider or for one provider",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return printModels(args[0])
		}
		for i, name := range config.ProviderNames {
			if i > 0 && !modelsQuiet {
				fmt.Println()
			}
			if err := printModels(name); err != nil {
				console.Warnf("%s: %v", name, err)
			}
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().BoolVarP(&modelsQuiet, "quiet", "q", false, "print bare model names only")
	rootCmd.AddCommand(modelsCmd)
}

func printModels(providerName string) error {
	var canonical string
	for _, name := range config.ProviderNames {
		if strings.EqualFold(name, providerName) {
			canonical = name
			break
		}
	}
	if canonical == "" {
		return fmt.Errorf("unknown provider %q", providerName)
	}

	models := curatedModels[canonical]
	if strings.EqualFold(canonical, config.ProviderOllama) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if live, err := ollama.ListModels(ctx, baseURLFor(canonical), nil); err == nil && len(live) > 0 {
			models = live
		}
	}

	if !modelsQuiet {
		console.Banner(canonical)
	}
	for _, m := range models {
		fmt.Println(m)
	}
	return nil
}

// baseURLFor returns the configured base URL for a provider, if any.
func baseURLFor(providerName string) string {
	cfg, err := config.Load()
	if err != nil {
		return ""
	}
	if cred, ok := cfg.Lookup(providerName); ok {
		return cred.BaseURL
	}
	return ""
}
