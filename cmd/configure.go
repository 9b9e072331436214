package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ola/config"
	"github.com/randalmurphal/ola/console"
	"github.com/randalmurphal/ola/ollama"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set up a provider interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigure()
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Environment credentials short-circuit the questionnaire.
	if cred, ok := config.DetectFromEnv(); ok {
		console.Infof("Found %s credentials in the environment", cred.Provider)
		if console.Confirm("Use them", true) {
			return saveCredential(cfg, cred)
		}
	}

	idx := console.Select("Select a provider", config.ProviderNames, 0)
	name := config.ProviderNames[idx]

	cred := config.Credential{Provider: name}
	if strings.EqualFold(name, config.ProviderOllama) {
		if err := configureOllama(&cred); err != nil {
			return err
		}
	} else {
		key, err := console.ReadPassword("API key")
		if err != nil {
			return err
		}
		cred.APIKey = key
		cred.Model = chooseModel(name)
	}

	if err := config.Validate(cred); err != nil {
		return err
	}
	return saveCredential(cfg, cred)
}

func configureOllama(cred *config.Credential) error {
	cred.BaseURL = console.ReadLine("Ollama URL", ollama.DefaultBaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ollama.Ping(ctx, cred.BaseURL, nil); err != nil {
		console.Warnf("could not reach Ollama at %s: %v", cred.BaseURL, err)
		if !console.Confirm("Continue anyway", false) {
			return err
		}
		cred.Model = console.ReadLine("Model", config.DefaultModel(config.ProviderOllama))
		return nil
	}

	// Daemon is up: offer the models it actually has.
	models, err := ollama.ListModels(ctx, cred.BaseURL, nil)
	if err != nil || len(models) == 0 {
		console.Warnf("no installed models found")
		cred.Model = console.ReadLine("Model", config.DefaultModel(config.ProviderOllama))
		return nil
	}
	cred.Model = models[console.Select("Select a model", models, 0)]
	return nil
}

// chooseModel offers the curated menu for a hosted provider, with a
// custom escape hatch.
func chooseModel(providerName string) string {
	models := append([]string{}, curatedModels[providerName]...)
	models = append(models, "other (type a name)")
	idx := console.Select("Select a model", models, 0)
	if idx == len(models)-1 {
		return console.ReadLine("Model", config.DefaultModel(providerName))
	}
	return models[idx]
}

func saveCredential(cfg *config.Config, cred config.Credential) error {
	cfg.SetProvider(cred)
	if err := cfg.Save(); err != nil {
		return err
	}
	console.Successf("%s configured (model %s)", cred.Provider, cred.Model)
	return nil
}
