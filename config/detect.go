package config

import (
	"fmt"
	"os"
	"strings"
)

// Display names used in the credential store. The provider registry
// matches them case-insensitively.
const (
	ProviderOpenAI    = "OpenAI"
	ProviderAnthropic = "Anthropic"
	ProviderOllama    = "Ollama"
	ProviderGemini    = "Gemini"
)

// ProviderNames lists the supported providers in menu order.
var ProviderNames = []string{ProviderOpenAI, ProviderAnthropic, ProviderOllama, ProviderGemini}

// defaultModels used when env detection supplies no model.
var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o",
	ProviderAnthropic: "claude-3-opus-20240229",
	ProviderOllama:    "llama3.2",
	ProviderGemini:    "gemini-1.5-pro",
}

// DefaultModel returns the stock model for a provider display name.
func DefaultModel(provider string) string {
	for name, model := range defaultModels {
		if strings.EqualFold(name, provider) {
			return model
		}
	}
	return ""
}

// DetectFromEnv looks for well-known credential environment variables
// and proposes a credential from the first match. OLLAMA_HOST counts
// as configuration even though Ollama needs no key.
func DetectFromEnv() (Credential, bool) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return Credential{Provider: ProviderOpenAI, APIKey: key, Model: defaultModels[ProviderOpenAI]}, true
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return Credential{Provider: ProviderAnthropic, APIKey: key, Model: defaultModels[ProviderAnthropic]}, true
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return Credential{Provider: ProviderGemini, APIKey: key, Model: defaultModels[ProviderGemini]}, true
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		return Credential{Provider: ProviderOllama, BaseURL: host, Model: defaultModels[ProviderOllama]}, true
	}
	return Credential{}, false
}

// Validate checks a credential for obvious mistakes before it is
// saved: key presence and format for hosted providers, model presence
// everywhere. Ollama needs no key.
func Validate(cred Credential) error {
	if cred.Model == "" {
		return fmt.Errorf("model is required")
	}
	switch {
	case strings.EqualFold(cred.Provider, ProviderOpenAI):
		if !strings.HasPrefix(cred.APIKey, "sk-") {
			return fmt.Errorf("OpenAI API keys start with sk-")
		}
	case strings.EqualFold(cred.Provider, ProviderAnthropic):
		if !strings.HasPrefix(cred.APIKey, "sk-ant-") {
			return fmt.Errorf("Anthropic API keys start with sk-ant-")
		}
	case strings.EqualFold(cred.Provider, ProviderGemini):
		if cred.APIKey == "" {
			return fmt.Errorf("Gemini requires an API key")
		}
	case strings.EqualFold(cred.Provider, ProviderOllama):
		// No key. A base URL default is applied by the client.
	default:
		return fmt.Errorf("unknown provider %q", cred.Provider)
	}
	return nil
}
