// Package providers registers all known LLM HTTP providers.
// Import this package to make all providers available via provider.New():
//
//	import _ "github.com/randalmurphal/ola/providers"
package providers

import (
	_ "github.com/randalmurphal/ola/anthropic"
	_ "github.com/randalmurphal/ola/gemini"
	_ "github.com/randalmurphal/ola/ollama"
	_ "github.com/randalmurphal/ola/openai"
)
