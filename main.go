// ola is a command-line client for reasoning-model providers.
//
// It sends structured prompts (goals, return format, warnings) to one
// of several LLM HTTP backends, streams the response to the terminal,
// and can orchestrate multi-round runs: recursive waves across
// processes and in-process iterative feedback loops. Reasoning markup
// (<think> blocks) can be hidden live or stripped after the fact.
//
// Run "ola configure" once to store provider credentials, then:
//
//	ola -g "explain CRDTs" -f "short essay" -w "no hand-waving"
//	git diff | ola -p -g "review this change"
//	ola -g "write a haiku" -r 3          # three recursion waves
//	ola -g "draft a README" -i 2 -c      # two feedback rounds, copy result
package main

import "github.com/randalmurphal/ola/cmd"

func main() {
	cmd.Execute()
}
