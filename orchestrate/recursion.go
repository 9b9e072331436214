// Package orchestrate drives multi-round prompt invocation: single
// shot, recursive waves across processes, and in-process iterative
// feedback loops.
package orchestrate

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// WaveEnv carries the current wave number to respawned child
// processes. Only the counter travels through the environment; the
// wave maximum is re-serialized as a flag on the child command line.
const WaveEnv = "OLA_RECURSION_WAVE"

// RecursionContext is this process's position in a wave sequence.
// Wave 0 is the invocation the user started.
type RecursionContext struct {
	Wave uint8
	Max  uint8
}

// FromEnv builds the context for this process: the wave number from
// WaveEnv (absent or unparseable means wave 0, values above max are
// clamped) and the maximum from the flag the parent re-serialized.
func FromEnv(max uint8) RecursionContext {
	rc := RecursionContext{Max: max}
	if v := os.Getenv(WaveEnv); v != "" {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			rc.Wave = uint8(n)
		}
	}
	if rc.Max > 0 && rc.Wave > rc.Max {
		rc.Wave = rc.Max
	}
	return rc
}

// Recursive reports whether this run is part of a wave sequence at
// all.
func (rc RecursionContext) Recursive() bool {
	return rc.Max > 0
}

// ShouldSpawn reports whether a next wave is due. Waves are numbered
// from zero, so max waves means invocations 0 through max-1: the last
// wave runs without spawning a successor.
func (rc RecursionContext) ShouldSpawn() bool {
	return rc.Max > 0 && rc.Wave+1 < rc.Max
}

// Next is the context the spawned child will observe.
func (rc RecursionContext) Next() RecursionContext {
	return RecursionContext{Wave: rc.Wave + 1, Max: rc.Max}
}

// Respawn re-executes the current binary with the given arguments and
// the incremented wave number in the environment. It blocks until the
// child exits; a child failure is reported, never retried.
func (rc RecursionContext) Respawn(args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	cmd := exec.Command(exe, args...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("%s=%d", WaveEnv, rc.Wave+1))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wave %d failed: %w", rc.Wave+1, err)
	}
	return nil
}
