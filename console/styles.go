// Package console renders user-facing status output and reads
// interactive input. Everything here writes to stderr so stdout stays
// clean for response text and pipes.
package console

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

	// waveColors is the ocean palette cycled per recursion wave.
	waveColors = []lipgloss.Color{"27", "33", "39", "45", "51"}
)

// Successf prints a green check line to stderr.
func Successf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Errorf prints a red cross line to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warnf prints a yellow warning line to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, warnStyle.Render("! "+fmt.Sprintf(format, args...)))
}

// Infof prints a cyan info line to stderr.
func Infof(format string, args ...any) {
	fmt.Fprintln(os.Stderr, infoStyle.Render(fmt.Sprintf(format, args...)))
}

// Banner prints a bold header line to stderr.
func Banner(text string) {
	fmt.Fprintln(os.Stderr, bannerStyle.Render(text))
}

// WaveBanner prints the recursion-wave header, colored by wave so
// nested invocations are visually distinct.
func WaveBanner(wave, max uint8) {
	color := waveColors[int(wave)%len(waveColors)]
	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	fmt.Fprintln(os.Stderr, style.Render(fmt.Sprintf("🌊 RECURSION WAVE %d of %d", wave, max)))
}
