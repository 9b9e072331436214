package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/ola/console"
	"github.com/randalmurphal/ola/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change app settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSettings()
	},
}

var settingsSetModelCmd = &cobra.Command{
	Use:   "set-model <model>",
	Short: "Set the default model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(func(s *settings.Settings) {
			s.DefaultModel = args[0]
		})
	},
}

var settingsSetFormatCmd = &cobra.Command{
	Use:   "set-format <format>",
	Short: "Set the default return format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(func(s *settings.Settings) {
			s.Defaults.ReturnFormat = args[0]
		})
	},
}

var settingsToggleLoggingCmd = &cobra.Command{
	Use:   "toggle-logging",
	Short: "Enable or disable session logging",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(func(s *settings.Settings) {
			s.Behavior.EnableLogging = !s.Behavior.EnableLogging
			if s.Behavior.EnableLogging {
				console.Infof("logging enabled")
			} else {
				console.Infof("logging disabled")
			}
		})
	},
}

var settingsSetLogFileCmd = &cobra.Command{
	Use:   "set-log-file <path>",
	Short: "Set the session log location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(func(s *settings.Settings) {
			s.Behavior.LogFile = args[0]
		})
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !console.Confirm("Reset all settings to defaults", false) {
			return nil
		}
		s := settings.Default()
		if err := s.Save(); err != nil {
			return err
		}
		console.Successf("settings reset")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetModelCmd, settingsSetFormatCmd,
		settingsToggleLoggingCmd, settingsSetLogFileCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func showSettings() error {
	s, err := settings.Load()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func updateSettings(mutate func(*settings.Settings)) error {
	s, err := settings.Load()
	if err != nil {
		return err
	}
	mutate(&s)
	if err := s.Save(); err != nil {
		return err
	}
	console.Successf("settings saved")
	return nil
}
