/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serialmon",
	Short: "Interactive serial port monitor",
	Long: `serialmon is an interactive serial port monitor for Linux.

It connects to a serial device at fixed 8N1 framing, displays incoming
lines with timestamps, sends commands, and optionally tees received
lines to an append-only log file under a logs/ directory.

Run "serialmon monitor" for the interactive menu-driven session, or use
the list, info, send and capture subcommands directly.`,
}

// Execute runs the root command. Any unrecoverable error terminates the
// process with exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.serialmon.yaml)")
	rootCmd.PersistentFlags().String("log-dir", "logs", "directory for log files")

	viper.BindPFlag("log-dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.SetDefault("baud", 115200)
	viper.SetDefault("log-dir", "logs")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".serialmon")
	}

	viper.SetEnvPrefix("serialmon")
	viper.AutomaticEnv()

	// Missing config file is fine; defaults apply.
	viper.ReadInConfig()
}

// baudRateSetting resolves the baud rate for a command: an explicit
// flag wins, then the config file / environment, then the default.
func baudRateSetting(cmd *cobra.Command) int {
	baudRate, _ := cmd.Flags().GetInt("baud")
	if !cmd.Flags().Changed("baud") && viper.IsSet("baud") {
		return viper.GetInt("baud")
	}
	return baudRate
}
