/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/allbin/serialmon/internal/session"
	"github.com/allbin/serialmon/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor [port]",
	Short: "Interactive menu-driven serial session",
	Long: `Open the interactive serial monitor.

When disconnected the menu offers Connect and Exit; connecting walks
through port selection (from the enumerated list) and baud rate
selection. While connected the menu offers Disconnect, Send command,
Start/Stop logging and Exit, with incoming lines displayed above the
menu as they arrive.

Logging tees every received line to an append-mode file under the log
directory (default logs/), one "[timestamp] text" entry per line.

With a port argument the monitor connects immediately:

  serialmon monitor
  serialmon monitor /dev/ttyUSB0
  serialmon monitor /dev/ttyUSB0 --baud 9600`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		baudRate := baudRateSetting(cmd)
		logDir := viper.GetString("log-dir")

		sess := session.New(logDir)

		opts := []models.Option{}
		if len(args) == 1 {
			opts = append(opts, models.WithInitialConnection(args[0], baudRate))
		}

		p := tea.NewProgram(models.NewMonitor(sess, opts...), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().IntP("baud", "b", 115200, "Baud rate used when a port argument is given")
}
