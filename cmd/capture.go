/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/allbin/serialmon/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture <port> [log-file]",
	Short: "Capture received lines to a log file without the TUI",
	Long: `Capture incoming lines to an append-mode log file, headless.

Every completed line is written to the log file as "[timestamp] text"
and echoed to stdout. The file lives under the log directory (default
logs/); without a log-file argument a timestamp-derived name is used.
Runs until interrupted (Ctrl+C) or the port fails.

Example usage:
  serialmon capture /dev/ttyUSB0
  serialmon capture /dev/ttyUSB0 boot.txt --baud 9600`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]
		fileName := ""
		if len(args) == 2 {
			fileName = args[1]
		}

		baudRate := baudRateSetting(cmd)
		logDir := viper.GetString("log-dir")

		if err := runCapture(portPath, fileName, baudRate, logDir); err != nil {
			slog.Error("capture failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().IntP("baud", "b", 115200, "Baud rate")
}

func runCapture(portPath, fileName string, baudRate int, logDir string) error {
	sess := session.New(logDir)

	if err := sess.Connect(portPath, baudRate); err != nil {
		return err
	}
	defer sess.Disconnect()

	_, logPath, err := sess.ToggleLogging(fileName)
	if err != nil {
		return err
	}

	slog.Info("capturing", "port", portPath, "baud", baudRate, "log", logPath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sigCh:
			slog.Info("capture stopped")
			return sess.Disconnect()

		case ev := <-sess.Events():
			lines, err := sess.HandleEvent(ev)
			for _, line := range lines {
				fmt.Printf("[%s] %s\n", line.Timestamp.Format("15:04:05.000"), line.Text)
			}
			if err != nil {
				// Log write failures are best-effort; port failures end
				// the capture.
				if !sess.Connected() {
					return err
				}
				slog.Warn("log write failed", "error", err)
			}
			if !sess.Connected() {
				slog.Info("port closed")
				return nil
			}
		}
	}
}
