/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	serial "github.com/allbin/serialmon"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [data] <port>",
	Short: "Send a command to a serial port",
	Long: `Send a single command to a serial port and exit.

The line terminator is appended automatically, matching what the
interactive monitor sends. Data can be provided as:
- Command line argument: serialmon send "AT+GMR" /dev/ttyUSB0
- From stdin (pipe): echo "reset" | serialmon send /dev/ttyUSB0
- Interactive mode: serialmon send /dev/ttyUSB0 (prompts for input)

Example usage:
  serialmon send "Hello World" /dev/ttyUSB0
  serialmon send "AT+GMR" /dev/ttyUSB0 --baud 9600
  echo "test" | serialmon send /dev/ttyUSB0`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var data string
		var portPath string

		if len(args) == 1 {
			portPath = args[0]
			stat, err := os.Stdin.Stat()
			if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
				data = promptForData()
			} else {
				stdinData, err := io.ReadAll(os.Stdin)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
					os.Exit(1)
				}
				data = strings.TrimRight(string(stdinData), "\r\n")
			}
		} else {
			data = args[0]
			portPath = args[1]
		}

		baudRate := baudRateSetting(cmd)
		timeout, _ := cmd.Flags().GetDuration("timeout")

		if err := sendData(portPath, data, baudRate, timeout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().IntP("baud", "b", 115200, "Baud rate")
	sendCmd.Flags().DurationP("timeout", "t", 5*time.Second, "Timeout for sending data")
}

func promptForData() string {
	promptStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	fmt.Print(promptStyle.Render("Enter data to send: "))

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

func sendData(portPath, data string, baudRate int, timeout time.Duration) error {
	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		Bold(true)

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("40")).
		Bold(true)

	fmt.Printf("%s Opening %s...\n", infoStyle.Render("⚡"), portPath)

	port, err := serial.Open(portPath, serial.WithBaudRate(baudRate))
	if err != nil {
		return err
	}
	defer port.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	payload := []byte(data + "\r\n")
	n, err := port.WriteContext(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to send data: %w", err)
	}
	if err := port.Drain(); err != nil {
		return fmt.Errorf("failed to drain output: %w", err)
	}

	fmt.Printf("%s Sent %d bytes to %s\n", successStyle.Render("✓"), n, portPath)
	return nil
}
