package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"metarmap/internal/app"
)

func newRootCommand() *cobra.Command {
	var config app.Config

	rootCmd := &cobra.Command{
		Use:   "metarmap",
		Short: "METAR map daemon",
		Long: `METAR map daemon for a sectional-chart photo frame.

Periodically fetches METAR observations from the NWS text service for a
fixed roster of airports, classifies each into a flight-rules category
(LIFR/IFR/MVFR/VFR), and pushes per-LED color frames over a serial link
to the microcontroller driving the frame's indicator LEDs.

Example usage:
  metarmap --serial-port /dev/ttyACM0 --baud-rate 9600 --refresh-interval-s 300`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			config.ApplyEnv()

			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().StringVar(&config.SerialPort, "serial-port", app.DefaultSerialPort, "Serial device path for the connected microcontroller")
	rootCmd.Flags().IntVar(&config.BaudRate, "baud-rate", app.DefaultBaudRate, "Baud rate for the serial link")
	rootCmd.Flags().IntVar(&config.SerialTimeoutMS, "serial-timeout-ms", app.DefaultSerialTimeoutMS, "Per-write serial timeout in milliseconds")
	rootCmd.Flags().IntVar(&config.RefreshIntervalS, "refresh-interval-s", app.DefaultRefreshIntervalS, "Interval between METAR refreshes in seconds")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
