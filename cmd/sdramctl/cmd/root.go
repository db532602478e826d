package cmd

import (
	"fmt"
	"os"

	"sdramctl-go/internal/log"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "sdramctl",
	Short: "SDRAM controller bring-up tool",
	Long: `Bring up an SDRAM device behind an FMC-style controller, either on real
hardware through /dev/mem or against the built-in controller model.

Examples:
  sdramctl boards                                   # List embedded board profiles
  sdramctl bringup --board stm32f429i-disco --trace # Simulated bring-up with trace
  sdramctl bringup --config board.yaml --backend devmem
  sdramctl decode --reg sdcmr 0x4620C               # Break a register value into fields`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !log.SetLevel(logLevel) {
			return fmt.Errorf("unknown log level %q", logLevel)
		}
		log.SetJSON(logJSON)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
}
