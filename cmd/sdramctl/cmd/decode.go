package cmd

import (
	"fmt"
	"io"
	"strconv"

	"sdramctl-go/drivers/sdram"

	"github.com/spf13/cobra"
)

var decodeReg string

var decodeCmd = &cobra.Command{
	Use:   "decode VALUE",
	Short: "Break a register value into its fields",
	Long: `Decode an SDCMR command word, an SDCR or SDTR bank payload, or a mode
register (MRD) value. VALUE accepts 0x, 0b and 0o prefixes.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeReg, "reg", "sdcmr", "register: sdcmr, sdcr, sdtr or mrd")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	v64, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	v := uint32(v64)
	out := cmd.OutOrStdout()

	switch decodeReg {
	case "sdcmr":
		c := sdram.DecodeCommand(v)
		fmt.Fprintf(out, "mode:    %s\n", c.Mode)
		fmt.Fprintf(out, "target:  %s\n", c.Target)
		switch c.Mode {
		case sdram.ModeAutoRefresh:
			fmt.Fprintf(out, "cycles:  %d\n", c.Payload+1)
		case sdram.ModeLoadMode:
			fmt.Fprintf(out, "mrd:     0x%04X\n", c.Payload)
			printMode(out, c.Payload)
		}
	case "sdcr":
		if v&^sdram.ControlMask != 0 {
			return sdram.ErrControlRange
		}
		f := sdram.DecodeControl(v)
		fmt.Fprintf(out, "column_bits:    %d\n", f.ColumnBits)
		fmt.Fprintf(out, "row_bits:       %d\n", f.RowBits)
		fmt.Fprintf(out, "data_width:     %d\n", f.DataWidth)
		fmt.Fprintf(out, "internal_banks: %d\n", f.InternalBanks)
		fmt.Fprintf(out, "cas_latency:    %d\n", f.CASLatency)
		fmt.Fprintf(out, "write_protect:  %t\n", f.WriteProtect)
		fmt.Fprintf(out, "clock_period:   %d\n", f.ClockPeriod)
		fmt.Fprintf(out, "read_burst:     %t\n", f.ReadBurst)
		fmt.Fprintf(out, "read_pipe:      %d\n", f.ReadPipe)
	case "sdtr":
		if v&^sdram.TimingMask != 0 {
			return sdram.ErrTimingRange
		}
		f := sdram.DecodeTiming(v)
		fmt.Fprintf(out, "load_to_active:    %d\n", f.LoadToActive)
		fmt.Fprintf(out, "exit_self_refresh: %d\n", f.ExitSelfRefresh)
		fmt.Fprintf(out, "self_refresh_time: %d\n", f.SelfRefreshTime)
		fmt.Fprintf(out, "row_cycle:         %d\n", f.RowCycle)
		fmt.Fprintf(out, "write_recovery:    %d\n", f.WriteRecovery)
		fmt.Fprintf(out, "rp_delay:          %d\n", f.RPDelay)
		fmt.Fprintf(out, "rcd_delay:         %d\n", f.RCDDelay)
	case "mrd":
		if v > sdram.ModeRegisterMax {
			return sdram.ErrModeRegisterRange
		}
		printMode(out, v)
	default:
		return fmt.Errorf("unknown register %q", decodeReg)
	}
	return nil
}

func printMode(out io.Writer, v uint32) {
	f := sdram.DecodeModeRegister(v)
	fmt.Fprintf(out, "burst_length:       %d\n", f.BurstLength)
	fmt.Fprintf(out, "interleaved:        %t\n", f.Interleaved)
	fmt.Fprintf(out, "cas_latency:        %d\n", f.CASLatency)
	fmt.Fprintf(out, "single_write_burst: %t\n", f.SingleWriteBurst)
}
