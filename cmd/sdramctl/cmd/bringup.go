package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"sdramctl-go/bus"
	"sdramctl-go/drivers/sdram"
	"sdramctl-go/drivers/sdram/fmc"
	"sdramctl-go/drivers/sdram/sim"
	"sdramctl-go/internal/log"
	"sdramctl-go/services/config"
	"sdramctl-go/services/memory"

	"github.com/spf13/cobra"
)

var (
	boardName  string
	configFile string
	backend    string
	baseAddr   string
	busyPolls  int
	stuck      bool
	maxPolls   int
	showTrace  bool
	stopAfter  bool
)

var bringupCmd = &cobra.Command{
	Use:   "bringup",
	Short: "Program the controller and run the SDRAM power-up sequence",
	Long: `Resolve a board profile, program both controller banks and run the
power-up sequence. With the sim backend the controller model checks the
protocol and reports every violation; --trace prints each register access.`,
	Args: cobra.NoArgs,
	RunE: runBringup,
}

func init() {
	f := bringupCmd.Flags()
	f.StringVar(&boardName, "board", "", "embedded board profile (see 'boards')")
	f.StringVar(&configFile, "config", "", "board profile YAML file")
	f.StringVar(&backend, "backend", "sim", "register backend: sim or devmem")
	f.StringVar(&baseAddr, "base", "0xA0000140", "physical address of the SDRAM register block (devmem)")
	f.IntVar(&busyPolls, "busy-polls", 1, "polls that read busy after each command (sim)")
	f.BoolVar(&stuck, "stuck", false, "keep the busy flag raised forever (sim)")
	f.IntVar(&maxPolls, "max-polls", 0, "give up after this many busy polls (0 keeps the profile policy)")
	f.BoolVar(&showTrace, "trace", false, "print the register access trace (sim)")
	f.BoolVar(&stopAfter, "stop", false, "return the device to idle after bring-up")
	bringupCmd.MarkFlagsMutuallyExclusive("board", "config")
	bringupCmd.MarkFlagsOneRequired("board", "config")
	rootCmd.AddCommand(bringupCmd)
}

var errStuckUnbounded = errors.New("--stuck needs --max-polls or a profile with a bounded wait policy")

func loadProfile() (config.Profile, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load(boardName)
}

func runBringup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	p, err := loadProfile()
	if err != nil {
		return err
	}
	cfg, err := p.SDRAMConfig()
	if err != nil {
		return err
	}
	policy := p.WaitPolicy()
	if maxPolls > 0 {
		policy.MaxPolls = maxPolls
	}

	var (
		regs  sdram.Registers
		busc  sdram.BusController
		model *sim.Controller
		opts  = []sdram.Option{
			sdram.WithWaitPolicy(policy),
			sdram.OnTransition(func(from, to sdram.State) {
				log.WithFields(log.Fields{"from": from.String(), "to": to.String()}).Debug("state")
			}),
		}
	)
	switch backend {
	case "sim":
		if stuck && !policy.Bounded() {
			return errStuckUnbounded
		}
		model = sim.New(sim.Config{BusyPolls: busyPolls, Stuck: stuck})
		regs, busc = model, model
		opts = append(opts, sdram.WithClock(model.Clock()))
	case "devmem":
		base, err := strconv.ParseUint(baseAddr, 0, 64)
		if err != nil {
			return fmt.Errorf("--base: %w", err)
		}
		w, closer, err := openDevMem(uintptr(base))
		if err != nil {
			return fmt.Errorf("open /dev/mem: %w", err)
		}
		defer closer.Close()
		regs, busc = fmc.NewRegs(w), &sdram.StaticBus{Up: true}
	default:
		return fmt.Errorf("unknown backend %q", backend)
	}

	b := bus.NewBus(4)
	conn := b.NewConnection("sdramctl")
	defer conn.Disconnect()
	svc := memory.New(sdram.New(regs, busc, opts...), memory.WithName(p.Name), memory.WithConnection(conn))

	upErr := svc.Up(cfg)
	if model != nil {
		if showTrace {
			for i, op := range model.Trace() {
				fmt.Fprintf(out, "%3d %s\n", i, op)
			}
		}
		for _, v := range model.Violations() {
			fmt.Fprintf(out, "violation: %s\n", v)
		}
	}
	if upErr != nil {
		return upErr
	}
	if model != nil && len(model.Violations()) > 0 {
		return fmt.Errorf("%d protocol violation(s)", len(model.Violations()))
	}
	printStatus(out, b, svc)

	if stopAfter {
		if err := svc.Down(); err != nil {
			return err
		}
		printStatus(out, b, svc)
	}
	return nil
}

func printStatus(out io.Writer, b *bus.Bus, svc *memory.Service) {
	m, ok := b.Retained(svc.StateTopic())
	if !ok {
		return
	}
	st := m.Payload.(memory.Status)
	fmt.Fprintf(out, "%s: %s target=%s", st.Name, st.State, st.Target)
	if st.State == sdram.Ready {
		fmt.Fprintf(out, " sdcr=0x%04X sdtr=0x%08X mrd=0x%04X refresh=0x%04X",
			st.Config.Control, st.Config.Timing, st.Config.ModeRegister, st.Config.RefreshTimer)
	}
	fmt.Fprintln(out)
}
