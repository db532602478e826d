//go:build rp2040

// Command pico-sdram drives an FPGA soft SDRAM controller through its I2C
// register bridge and mirrors every console line to UART0.
package main

import (
	"machine"
	"time"

	"sdramctl-go/drivers/sdram"
	"sdramctl-go/drivers/sdram/fmc"
	"sdramctl-go/x/conv"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// Two identical devices, one per controller bank.
var board = sdram.Config{
	Populated:     sdram.AllBanks,
	Control:       0x29D4,
	Timing:        0x01116361,
	ModeRegister:  0x0231,
	RefreshTimer:  0x0603,
	RefreshPrimes: 2,
	PowerUpDelay:  2 * time.Millisecond,
}

var console = uartx.UART0

// say prints to USB CDC and to UART0 (no fmt).
func say(parts ...string) {
	line := "[sdram]"
	for _, p := range parts {
		line += " " + p
	}
	println(line)
	_, _ = console.Write([]byte(line + "\r\n"))
}

func main() {
	time.Sleep(2 * time.Second)
	_ = console.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	say("boot")

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 400 * machine.KHz,
	}); err != nil {
		fail("i2c", err)
	}

	regs := fmc.NewRegs(fmc.NewI2CBridge(i2c, fmc.BridgeAddressDefault))
	dev := sdram.New(regs, &sdram.StaticBus{Up: true},
		// Each poll is an I2C transaction; give up rather than hang.
		sdram.WithWaitPolicy(sdram.Bounded(2000, 50*time.Microsecond, 5*time.Millisecond)),
		sdram.OnTransition(func(from, to sdram.State) {
			say(from.String(), "->", to.String())
		}))

	if err := dev.Init(); err != nil {
		fail("init", err)
	}
	if err := dev.Start(board); err != nil {
		fail("start", err)
	}

	s, err := regs.ReadSnapshot()
	if err != nil {
		fail("snapshot", err)
	}
	say("SDCR1", conv.Hex32(s.SDCR[0]), "SDTR1", conv.Hex32(s.SDTR[0]))
	say("SDRTR", conv.Hex32(s.SDRTR), "SDSR", conv.Hex32(s.SDSR))

	for {
		time.Sleep(5 * time.Second)
		say("alive state=" + dev.State().String())
	}
}

func fail(step string, err error) {
	for {
		say("FAIL:", step, err.Error())
		time.Sleep(2 * time.Second)
	}
}
