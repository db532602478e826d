//go:build tinygo && stm32f4

// Command stm32-sdram brings up the external SDRAM of an STM32F429I-DISCO
// and reports the resulting controller registers on the console.
//
// The FMC pins (ports C-I, AF12) must already be muxed by the board
// support code.
package main

import (
	"time"

	"sdramctl-go/drivers/sdram"
	"sdramctl-go/drivers/sdram/fmc"
	"sdramctl-go/x/conv"
)

// IS42S16400J on SDNE1, SDCLK = HCLK/2 = 84 MHz.
var board = sdram.Config{
	Populated:         sdram.MaskOf(sdram.Bank1),
	Control:           0x29D4,
	Timing:            0x01116361,
	ModeRegister:      0x0231,
	RefreshTimer:      683,
	RefreshPrimes:     2,
	AutoRefreshCycles: 4,
}

func main() {
	// Allow the console to come up before we print.
	time.Sleep(500 * time.Millisecond)
	println("[sdram] boot")

	regs := fmc.NewRegs(fmc.NewMMIO(fmc.BaseSTM32F4))
	dev := sdram.New(regs, fmc.FMCClock{},
		sdram.OnTransition(func(from, to sdram.State) {
			println("[sdram]", from.String(), "->", to.String())
		}))

	if err := dev.Init(); err != nil {
		fail("init", err)
	}
	t0 := time.Now()
	if err := dev.Start(board); err != nil {
		fail("start", err)
	}
	println("[sdram] ready target=", dev.Target().String(), " in", time.Since(t0).String())

	dump(regs)
	for {
		time.Sleep(time.Second)
	}
}

func dump(r fmc.Regs) {
	s, err := r.ReadSnapshot()
	if err != nil {
		fail("snapshot", err)
	}
	println("[sdram] SDCR1", conv.Hex32(s.SDCR[0]), "SDCR2", conv.Hex32(s.SDCR[1]))
	println("[sdram] SDTR1", conv.Hex32(s.SDTR[0]), "SDTR2", conv.Hex32(s.SDTR[1]))
	println("[sdram] SDCMR", conv.Hex32(s.SDCMR), "SDRTR", conv.Hex32(s.SDRTR), "SDSR", conv.Hex32(s.SDSR))
}

func fail(step string, err error) {
	for {
		println("[sdram] FAIL:", step, err.Error())
		time.Sleep(2 * time.Second)
	}
}
