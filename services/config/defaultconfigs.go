package config

// -----------------------------------------------------------------------------
// Embedded board profiles
//
// Key: board name as given to Load / --board.
// Val: raw YAML bytes for that board.
// -----------------------------------------------------------------------------

// IS42S16400J on SDNE1 (controller bank 2), HCLK 168 MHz, SDCLK = HCLK/2.
const profileF429IDisco = `
name: stm32f429i-disco
description: IS42S16400J 64 Mbit, 16-bit, second SDRAM bank
banks: [1]
control:
  column_bits: 8
  row_bits: 12
  data_width: 16
  internal_banks: 4
  cas_latency: 3
  clock_period: 2
  read_pipe: 1
timing:
  load_to_active: 2
  exit_self_refresh: 7
  self_refresh_time: 4
  row_cycle: 7
  write_recovery: 2
  rp_delay: 2
  rcd_delay: 2
mode_register:
  burst_length: 2
  cas_latency: 3
  single_write_burst: true
refresh_timer: 683
refresh_primes: 2
auto_refresh_cycles: 4
`

// MT48LC4M32B2 on SDNE0 (controller bank 1), HCLK 200 MHz.
const profileF746GDisco = `
name: stm32f746g-disco
description: MT48LC4M32B2 128 Mbit, 16-bit, first SDRAM bank
banks: [0]
control:
  column_bits: 8
  row_bits: 12
  data_width: 16
  internal_banks: 4
  cas_latency: 2
  clock_period: 2
  read_burst: true
timing:
  load_to_active: 2
  exit_self_refresh: 7
  self_refresh_time: 4
  row_cycle: 7
  write_recovery: 2
  rp_delay: 2
  rcd_delay: 2
mode_register:
  burst_length: 1
  cas_latency: 2
  single_write_burst: true
refresh_timer: 0x0603
refresh_primes: 2
auto_refresh_cycles: 8
wait:
  max_polls: 100000
`

// Soft FMC in an FPGA behind the I2C register bridge; both banks fitted.
const profileFPGABridge = `
name: fpga-bridge-dev
description: FPGA soft controller, two identical devices, bridged over I2C
banks: [0, 1]
control:
  raw: 0x29D4
timing:
  raw: 0x01116361
mode_register:
  raw: 0x0231
refresh_timer: 0x0603
refresh_primes: 2
power_up_delay: 2ms
wait:
  max_polls: 2000
  min: 50us
  max: 5ms
`

var embeddedProfiles = map[string][]byte{
	"stm32f429i-disco": []byte(profileF429IDisco),
	"stm32f746g-disco": []byte(profileF746GDisco),
	"fpga-bridge-dev":  []byte(profileFPGABridge),
}
