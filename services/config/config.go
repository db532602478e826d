// Package config resolves SDRAM board profiles into driver configuration.
//
// Profiles are YAML documents, either embedded in the binary (keyed by
// board name) or read from a file. Register payloads may be given as
// decoded fields or as raw register values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"sdramctl-go/drivers/sdram"
	"sdramctl-go/errcode"

	"gopkg.in/yaml.v3"
)

// EmbeddedProfileLookup allows overriding how board names are resolved.
var EmbeddedProfileLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedProfiles[board]
	return b, ok
}

// Profile is one SDRAM population as written in YAML.
type Profile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Banks        []uint8       `yaml:"banks"`
	Control      ControlSpec   `yaml:"control"`
	Timing       TimingSpec    `yaml:"timing"`
	ModeRegister ModeSpec      `yaml:"mode_register"`
	RefreshTimer uint32        `yaml:"refresh_timer"`
	Primes       uint8         `yaml:"refresh_primes"`
	ARCycles     uint8         `yaml:"auto_refresh_cycles"`
	PowerUpDelay time.Duration `yaml:"power_up_delay"`
	Wait         WaitSpec      `yaml:"wait"`
}

// ControlSpec gives the SDCR payload raw or by field.
type ControlSpec struct {
	Raw           *uint32 `yaml:"raw"`
	ColumnBits    uint8   `yaml:"column_bits"`
	RowBits       uint8   `yaml:"row_bits"`
	DataWidth     uint8   `yaml:"data_width"`
	InternalBanks uint8   `yaml:"internal_banks"`
	CASLatency    uint8   `yaml:"cas_latency"`
	WriteProtect  bool    `yaml:"write_protect"`
	ClockPeriod   uint8   `yaml:"clock_period"`
	ReadBurst     bool    `yaml:"read_burst"`
	ReadPipe      uint8   `yaml:"read_pipe"`
}

// TimingSpec gives the SDTR payload raw or by field (memory clock cycles).
type TimingSpec struct {
	Raw             *uint32 `yaml:"raw"`
	LoadToActive    uint8   `yaml:"load_to_active"`
	ExitSelfRefresh uint8   `yaml:"exit_self_refresh"`
	SelfRefreshTime uint8   `yaml:"self_refresh_time"`
	RowCycle        uint8   `yaml:"row_cycle"`
	WriteRecovery   uint8   `yaml:"write_recovery"`
	RPDelay         uint8   `yaml:"rp_delay"`
	RCDDelay        uint8   `yaml:"rcd_delay"`
}

// ModeSpec gives the LoadMode payload raw or by field.
type ModeSpec struct {
	Raw              *uint32 `yaml:"raw"`
	BurstLength      uint8   `yaml:"burst_length"`
	Interleaved      bool    `yaml:"interleaved"`
	CASLatency       uint8   `yaml:"cas_latency"`
	SingleWriteBurst bool    `yaml:"single_write_burst"`
}

// WaitSpec maps onto sdram.WaitPolicy. All zero means spin forever.
type WaitSpec struct {
	MaxPolls int           `yaml:"max_polls"`
	Min      time.Duration `yaml:"min"`
	Max      time.Duration `yaml:"max"`
}

// Names lists the embedded board profiles, sorted.
func Names() []string {
	out := make([]string, 0, len(embeddedProfiles))
	for k := range embeddedProfiles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Parse decodes one profile. Unknown keys are rejected.
func Parse(raw []byte) (Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Profile{}, &errcode.E{C: errcode.InvalidParams, Op: "config.parse", Err: err}
	}
	return p, nil
}

// Load resolves an embedded profile by board name.
func Load(board string) (Profile, error) {
	raw, ok := EmbeddedProfileLookup(board)
	if !ok || len(raw) == 0 {
		return Profile{}, &errcode.E{C: errcode.UnknownBoard, Op: "config.load", Msg: board}
	}
	return Parse(raw)
}

// LoadFile reads a profile from path.
func LoadFile(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return Parse(raw)
}

var ErrBankIndex = errors.New("bank index must be 0 or 1")

// SDRAMConfig converts p into driver configuration and validates it.
func (p Profile) SDRAMConfig() (sdram.Config, error) {
	cfg := sdram.Config{
		RefreshTimer:      p.RefreshTimer,
		RefreshPrimes:     p.Primes,
		AutoRefreshCycles: p.ARCycles,
		PowerUpDelay:      p.PowerUpDelay,
	}
	for _, b := range p.Banks {
		if b >= sdram.NumBanks {
			return sdram.Config{}, invalid("banks", ErrBankIndex)
		}
		cfg.Populated |= sdram.MaskOf(sdram.Bank(b))
	}

	var err error
	if cfg.Control, err = p.Control.encode(); err != nil {
		return sdram.Config{}, invalid("control", err)
	}
	if cfg.Timing, err = p.Timing.encode(); err != nil {
		return sdram.Config{}, invalid("timing", err)
	}
	if cfg.ModeRegister, err = p.ModeRegister.encode(); err != nil {
		return sdram.Config{}, invalid("mode_register", err)
	}
	if err := cfg.Validate(); err != nil {
		return sdram.Config{}, invalid(p.Name, err)
	}
	return cfg, nil
}

// WaitPolicy returns the busy-poll policy of p.
func (p Profile) WaitPolicy() sdram.WaitPolicy {
	if p.Wait.MaxPolls == 0 && p.Wait.Min == 0 {
		return sdram.Unbounded()
	}
	return sdram.Bounded(p.Wait.MaxPolls, p.Wait.Min, p.Wait.Max)
}

func invalid(what string, err error) error {
	return &errcode.E{C: errcode.InvalidParams, Op: "config.profile", Msg: what, Err: err}
}

func (c ControlSpec) encode() (uint32, error) {
	if c.Raw != nil {
		return *c.Raw, nil
	}
	return sdram.ControlFields{
		ColumnBits:    c.ColumnBits,
		RowBits:       c.RowBits,
		DataWidth:     c.DataWidth,
		InternalBanks: c.InternalBanks,
		CASLatency:    c.CASLatency,
		WriteProtect:  c.WriteProtect,
		ClockPeriod:   c.ClockPeriod,
		ReadBurst:     c.ReadBurst,
		ReadPipe:      c.ReadPipe,
	}.Encode()
}

func (t TimingSpec) encode() (uint32, error) {
	if t.Raw != nil {
		return *t.Raw, nil
	}
	return sdram.TimingFields{
		LoadToActive:    t.LoadToActive,
		ExitSelfRefresh: t.ExitSelfRefresh,
		SelfRefreshTime: t.SelfRefreshTime,
		RowCycle:        t.RowCycle,
		WriteRecovery:   t.WriteRecovery,
		RPDelay:         t.RPDelay,
		RCDDelay:        t.RCDDelay,
	}.Encode()
}

func (m ModeSpec) encode() (uint32, error) {
	if m.Raw != nil {
		return *m.Raw, nil
	}
	return sdram.ModeRegisterFields{
		BurstLength:      m.BurstLength,
		Interleaved:      m.Interleaved,
		CASLatency:       m.CASLatency,
		SingleWriteBurst: m.SingleWriteBurst,
	}.Encode()
}
