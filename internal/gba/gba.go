// Package gba wires the cartridge, system bus and CPU into a single
// emulator session, the way the teacher's gameboy package assembles its
// MMU/CPU/PPU graph behind a functional-options constructor.
package gba

import (
	"github.com/thelolagemann/goadvance/internal/bus"
	"github.com/thelolagemann/goadvance/internal/cartridge"
	"github.com/thelolagemann/goadvance/internal/cpu"
	"github.com/thelolagemann/goadvance/internal/types"
	"github.com/thelolagemann/goadvance/internal/video"
	"github.com/thelolagemann/goadvance/pkg/log"
)

// entryPoint is where execution begins when no BIOS image is supplied:
// straight into the cartridge, skipping the BIOS's boot animation and
// header-checksum gate.
const entryPoint = 0x0800_0000

// GameBoyAdvance owns the wired CPU/Bus/Cartridge graph for one emulation
// session.
type GameBoyAdvance struct {
	CPU       *cpu.CPU
	Bus       *bus.Bus
	Cartridge *cartridge.Cartridge
	Graphics  *video.Stub

	Log   log.Logger
	Debug bool
}

type config struct {
	bios         []byte
	save         []byte
	forcedBackup cartridge.BackupKind
	forced       bool
	hasGPIO      bool
	hasRTC       bool
	waitcnt      *types.WaitControl
	logger       log.Logger
	telemetry    bus.Telemetry
	debug        bool
}

// Opt configures a GameBoyAdvance at construction time.
type Opt func(*config)

// WithBIOS supplies the 16 KiB BIOS image; execution then starts at 0x0
// instead of jumping straight into the cartridge.
func WithBIOS(bios []byte) Opt {
	return func(c *config) { c.bios = bios }
}

// WithSave supplies the persisted backup bytes loaded from a save file.
func WithSave(save []byte) Opt {
	return func(c *config) { c.save = save }
}

// WithForcedBackup overrides the cartridge's heuristic backup-type
// detection.
func WithForcedBackup(kind cartridge.BackupKind) Opt {
	return func(c *config) {
		c.forcedBackup = kind
		c.forced = true
	}
}

// WithGPIO attaches an empty GPIO register file to the cartridge.
func WithGPIO() Opt {
	return func(c *config) { c.hasGPIO = true }
}

// WithRTC attaches a GPIO register file with an RTC wired to its data
// pins.
func WithRTC() Opt {
	return func(c *config) { c.hasGPIO, c.hasRTC = true, true }
}

// WithWaitcnt seeds the gamepak cycle tables with a WAITCNT value at
// construction time, instead of waiting for the guest to write the
// register.
func WithWaitcnt(w types.WaitControl) Opt {
	return func(c *config) { c.waitcnt = &w }
}

// WithLogger installs the logger used for protocol-violation and
// GPIO-access warnings.
func WithLogger(l log.Logger) Opt {
	return func(c *config) { c.logger = l }
}

// WithTelemetry installs a sink that observes every bus cycle-cost
// lookup.
func WithTelemetry(t bus.Telemetry) Opt {
	return func(c *config) { c.telemetry = t }
}

// Debug marks the session as a debug session by setting
// GameBoyAdvance.Debug, mirroring the teacher's CPU.Debug flag; it does
// not change the logger's level.
func Debug() Opt {
	return func(c *config) { c.debug = true }
}

// New builds a GameBoyAdvance from a ROM image and the given options.
func New(rom []byte, opts ...Opt) (*GameBoyAdvance, error) {
	cfg := config{forcedBackup: cartridge.BackupUndetected}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.New()
	}

	cartOpts := []cartridge.Option{
		cartridge.WithSave(cfg.save),
		cartridge.WithWarnLogger(logger.Warnf),
	}
	if cfg.forced {
		cartOpts = append(cartOpts, cartridge.WithForcedBackup(cfg.forcedBackup))
	}
	if cfg.hasRTC {
		cartOpts = append(cartOpts, cartridge.WithRTC())
	} else if cfg.hasGPIO {
		cartOpts = append(cartOpts, cartridge.WithGPIO())
	}

	cart, err := cartridge.New(rom, cartOpts...)
	if err != nil {
		return nil, err
	}
	if err := cart.Header.Validate(); err != nil {
		logger.Warnf("%v", err)
	}

	graphics := video.New()
	sysBus := bus.New(cfg.bios, cart, graphics, logger)
	if cfg.telemetry != nil {
		sysBus.SetTelemetry(cfg.telemetry)
	}
	if cfg.waitcnt != nil {
		sysBus.OnWaitcntWritten(*cfg.waitcnt)
	}

	startPC := uint32(entryPoint)
	if len(cfg.bios) > 0 {
		startPC = 0
	}
	cp := cpu.New(sysBus, false, startPC)
	sysBus.SetPipelineSource(cp)

	return &GameBoyAdvance{
		CPU:       cp,
		Bus:       sysBus,
		Cartridge: cart,
		Graphics:  graphics,
		Log:       logger,
		Debug:     cfg.debug,
	}, nil
}
