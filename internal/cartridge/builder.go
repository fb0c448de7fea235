package cartridge

import (
	"bytes"
	"fmt"

	"github.com/thelolagemann/goadvance/pkg/utils"
)

// ErrInvalidHeader, ErrIoError and ErrBackupConflict are the fatal,
// construction-time error classes named for the cartridge builder; they
// never appear on the in-emulation hot path.
var (
	ErrInvalidHeader = fmt.Errorf("cartridge: invalid header")
	ErrIoError       = fmt.Errorf("cartridge: io error")
	ErrBackupConflict = fmt.Errorf("cartridge: save file size is inconsistent with the declared backup type")
)

// maxROMSize is the largest cartridge image the builder will accept.
const maxROMSize = 32 * 1024 * 1024

var backupMagic = []struct {
	needle []byte
	kind   BackupKind
	size   int // 0 when the magic string alone doesn't pin down a size
}{
	{[]byte("EEPROM_V"), BackupEeprom, 0},
	{[]byte("FLASH512_V"), BackupFlash, int(Flash64K)},
	{[]byte("FLASH1M_V"), BackupFlash, int(Flash128K)},
	{[]byte("FLASH_V"), BackupFlash, int(Flash64K)},
	{[]byte("SRAM_V"), BackupSram, sramSize},
}

// Option configures a Cartridge at construction time.
type Option func(*buildConfig)

type buildConfig struct {
	save        []byte
	forcedKind  BackupKind
	forced      bool
	hasGPIO     bool
	hasRTC      bool
	warnLogger  func(format string, args ...interface{})
}

// WithSave supplies the persisted backup bytes loaded from a save file.
func WithSave(save []byte) Option {
	return func(c *buildConfig) { c.save = save }
}

// WithForcedBackup overrides the heuristic backup-type detection.
func WithForcedBackup(kind BackupKind) Option {
	return func(c *buildConfig) {
		c.forcedKind = kind
		c.forced = true
	}
}

// WithGPIO attaches an empty GPIO register file to the cartridge.
func WithGPIO() Option {
	return func(c *buildConfig) { c.hasGPIO = true }
}

// WithRTC attaches a GPIO register file with an RTC wired to its data pins.
func WithRTC() Option {
	return func(c *buildConfig) {
		c.hasGPIO = true
		c.hasRTC = true
	}
}

// WithWarnLogger installs a callback invoked on Flash/EEPROM protocol
// violations and GPIO reads while the control register denies them.
func WithWarnLogger(fn func(format string, args ...interface{})) Option {
	return func(c *buildConfig) { c.warnLogger = fn }
}

// New builds a Cartridge from a raw ROM dump and the given options. It
// returns ErrInvalidHeader for a too-short or malformed ROM, and
// ErrBackupConflict when a save file's size cannot be reconciled with the
// backup type (forced or detected).
func New(rom []byte, opts ...Option) (*Cartridge, error) {
	if len(rom) > maxROMSize {
		rom = rom[:maxROMSize]
	}

	header, err := ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	cfg := buildConfig{forcedKind: BackupUndetected}
	for _, opt := range opts {
		opt(&cfg)
	}

	kind := cfg.forcedKind
	if !cfg.forced {
		kind = detectBackupKind(rom)
	}

	media, err := buildBackupMedia(kind, cfg.save)
	if err != nil {
		return nil, err
	}
	// with no save file to size it, a detected Flash chip takes its size
	// from the magic string that identified it.
	if !cfg.forced && kind == BackupFlash && len(cfg.save) == 0 {
		for _, m := range backupMagic {
			if bytes.Contains(rom, m.needle) {
				media.Flash = NewFlash(FlashSize(m.size), nil)
				break
			}
		}
	}
	if w, ok := media.warnable(); ok {
		w.SetWarnLogger(cfg.warnLogger)
	}

	var gpio *Gpio
	switch {
	case cfg.hasRTC:
		gpio = NewGpioWithRTC()
	case cfg.hasGPIO:
		gpio = NewGpio()
	}

	return &Cartridge{
		rom:        rom,
		Header:     header,
		Backup:     media,
		Gpio:       gpio,
		ROMHash:    utils.FastHash(rom),
		warnLogger: cfg.warnLogger,
	}, nil
}

// detectBackupKind scans rom for the backup-media magic strings GBA linkers
// embed, matching the first one found.
func detectBackupKind(rom []byte) BackupKind {
	for _, m := range backupMagic {
		if bytes.Contains(rom, m.needle) {
			return m.kind
		}
	}
	return BackupUndetected
}

// buildBackupMedia constructs the concrete backup variant for kind, sizing
// it from save when possible and validating save's length against kind when
// both are known.
func buildBackupMedia(kind BackupKind, save []byte) (BackupMedia, error) {
	switch kind {
	case BackupSram:
		if len(save) != 0 && len(save) != sramSize {
			return BackupMedia{}, fmt.Errorf("%w: SRAM expects %d bytes, got %d", ErrBackupConflict, sramSize, len(save))
		}
		return BackupMedia{Kind: BackupSram, Sram: NewSram(save)}, nil

	case BackupFlash:
		size := inferFlashSize(save)
		if len(save) != 0 && len(save) != int(size) {
			return BackupMedia{}, fmt.Errorf("%w: Flash expects %d bytes, got %d", ErrBackupConflict, size, len(save))
		}
		return BackupMedia{Kind: BackupFlash, Flash: NewFlash(size, save)}, nil

	case BackupEeprom:
		if len(save) != 0 && len(save) != 512 && len(save) != 8*1024 {
			return BackupMedia{}, fmt.Errorf("%w: EEPROM expects 512 or %d bytes, got %d", ErrBackupConflict, 8*1024, len(save))
		}
		width := inferEepromWidth(save)
		return BackupMedia{Kind: BackupEeprom, Eeprom: NewEeprom(width, save)}, nil

	default:
		if len(save) == 0 {
			return BackupMedia{Kind: BackupUndetected}, nil
		}
		return buildBackupMediaFromSaveSize(save)
	}
}

// buildBackupMediaFromSaveSize infers a backup type purely from a save
// file's length, per the size table in spec.md §6, used when no magic
// string was found in the ROM (some minimal homebrew omits it).
func buildBackupMediaFromSaveSize(save []byte) (BackupMedia, error) {
	switch len(save) {
	case 512:
		return BackupMedia{Kind: BackupEeprom, Eeprom: NewEeprom(EepromAddressWidthSmall, save)}, nil
	case 8 * 1024:
		// ambiguous between EEPROM-large and SRAM; SRAM is the far more
		// common 8 KiB save, so it wins absent a magic-string hint.
		return BackupMedia{Kind: BackupSram, Sram: NewSram(save)}, nil
	case 64 * 1024:
		return BackupMedia{Kind: BackupFlash, Flash: NewFlash(Flash64K, save)}, nil
	case 128 * 1024:
		return BackupMedia{Kind: BackupFlash, Flash: NewFlash(Flash128K, save)}, nil
	default:
		return BackupMedia{}, fmt.Errorf("%w: save file size %d does not match any known backup type", ErrBackupConflict, len(save))
	}
}

func inferFlashSize(save []byte) FlashSize {
	if len(save) == int(Flash128K) {
		return Flash128K
	}
	return Flash64K
}

func inferEepromWidth(save []byte) EepromAddressWidth {
	switch len(save) {
	case 8 * 1024:
		return EepromAddressWidthLarge
	case 512:
		return EepromAddressWidthSmall
	default:
		return EepromAddressWidthUnknown
	}
}

// warnable exposes SetWarnLogger for whichever backup variant supports it;
// Sram has no protocol to violate.
func (b BackupMedia) warnable() (interface{ SetWarnLogger(func(string, ...interface{})) }, bool) {
	switch b.Kind {
	case BackupFlash:
		return b.Flash, true
	case BackupEeprom:
		return b.Eeprom, true
	default:
		return nil, false
	}
}
