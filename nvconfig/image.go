package nvconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/q0jt/go-nvconfig/nvconfig/config"
	"github.com/q0jt/go-nvconfig/nvconfig/config/target"
)

var (
	ErrNoRecord   = errors.New("no NV config found")
	ErrUntrusted  = errors.New("NV config is not trusted, reprogram over hardware")
	ErrNoFirmware = errors.New("no firmware recorded")
)

type options struct {
	log zerolog.Logger
}

// Option configures how images are opened.
type Option func(*options)

// WithLogger sets the logger used while searching an image.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func newOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Image is a flash image holding a bootloader, an NV config and a firmware.
type Image struct {
	r      *bytes.Reader
	Config *NVConfig
	target target.Target
	mem    *config.MemoryConfig
	layout *config.MemoryLayout
	cs     *Checksum
	// configErr is set when the only record found failed validation.
	configErr error
	log       zerolog.Logger
}

// OpenImage reads a flash image from a .hex file or a raw dump starting at
// the flash origin.
func OpenImage(name string, mem *config.MemoryConfig, opts ...Option) (*Image, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(name), ".hex") {
		return NewHexImage(bytes.NewReader(b), mem, opts...)
	}
	return NewImage(b, mem, opts...)
}

// NewImage searches a raw flash image for a record.
func NewImage(b []byte, mem *config.MemoryConfig, opts ...Option) (*Image, error) {
	r := bytes.NewReader(b)
	source := func(*config.MemoryLayout) (*bytes.Reader, error) {
		return r, nil
	}
	return locate(source, mem, newOptions(opts))
}

// NewHexImage searches an Intel HEX image for a record.
func NewHexImage(r io.Reader, mem *config.MemoryConfig, opts ...Option) (*Image, error) {
	hm, err := parseIntelHex(r)
	if err != nil {
		return nil, err
	}
	source := func(layout *config.MemoryLayout) (*bytes.Reader, error) {
		b, err := hexToBinary(hm, layout.FlashBase)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(b), nil
	}
	return locate(source, mem, newOptions(opts))
}

// locate tries every target layout and keeps the first record that
// validates. When none does, the first invalid record is returned so its
// failure can be reported.
func locate(source func(*config.MemoryLayout) (*bytes.Reader, error), mem *config.MemoryConfig, o options) (*Image, error) {
	var fallback *Image
	for _, t := range mem.Targets() {
		layout := mem.Layouts[t]
		log := o.log.With().Str("target", string(t)).Logger()
		r, err := source(layout)
		if err != nil {
			return nil, err
		}
		cs, err := ChecksumFor(layout)
		if err != nil {
			return nil, err
		}
		cfg, err := ReadRecord(r, int64(layout.ConfigOffset))
		if err != nil {
			if errors.Is(err, ErrBlankRecord) || errors.Is(err, io.EOF) {
				log.Debug().Err(err).Msg("no record at config offset")
				continue
			}
			return nil, err
		}
		img := &Image{r: r, Config: cfg, target: t, mem: mem, layout: layout, cs: cs, log: log}
		if err := cfg.Validate(cs); err != nil {
			log.Debug().Err(err).Msg("record rejected")
			if fallback == nil {
				img.configErr = err
				fallback = img
			}
			continue
		}
		log.Info().Uint32("addr", layout.ConfigAddr()).Msg("record found")
		return img, nil
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, ErrNoRecord
}

func (f *Image) Target() target.Target {
	return f.target
}

func (f *Image) Layout() *config.MemoryLayout {
	return f.layout
}

func (f *Image) Checksum() *Checksum {
	return f.cs
}

// Compatible returns the other targets that keep the record at the same
// address and therefore may also boot this image.
func (f *Image) Compatible() []target.Target {
	return findTargetsByAddr(f.mem, f.target, f.layout.ConfigAddr())
}

// ConfigErr returns why the record failed validation, nil if it is trusted.
func (f *Image) ConfigErr() error {
	return f.configErr
}

// ExtractFirmware returns the firmware described by the record after
// checking its CRC.
func (f *Image) ExtractFirmware() ([]byte, error) {
	if f.configErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrUntrusted, f.configErr)
	}
	size := f.Config.Board.FwSize.Get()
	if size == 0 {
		return nil, ErrNoFirmware
	}
	if avail := f.r.Size() - int64(f.layout.AppOffset); int64(size) > avail {
		return nil, fmt.Errorf("firmware: fw_size %d exceeds the %d bytes of the app area: %w", size, max(avail, 0), io.ErrUnexpectedEOF)
	}
	b := make([]byte, size)
	if _, err := f.r.ReadAt(b, int64(f.layout.AppOffset)); err != nil {
		return nil, fmt.Errorf("firmware: %w", err)
	}
	if crc := f.cs.Sum(b); crc != f.Config.Board.FwCRC.Get() {
		return nil, &FieldError{Field: "fw_crc", Err: ErrInvalidCRC}
	}
	return b, nil
}

// ExtractBootloader returns the bootloader region after checking its CRC.
func (f *Image) ExtractBootloader() ([]byte, error) {
	if f.configErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrUntrusted, f.configErr)
	}
	b := make([]byte, f.layout.BootloaderSize)
	if _, err := f.r.ReadAt(b, 0); err != nil {
		return nil, fmt.Errorf("bootloader: %w", err)
	}
	if crc := f.cs.Sum(b); crc != f.Config.Board.BootloaderCRC.Get() {
		return nil, &FieldError{Field: "bootloader_crc", Err: ErrInvalidCRC}
	}
	return b, nil
}

// Report is the outcome of checking every CRC in an image.
type Report struct {
	Target     target.Target
	Config     error
	Bootloader error
	Firmware   error
}

// OK reports whether every region verified.
func (r *Report) OK() bool {
	return r.Config == nil && r.Bootloader == nil && r.Firmware == nil
}

// Verify checks the record, then the bootloader and firmware it describes.
// Their CRCs are meaningless when the record itself is not trusted.
func (f *Image) Verify() *Report {
	rep := &Report{Target: f.target, Config: f.configErr}
	if rep.Config != nil {
		rep.Bootloader = ErrUntrusted
		rep.Firmware = ErrUntrusted
		f.log.Warn().Err(rep.Config).Msg("NV config rejected")
		return rep
	}
	_, rep.Bootloader = f.ExtractBootloader()
	_, rep.Firmware = f.ExtractFirmware()
	if !rep.OK() {
		f.log.Warn().AnErr("bootloader", rep.Bootloader).AnErr("firmware", rep.Firmware).Msg("image verification failed")
	}
	return rep
}
