package nvconfig

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/q0jt/go-nvconfig/nvconfig/config"
)

// Manifest describes a record to provision. File names are resolved
// against the file system handed to Build.
type Manifest struct {
	Target string        `yaml:"target"`
	Board  BoardManifest `yaml:"board"`

	Bootloader       string `yaml:"bootloader"`
	Firmware         string `yaml:"firmware"`
	FirmwareSpecific string `yaml:"firmware_specific"`
	VHLBytecode      string `yaml:"vhl_bytecode"`
}

type BoardManifest struct {
	HwName              string `yaml:"hw_name"`
	HwVariant           string `yaml:"hw_variant"`
	HwVersion           string `yaml:"hw_version"`
	HwUUID              string `yaml:"hw_uuid"`
	BootloaderTimeoutMS uint16 `yaml:"bootloader_timeout_ms"`

	FwVersion string `yaml:"fw_version"`
	FwVariant string `yaml:"fw_variant"`
	FwVCSID   string `yaml:"fw_vcs_id"`

	CANBusMode  string `yaml:"canbus_mode"`
	CANBusSpeed string `yaml:"canbus_speed"`
	// nil leaves the node unassigned
	UAVCANNodeID *uint8 `yaml:"uavcan_node_id"`
}

// LoadManifest decodes a YAML manifest. Unknown keys are rejected.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &m, nil
}

// Build creates a sealed record for layout.
func (m *Manifest) Build(fsys fs.FS, layout *config.MemoryLayout) (*NVConfig, error) {
	cs, err := ChecksumFor(layout)
	if err != nil {
		return nil, err
	}
	var cfg NVConfig
	if err := m.Board.fill(&cfg.Board); err != nil {
		return nil, err
	}
	if m.Bootloader != "" {
		b, err := fs.ReadFile(fsys, m.Bootloader)
		if err != nil {
			return nil, err
		}
		if len(b) > int(layout.BootloaderSize) {
			return nil, fmt.Errorf("bootloader is %d bytes, region holds %d", len(b), layout.BootloaderSize)
		}
		// the CRC covers the whole region as flashed
		region := bytes.Repeat([]byte{0xff}, int(layout.BootloaderSize))
		copy(region, b)
		cfg.Board.BootloaderCRC.Set(cs.Sum(region))
	}
	if m.Firmware != "" {
		b, err := fs.ReadFile(fsys, m.Firmware)
		if err != nil {
			return nil, err
		}
		cfg.Board.FwSize.Set(uint32(len(b)))
		cfg.Board.FwCRC.Set(cs.Sum(b))
	}
	if err := readBlob(fsys, m.FirmwareSpecific, "firmware_specific", cfg.FirmwareSpecific[:]); err != nil {
		return nil, err
	}
	if err := readBlob(fsys, m.VHLBytecode, "vhl_bytecode", cfg.VHLBytecode[:]); err != nil {
		return nil, err
	}
	if err := cfg.Seal(cs); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readBlob(fsys fs.FS, name, field string, dst []byte) error {
	if name == "" {
		return nil
	}
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	if len(b) > len(dst) {
		return &FieldError{Field: field, Err: fmt.Errorf("%w: %d bytes, field holds %d", ErrInvalidSize, len(b), len(dst))}
	}
	copy(dst, b)
	return nil
}

func (m *BoardManifest) fill(b *BoardConfig) error {
	texts := []struct {
		field string
		dst   []byte
		s     string
	}{
		{"hw_name", b.HwName[:], m.HwName},
		{"hw_variant", b.HwVariant[:], m.HwVariant},
		{"fw_variant", b.FwVariant[:], m.FwVariant},
		{"fw_vcs_id", b.FwVCSID[:], m.FwVCSID},
	}
	for _, t := range texts {
		if err := SetText(t.dst, t.s); err != nil {
			return &FieldError{Field: t.field, Err: err}
		}
	}
	var err error
	if b.HwVersion, err = ParseVersion(m.HwVersion); err != nil {
		return &FieldError{Field: "hw_version", Err: err}
	}
	if b.FwVersion, err = ParseVersion(m.FwVersion); err != nil {
		return &FieldError{Field: "fw_version", Err: err}
	}
	if b.CANBusMode, err = ParseCANBusMode(m.CANBusMode); err != nil {
		return &FieldError{Field: "canbus_mode", Err: err}
	}
	if b.CANBusSpeed, err = ParseCANBusSpeed(m.CANBusSpeed); err != nil {
		return &FieldError{Field: "canbus_speed", Err: err}
	}
	if m.HwUUID != "" {
		id, err := uuid.Parse(m.HwUUID)
		if err != nil {
			return &FieldError{Field: "hw_uuid", Err: err}
		}
		b.SetUUID(id)
	}
	b.UAVCANNodeID = NodeIDUnassigned
	if id := m.UAVCANNodeID; id != nil {
		if *id > NodeIDMax && *id != NodeIDUnassigned {
			return &FieldError{Field: "uavcan_node_id", Err: fmt.Errorf("%w: %d", ErrInvalidField, *id)}
		}
		b.UAVCANNodeID = *id
	}
	b.BootloaderTimeoutMS.Set(m.BootloaderTimeoutMS)
	b.LayoutVersion = CurrentLayoutVersion
	return nil
}
