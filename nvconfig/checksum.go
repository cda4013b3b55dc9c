package nvconfig

import (
	"fmt"
	"hash/crc64"

	"github.com/q0jt/go-nvconfig/nvconfig/config/algorithm"
)

// DefaultAlgorithm is used when a memory layout does not name one.
// It is CRC-64/XZ: reflected ECMA-182 polynomial, init and xorout all ones.
const DefaultAlgorithm = algorithm.CRC64ECMA

// Checksum computes the CRC agreed between the provisioning tool, the
// bootloader and the firmware.
type Checksum struct {
	alg   algorithm.Algorithm
	table *crc64.Table
}

func NewChecksum(alg algorithm.Algorithm) (*Checksum, error) {
	switch alg {
	case "":
		alg = DefaultAlgorithm
		fallthrough
	case algorithm.CRC64ECMA:
		return &Checksum{alg: alg, table: crc64.MakeTable(crc64.ECMA)}, nil
	case algorithm.CRC64ISO:
		return &Checksum{alg: alg, table: crc64.MakeTable(crc64.ISO)}, nil
	}
	return nil, fmt.Errorf("unsupported checksum algorithm %q", alg)
}

func (c *Checksum) Algorithm() algorithm.Algorithm {
	return c.alg
}

func (c *Checksum) Sum(b []byte) uint64 {
	return crc64.Checksum(b, c.table)
}

// sumRecord computes the CRC of every byte but the CRC itself.
func (c *Checksum) sumRecord(cfg *NVConfig) (uint64, error) {
	b, err := cfg.MarshalBinary()
	if err != nil {
		return 0, err
	}
	// skip crc64 data
	return c.Sum(b[crcSize:]), nil
}

// Seal stores the CRC of the record in ConfigCRC.
func (c *NVConfig) Seal(cs *Checksum) error {
	crc, err := cs.sumRecord(c)
	if err != nil {
		return err
	}
	c.ConfigCRC.Set(crc)
	return nil
}

// Verify checks ConfigCRC against the record contents.
func (c *NVConfig) Verify(cs *Checksum) error {
	crc, err := cs.sumRecord(c)
	if err != nil {
		return err
	}
	if got := c.ConfigCRC.Get(); got != crc {
		return fmt.Errorf("%w: stored 0x%016x, computed 0x%016x", ErrInvalidCRC, got, crc)
	}
	return nil
}

// Validate performs the checks a bootloader does before trusting any
// other field of the record.
func (c *NVConfig) Validate(cs *Checksum) error {
	b, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	if isBlank(b) {
		return ErrBlankRecord
	}
	if err := c.Verify(cs); err != nil {
		return err
	}
	if v := c.Board.LayoutVersion; v != CurrentLayoutVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedLayout, v)
	}
	return c.Board.validate()
}
