package nvconfig

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/marcinbor85/gohex"
)

// hexLineLength is the number of data bytes per Intel HEX record.
const hexLineLength = 16

func parseIntelHex(r io.Reader) (*gohex.Memory, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, err
	}
	return mem, nil
}

// hexToBinary flattens mem into a flash image starting at base. Gaps are
// filled with the erased value.
func hexToBinary(mem *gohex.Memory, base uint32) ([]byte, error) {
	var end uint64
	for _, segment := range mem.GetDataSegments() {
		addr := segment.Address
		if addr < base {
			return nil, fmt.Errorf("segment at 0x%08x is below flash base 0x%08x", addr, base)
		}
		e := uint64(addr) + uint64(len(segment.Data))
		if e > math.MaxUint32+1 {
			return nil, fmt.Errorf("segment at 0x%08x of %d bytes exceeds the 32 bit address space", addr, len(segment.Data))
		}
		end = max(end, e)
	}
	if end <= uint64(base) {
		return nil, errors.New("hex file contains no data")
	}
	return mem.ToBinary(base, uint32(end-uint64(base)), 0xFF), nil
}

// HexFileToBinary converts an Intel HEX file into a flash image starting at base.
func HexFileToBinary(r io.Reader, base uint32) ([]byte, error) {
	mem, err := parseIntelHex(r)
	if err != nil {
		return nil, err
	}
	return hexToBinary(mem, base)
}

// EncodeHex writes cfg as an Intel HEX file placing the record at addr.
func EncodeHex(w io.Writer, cfg *NVConfig, addr uint32) error {
	b, err := cfg.MarshalBinary()
	if err != nil {
		return err
	}
	mem := gohex.NewMemory()
	if err := mem.AddBinary(addr, b); err != nil {
		return err
	}
	return mem.DumpIntelHex(w, hexLineLength)
}

// DecodeHex reads the record stored at addr from an Intel HEX file.
func DecodeHex(r io.Reader, addr uint32) (*NVConfig, error) {
	mem, err := parseIntelHex(r)
	if err != nil {
		return nil, err
	}
	b := mem.ToBinary(addr, Size, 0xFF)
	if isBlank(b) {
		return nil, ErrBlankRecord
	}
	return Unmarshal(b)
}
