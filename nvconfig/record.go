package nvconfig

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Unmarshal decodes a record from exactly Size bytes.
func Unmarshal(b []byte) (*NVConfig, error) {
	var cfg NVConfig
	if err := cfg.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *NVConfig) UnmarshalBinary(b []byte) error {
	if len(b) != Size {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSize, len(b), Size)
	}
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, c)
}

func (c *NVConfig) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, Size))
	if err := binary.Write(buf, binary.LittleEndian, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *BoardConfig) UnmarshalBinary(data []byte) error {
	if len(data) != BoardConfigSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSize, len(data), BoardConfigSize)
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, b)
}

func (b *BoardConfig) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, BoardConfigSize))
	if err := binary.Write(buf, binary.LittleEndian, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadRecord reads the record stored at off. An erased area is reported as
// ErrBlankRecord.
func ReadRecord(r io.ReaderAt, off int64) (*NVConfig, error) {
	out := make([]byte, Size)
	if _, err := r.ReadAt(out, off); err != nil {
		return nil, err
	}
	if isBlank(out) {
		return nil, ErrBlankRecord
	}
	return Unmarshal(out)
}

func isBlank(b []byte) bool {
	return bytes.Equal(b, bytes.Repeat([]byte{0xff}, len(b)))
}
