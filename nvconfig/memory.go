package nvconfig

import (
	"context"
	"fmt"

	"github.com/q0jt/go-nvconfig/nvconfig/config"
	"github.com/q0jt/go-nvconfig/nvconfig/config/target"
)

// LoadMemoryConfig evaluates the pkl module at path. An empty path selects
// DefaultMemoryConfig.
func LoadMemoryConfig(ctx context.Context, path string) (*config.MemoryConfig, error) {
	if path == "" {
		return DefaultMemoryConfig(), nil
	}
	mem, err := config.LoadFromPath(ctx, path)
	if err != nil {
		return nil, err
	}
	for _, t := range mem.Targets() {
		if err := mem.Layouts[t].Check(); err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
	}
	return mem, nil
}

// DefaultMemoryConfig returns the layouts used when no pkl module is given.
// Every target keeps the record right after a 10 KiB bootloader except the
// STM32H743, whose first flash sector is 128 KiB.
func DefaultMemoryConfig() *config.MemoryConfig {
	small := func() *config.MemoryLayout {
		return &config.MemoryLayout{
			FlashBase:      FlashBase,
			BootloaderSize: ConfigOffset,
			ConfigOffset:   ConfigOffset,
			AppOffset:      ConfigOffset + Size,
			Checksum:       DefaultAlgorithm,
		}
	}
	return &config.MemoryConfig{
		Layouts: map[target.Target]*config.MemoryLayout{
			target.STM32F103: small(),
			target.STM32G431: small(),
			target.STM32G474: small(),
			target.STM32L432: small(),
			target.STM32H743: {
				FlashBase:      FlashBase,
				BootloaderSize: 0x2_0000,
				ConfigOffset:   0x2_0000,
				AppOffset:      0x4_0000,
				Checksum:       DefaultAlgorithm,
			},
		},
	}
}

// findTargetsByAddr returns the targets other than origin that keep the
// record at the same absolute address.
func findTargetsByAddr(mem *config.MemoryConfig, origin target.Target, addr uint32) []target.Target {
	var targets []target.Target
	for _, t := range mem.Targets() {
		if t == origin {
			continue
		}
		if mem.Layouts[t].ConfigAddr() == addr {
			targets = append(targets, t)
		}
	}
	return targets
}

// ChecksumFor returns the checksum configured for layout.
func ChecksumFor(layout *config.MemoryLayout) (*Checksum, error) {
	return NewChecksum(layout.Checksum)
}
