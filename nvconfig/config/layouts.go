package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/q0jt/go-nvconfig/nvconfig/config/target"
)

// recordSize mirrors nvconfig.Size, which cannot be imported from here.
const recordSize = 2048

var ErrUnknownTarget = errors.New("target is not registered")

// Targets returns the registered targets in a stable order.
func (m *MemoryConfig) Targets() []target.Target {
	targets := make([]target.Target, 0, len(m.Layouts))
	for t := range m.Layouts {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}

func (m *MemoryConfig) Layout(t target.Target) (*MemoryLayout, error) {
	layout, ok := m.Layouts[t]
	if !ok || layout == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, t)
	}
	return layout, nil
}

// ConfigAddr returns the absolute address of the NV config.
func (l *MemoryLayout) ConfigAddr() uint32 {
	return l.FlashBase + l.ConfigOffset
}

// Check rejects layouts where the bootloader, the NV config and the
// application overlap.
func (l *MemoryLayout) Check() error {
	if l.BootloaderSize > l.ConfigOffset {
		return fmt.Errorf("bootloader region (0x%x bytes) overlaps config at 0x%x", l.BootloaderSize, l.ConfigOffset)
	}
	if uint64(l.ConfigOffset)+recordSize > uint64(l.AppOffset) {
		return fmt.Errorf("config at 0x%x overlaps application at 0x%x", l.ConfigOffset, l.AppOffset)
	}
	return nil
}
