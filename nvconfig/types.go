package nvconfig

import (
	"fmt"
	"strconv"
	"strings"
)

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses "major.minor.patch". Missing components are zero.
func ParseVersion(s string) (Version, error) {
	var v Version
	if s == "" {
		return v, nil
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return v, fmt.Errorf("invalid version %q", s)
	}
	dst := []*uint8{&v.Major, &v.Minor, &v.Patch}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
		*dst[i] = uint8(n)
	}
	return v, nil
}

type CANBusSpeed uint8

const (
	CANBusSpeedUnknown CANBusSpeed = iota
	CANBusSpeed125K
	CANBusSpeed250K
	CANBusSpeed500K
	CANBusSpeed1M
)

var canBusSpeedNames = map[CANBusSpeed]string{
	CANBusSpeedUnknown: "unknown",
	CANBusSpeed125K:    "125kbps",
	CANBusSpeed250K:    "250kbps",
	CANBusSpeed500K:    "500kbps",
	CANBusSpeed1M:      "1mbps",
}

func (s CANBusSpeed) String() string {
	if name, ok := canBusSpeedNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CANBusSpeed(%d)", uint8(s))
}

// Known reports whether the speed is set to a defined value.
func (s CANBusSpeed) Known() bool {
	return s > CANBusSpeedUnknown && s <= CANBusSpeed1M
}

func (s CANBusSpeed) valid() bool {
	return s <= CANBusSpeed1M
}

// BitRate returns the nominal bit rate in bit/s, 0 when unknown.
func (s CANBusSpeed) BitRate() int {
	switch s {
	case CANBusSpeed125K:
		return 125_000
	case CANBusSpeed250K:
		return 250_000
	case CANBusSpeed500K:
		return 500_000
	case CANBusSpeed1M:
		return 1_000_000
	}
	return 0
}

func ParseCANBusSpeed(s string) (CANBusSpeed, error) {
	if s == "" {
		return CANBusSpeedUnknown, nil
	}
	for speed, name := range canBusSpeedNames {
		if strings.EqualFold(s, name) {
			return speed, nil
		}
	}
	return CANBusSpeedUnknown, fmt.Errorf("illegal: %q is not a valid CAN bus speed", s)
}

type CANBusMode uint8

const (
	CANBusModeUnknown CANBusMode = iota
	CANBusModeClassical
	CANBusModeFD
)

var canBusModeNames = map[CANBusMode]string{
	CANBusModeUnknown:   "unknown",
	CANBusModeClassical: "classical",
	CANBusModeFD:        "fd",
}

func (m CANBusMode) String() string {
	if name, ok := canBusModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CANBusMode(%d)", uint8(m))
}

func (m CANBusMode) Known() bool {
	return m == CANBusModeClassical || m == CANBusModeFD
}

func (m CANBusMode) valid() bool {
	return m <= CANBusModeFD
}

func ParseCANBusMode(s string) (CANBusMode, error) {
	if s == "" {
		return CANBusModeUnknown, nil
	}
	for mode, name := range canBusModeNames {
		if strings.EqualFold(s, name) {
			return mode, nil
		}
	}
	return CANBusModeUnknown, fmt.Errorf("illegal: %q is not a valid CAN bus mode", s)
}
