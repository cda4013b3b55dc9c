package nvconfig

import (
	"encoding/binary"
	"unsafe"
)

const (
	// FlashBase is the flash origin of the supported MCUs.
	FlashBase = 0x0800_0000
	// ConfigOffset is the distance of the record from FlashBase.
	// The bootloader owns everything below it.
	ConfigOffset = 10 * 1024
	// StartAddr is the absolute address of the record.
	StartAddr = FlashBase + ConfigOffset

	Size                 = 2048
	BoardConfigSize      = 256
	FirmwareSpecificSize = 256
	VHLBytecodeSize      = 1528

	// CurrentLayoutVersion tags records written by this package.
	CurrentLayoutVersion = 1

	// NodeIDUnassigned means the node may only listen and broadcast.
	NodeIDUnassigned = 255
	NodeIDMax        = 127

	crcSize             = 8
	boardOffset         = crcSize
	layoutVersionOffset = 79
)

// The record is the wire contract between independently built tools,
// bootloaders and firmwares. Any change in size or in the position of
// the version tag must break the build.
const (
	_ = unsafe.Sizeof(BoardConfig{}) - BoardConfigSize
	_ = BoardConfigSize - unsafe.Sizeof(BoardConfig{})
	_ = unsafe.Sizeof(NVConfig{}) - Size
	_ = Size - unsafe.Sizeof(NVConfig{})

	_ = unsafe.Offsetof(NVConfig{}.Board) - boardOffset
	_ = boardOffset - unsafe.Offsetof(NVConfig{}.Board)
	_ = unsafe.Offsetof(BoardConfig{}.LayoutVersion) - layoutVersionOffset
	_ = layoutVersionOffset - unsafe.Offsetof(BoardConfig{}.LayoutVersion)
)

// LE16 is a little-endian uint16 with alignment 1.
type LE16 [2]byte

func (v LE16) Get() uint16   { return binary.LittleEndian.Uint16(v[:]) }
func (v *LE16) Set(x uint16) { binary.LittleEndian.PutUint16(v[:], x) }

// LE32 is a little-endian uint32 with alignment 1.
type LE32 [4]byte

func (v LE32) Get() uint32   { return binary.LittleEndian.Uint32(v[:]) }
func (v *LE32) Set(x uint32) { binary.LittleEndian.PutUint32(v[:], x) }

// LE64 is a little-endian uint64 with alignment 1.
type LE64 [8]byte

func (v LE64) Get() uint64   { return binary.LittleEndian.Uint64(v[:]) }
func (v *LE64) Set(x uint64) { binary.LittleEndian.PutUint64(v[:], x) }

type Version struct {
	Major uint8
	Minor uint8
	Patch uint8
}

// BoardConfig describes the board and the firmware it runs.
// Text fields are null-terminated if the null fits, otherwise the whole
// array is the text.
type BoardConfig struct {
	// Name of the board, for example: vhrd.strain_gauge
	HwName [32]byte
	// Variant of the board, for example LMP or HX, empty when [0] == 0
	HwVariant [4]byte
	HwVersion Version

	// CRC of the bootloader region. When it does not match, only a
	// hardware reprogram can be trusted.
	BootloaderCRC LE64
	// Time to wait before booting the firmware
	BootloaderTimeoutMS LE16

	FwVersion Version
	// Variant of the firmware, empty when [0] == 0
	FwVariant [4]byte
	// Git hash or similar
	FwVCSID [8]byte
	FwSize  LE32
	FwCRC   LE64

	// Unknown mode or speed must be learned by listening on the bus.
	CANBusMode  CANBusMode
	CANBusSpeed CANBusSpeed
	// NodeIDUnassigned until the node is configured.
	UAVCANNodeID uint8

	LayoutVersion uint8
	// Globally unique identifier of the hardware unit, usually the MCU UID.
	HwUUID [16]byte

	Reserved [160]byte
}

// NVConfig is the non volatile config for bootloader, firmware and VHL
// bytecode storage.
type NVConfig struct {
	// CRC of all the bytes except the CRC itself
	ConfigCRC LE64
	Board     BoardConfig
	// Area for firmware configuration storage
	FirmwareSpecific [FirmwareSpecificSize]byte
	// VHL bytecode describing API of the board
	VHLBytecode [VHLBytecodeSize]byte
}
