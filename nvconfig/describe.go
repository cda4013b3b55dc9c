package nvconfig

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

func hexUint64(v uint64) string {
	return fmt.Sprintf("0x%016x", v)
}

// printable replaces invalid UTF-8, as found in erased or garbled records.
func printable(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// Fields returns the decoded board fields keyed by their wire names.
// CRCs are rendered as hex strings since JSON numbers cannot hold them.
func (b *BoardConfig) Fields() map[string]any {
	fields := map[string]any{
		"hw_name":               printable(b.Name()),
		"hw_variant":            printable(b.Variant()),
		"hw_version":            b.HwVersion.String(),
		"bootloader_crc":        hexUint64(b.BootloaderCRC.Get()),
		"bootloader_timeout_ms": int64(b.BootloaderTimeoutMS.Get()),
		"fw_version":            b.FwVersion.String(),
		"fw_variant":            printable(b.FwVariantName()),
		"fw_vcs_id":             printable(b.VCSID()),
		"fw_size":               int64(b.FwSize.Get()),
		"fw_crc":                hexUint64(b.FwCRC.Get()),
		"canbus_mode":           b.CANBusMode.String(),
		"canbus_speed":          b.CANBusSpeed.String(),
		"uavcan_node_id":        int64(b.UAVCANNodeID),
		"node_assigned":         b.NodeAssigned(),
		"must_learn_bus":        b.MustLearnBus(),
		"layout_version":        int64(b.LayoutVersion),
	}
	if id := b.UUID(); id != uuid.Nil {
		fields["hw_uuid"] = id.String()
	}
	return fields
}

// Fields returns the decoded record. Opaque regions are hex encoded with
// trailing zero bytes removed.
func (c *NVConfig) Fields() map[string]any {
	return map[string]any{
		"config_crc":        hexUint64(c.ConfigCRC.Get()),
		"board_config":      c.Board.Fields(),
		"firmware_specific": hex.EncodeToString(trimZero(c.FirmwareSpecific[:])),
		"vhl_bytecode":      hex.EncodeToString(trimZero(c.VHLBytecode[:])),
	}
}

// Describe returns the decoded record as a protobuf Struct.
func (c *NVConfig) Describe() (*structpb.Struct, error) {
	return structpb.NewStruct(c.Fields())
}

func trimZero(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return b[:i]
}
