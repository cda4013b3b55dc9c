package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/q0jt/go-nvconfig/nvconfig"
	"github.com/q0jt/go-nvconfig/nvconfig/config"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Decode a record, a .hex file or a flash dump",
		Long: `Inspect decodes the record in file. A file of exactly 2048 bytes is a raw
record, a .hex file is searched at the record address of the target and any
other file is a flash dump starting at the flash origin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, layout, err := a.memoryLayout(cmd.Context(), "")
			if err != nil {
				return err
			}
			cs, err := nvconfig.ChecksumFor(layout)
			if err != nil {
				return err
			}
			name := args[0]
			a.log.Debug().Str("file", name).Str("target", string(t)).Msg("inspecting")
			st, err := inspectFile(name, layout, cs)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.settings.Output, st)
		},
	}
}

func inspectFile(name string, layout *config.MemoryLayout, cs *nvconfig.Checksum) (*structpb.Struct, error) {
	if strings.EqualFold(filepath.Ext(name), ".hex") {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		cfg, err := nvconfig.DecodeHex(bytes.NewReader(b), layout.ConfigAddr())
		if err != nil {
			return nil, err
		}
		return describe(cfg, cs)
	}
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	var off int64
	if fi.Size() != nvconfig.Size {
		off = int64(layout.ConfigOffset)
	}
	dump, err := nvconfig.MapDump(name, off)
	if err != nil {
		return nil, err
	}
	defer dump.Close()
	// copy out of the mapping before it is closed
	cfg := *dump.Config()
	return describe(&cfg, cs)
}

func describe(cfg *nvconfig.NVConfig, cs *nvconfig.Checksum) (*structpb.Struct, error) {
	st, err := cfg.Describe()
	if err != nil {
		return nil, err
	}
	st.Fields["checksum"] = structpb.NewStringValue(string(cs.Algorithm()))
	if err := cfg.Validate(cs); err != nil {
		st.Fields["trusted"] = structpb.NewBoolValue(false)
		st.Fields["error"] = structpb.NewStringValue(err.Error())
	} else {
		st.Fields["trusted"] = structpb.NewBoolValue(true)
	}
	return st, nil
}
