package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/q0jt/go-nvconfig/nvconfig"
)

func newBuildCmd(a *app) *cobra.Command {
	var manifestPath, out string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a sealed record from a YAML manifest",
		Long: `Build reads a YAML manifest, computes the bootloader and firmware CRCs
of the referenced files and writes the sealed record. A .hex output places
the record at its flash address, any other extension gets the raw 2048 bytes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(manifestPath)
			if err != nil {
				return err
			}
			defer f.Close()
			m, err := nvconfig.LoadManifest(f)
			if err != nil {
				return err
			}
			name := m.Target
			if cmd.Flags().Changed("target") {
				name = a.settings.Target
			}
			_, t, layout, err := a.memoryLayout(cmd.Context(), name)
			if err != nil {
				return err
			}
			cfg, err := m.Build(os.DirFS(filepath.Dir(manifestPath)), layout)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if strings.EqualFold(filepath.Ext(out), ".hex") {
				err = nvconfig.EncodeHex(&buf, cfg, layout.ConfigAddr())
			} else {
				var b []byte
				b, err = cfg.MarshalBinary()
				buf.Write(b)
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return err
			}
			a.log.Info().
				Str("target", string(t)).
				Str("out", out).
				Uint64("config_crc", cfg.ConfigCRC.Get()).
				Msg("record written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "YAML manifest describing the record")
	cmd.Flags().StringVarP(&out, "out", "O", "", "output file (.bin or .hex)")
	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
