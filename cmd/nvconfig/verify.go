package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/q0jt/go-nvconfig/nvconfig"
)

var errVerification = errors.New("image verification failed")

func status(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <image>",
		Short: "Check the config, bootloader and firmware CRCs of a flash image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, err := nvconfig.LoadMemoryConfig(cmd.Context(), a.settings.Layouts)
			if err != nil {
				return err
			}
			img, err := nvconfig.OpenImage(args[0], mem, nvconfig.WithLogger(a.log))
			if err != nil {
				return err
			}
			rep := img.Verify()
			compatible := make([]any, 0)
			for _, t := range img.Compatible() {
				compatible = append(compatible, string(t))
			}
			fields := map[string]any{
				"target":     string(rep.Target),
				"compatible": compatible,
				"config":     status(rep.Config),
				"bootloader": status(rep.Bootloader),
				"firmware":   status(rep.Firmware),
			}
			st, err := structpb.NewStruct(fields)
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), a.settings.Output, st); err != nil {
				return err
			}
			if !rep.OK() {
				return fmt.Errorf("%s: %w", args[0], errVerification)
			}
			return nil
		},
	}
}
