package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/q0jt/go-nvconfig/nvconfig"
	"github.com/q0jt/go-nvconfig/nvconfig/config"
	"github.com/q0jt/go-nvconfig/nvconfig/config/target"
)

type app struct {
	v          *viper.Viper
	configFile string
	settings   *Settings
	log        zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: newViper(), log: zerolog.Nop()}
	rootCmd := &cobra.Command{
		Use:   "nvconfig",
		Short: "Provision and inspect NV config records",
		Long: `nvconfig builds, inspects and verifies the 2048 byte NV config record
that the bootloader and the firmware read from flash.

Commands:
  build     Build a sealed record from a YAML manifest
  inspect   Decode a record, a .hex file or a flash dump
  verify    Check the config, bootloader and firmware CRCs of a flash image`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is ./nvconfig.yaml)")
	flags.StringP("output", "o", "text", "output format (text, json, yaml)")
	flags.StringP("target", "t", "", "MCU target selecting the memory layout")
	flags.String("layouts", "", "pkl module with memory layouts")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("output", flags.Lookup("output"))
	_ = a.v.BindPFlag("target", flags.Lookup("target"))
	_ = a.v.BindPFlag("layouts", flags.Lookup("layouts"))
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newBuildCmd(a),
		newInspectCmd(a),
		newVerifyCmd(a),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	s, err := loadSettings(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.settings = s
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	a.log = newLogger(cmd.ErrOrStderr(), level)
	return nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}).With().
		Timestamp().
		Logger().Level(level)
}

// memoryLayout resolves the layout of name, falling back to the configured
// target when name is empty.
func (a *app) memoryLayout(ctx context.Context, name string) (*config.MemoryConfig, target.Target, *config.MemoryLayout, error) {
	mem, err := nvconfig.LoadMemoryConfig(ctx, a.settings.Layouts)
	if err != nil {
		return nil, "", nil, err
	}
	if name == "" {
		name = a.settings.Target
	}
	var t target.Target
	if err := t.UnmarshalBinary([]byte(name)); err != nil {
		return nil, "", nil, err
	}
	layout, err := mem.Layout(t)
	if err != nil {
		return nil, "", nil, err
	}
	return mem, t, layout, nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
