package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings holds the tool configuration.
type Settings struct {
	// pkl module with the memory layouts, built-in layouts when empty
	Layouts  string `mapstructure:"layouts"`
	Target   string `mapstructure:"target"`
	Output   string `mapstructure:"output"`
	LogLevel string `mapstructure:"log_level"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("nvconfig")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.nvconfig")
	v.AddConfigPath("/etc/nvconfig")

	v.SetDefault("layouts", "")
	v.SetDefault("target", "STM32G474")
	v.SetDefault("output", "text")
	v.SetDefault("log_level", "warn")

	v.SetEnvPrefix("NVCONFIG")
	v.AutomaticEnv()
	return v
}

// loadSettings reads the config file, an explicit file when given. A missing
// default file is not an error.
func loadSettings(v *viper.Viper, file string) (*Settings, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	switch s.Output {
	case "text", "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown output format %q", s.Output)
	}
	return &s, nil
}
