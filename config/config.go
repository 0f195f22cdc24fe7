// Package config supplies CLI defaults from an optional ccstress.yaml in
// the working directory, CCSTRESS_* environment variables, and a local
// .env file. Flags always override what Load returns.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults holds the configurable baseline settings.
type Defaults struct {
	Compiler  string
	Runs      int
	OutputDir string
	Quiet     bool
}

// Load reads the defaults. A missing config file or .env is not an error;
// built-in values apply.
func Load() Defaults {
	// Best effort; most setups have no .env.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("ccstress")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CCSTRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("compiler", "gcc")
	v.SetDefault("runs", 5)
	v.SetDefault("output", "output")
	v.SetDefault("quiet", false)

	_ = v.ReadInConfig()

	return Defaults{
		Compiler:  v.GetString("compiler"),
		Runs:      v.GetInt("runs"),
		OutputDir: v.GetString("output"),
		Quiet:     v.GetBool("quiet"),
	}
}
