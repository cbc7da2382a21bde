package cmd

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/onepux/core/schema"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. ONEPUX_FORMAT.
const envPrefix = "ONEPUX"

// Config is the resolved set of options for one conversion.
type Config struct {
	OutputDir string
	Format    string
	Verbose   bool
	// TempDir is the parent directory for scratch space (env only).
	TempDir string
}

// loadConfig merges command-line flags, ONEPUX_* environment variables
// and defaults, in that order of precedence.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", schema.NameICloud)
	v.SetDefault("temp-dir", "")

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	return &Config{
		OutputDir: v.GetString("output-dir"),
		Format:    v.GetString("format"),
		Verbose:   v.GetBool("verbose"),
		TempDir:   v.GetString("temp-dir"),
	}, nil
}
