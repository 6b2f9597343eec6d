package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hirexpand/internal/config"
)

// settings: итоговые параметры запуска: значения из hirexpand.toml,
// перекрытые явно заданными флагами.
type settings struct {
	cfg            *config.File
	maxDiagnostics int
	jobs           int
	cache          bool
	cacheDir       string
	traceOutput    string
	traceLevel     string
	traceMode      string
	quiet          bool
	timings        bool
}

func loadSettings(cmd *cobra.Command, input string) (*settings, error) {
	root := cmd.Root().PersistentFlags()

	cfgPath, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.File
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else if input != "" {
		cfg, _, err = config.Discover(input)
	}
	if err != nil {
		return nil, err
	}

	st := &settings{cfg: cfg}
	if cfg != nil {
		st.maxDiagnostics = cfg.Config.Expand.MaxDiagnostics
		st.jobs = cfg.Config.Expand.Jobs
		st.cache = cfg.Config.Expand.Cache
		st.cacheDir = cfg.CacheDir()
		st.traceOutput = cfg.Config.Trace.Output
		st.traceLevel = cfg.Config.Trace.Level
		st.traceMode = cfg.Config.Trace.Mode
	}

	if st.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if st.timings, err = root.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if err := overrideInt(cmd, "max-diagnostics", &st.maxDiagnostics); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "trace", &st.traceOutput); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "trace-level", &st.traceLevel); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "trace-mode", &st.traceMode); err != nil {
		return nil, err
	}
	if cmd.Flags().Lookup("jobs") != nil {
		if err := overrideInt(cmd, "jobs", &st.jobs); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Lookup("cache") != nil && cmd.Flags().Changed("cache") {
		if st.cache, err = cmd.Flags().GetBool("cache"); err != nil {
			return nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	return st, nil
}

// overrideInt берёт значение флага, если он задан явно или в конфиге пусто.
func overrideInt(cmd *cobra.Command, name string, dst *int) error {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return fmt.Errorf("unknown flag %q", name)
	}
	if !flag.Changed && *dst != 0 {
		return nil
	}
	var v int
	if _, err := fmt.Sscan(flag.Value.String(), &v); err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func overrideString(cmd *cobra.Command, name string, dst *string) error {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return fmt.Errorf("unknown flag %q", name)
	}
	if !flag.Changed && *dst != "" {
		return nil
	}
	*dst = flag.Value.String()
	return nil
}
