package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hirexpand/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the expansion cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory and what it holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := cacheForCommand(cmd)
		if err != nil {
			return err
		}
		st, err := cache.Stats()
		if err != nil {
			return fmt.Errorf("read cache: %w", err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%d entries, %d bytes, schema %d\n",
			cache.Dir(), st.Entries, st.Bytes, driver.CacheSchema())
		return err
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached expansion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := cacheForCommand(cmd)
		if err != nil {
			return err
		}
		st, err := cache.Stats()
		if err != nil {
			return fmt.Errorf("read cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries from %s\n", st.Entries, cache.Dir())
		return err
	},
}

func init() {
	cacheCmd.AddCommand(cacheDirCmd, cacheClearCmd)
}

// cacheForCommand opens the cache the expand command would use from the
// current directory: cache_dir of hirexpand.toml, else the user cache.
func cacheForCommand(cmd *cobra.Command) (*driver.DiskCache, error) {
	st, err := loadSettings(cmd, ".")
	if err != nil {
		return nil, err
	}
	return openCache(st)
}
