package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hirexpand/internal/builtin"
	"hirexpand/internal/driver"
	"hirexpand/internal/version"
)

// versionFields selects the optional lines of `hirexpand version`.
type versionFields struct {
	hash, message, date, full bool
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show hirexpand build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show all build metadata, builtins and cache schema")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	var fields versionFields
	for name, dst := range map[string]*bool{"hash": &fields.hash, "message": &fields.message, "date": &fields.date, "full": &fields.full} {
		if *dst, err = cmd.Flags().GetBool(name); err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if fields.full {
		fields.hash, fields.message, fields.date = true, true, true
	}

	info := version.Current()
	info.Builtins = builtin.Names()
	info.CacheSchema = driver.CacheSchema()

	switch strings.ToLower(format) {
	case "json":
		return renderVersionJSON(cmd.OutOrStdout(), selectVersionFields(info, fields))
	case "pretty":
		switch rootColor, _ := cmd.Root().PersistentFlags().GetString("color"); rootColor {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		}
		return renderVersionPretty(cmd.OutOrStdout(), selectVersionFields(info, fields))
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

// selectVersionFields blanks what was not asked for; asked-for but unknown
// values read "unknown".
func selectVersionFields(info version.Info, f versionFields) version.Info {
	pick := func(on bool, v string) string {
		switch {
		case !on:
			return ""
		case v == "":
			return "unknown"
		}
		return v
	}
	info.GitCommit = pick(f.hash, info.GitCommit)
	info.GitMessage = pick(f.message, info.GitMessage)
	info.BuildDate = pick(f.date, info.BuildDate)
	if !f.full {
		info.GoVersion, info.Builtins, info.CacheSchema = "", nil, 0
	}
	return info
}

func renderVersionPretty(out io.Writer, info version.Info) error {
	lines := []string{fmt.Sprintf("%s %s", info.Tool, version.Colored(info.Version))}
	for _, kv := range [][2]string{
		{"commit", info.GitCommit},
		{"message", info.GitMessage},
		{"built", info.BuildDate},
		{"go", info.GoVersion},
	} {
		if kv[1] != "" {
			lines = append(lines, fmt.Sprintf("%-8s %s", kv[0]+":", kv[1]))
		}
	}
	if len(info.Builtins) > 0 {
		lines = append(lines, fmt.Sprintf("%-8s %s!", "macros:", strings.Join(info.Builtins, "!, ")))
	}
	if info.CacheSchema != 0 {
		lines = append(lines, fmt.Sprintf("%-8s %d", "cache:", info.CacheSchema))
	}
	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

func renderVersionJSON(out io.Writer, info version.Info) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
