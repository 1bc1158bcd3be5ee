// ABOUTME: Config CLI command
// ABOUTME: Shows the effective settings or persists new ones to the XDG config file
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sethvargo/go-envconfig"

	"github.com/harperreed/connecthub/config"
)

// ConfigCommand prints the effective configuration. Any flag given is written
// to the config file at path instead.
func ConfigCommand(ctx context.Context, effective *config.Config, path string, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	apiURL := fs.String("api-url", "", "Backend API root")
	cacheTTL := fs.Duration("cache-ttl", -1, "Interaction cache TTL (set CONNECTHUB_CACHE_TTL=0 to disable)")
	logLevel := fs.String("log-level", "", "trace, debug, info, warn, or error")
	_ = fs.Parse(args)

	if *apiURL == "" && *cacheTTL < 0 && *logLevel == "" {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "config file\t%s\n", path)
		_, _ = fmt.Fprintf(w, "api url\t%s\n", effective.APIURL)
		_, _ = fmt.Fprintf(w, "cache ttl\t%s\n", effective.CacheTTL)
		_, _ = fmt.Fprintf(w, "log level\t%s\n", effective.LogLevel)
		_, _ = fmt.Fprintf(w, "server addr\t%s\n", effective.Server.Addr)
		_, _ = fmt.Fprintf(w, "database\t%s\n", effective.Server.DBPath)
		_ = w.Flush()
		return nil
	}

	if *cacheTTL == 0 {
		return fmt.Errorf("--cache-ttl 0 cannot be saved: the config file falls back to the default; set CONNECTHUB_CACHE_TTL=0 to disable the cache")
	}

	// start from the file alone so environment overrides are not persisted
	stored, err := config.LoadFrom(ctx, path, envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		return err
	}
	if *apiURL != "" {
		stored.APIURL = *apiURL
	}
	if *cacheTTL >= 0 {
		stored.CacheTTL = *cacheTTL
	}
	if *logLevel != "" {
		stored.LogLevel = *logLevel
	}

	if err := stored.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Config saved: %s\n", path)
	return nil
}
