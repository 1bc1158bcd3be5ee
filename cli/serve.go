// ABOUTME: Development backend subcommand
// ABOUTME: Serves the contact and interaction REST API over SQLite
package cli

import (
	"context"
	"flag"

	"github.com/rs/zerolog"

	"github.com/harperreed/connecthub/config"
	"github.com/harperreed/connecthub/db"
	"github.com/harperreed/connecthub/server"
)

// ServeCommand runs the dev backend until ctx is cancelled.
func ServeCommand(ctx context.Context, cfg config.ServerConfig, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Addr, "Listen address")
	dbPath := fs.String("db-path", cfg.DBPath, "Database path (default: $XDG_DATA_HOME/connecthub/connecthub.db)")
	_ = fs.Parse(args)

	path := *dbPath
	if path == "" {
		path = config.DefaultDBPath()
	}

	database, err := db.OpenDatabase(path)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	log.Info().Str("db_path", path).Msg("database ready")
	return server.New(database, log, cfg.AllowedOrigins).ListenAndServe(ctx, *addr)
}
