// ABOUTME: Entry point for the ConnectHub TUI, CLI, MCP server, and dev backend
// ABOUTME: Routes to subcommands based on arguments
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/harperreed/connecthub/cache"
	"github.com/harperreed/connecthub/cli"
	"github.com/harperreed/connecthub/client"
	"github.com/harperreed/connecthub/config"
	"github.com/harperreed/connecthub/logger"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	apiURL := flag.String("api-url", "", "Backend API root (overrides CONNECTHUB_API_URL)")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("connecthub version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	if err := run(ctx, cfg, args[0], args[1:]); err != nil {
		stop()
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, command string, args []string) error {
	appLog, closeLog, err := initLogger(cfg, command)
	if err != nil {
		return err
	}
	defer closeLog()

	switch command {
	case "serve":
		return cli.ServeCommand(ctx, cfg.Server, appLog, args)

	case "config":
		return cli.ConfigCommand(ctx, cfg, config.Path(), os.Stdout, args)

	case "tui", "mcp", "crm", "viz":
		c, closeClient, err := newClient(cfg, appLog)
		if err != nil {
			return err
		}
		defer closeClient()

		switch command {
		case "tui":
			return cli.TUICommand(ctx, c)
		case "mcp":
			return cli.MCPCommand(ctx, c, appLog, version)
		case "crm":
			return runCRM(ctx, c, args)
		default:
			return runViz(ctx, c, args)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	return nil
}

func runCRM(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		fmt.Println("Error: crm requires a subcommand")
		printUsage()
		os.Exit(1)
	}

	crmCommand := args[0]
	crmArgs := args[1:]
	out := os.Stdout
	confirmer := cli.NewTerminalConfirmer(os.Stdin, os.Stderr)

	switch crmCommand {
	// Contact commands
	case "list-contacts":
		return cli.ListContactsCommand(ctx, c, out, crmArgs)
	case "add-contact":
		return cli.AddContactCommand(ctx, c, out, crmArgs)
	case "delete-contact":
		return cli.DeleteContactCommand(ctx, c, out, confirmer, crmArgs)

	// Interaction commands
	case "list-interactions":
		return cli.ListInteractionsCommand(ctx, c, out, time.Now(), crmArgs)
	case "log-interaction":
		return cli.LogInteractionCommand(ctx, c, out, time.Now(), crmArgs)
	case "delete-interaction":
		return cli.DeleteInteractionCommand(ctx, c, out, confirmer, crmArgs)

	// Engagement commands
	case "followups":
		return cli.FollowupsCommand(ctx, c, out, time.Now(), crmArgs)
	case "dashboard":
		return cli.DashboardCommand(ctx, c, out, time.Now(), crmArgs)

	default:
		fmt.Printf("Unknown crm command: %s\n\n", crmCommand)
		printUsage()
		os.Exit(1)
	}
	return nil
}

func runViz(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 || args[0] != "graph" {
		fmt.Println("Error: viz requires a subcommand (graph)")
		printUsage()
		os.Exit(1)
	}
	return cli.VizGraphCommand(ctx, c, os.Stdout, time.Now(), args[1:])
}

// initLogger sends the TUI's logs to a file so they never draw over the
// screen. Everything else logs to stderr; stdout belongs to command output
// and, for mcp, to the protocol.
func initLogger(cfg *config.Config, command string) (zerolog.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closeLog := func() {}

	if command == "tui" {
		f, err := logger.OpenLogFile("tui.log")
		if err != nil {
			return zerolog.Nop(), closeLog, err
		}
		out = f
		closeLog = func() { _ = f.Close() }
	}

	l := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty && command != "tui",
		Output: out,
	})
	return l, closeLog, nil
}

func newClient(cfg *config.Config, appLog zerolog.Logger) (*client.Client, func(), error) {
	opts := []client.Option{client.WithLogger(appLog)}
	closeCache := func() {}

	if cfg.CacheTTL > 0 {
		store, err := cache.Open(cfg.CacheTTL)
		if err != nil {
			return nil, closeCache, err
		}
		opts = append(opts, client.WithCache(store))
		closeCache = func() { _ = store.Close() }
	}

	return client.New(cfg.APIURL, opts...), closeCache, nil
}

func printUsage() {
	fmt.Printf(`connecthub v%s - contact engagement tracker

USAGE:
  connecthub [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --api-url <url>        Backend API root (default: %s)

COMMANDS:
  tui                    Interactive dashboard
  crm                    Contact and interaction commands
  viz                    Visualization commands
  mcp                    Start MCP server on stdio
  serve                  Run the local development backend
  config                 Show or update settings

CRM COMMANDS:
  connecthub crm list-contacts          List contacts
    --query <text>                        Search name, company, role, or tags

  connecthub crm add-contact            Add a new contact
    --name <name>                         Contact name (required)
    --email <email>                       Email address (required)
    --company <company>                   Company name
    --role <role>                         Job title or role
    --tags <a,b>                          Comma separated tags

  connecthub crm delete-contact [--yes] <id>
                                        Delete a contact and its interactions

  connecthub crm list-interactions <contact-id>
                                        Show a contact's interaction history

  connecthub crm log-interaction        Log an interaction
    --contact <id>                        Contact ID (required)
    --type <type>                         meeting, call, email, or message (default: meeting)
    --date <YYYY-MM-DD>                   Date (default: today)
    --notes <text>                        What was discussed (required)
    --duration <text>                     Duration, e.g. 30min

  connecthub crm delete-interaction [--yes] <id>
                                        Delete an interaction

  connecthub crm followups              Contacts not reached in over 30 days
    --limit <n>                           Max results (default: all)

  connecthub crm dashboard              Engagement overview
    --query <text>                        Restrict to matching contacts

VIZ COMMANDS:
  connecthub viz graph                  Engagement graph as DOT
    --output <file>                       Output file (default: stdout)
    --query <text>                        Restrict to matching contacts

SERVE:
  connecthub serve                      Serve the REST API over SQLite
    --addr <addr>                         Listen address (default: :5000)
    --db-path <path>                      Database path

CONFIG:
  connecthub config                     Show effective settings
    --api-url <url>                       Save the backend API root
    --cache-ttl <duration>                Save the interaction cache TTL
    --log-level <level>                   Save the log level

ENVIRONMENT:
  CONNECTHUB_API_URL, CONNECTHUB_CACHE_TTL, CONNECTHUB_LOG_LEVEL, CONNECTHUB_LOG_PRETTY,
  CONNECTHUB_SERVER_ADDR, CONNECTHUB_DB_PATH, CONNECTHUB_ALLOWED_ORIGINS
`, version, config.DefaultAPIURL)
}
