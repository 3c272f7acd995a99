package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikihtml"
	"github.com/fwojciec/wikihtml/sqlite"
	"github.com/fwojciec/wikihtml/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration file read when --config is not given. A missing file
	// at this path is not an error. Set before calling Run().
	ConfigPath string

	// SQLite database holding the render catalog, opened on demand.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: yaml.DefaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikihtml"),
		kong.Description("Convert MediaWiki XML dumps to HTML."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wikihtml --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	// Load configuration file
	cfg, err := m.loadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorText(err))
		return err
	}
	deps.Config = cfg

	// Set up logging
	level := slog.LevelInfo
	if cmd == "convert" && (cli.Convert.Verbose || cfg.Verbose) {
		level = slog.LevelDebug
		deps.Verbose = true
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open the catalog when a command needs it
	var dbPath string
	switch cmd {
	case "convert":
		dbPath = firstNonEmpty(cli.Convert.Catalog, cfg.Catalog)
	case "catalog":
		dbPath = firstNonEmpty(cli.Catalog.Catalog, cfg.Catalog)
	}
	if dbPath != "" {
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open catalog at %q: %w", dbPath, err)
		}
		defer m.Close()
		deps.Catalog = sqlite.NewCatalogService(m.DB)
	}

	return kongCtx.Run(deps)
}

// loadConfig reads the configuration file. An explicit path must exist; the
// default one is optional.
func (m *Main) loadConfig(explicit string) (*wikihtml.Config, error) {
	path := explicit
	if path == "" {
		path = m.ConfigPath
	}
	if path == "" {
		return &wikihtml.Config{}, nil
	}

	cfg, err := yaml.LoadConfig(path)
	if errors.Is(err, yaml.ErrConfigNotFound) && explicit == "" {
		return &wikihtml.Config{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// errorText returns the message of an application error, or the full error
// text of anything else.
func errorText(err error) string {
	if wikihtml.ErrorCode(err) == wikihtml.EINTERNAL {
		return err.Error()
	}
	return wikihtml.ErrorMessage(err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
