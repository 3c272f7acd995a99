package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wikihtml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *wikihtml.Config
	Logger  *slog.Logger
	Verbose bool
	Catalog wikihtml.CatalogService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `type:"path" help:"Configuration file (default: $XDG_CONFIG_HOME/wikihtml/config.yaml)"`

	Convert  ConvertCmd  `cmd:"" help:"Convert MediaWiki XML dumps to HTML"`
	Catalog  CatalogCmd  `cmd:"" help:"List pages recorded in a render catalog"`
	Classify ClassifyCmd `cmd:"" help:"Print the class of namespace codes"`
}

// ConvertCmd is the "convert" subcommand. Unset flags fall back to the
// configuration file, then to built-in defaults.
type ConvertCmd struct {
	Files       []string `arg:"" help:"Dump files to convert"`
	Verbose     bool     `short:"v" help:"Log excluded pages and parse warnings"`
	OutputDir   string   `short:"o" name:"output-dir" type:"path" help:"Output directory (default: ./wikihtml-output)"`
	Format      string   `short:"f" help:"Output format: html or markdown (default: html)"`
	Split       bool     `short:"s" help:"Write one file per page plus an index"`
	Concurrency int      `short:"c" help:"Pages rendered in parallel (default: 4)"`
	Catalog     string   `type:"path" help:"Record page outcomes in this SQLite database"`
	Preview     bool     `short:"p" help:"List pages and their classes without writing anything"`
}

// CatalogCmd is the "catalog" subcommand.
type CatalogCmd struct {
	Catalog string `type:"path" help:"SQLite database written by convert --catalog"`
	RunID   string `name:"run" help:"Run ID (default: most recent run)"`
	Status  string `help:"Only show pages with this status: rendered, excluded, skipped or failed"`
	Runs    bool   `help:"List runs instead of pages"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	Namespaces []int `arg:"" help:"Namespace codes"`
}
