package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wikihtml"
	"github.com/fwojciec/wikihtml/convert"
	"github.com/fwojciec/wikihtml/etree"
	"github.com/fwojciec/wikihtml/fs"
	"github.com/fwojciec/wikihtml/goquery"
	"github.com/fwojciec/wikihtml/htmltomarkdown"
	wslog "github.com/fwojciec/wikihtml/slog"
	"github.com/fwojciec/wikihtml/wikitext"
)

// settings merges the command flags over the configuration file and the
// built-in defaults.
func (c *ConvertCmd) settings(cfg *wikihtml.Config) (*wikihtml.Config, error) {
	s := &wikihtml.Config{
		OutputDir:   firstNonEmpty(c.OutputDir, cfg.OutputDir, fs.DefaultOutputDir),
		Format:      firstNonEmpty(c.Format, cfg.Format, wikihtml.FormatHTML),
		Concurrency: c.Concurrency,
		Split:       c.Split || cfg.Split,
		Verbose:     c.Verbose || cfg.Verbose,
		Catalog:     firstNonEmpty(c.Catalog, cfg.Catalog),
		Namespaces:  cfg.Namespaces,
	}
	if s.Concurrency == 0 {
		s.Concurrency = cfg.Concurrency
	}
	if s.Concurrency == 0 {
		s.Concurrency = convert.DefaultConcurrency
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	s, err := c.settings(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	overrides, err := s.NamespaceOverrides()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	classifier := wikihtml.NewClassifier(overrides)

	var decoder wikihtml.DumpDecoder = etree.NewDumpDecoder()
	var parser wikihtml.Parser = wikitext.NewParser()
	if deps.Verbose {
		decoder = wslog.NewLoggingDumpDecoder(decoder, deps.Logger)
		parser = wslog.NewLoggingParser(parser, deps.Logger)
	}

	// Preview mode: list pages without writing anything
	if c.Preview {
		for _, file := range c.Files {
			dump, err := decodeFile(deps, decoder, file)
			if err != nil {
				return err
			}
			for _, page := range dump.Pages {
				fmt.Fprintf(deps.Stdout, "%s\t%d\t%s\n", classifier.Classify(page.Namespace), page.Namespace, page.Title)
			}
		}
		return nil
	}

	outputDir, err := fs.ConfirmDir(s.OutputDir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	var runID string
	if deps.Catalog != nil {
		run := &wikihtml.Run{
			Inputs:    strings.Join(c.Files, "\n"),
			OutputDir: outputDir,
			Format:    s.Format,
		}
		if err := deps.Catalog.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		runID = run.ID
		fmt.Fprintf(deps.Stdout, "Run %s\n", runID)
	}

	converter := &convert.Converter{
		Parser:      parser,
		Classifier:  classifier,
		Sections:    goquery.NewSectionExtractor(),
		Markdown:    htmltomarkdown.NewConverter(),
		Catalog:     deps.Catalog,
		Logger:      deps.Logger,
		Format:      s.Format,
		Concurrency: s.Concurrency,
	}

	progress := func(event convert.ProgressEvent) {
		if event.Type == convert.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", convert.TruncateTitle(event.Title, 60), errorText(event.Error))
		}
	}

	written := make(map[string]string)
	for _, file := range c.Files {
		dump, err := decodeFile(deps, decoder, file)
		if err != nil {
			return err
		}

		name := fs.SiteDirName(dump.SiteName)
		if prev, ok := written[name]; ok {
			err := wikihtml.Errorf(wikihtml.ECONFLICT, "%s and %s both write to %s", prev, file, name)
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		written[name] = file

		var store wikihtml.PageStore
		if s.Split {
			store = fs.NewFileStore(outputDir, name, dump.SiteName, s.Format)
		} else {
			store = fs.NewBundleStore(outputDir, name, dump.SiteName, s.Format)
		}
		if deps.Verbose {
			store = wslog.NewLoggingPageStore(store, deps.Logger)
		}

		result, err := converter.Convert(deps.Ctx, dump, store, runID, progress)
		if err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error converting %s: %s\n", file, errorText(err))
			return err
		}
		if err := store.Commit(); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error writing %s: %s\n", file, errorText(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "%s: %d rendered, %d excluded, %d skipped, %d failed (%s)\n",
			file, result.Rendered, result.Excluded, result.Skipped, result.Failed, convert.FormatBytes(result.Bytes))
		fmt.Fprintf(deps.Stdout, "  Output: %s\n", filepath.Join(outputDir, name))
	}

	return nil
}

func decodeFile(deps *Dependencies, decoder wikihtml.DumpDecoder, path string) (*wikihtml.Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return nil, err
	}
	defer f.Close()

	dump, err := decoder.Decode(deps.Ctx, f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error reading %s: %s\n", path, errorText(err))
		return nil, err
	}
	return dump, nil
}
