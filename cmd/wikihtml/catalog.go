package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wikihtml"
)

// Run executes the catalog command.
func (c *CatalogCmd) Run(deps *Dependencies) error {
	if deps.Catalog == nil {
		err := wikihtml.Errorf(wikihtml.EINVALID, "catalog database required: use --catalog or set catalog in the config file")
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikihtml.ErrorMessage(err))
		return err
	}

	if c.Runs {
		runs, err := deps.Catalog.FindRuns(deps.Ctx, wikihtml.RunFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(deps.Stdout, "No runs found. Use 'wikihtml convert --catalog' to record one.")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.ID, r.CreatedAt.Format(time.DateTime), r.Format, r.OutputDir)
		}
		return nil
	}

	runID := c.RunID
	if runID == "" {
		runs, err := deps.Catalog.FindRuns(deps.Ctx, wikihtml.RunFilter{Limit: 1})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(deps.Stdout, "No runs found. Use 'wikihtml convert --catalog' to record one.")
			return nil
		}
		runID = runs[0].ID
	}

	filter := wikihtml.PageFilter{RunID: &runID}
	if c.Status != "" {
		status := wikihtml.PageStatus(c.Status)
		switch status {
		case wikihtml.StatusRendered, wikihtml.StatusExcluded, wikihtml.StatusSkipped, wikihtml.StatusFailed:
		default:
			err := wikihtml.Errorf(wikihtml.EINVALID, "unknown page status %q", c.Status)
			fmt.Fprintf(deps.Stderr, "error: %s\n", wikihtml.ErrorMessage(err))
			return err
		}
		filter.Status = &status
	}

	recs, err := deps.Catalog.FindPages(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	for _, rec := range recs {
		fmt.Fprintf(deps.Stdout, "%s\t%s\t%d\t%s", rec.Status, rec.Class, rec.Namespace, rec.Title)
		switch {
		case rec.Error != "":
			fmt.Fprintf(deps.Stdout, "\t%s", rec.Error)
		case rec.FileName != "":
			fmt.Fprintf(deps.Stdout, "\t%s", rec.FileName)
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
