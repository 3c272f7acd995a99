package main

import (
	"fmt"

	"github.com/fwojciec/wikihtml"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	overrides, err := deps.Config.NamespaceOverrides()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	classifier := wikihtml.NewClassifier(overrides)

	for _, ns := range c.Namespaces {
		fmt.Fprintf(deps.Stdout, "%d\t%s\n", ns, classifier.Classify(ns))
	}
	return nil
}
