package main

import (
	"fmt"

	"github.com/fwojciec/zerosource"
)

// Run executes the title command.
func (c *TitleCmd) Run(deps *Dependencies) error {
	doc, err := deps.Source.Load(deps.Ctx, c.Location)
	if err != nil {
		return report(deps.Stderr, err)
	}

	fmt.Fprintln(deps.Stdout, zerosource.ProjectTitle(doc))
	return nil
}
