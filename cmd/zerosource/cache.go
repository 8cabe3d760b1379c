package main

import "fmt"

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	n, err := deps.Analyses.DeleteAnalyses(deps.Ctx)
	if err != nil {
		return report(deps.Stderr, err)
	}

	fmt.Fprintf(deps.Stdout, "Removed %d cached analyses.\n", n)
	return nil
}
