package bootstrap_test

import (
	"context"
	"time"

	"github.com/fwojciec/zerosource"
)

// noDelays is used for fast unit tests.
var noDelays = []time.Duration{0, 0, 0}

const validReadme = `# Inventory

## Description
Tracks stock.

## Functionality
- Add items

## Technical Implementation
Go and SQLite.
`

func testContext() context.Context {
	return context.Background()
}

func validDocument() *zerosource.Document {
	return &zerosource.Document{Location: "README.md", Content: validReadme}
}
