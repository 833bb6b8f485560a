//go:build tools
// +build tools

package tools

import (
	_ "github.com/cockroachdb/crlfmt"
	_ "github.com/jstemmer/go-junit-report"
)
