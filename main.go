// Advisor analyzes Azure Pipelines YAML definitions.
//
// Advisor parses a pipeline definition, computes structural metrics and prints
// recommendations based on a fixed set of heuristics. It can also serve the
// analyzer over HTTP with `advisor serve`.
package main

import (
	"github.com/opnlabs/advisor/cmd/advisor"
)

func main() {
	advisor.Execute()
}
