// Package exporter renders a transition index into textual graph
// formats. The exporters read the index through its ordered read
// contract only and never mutate it.
package exporter

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/amp-labs/transit"
)

// GenerateDOT renders the index in the GraphViz DOT language with
// default options.
func GenerateDOT(index *transit.TransitionIndex) string {
	return GenerateDOTWithOptions(index, DefaultOptions())
}

// GenerateDOTWithOptions renders the index in the GraphViz DOT language.
// States appear in insertion order; final states without a color
// property are filled with the configured final color.
func GenerateDOTWithOptions(index *transit.TransitionIndex, opts Options) string {
	var sb strings.Builder

	sb.WriteString("digraph " + opts.GraphName + " {\n")
	sb.WriteString(fmt.Sprintf("\trankdir=\"%s\";\n", opts.RankDir))

	for state, transitions := range index.Seq() {
		appendNode(&sb, state, opts)

		for _, transition := range transitions {
			sb.WriteString(fmt.Sprintf("\t%s -> %s [label=\"%s\"];\n",
				transition.Origin().Name(), transition.Target().Name(), transition.Message()))
		}
	}

	sb.WriteString("}\n")

	return sb.String()
}

// appendNode writes the attribute list of a single state, if any.
func appendNode(sb *strings.Builder, state *transit.State, opts Options) {
	var attrs []string

	if state.IsFinal() && !state.HasProperty("color") {
		attrs = append(attrs, fmt.Sprintf("style=\"filled\", color=\"%s\"", opts.FinalColor))
	}

	if opts.ShowProperties {
		properties := state.Properties()

		names := make([]string, 0, len(properties))
		for name := range properties {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			attrs = append(attrs, fmt.Sprintf("%s=\"%s\"", name, properties[name]))
		}
	}

	if len(attrs) == 0 {
		return
	}

	sb.WriteString(fmt.Sprintf("\t%s [%s];\n", state.Name(), strings.Join(attrs, ", ")))
}

// ExportDOTToFile writes the DOT rendition to the given file, wrapping
// any I/O failure in an ExportError.
func ExportDOTToFile(index *transit.TransitionIndex, path string, opts Options) error {
	err := os.WriteFile(path, []byte(GenerateDOTWithOptions(index, opts)), 0o600)
	if err != nil {
		return &transit.ExportError{Path: path, Err: err}
	}

	return nil
}
