package exporter

import (
	"fmt"
	"strings"

	"github.com/amp-labs/transit"
)

// GenerateMermaid renders the index as a Mermaid state diagram with
// default options.
func GenerateMermaid(index *transit.TransitionIndex) string {
	return GenerateMermaidWithOptions(index, DefaultOptions())
}

// GenerateMermaidWithOptions renders the index as a Mermaid state
// diagram. The first state of the index is marked as the entry point
// and final states are rendered as terminal.
func GenerateMermaidWithOptions(index *transit.TransitionIndex, opts Options) string {
	var sb strings.Builder

	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString("    direction " + string(opts.RankDir) + "\n")

	if first, ok := index.First(); ok {
		sb.WriteString("    [*] --> " + first.Name() + "\n")
	}

	for state, transitions := range index.Seq() {
		if state.IsFinal() {
			sb.WriteString("    " + state.Name() + " --> [*]\n")
		}

		for _, transition := range transitions {
			label := transitionLabel(transition.Message())
			if label == "" {
				sb.WriteString(fmt.Sprintf("    %s --> %s\n",
					transition.Origin().Name(), transition.Target().Name()))
			} else {
				sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n",
					transition.Origin().Name(), transition.Target().Name(), label))
			}
		}
	}

	return sb.String()
}

// transitionLabel renders the message as an edge label. Unlabeled
// transitions get no label at all.
func transitionLabel(message *transit.Message) string {
	if message.Kind() == transit.KindEmpty {
		return ""
	}

	return message.String()
}
