// Package printer renders a transition index as an ASCII table, one row
// per transition, for console inspection and debugging.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/amp-labs/transit"
)

// StateFormatter renders a state cell.
type StateFormatter func(state *transit.State) string

// MessageFormatter renders a message cell.
type MessageFormatter func(message *transit.Message) string

// Options configures the table output.
type Options struct {
	// SourceHeader, MessageHeader and TargetHeader title the columns.
	SourceHeader  string
	MessageHeader string
	TargetHeader  string

	// StateFormatter renders state cells. Defaults to the state name.
	StateFormatter StateFormatter

	// MessageFormatter renders message cells. Defaults to the message's
	// string form.
	MessageFormatter MessageFormatter
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		SourceHeader:  "Source",
		MessageHeader: "Message",
		TargetHeader:  "Target",
		StateFormatter: func(state *transit.State) string {
			return state.Name()
		},
		MessageFormatter: func(message *transit.Message) string {
			return message.String()
		},
	}
}

// Print renders the index with default options.
func Print(index *transit.TransitionIndex) string {
	return PrintWithOptions(index, DefaultOptions())
}

// PrintWithOptions renders the index as an ASCII table. Rows follow the
// index ordering: state insertion order, then per-state message
// insertion order.
func PrintWithOptions(index *transit.TransitionIndex, opts Options) string {
	opts = opts.fillDefaults()

	rows := make([][3]string, 0, index.Size())
	for _, transition := range index.AllTransitions() {
		rows = append(rows, [3]string{
			opts.StateFormatter(transition.Origin()),
			opts.MessageFormatter(transition.Message()),
			opts.StateFormatter(transition.Target()),
		})
	}

	widths := [3]int{len(opts.SourceHeader), len(opts.MessageHeader), len(opts.TargetHeader)}

	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder

	separator := rowSeparator(widths)
	sb.WriteString(separator)
	writeRow(&sb, [3]string{opts.SourceHeader, opts.MessageHeader, opts.TargetHeader}, widths)
	sb.WriteString(separator)

	for _, row := range rows {
		writeRow(&sb, row, widths)
		sb.WriteString(separator)
	}

	return sb.String()
}

// Fprint writes the rendered table to w.
func Fprint(w io.Writer, index *transit.TransitionIndex, opts Options) error {
	_, err := io.WriteString(w, PrintWithOptions(index, opts))

	return err
}

func (o Options) fillDefaults() Options {
	defaults := DefaultOptions()

	if o.SourceHeader == "" {
		o.SourceHeader = defaults.SourceHeader
	}

	if o.MessageHeader == "" {
		o.MessageHeader = defaults.MessageHeader
	}

	if o.TargetHeader == "" {
		o.TargetHeader = defaults.TargetHeader
	}

	if o.StateFormatter == nil {
		o.StateFormatter = defaults.StateFormatter
	}

	if o.MessageFormatter == nil {
		o.MessageFormatter = defaults.MessageFormatter
	}

	return o
}

func rowSeparator(widths [3]int) string {
	var sb strings.Builder

	for _, width := range widths {
		sb.WriteString("+" + strings.Repeat("-", width+2))
	}

	sb.WriteString("+\n")

	return sb.String()
}

func writeRow(sb *strings.Builder, cells [3]string, widths [3]int) {
	for i, cell := range cells {
		sb.WriteString(fmt.Sprintf("| %-*s ", widths[i], cell))
	}

	sb.WriteString("|\n")
}
