package exporter

// RankDir controls the direction of the exported graph.
type RankDir string

const (
	// LeftToRight lays the graph out horizontally.
	LeftToRight RankDir = "LR"
	// TopToBottom lays the graph out vertically.
	TopToBottom RankDir = "TB"
)

// DefaultFinalColor is the fill color applied to final states that
// declare no color of their own.
const DefaultFinalColor = "#C2B3FF"

// Options configures the exported output.
type Options struct {
	// GraphName names the DOT digraph.
	GraphName string

	// RankDir controls graph direction.
	RankDir RankDir

	// FinalColor fills final states without an explicit color property.
	FinalColor string

	// ShowProperties renders state properties as node attributes.
	ShowProperties bool
}

// DefaultOptions returns sensible defaults for export.
func DefaultOptions() Options {
	return Options{
		GraphName:      "G",
		RankDir:        LeftToRight,
		FinalColor:     DefaultFinalColor,
		ShowProperties: true,
	}
}

// WithGraphName sets the graph name.
func (o Options) WithGraphName(name string) Options {
	o.GraphName = name

	return o
}

// WithRankDir sets the graph direction.
func (o Options) WithRankDir(dir RankDir) Options {
	o.RankDir = dir

	return o
}

// WithFinalColor sets the fill color for final states.
func (o Options) WithFinalColor(color string) Options {
	o.FinalColor = color

	return o
}

// WithShowProperties enables or disables property rendering.
func (o Options) WithShowProperties(show bool) Options {
	o.ShowProperties = show

	return o
}
