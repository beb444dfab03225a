package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/pageseg/model"
)

// LineAlignment represents the horizontal alignment of a line
type LineAlignment int

const (
	AlignUnknown LineAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustified
)

// String returns a string representation of the alignment
func (a LineAlignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustified:
		return "justified"
	default:
		return "unknown"
	}
}

// Line represents a single line of text runs
type Line struct {
	// BBox is the bounding box of the line
	BBox model.BBox

	// Items are the text runs that make up this line (sorted left to right)
	Items []*model.Item

	// Index is the line's position (0-based, top to bottom)
	Index int

	// Baseline is the mean baseline of the runs
	Baseline float64

	// Height is the line height (max run height)
	Height float64

	// SpacingBefore is the baseline distance from the previous line (0 for first line)
	SpacingBefore float64

	// SpacingAfter is the baseline distance to the next line (0 for last line)
	SpacingAfter float64

	// Alignment is the detected horizontal alignment within the measured bounds
	Alignment LineAlignment
}

// Text joins the runs of the line with single spaces
func (l *Line) Text() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		if it.Text != "" {
			parts = append(parts, it.Text)
		}
	}
	return strings.Join(parts, " ")
}

// LineLayout represents the detected line structure of a region or block
type LineLayout struct {
	// Lines are the detected text lines (sorted top to bottom)
	Lines []Line

	// Bounds is the rectangle alignment was measured against
	Bounds model.BBox

	// AverageLineSpacing is the average baseline distance between lines
	AverageLineSpacing float64

	// MedianLineSpacing is the median baseline distance between lines
	MedianLineSpacing float64

	// AverageLineHeight is the average line height
	AverageLineHeight float64

	// Config is the configuration used for detection
	Config LineConfig
}

// LineConfig holds configuration for line detection
type LineConfig struct {
	// LineHeightTolerance is the baseline distance, as a fraction of run
	// height, within which runs share a line (default: 0.5)
	LineHeightTolerance float64

	// AlignmentTolerance is the edge distance treated as flush, in points (default: 10)
	AlignmentTolerance float64

	// JustificationThreshold is the minimum width ratio for a line flush on
	// both sides to count as justified (default: 0.9)
	JustificationThreshold float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		LineHeightTolerance:    0.5,
		AlignmentTolerance:     10.0,
		JustificationThreshold: 0.9,
	}
}

// LineDetector groups text runs into lines
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// Detect groups the text runs among items into lines. Alignment is measured
// against bounds; pass the zero box to measure against the runs themselves.
func (d *LineDetector) Detect(items []*model.Item, bounds model.BBox) *LineLayout {
	var runs []*model.Item
	for _, it := range items {
		if it.IsText() {
			runs = append(runs, it)
		}
	}
	if bounds.IsEmpty() {
		bounds = model.ItemsBounds(runs)
	}
	layout := &LineLayout{Bounds: bounds, Config: d.config}
	if len(runs) == 0 {
		return layout
	}

	layout.Lines = d.buildLines(d.groupIntoLines(runs))
	d.calculateSpacing(layout)
	d.detectAlignment(layout.Lines, bounds)
	return layout
}

// groupIntoLines walks the runs in baseline order; a run joins the current
// line when its baseline is within tolerance of the line's mean baseline.
func (d *LineDetector) groupIntoLines(runs []*model.Item) [][]*model.Item {
	sorted := make([]*model.Item, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Baseline < sorted[j].Baseline
	})

	var lines [][]*model.Item
	var current []*model.Item
	var sum float64
	for _, it := range sorted {
		if len(current) > 0 {
			mean := sum / float64(len(current))
			tol := d.config.LineHeightTolerance * math.Min(current[len(current)-1].BBox.Height, it.BBox.Height)
			if it.Baseline-mean > tol {
				lines = append(lines, current)
				current, sum = nil, 0
			}
		}
		current = append(current, it)
		sum += it.Baseline
	}
	return append(lines, current)
}

func (d *LineDetector) buildLines(groups [][]*model.Item) []Line {
	lines := make([]Line, len(groups))
	for i, g := range groups {
		sort.SliceStable(g, func(a, b int) bool {
			return g[a].BBox.X < g[b].BBox.X
		})
		var baseline, height float64
		for _, it := range g {
			baseline += it.Baseline
			height = math.Max(height, it.BBox.Height)
		}
		lines[i] = Line{
			BBox:     model.ItemsBounds(g),
			Items:    g,
			Index:    i,
			Baseline: baseline / float64(len(g)),
			Height:   height,
		}
	}
	return lines
}

func (d *LineDetector) calculateSpacing(layout *LineLayout) {
	lines := layout.Lines
	var heights float64
	for _, l := range lines {
		heights += l.Height
	}
	layout.AverageLineHeight = heights / float64(len(lines))
	if len(lines) < 2 {
		return
	}

	gaps := make([]float64, 0, len(lines)-1)
	var total float64
	for i := 1; i < len(lines); i++ {
		gap := lines[i].Baseline - lines[i-1].Baseline
		lines[i].SpacingBefore = gap
		lines[i-1].SpacingAfter = gap
		gaps = append(gaps, gap)
		total += gap
	}
	layout.AverageLineSpacing = total / float64(len(gaps))
	layout.MedianLineSpacing = median(gaps)
}

// detectAlignment classifies each line by which edges of bounds it is
// flush with.
func (d *LineDetector) detectAlignment(lines []Line, bounds model.BBox) {
	tol := d.config.AlignmentTolerance
	for i := range lines {
		b := lines[i].BBox
		left := b.Left()-bounds.Left() <= tol
		right := bounds.Right()-b.Right() <= tol
		centre := math.Abs(b.Center().X-bounds.Center().X) <= tol
		switch {
		case left && right && b.Width >= d.config.JustificationThreshold*bounds.Width:
			lines[i].Alignment = AlignJustified
		case left:
			lines[i].Alignment = AlignLeft
		case right:
			lines[i].Alignment = AlignRight
		case centre:
			lines[i].Alignment = AlignCenter
		default:
			lines[i].Alignment = AlignUnknown
		}
	}
}

// LineCount returns the number of detected lines
func (l *LineLayout) LineCount() int {
	if l == nil {
		return 0
	}
	return len(l.Lines)
}

// GetLine returns a specific line by index
func (l *LineLayout) GetLine(index int) *Line {
	if l == nil || index < 0 || index >= len(l.Lines) {
		return nil
	}
	return &l.Lines[index]
}

// Text returns the lines joined by newlines
func (l *LineLayout) Text() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, len(l.Lines))
	for i := range l.Lines {
		if t := l.Lines[i].Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
