package doctree

// RunFormatting holds the character-level formatting of a single run.
// It is a plain value: assigning or passing a RunFormatting copies it,
// so split fragments never share state.
type RunFormatting struct {
	Bold         bool
	Italic       bool
	Underline    bool
	Strike       bool
	DoubleStrike bool
	Superscript  bool
	Subscript    bool
	SmallCaps    bool
	AllCaps      bool

	// UnderlineStyle is the underline variant ("single", "double", ...)
	// when Underline is set.
	UnderlineStyle string

	// Font family per script range, mirroring the four w:rFonts slots.
	FontASCII    string
	FontEastAsia string
	FontHAnsi    string
	FontCS       string

	Size      string // half-points, as written in the source document
	SizeCS    string // complex-script size
	Color     string
	Highlight string
	Shading   string
	CharStyle string
}

// Run is a maximal span of text sharing one formatting value, or a
// tab/break marker. Text is empty for markers.
type Run struct {
	Text      string
	IsTab     bool
	IsBreak   bool
	BreakKind string
	Format    RunFormatting
}

// Contribution returns the run's contribution to the node's linear text:
// a tab marker renders as one tab character, a break as a single space.
func (r Run) Contribution() string {
	switch {
	case r.IsTab:
		return "\t"
	case r.IsBreak:
		return " "
	default:
		return r.Text
	}
}

// Clone returns an independent copy of the run. Runs hold no reference
// types, so a shallow copy is a full clone.
func (r Run) Clone() Run {
	return r
}

// TextRun is a convenience constructor for a literal text run.
func TextRun(text string, f RunFormatting) Run {
	return Run{Text: text, Format: f}
}

// TabRun returns a tab marker run carrying the given formatting.
func TabRun(f RunFormatting) Run {
	return Run{IsTab: true, Format: f}
}

// BreakRun returns a break marker run. kind is the break variant
// ("textWrapping", "page", "column"); empty means a plain line break.
func BreakRun(kind string, f RunFormatting) Run {
	return Run{IsBreak: true, BreakKind: kind, Format: f}
}
