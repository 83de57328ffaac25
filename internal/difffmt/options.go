package difffmt

// PrettyOpts configures pretty-printing of a diff result.
type PrettyOpts struct {
	Color      bool
	MaxWidth   int // longest printed line, 0 - unlimited
	ShowCounts bool
}

// JSONOpts configures JSON output of a diff result.
type JSONOpts struct {
	Pretty bool // indent the output
}
