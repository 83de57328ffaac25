package difffmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pubdiff/internal/api"
	"pubdiff/internal/diff"
)

// Pretty formats a diff result for humans: one section per category with an
// underlined header, removed renderings prefixed with '-', added with '+',
// changed items as a -/+ pair. Expects the result's slices sorted, which
// diff.Between guarantees.
func Pretty(w io.Writer, res diff.Result, opts PrettyOpts) error {
	removedColor := color.New(color.FgRed)
	addedColor := color.New(color.FgGreen)
	if opts.Color {
		removedColor.EnableColor()
		addedColor.EnableColor()
	} else {
		removedColor.DisableColor()
		addedColor.DisableColor()
	}

	if res.IsEmpty() {
		_, err := fmt.Fprintln(w, "No changes to the public API")
		return err
	}

	if err := prettySection(w, "Removed items from the public API", len(res.Removed), opts); err != nil {
		return err
	}
	for _, it := range res.Removed {
		if err := prettyLine(w, removedColor, "-", it, opts); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := prettySection(w, "Changed items in the public API", len(res.Changed), opts); err != nil {
		return err
	}
	for _, ch := range res.Changed {
		if err := prettyLine(w, removedColor, "-", ch.Old, opts); err != nil {
			return err
		}
		if err := prettyLine(w, addedColor, "+", ch.New, opts); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := prettySection(w, "Added items to the public API", len(res.Added), opts); err != nil {
		return err
	}
	for _, it := range res.Added {
		if err := prettyLine(w, addedColor, "+", it, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettySection(w io.Writer, title string, n int, opts PrettyOpts) error {
	if opts.ShowCounts {
		title = fmt.Sprintf("%s (%d)", title, n)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title))); err != nil {
		return err
	}
	if n == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}
	return nil
}

func prettyLine(w io.Writer, c *color.Color, sign string, it api.Item, opts PrettyOpts) error {
	line := sign + it.Render()
	if opts.MaxWidth > 0 {
		line = runewidth.Truncate(line, opts.MaxWidth, "…")
	}
	_, err := fmt.Fprintln(w, c.Sprint(line))
	return err
}
