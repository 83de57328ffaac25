package difffmt

import (
	"fmt"
	"io"

	"pubdiff/internal/diff"
)

// Markdown formats a diff result for CI comment bodies: one '##' section per
// non-empty category with the renderings in a fenced diff block.
func Markdown(w io.Writer, res diff.Result) error {
	if res.IsEmpty() {
		_, err := fmt.Fprintln(w, "No changes to the public API")
		return err
	}

	if len(res.Removed) > 0 {
		if err := markdownHeader(w, "Removed"); err != nil {
			return err
		}
		for _, it := range res.Removed {
			if _, err := fmt.Fprintf(w, "-%s\n", it.Render()); err != nil {
				return err
			}
		}
		if err := markdownFooter(w); err != nil {
			return err
		}
	}
	if len(res.Changed) > 0 {
		if err := markdownHeader(w, "Changed"); err != nil {
			return err
		}
		for _, ch := range res.Changed {
			if _, err := fmt.Fprintf(w, "-%s\n+%s\n", ch.Old.Render(), ch.New.Render()); err != nil {
				return err
			}
		}
		if err := markdownFooter(w); err != nil {
			return err
		}
	}
	if len(res.Added) > 0 {
		if err := markdownHeader(w, "Added"); err != nil {
			return err
		}
		for _, it := range res.Added {
			if _, err := fmt.Fprintf(w, "+%s\n", it.Render()); err != nil {
				return err
			}
		}
		if err := markdownFooter(w); err != nil {
			return err
		}
	}
	return nil
}

func markdownHeader(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "## %s\n```diff\n", title)
	return err
}

func markdownFooter(w io.Writer) error {
	_, err := fmt.Fprint(w, "```\n")
	return err
}
