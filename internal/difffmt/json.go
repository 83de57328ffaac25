package difffmt

import (
	"encoding/json"
	"io"

	"pubdiff/internal/api"
	"pubdiff/internal/diff"
)

type itemOutput struct {
	Path      string `json:"path"`
	Rendering string `json:"rendering"`
}

type changedOutput struct {
	Old itemOutput `json:"old"`
	New itemOutput `json:"new"`
}

type resultOutput struct {
	Removed []itemOutput    `json:"removed"`
	Changed []changedOutput `json:"changed"`
	Added   []itemOutput    `json:"added"`
}

// JSON writes a diff result as JSON. All three arrays are always present,
// possibly empty, so consumers never need nil checks.
func JSON(w io.Writer, res diff.Result, opts JSONOpts) error {
	out := resultOutput{
		Removed: make([]itemOutput, 0, len(res.Removed)),
		Changed: make([]changedOutput, 0, len(res.Changed)),
		Added:   make([]itemOutput, 0, len(res.Added)),
	}
	for _, it := range res.Removed {
		out.Removed = append(out.Removed, toItemOutput(it))
	}
	for _, ch := range res.Changed {
		out.Changed = append(out.Changed, changedOutput{
			Old: toItemOutput(ch.Old),
			New: toItemOutput(ch.New),
		})
	}
	for _, it := range res.Added {
		out.Added = append(out.Added, toItemOutput(it))
	}

	enc := json.NewEncoder(w)
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func toItemOutput(it api.Item) itemOutput {
	return itemOutput{
		Path:      it.PathString(),
		Rendering: it.Render(),
	}
}
