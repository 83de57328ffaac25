package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/unicode/norm"

	"pubdiff/internal/api"
	"pubdiff/internal/token"
)

// FormatVersion is the snapshot interchange format understood by this build.
const FormatVersion = 1

type snapshotJSON struct {
	FormatVersion int        `json:"format_version"`
	Items         []itemJSON `json:"items"`
}

type itemJSON struct {
	Path   []string    `json:"path"`
	Tokens []tokenJSON `json:"tokens"`
}

type tokenJSON struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

// Decode reads a snapshot from r. Token text is NFC-normalized so that
// renderings that differ only in unicode composition compare equal.
func Decode(r io.Reader) ([]api.Item, error) {
	var raw snapshotJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if raw.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot format_version %d (want %d)",
			raw.FormatVersion, FormatVersion)
	}

	items := make([]api.Item, 0, len(raw.Items))
	for i, ri := range raw.Items {
		tokens := make([]token.Token, 0, len(ri.Tokens))
		for j, rt := range ri.Tokens {
			kind, ok := token.LookupKind(rt.Kind)
			if !ok {
				return nil, fmt.Errorf("item %d token %d: unknown token kind %q", i, j, rt.Kind)
			}
			tokens = append(tokens, token.New(kind, norm.NFC.String(rt.Text)))
		}
		items = append(items, api.NewItem(ri.Path, tokens))
	}
	return items, nil
}

// Encode writes items to w in the snapshot interchange format.
func Encode(w io.Writer, items []api.Item) error {
	raw := snapshotJSON{
		FormatVersion: FormatVersion,
		Items:         make([]itemJSON, 0, len(items)),
	}
	for _, it := range items {
		ri := itemJSON{
			Path:   it.Path,
			Tokens: make([]tokenJSON, 0, len(it.Tokens)),
		}
		for _, t := range it.Tokens {
			ri.Tokens = append(ri.Tokens, tokenJSON{Kind: t.Kind.String(), Text: t.Text})
		}
		raw.Items = append(raw.Items, ri)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
