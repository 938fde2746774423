package export

import (
	"encoding/json"

	"github.com/codalotl/textdiffy/internal/diff"
	"github.com/tidwall/pretty"
)

type document struct {
	Old     string       `json:"old,omitempty"`
	New     string       `json:"new,omitempty"`
	Stats   diff.Stats   `json:"stats"`
	Entries []diff.Entry `json:"entries"`
}

// JSON returns in as an indented JSON document with the side names, the stats and the entries. If color, the document is colorized with ANSI codes for a terminal.
func JSON(in Input, color bool) ([]byte, error) {
	entries := in.Entries
	if entries == nil {
		entries = []diff.Entry{}
	}
	data, err := json.Marshal(document{
		Old:     in.OldName,
		New:     in.NewName,
		Stats:   diff.Summarize(in.Entries),
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}

	data = pretty.PrettyOptions(data, &pretty.Options{Width: 100, Prefix: "", Indent: "  ", SortKeys: false})
	if color {
		data = pretty.Color(data, nil)
	}
	return data, nil
}
