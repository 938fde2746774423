package diff

import (
	"encoding/json"
	"fmt"
)

type entryJSON struct {
	Type  string  `json:"type"`
	Line  *string `json:"line,omitempty"`
	Old   *string `json:"old,omitempty"`
	New   *string `json:"new,omitempty"`
	Parts []Part  `json:"parts,omitempty"`
}

type partJSON struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MarshalJSON encodes e as {"type":"same|add|remove","line":...} or {"type":"modify","old":...,"new":...,"parts":[...]}; parts is omitted when nil.
func (e Entry) MarshalJSON() ([]byte, error) {
	v := entryJSON{Type: e.Kind.String()}
	switch e.Kind {
	case KindSame, KindAdd, KindRemove:
		v.Line = &e.Line
	case KindModify:
		v.Old = &e.Old
		v.New = &e.New
		v.Parts = e.Parts
	default:
		return nil, fmt.Errorf("diff: cannot marshal entry kind %d", int(e.Kind))
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var v entryJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	out := Entry{}
	switch v.Type {
	case "same":
		out.Kind = KindSame
	case "add":
		out.Kind = KindAdd
	case "remove":
		out.Kind = KindRemove
	case "modify":
		out.Kind = KindModify
	default:
		return fmt.Errorf("diff: unknown entry type %q", v.Type)
	}
	if v.Line != nil {
		out.Line = *v.Line
	}
	if v.Old != nil {
		out.Old = *v.Old
	}
	if v.New != nil {
		out.New = *v.New
	}
	out.Parts = v.Parts
	*e = out
	return nil
}

// MarshalJSON encodes p as {"type":"same|add|remove","text":...}.
func (p Part) MarshalJSON() ([]byte, error) {
	return json.Marshal(partJSON{Type: p.Kind.String(), Text: p.Text})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (p *Part) UnmarshalJSON(data []byte) error {
	var v partJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.Type {
	case "same":
		p.Kind = PartSame
	case "add":
		p.Kind = PartAdd
	case "remove":
		p.Kind = PartRemove
	default:
		return fmt.Errorf("diff: unknown part type %q", v.Type)
	}
	p.Text = v.Text
	return nil
}
