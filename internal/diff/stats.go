package diff

// Stats counts entries by kind.
type Stats struct {
	Same     int `json:"same"`
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// Summarize counts entries by kind.
func Summarize(entries []Entry) Stats {
	var s Stats
	for _, e := range entries {
		switch e.Kind {
		case KindSame:
			s.Same++
		case KindAdd:
			s.Added++
		case KindRemove:
			s.Removed++
		case KindModify:
			s.Modified++
		}
	}
	return s
}

// Changed reports whether any entry is not a same entry.
func (s Stats) Changed() bool {
	return s.Added+s.Removed+s.Modified > 0
}
