package diff

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpModify
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpModify:
		return "modify"
	default:
		return "unknown"
	}
}

// Edit is one step of an edit script that turns sequence A into sequence B. The concrete types are Equal, Insert, Delete and Modify; the set is closed, so a type switch over
// those four is exhaustive.
//
// Invariants for an edit script produced by Patience:
//   - the left operands of all non-Insert edits, in order, reconstruct A
//   - the right operands of all non-Delete edits, in order, reconstruct B
type Edit[T any] interface {
	Op() Op
	isEdit()
}

// Equal pairs a unit of A with a unit of B that the equality function considers identical. A and B may differ when the equality function is not ==.
type Equal[T any] struct {
	A T
	B T
}

// Insert is a unit present only in B.
type Insert[T any] struct {
	B T
}

// Delete is a unit present only in A.
type Delete[T any] struct {
	A T
}

// Modify replaces Old (from A) with New (from B). It is only produced by CollapseToModify.
type Modify[T any] struct {
	Old T
	New T
}

func (Equal[T]) Op() Op  { return OpEqual }
func (Insert[T]) Op() Op { return OpInsert }
func (Delete[T]) Op() Op { return OpDelete }
func (Modify[T]) Op() Op { return OpModify }

func (Equal[T]) isEdit()  {}
func (Insert[T]) isEdit() {}
func (Delete[T]) isEdit() {}
func (Modify[T]) isEdit() {}

// Kind classifies an Entry.
type Kind int

// Entry kinds.
const (
	KindSame Kind = iota
	KindAdd
	KindRemove
	KindModify
)

func (k Kind) String() string {
	switch k {
	case KindSame:
		return "same"
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindModify:
		return "modify"
	default:
		return "unknown"
	}
}

// Entry is one line of a structured diff, as produced by Build.
//
// Fields by kind:
//   - KindSame: Line is the line from the old text (the first-seen original, even if the new text differs in ways the Options ignore).
//   - KindAdd: Line is the line from the new text.
//   - KindRemove: Line is the line from the old text.
//   - KindModify: Old and New are the original lines. Parts is the finer-grained breakdown when the granularity is finer than GranularityLine; nil otherwise.
//
// Invariants (for KindModify with non-nil Parts):
//   - concat(Parts with PartSame or PartRemove) == Old
//   - concat(Parts with PartSame or PartAdd) == New
type Entry struct {
	Kind  Kind
	Line  string
	Old   string
	New   string
	Parts []Part
}

// PartKind classifies a Part of a modified line.
type PartKind int

// Part kinds.
const (
	PartSame PartKind = iota
	PartAdd
	PartRemove
)

func (k PartKind) String() string {
	switch k {
	case PartSame:
		return "same"
	case PartAdd:
		return "add"
	case PartRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Part is a token-level span within a modified line.
type Part struct {
	Kind PartKind
	Text string
}
