package models

// Source is the self-identified role of a signup, forwarded to the
// mailing list as the SOURCE merge field.
type Source string

const (
	SourceStallholder Source = "stallholder"
	SourceOrganiser   Source = "organiser"
	SourceVisitor     Source = "visitor"

	// SourceUnknown is sent for any value outside the selectable roles.
	SourceUnknown Source = "unknown"
)

// Roles lists the selectable roles in display order.
var Roles = []Source{SourceStallholder, SourceOrganiser, SourceVisitor}

// ParseSource maps a raw value onto the closed set of sources.
func ParseSource(raw string) Source {
	switch s := Source(raw); s {
	case SourceStallholder, SourceOrganiser, SourceVisitor:
		return s
	default:
		return SourceUnknown
	}
}

// Known reports whether s is one of the selectable roles.
func (s Source) Known() bool {
	return ParseSource(string(s)) == s && s != SourceUnknown
}

func (s Source) String() string {
	return string(s)
}
