package types

// SegmentKind describes the role a positional segment plays in a route pattern
type SegmentKind int

// String returns the string representation of a SegmentKind
func (s SegmentKind) String() string {
	switch s {
	case SegmentLiteral:
		return "literal"
	case SegmentParameter:
		return "parameter"
	case SegmentCatchAll:
		return "catch-all"
	}
	return "unknown"
}

const (
	SegmentLiteral   SegmentKind = iota // SegmentLiteral is a bare word matched verbatim
	SegmentParameter                    // SegmentParameter binds one argv token, optionally via a typed constraint
	SegmentCatchAll                     // SegmentCatchAll binds all remaining unclaimed tokens, final position only
)

// CandidateKind categorizes completion candidates. The constant order is the
// display order: commands first, options last.
type CandidateKind int

const (
	KindCommand   CandidateKind = iota // literal route word
	KindEnum                           // enumeration value of a typed parameter
	KindParameter                      // typed/untyped parameter hint
	KindFile                           // filesystem file hint
	KindDirectory                      // filesystem directory hint
	KindCustom                         // host-supplied candidate
	KindOption                         // option form (--long or -s)
)

// String returns the string representation of a CandidateKind
func (c CandidateKind) String() string {
	switch c {
	case KindCommand:
		return "command"
	case KindEnum:
		return "enum"
	case KindParameter:
		return "parameter"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindCustom:
		return "custom"
	case KindOption:
		return "option"
	}
	return "unknown"
}

// NameConversionFunc converts a constraint or parameter name to its canonical registry form
type NameConversionFunc func(string) string
