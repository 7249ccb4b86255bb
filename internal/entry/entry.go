package entry

// RawLine is one line of input together with its 1-based line number.
type RawLine struct {
	Number int
	Text   string
}

// LogEntry is a parsed log record. Extras hold every member except the
// required timestamp, level and message, in source order.
type LogEntry struct {
	Timestamp string
	Level     string
	Message   string
	Extras    []Member
}

// Kind tags the variant held by an Outcome.
type Kind int

const (
	KindEntry Kind = iota
	KindEmpty
	KindParseError
	KindReadError
)

func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindEmpty:
		return "empty"
	case KindParseError:
		return "parse error"
	case KindReadError:
		return "read error"
	default:
		return "unknown"
	}
}

// Outcome is the result of processing one input line. Entry is set for
// KindEntry; Err is a *ParseError for KindParseError and the I/O failure for
// KindReadError.
type Outcome struct {
	Kind  Kind
	Line  int
	Entry LogEntry
	Err   error
}

// ReadFailure wraps an input failure observed while fetching line n.
func ReadFailure(line int, err error) Outcome {
	return Outcome{Kind: KindReadError, Line: line, Err: err}
}
