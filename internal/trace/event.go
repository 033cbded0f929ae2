package trace

import "time"

// Kind tells span boundaries apart from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
}

func (k Kind) String() string {
	if k != 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event, coarsest first. ScopeError sits
// outside that order: failures are traced at every enabled level.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole run
	ScopePass                    // locate, discover, compile
	ScopeFile                    // one compiler invocation
	ScopeDir                     // one visited directory
	ScopeError                   // failed invocation
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeDir:    "dir",
	ScopeError:  "error",
}

func (s Scope) String() string {
	if s != 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Begin and end events of a span share SpanID.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for top-level spans
	Name     string // pass name, file path or directory
	Detail   string
	Extra    map[string]string
}
