package dispatch

// Kinds the engine itself produces. Method authors may return any other kind;
// the engine passes unknown kinds through untouched.
const (
	KindBadRequest    = "BAD_REQUEST"
	KindInternalError = "INTERNAL_ERROR"
)

// CallError is a structured failure from a method call. Kind is an open
// string set so method authors can introduce domain-specific kinds without
// touching the engine. Two CallErrors with identical fields are
// interchangeable; a CallError is never mutated after construction.
type CallError struct {
	Kind    string
	Message string
	Data    any
}

func (e *CallError) Error() string {
	return e.Kind + ": " + e.Message
}

// NewCallError creates a CallError with no data payload.
func NewCallError(kind, message string) *CallError {
	return &CallError{Kind: kind, Message: message}
}
