package domain

// SuccessEvent describes a completed signing for the success log.
type SuccessEvent struct {
	IRN      string
	HTTPCode int
	Invoice  Invoice
	Files    []string
}

// ErrorEvent describes a failure whose details are known to the caller, such
// as an upstream API error.
type ErrorEvent struct {
	IRN             string
	HTTPCode        int
	ErrorType       string
	Handler         string
	DetailedMessage string
	PublicMessage   string
	SourceFile      string
	Details         any
	Invoice         Invoice
}

// CallSite is a source location.
type CallSite struct {
	File string
	Line int
}

// ExceptionEvent describes an unexpected failure. The logger derives the
// detailed message from Err and Origin, or from its own caller when Origin
// is empty.
type ExceptionEvent struct {
	IRN           string
	Err           error
	Handler       string
	HTTPCode      int
	PublicMessage string
	SourceFile    string
	Origin        CallSite
	Context       map[string]any
}
