package diagnostic

import (
	"errors"
	"strings"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a ResolutionError.
type Kind int

const (
	_ Kind = iota

	ControlNotFound
	InvalidRule
	UnknownBindingKind
	DataContextSpaceNotFound
	InvalidParameterIndex
)

var (
	// ErrControlNotFound is reported when no rule matches a requested tag,
	// or a matched code rule names a type that is not registered.
	ErrControlNotFound = errors.New("control not found")
	// ErrInvalidRule is reported when a matched rule fails its own validation.
	ErrInvalidRule = errors.New("ambiguous or invalid control rule")
	// ErrUnknownBindingKind is reported for an unrecognized binding token.
	ErrUnknownBindingKind = errors.New("unknown binding kind")
	// ErrDataContextSpaceNotFound is reported when a binding's context stack
	// does not occur anywhere between a node and the root.
	ErrDataContextSpaceNotFound = errors.New("data context space not found")
	// ErrInvalidParameterIndex is reported when _parentN reaches above the root.
	ErrInvalidParameterIndex = errors.New("invalid parameter index")
)

// Sentinel returns the sentinel error matching k, or nil.
func (k Kind) Sentinel() error {
	switch k {
	case ControlNotFound:
		return ErrControlNotFound
	case InvalidRule:
		return ErrInvalidRule
	case UnknownBindingKind:
		return ErrUnknownBindingKind
	case DataContextSpaceNotFound:
		return ErrDataContextSpaceNotFound
	case InvalidParameterIndex:
		return ErrInvalidParameterIndex
	default:
		return nil
	}
}

// ResolutionError is a synchronous failure of one resolution step.
// None of these are retried; they always point at a configuration,
// binding-authoring or tree-construction defect.
type ResolutionError struct {
	Kind Kind
	// Subject is what was being resolved: a tag, a token, a binding.
	Subject string
	Message string
	// Suggestions are close matches for the subject, best first.
	Suggestions []string
	// Err is an underlying cause, if any.
	Err error
}

// NewError creates a ResolutionError of the given kind.
func NewError(kind Kind, subject, message string) *ResolutionError {
	return &ResolutionError{Kind: kind, Subject: subject, Message: message}
}

// WithSuggestions attaches "did you mean" candidates.
func (e *ResolutionError) WithSuggestions(s []string) *ResolutionError {
	e.Suggestions = s
	return e
}

// WithCause attaches an underlying error.
func (e *ResolutionError) WithCause(err error) *ResolutionError {
	e.Err = err
	return e
}

func (e *ResolutionError) Error() string {
	var b strings.Builder

	if s := e.Kind.Sentinel(); s != nil {
		b.WriteString(s.Error())
	} else {
		b.WriteString("resolution failed")
	}

	if e.Subject != "" {
		b.WriteString(" [")
		b.WriteString(e.Subject)
		b.WriteString("]")
	}

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	if len(e.Suggestions) > 0 {
		b.WriteString(" (did you mean ")
		b.WriteString(strings.Join(e.Suggestions, ", "))
		b.WriteString("?)")
	}

	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *ResolutionError) Unwrap() []error {
	var errs []error
	if s := e.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// KindOf returns the Kind of the first ResolutionError in err's chain.
func KindOf(err error) (Kind, bool) {
	var re *ResolutionError
	if errors.As(err, &re) {
		return re.Kind, true
	}

	return 0, false
}
