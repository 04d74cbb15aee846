// Package coreerr defines the error taxonomy shared by every agent-core
// package: adapters, the tool registry, and the session store all return
// *CoreError (or wrap one) rather than ad hoc string errors, so the agent
// loop's retry band can classify failures by Kind instead of matching text.
package coreerr

import "fmt"

// Kind is one of the fourteen error categories the agent core distinguishes,
// or Unknown for an error that carries no classification.
type Kind int

const (
	Unknown Kind = iota
	Authentication
	Billing
	RateLimited
	ContextOverflow
	InvalidRequest
	ServerError
	TransportFailure
	ProtocolError
	Timeout
	PolicyDenied
	ValidationError
	IoError
	MaxIterations
	InternalInvariant
)

func (k Kind) String() string {
	switch k {
	case Authentication:
		return "authentication"
	case Billing:
		return "billing"
	case RateLimited:
		return "rate_limited"
	case ContextOverflow:
		return "context_overflow"
	case InvalidRequest:
		return "invalid_request"
	case ServerError:
		return "server_error"
	case TransportFailure:
		return "transport_failure"
	case ProtocolError:
		return "protocol_error"
	case Timeout:
		return "timeout"
	case PolicyDenied:
		return "policy_denied"
	case ValidationError:
		return "validation_error"
	case IoError:
		return "io_error"
	case MaxIterations:
		return "max_iterations"
	case InternalInvariant:
		return "internal_invariant"
	default:
		return "unknown"
	}
}

// CoreError is the concrete error type produced across the agent core.
type CoreError struct {
	Kind    Kind
	Message string
	Cause   error
}

func New(kind Kind, message string) *CoreError {
	return &CoreError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *CoreError {
	return &CoreError{Kind: kind, Message: message, Cause: cause}
}

func (e *CoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *CoreError with the same Kind, so callers
// can do errors.Is(err, coreerr.New(coreerr.RateLimited, "")) style checks,
// though switching on KindOf is generally preferable.
func (e *CoreError) Is(target error) bool {
	other, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// KindOf extracts the Kind from err if it is (or wraps) a *CoreError,
// returning Unknown otherwise.
func KindOf(err error) Kind {
	var ce *CoreError
	for err != nil {
		if c, ok := err.(*CoreError); ok {
			ce = c
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if ce == nil {
		return Unknown
	}
	return ce.Kind
}

// Retryable reports whether the given kind is retryable on its own:
// RateLimited and ServerError. The two retryable connection failures
// (refused / reset) share the TransportFailure kind with non-retryable
// transport errors, so Retryable reports false for TransportFailure;
// RetryableTransport recognizes those two by their Message.
func Retryable(kind Kind) bool {
	switch kind {
	case RateLimited, ServerError:
		return true
	default:
		return false
	}
}

// ConnRefused and ConnReset are sentinel messages used with TransportFailure
// so the retry band can recognize the two specific connection failures the
// spec names as retryable alongside RateLimited and ServerError.
const (
	ConnRefused = "connection_refused"
	ConnReset   = "connection_reset"
)

// RetryableTransport reports whether a TransportFailure-kind error carries
// one of the two connection failures the retry band treats as transient
// (refused or reset), as opposed to a DNS failure or other non-retryable
// transport error also folded into TransportFailure.
func RetryableTransport(err error) bool {
	ce, ok := err.(*CoreError)
	if !ok || ce.Kind != TransportFailure {
		return false
	}
	return ce.Message == ConnRefused || ce.Message == ConnReset
}
