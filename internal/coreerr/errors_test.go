package coreerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/openclaude/openclaude/internal/testutil"
)

func TestKindOfUnwrapsWrappedError(t *testing.T) {
	base := New(RateLimited, "too many requests")
	wrapped := fmt.Errorf("fetching chat completion: %w", base)
	testutil.RequireEqual(t, KindOf(wrapped), RateLimited, "KindOf should see through fmt.Errorf wrapping")
}

func TestKindOfUnknownForPlainError(t *testing.T) {
	testutil.RequireEqual(t, KindOf(errors.New("boom")), Unknown, "plain errors classify as Unknown")
}

func TestKindOfNilError(t *testing.T) {
	testutil.RequireEqual(t, KindOf(nil), Unknown, "nil classifies as Unknown")
}

func TestWrapPreservesCauseInErrorsIs(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := Wrap(TransportFailure, "dialing provider", cause)
	testutil.RequireTrue(t, errors.Is(wrapped, cause), "errors.Is should reach the wrapped cause via Unwrap")
}

func TestRetryableClassification(t *testing.T) {
	testutil.RequireTrue(t, Retryable(RateLimited), "rate limited is retryable")
	testutil.RequireTrue(t, Retryable(ServerError), "server error is retryable")
	testutil.RequireTrue(t, !Retryable(Authentication), "authentication is not retryable")
	testutil.RequireTrue(t, !Retryable(PolicyDenied), "policy denial is not retryable")
}

func TestRetryableTransportChecksMessage(t *testing.T) {
	refused := New(TransportFailure, ConnRefused)
	reset := New(TransportFailure, ConnReset)
	dnsFailure := New(TransportFailure, "dns lookup failed")

	testutil.RequireTrue(t, RetryableTransport(refused), "connection_refused is retryable")
	testutil.RequireTrue(t, RetryableTransport(reset), "connection_reset is retryable")
	testutil.RequireTrue(t, !RetryableTransport(dnsFailure), "an unrecognized transport reason is not retryable")
	testutil.RequireTrue(t, !RetryableTransport(New(ServerError, ConnRefused)), "wrong Kind never counts, even with a matching message")
}

func TestErrorStringIncludesCause(t *testing.T) {
	cause := errors.New("EOF")
	err := Wrap(ProtocolError, "decoding stream", cause)
	testutil.RequireStringContains(t, err.Error(), "EOF", "rendered error should surface the cause")
	testutil.RequireStringContains(t, err.Error(), "protocol_error", "rendered error should name its kind")
}

func TestIsComparesOnlyKind(t *testing.T) {
	a := New(Billing, "card declined")
	b := New(Billing, "insufficient funds")
	testutil.RequireTrue(t, errors.Is(a, b), "two CoreErrors with the same Kind are Is-equal regardless of message")
	testutil.RequireTrue(t, !errors.Is(a, New(Authentication, "card declined")), "different Kinds are never Is-equal")
}
