package streamdecode

import (
	"testing"

	"github.com/openclaude/openclaude/internal/testutil"
)

func TestSSEDecoderSingleEvent(t *testing.T) {
	d := NewSSEDecoder()
	events := d.Feed([]byte("event: message_start\ndata: {\"a\":1}\n\n"))
	testutil.RequireEqual(t, len(events), 1, "expected one event")
	testutil.RequireEqual(t, events[0].Type, "message_start", "event type")
	testutil.RequireEqual(t, events[0].Data, `{"a":1}`, "event data")
}

func TestSSEDecoderMultiLineData(t *testing.T) {
	d := NewSSEDecoder()
	events := d.Feed([]byte("data: line one\ndata: line two\n\n"))
	testutil.RequireEqual(t, len(events), 1, "expected one event")
	testutil.RequireEqual(t, events[0].Data, "line one\nline two", "joined data")
}

func TestSSEDecoderSplitAcrossFeeds(t *testing.T) {
	d := NewSSEDecoder()
	// A chunk boundary falls in the middle of a field name.
	first := d.Feed([]byte("ev"))
	testutil.RequireEqual(t, len(first), 0, "no event from partial line")
	second := d.Feed([]byte("ent: ping\ndata: ok\n\n"))
	testutil.RequireEqual(t, len(second), 1, "event completes once the rest arrives")
	testutil.RequireEqual(t, second[0].Type, "ping", "event type reassembled across feeds")
}

func TestSSEDecoderCRLF(t *testing.T) {
	d := NewSSEDecoder()
	events := d.Feed([]byte("data: x\r\n\r\n"))
	testutil.RequireEqual(t, len(events), 1, "CRLF-terminated lines still dispatch")
	testutil.RequireEqual(t, events[0].Data, "x", "CR stripped from data")
}

func TestSSEDecoderCommentAndUnknownFieldsIgnored(t *testing.T) {
	d := NewSSEDecoder()
	events := d.Feed([]byte(":keepalive\nid: 7\nretry: 1000\ndata: payload\n\n"))
	testutil.RequireEqual(t, len(events), 1, "only the dispatch-triggering blank line yields an event")
	testutil.RequireEqual(t, events[0].Data, "payload", "comment/id/retry fields contribute nothing to data")
}

func TestSSEDecoderEmptyFeedIsNoop(t *testing.T) {
	d := NewSSEDecoder()
	events := d.Feed(nil)
	testutil.RequireEqual(t, len(events), 0, "empty chunk yields no events")
}
