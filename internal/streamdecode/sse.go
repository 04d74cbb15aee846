// Package streamdecode implements the two incremental wire-format decoders
// the provider adapters sit on top of: an SSE (server-sent events) parser
// and an NDJSON line splitter. Both are fed arbitrary byte chunks and must
// buffer partial lines/records across feeds, regardless of how the chunks
// are split.
package streamdecode

import (
	"bytes"
	"strings"
)

// SSEEvent is one complete server-sent-event record: an optional type
// (defaulting to "message" when absent, per the SSE spec, though this
// decoder exposes the raw empty string so callers can apply their own
// default) and the joined data payload.
type SSEEvent struct {
	Type string
	Data string
}

// SSEDecoder incrementally parses a text/event-stream byte sequence. Feed
// arbitrary chunks via Feed; complete events are returned as they're
// assembled. The decoder owns no transport; a read-timeout at the transport
// layer simply stops future Feed calls, and any events already returned are
// kept: a read-timeout failure terminates the stream cleanly rather than
// discarding prior progress.
type SSEDecoder struct {
	lineBuf   []byte // partial line carried across Feed calls
	eventType string
	data      []string
}

// NewSSEDecoder returns a fresh decoder with empty buffered state.
func NewSSEDecoder() *SSEDecoder {
	return &SSEDecoder{}
}

// Feed appends chunk to the decoder's internal buffer, splits it into
// complete lines, and returns every SSEEvent dispatched as a result. An
// empty chunk produces no events and does not disturb buffered state.
func (d *SSEDecoder) Feed(chunk []byte) []SSEEvent {
	if len(chunk) == 0 {
		return nil
	}
	d.lineBuf = append(d.lineBuf, chunk...)

	var events []SSEEvent
	for {
		idx := bytes.IndexByte(d.lineBuf, '\n')
		if idx < 0 {
			break
		}
		line := d.lineBuf[:idx]
		d.lineBuf = d.lineBuf[idx+1:]
		// Strip a trailing CR so CRLF-terminated lines are handled too.
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		if ev, ok := d.processLine(string(line)); ok {
			events = append(events, ev)
		}
	}
	return events
}

func (d *SSEDecoder) processLine(line string) (SSEEvent, bool) {
	switch {
	case line == "":
		// Blank line dispatches the accumulated event and clears state.
		ev := SSEEvent{Type: d.eventType, Data: strings.Join(d.data, "\n")}
		d.eventType = ""
		d.data = nil
		return ev, true
	case strings.HasPrefix(line, ":"):
		// Comment line; discarded.
		return SSEEvent{}, false
	case strings.HasPrefix(line, "event:"):
		d.eventType = trimFieldValue(line, "event:")
		return SSEEvent{}, false
	case strings.HasPrefix(line, "data:"):
		d.data = append(d.data, trimFieldValue(line, "data:"))
		return SSEEvent{}, false
	default:
		// Any other field (id:, retry:, or an unrecognized field) is ignored.
		return SSEEvent{}, false
	}
}

func trimFieldValue(line, prefix string) string {
	v := line[len(prefix):]
	// Exactly one leading space, if present, is stripped.
	if strings.HasPrefix(v, " ") {
		v = v[1:]
	}
	return v
}

