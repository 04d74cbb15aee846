package streamdecode

import (
	"bytes"
	"strings"
)

// NDJSONDecoder splits a byte stream on LF only; each non-empty trimmed line
// is a complete JSON object. A partial tail (no trailing newline yet) is
// retained across Feed calls.
type NDJSONDecoder struct {
	lineBuf []byte
}

func NewNDJSONDecoder() *NDJSONDecoder {
	return &NDJSONDecoder{}
}

// Feed appends chunk and returns every complete, non-empty trimmed line
// assembled so far. An empty chunk produces no lines and does not disturb
// buffered state.
func (d *NDJSONDecoder) Feed(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}
	d.lineBuf = append(d.lineBuf, chunk...)

	var lines []string
	for {
		idx := bytes.IndexByte(d.lineBuf, '\n')
		if idx < 0 {
			break
		}
		line := d.lineBuf[:idx]
		d.lineBuf = d.lineBuf[idx+1:]
		trimmed := strings.TrimSpace(string(line))
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
