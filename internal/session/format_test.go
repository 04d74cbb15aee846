package session

import (
	"testing"

	"github.com/openclaude/openclaude/internal/message"
	"github.com/openclaude/openclaude/internal/testutil"
)

func TestMarshalJSONLineShorthandForSingleText(t *testing.T) {
	m := message.NewUserText("plain text")
	line, err := marshalJSONLine(m)
	testutil.RequireNoError(t, err, "marshal")
	testutil.RequireEqual(t, string(line), `{"role":"user","content":"plain text"}`, "single text-block messages use the shorthand string form")
}

func TestMarshalJSONLineBlockArrayForMixedContent(t *testing.T) {
	m := message.NewAssistant([]message.ContentBlock{
		message.NewTextBlock("thinking"),
		message.NewToolUseBlock("call-1", "shell", `{"command":"ls"}`),
	})
	line, err := marshalJSONLine(m)
	testutil.RequireNoError(t, err, "marshal")
	testutil.RequireStringContains(t, string(line), `"content":[`, "multi-block messages serialize as an array")
}

func TestParseJSONLineRoundTripsShorthand(t *testing.T) {
	original := message.NewUserText("round trip me")
	line, err := marshalJSONLine(original)
	testutil.RequireNoError(t, err, "marshal")

	parsed, ok := parseJSONLine(string(line))
	testutil.RequireTrue(t, ok, "parse should succeed")
	testutil.RequireEqual(t, parsed, original, "round trip should reproduce the original message")
}

func TestParseJSONLineRejectsUnknownRole(t *testing.T) {
	_, ok := parseJSONLine(`{"role":"god","content":"whoops"}`)
	testutil.RequireTrue(t, !ok, "an unrecognized role must not parse")
}

func TestParseJSONLineRejectsInvalidJSON(t *testing.T) {
	_, ok := parseJSONLine(`{not json`)
	testutil.RequireTrue(t, !ok, "malformed JSON must not parse")
}

func TestParseJSONLineRejectsUnknownBlockType(t *testing.T) {
	_, ok := parseJSONLine(`{"role":"user","content":[{"type":"mystery"}]}`)
	testutil.RequireTrue(t, !ok, "a content block of an unrecognized type must fail to parse")
}
