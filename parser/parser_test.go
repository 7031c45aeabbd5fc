package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmew/Lithium-sub000/parser/dom"
)

// paddedHead returns markup whose interesting part starts beyond the
// 1024 byte prescan window.
func paddedHead(rest string) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>")
	for b.Len() < 1100 {
		b.WriteString("<!--x-->")
	}
	b.WriteString(rest)
	return []byte(b.String())
}

func TestChunkedWriteMatchesOneShot(t *testing.T) {
	input := paddedHead("<p>héllo €</p><table><td>céll</table>")
	want, _ := Parse(input, Config{})

	for _, size := range []int{1, 3, 7, 100} {
		p := NewParser(Config{})
		for i := 0; i < len(input); i += size {
			end := i + size
			if end > len(input) {
				end = len(input)
			}
			p.Write(input[i:end])
		}
		got := p.Finish()
		assert.Equal(t, want.Dump(), got.Dump(), "chunk size %d", size)
	}
}

func TestMetaCharsetRestart(t *testing.T) {
	input := paddedHead(`<meta charset="windows-1252"><body>`)
	input = append(input, 0x92)
	input = append(input, []byte("ok")...)

	doc, _ := Parse(input, Config{})
	require.NotNil(t, doc)
	assert.Equal(t, "windows-1252", doc.Document.CharacterSet)

	body := findElement(doc, "body")
	require.NotNil(t, body)
	require.NotEmpty(t, body.Children)
	assert.Equal(t, "’ok", body.Children[0].Data)
}

func TestMetaCharsetRestartChunked(t *testing.T) {
	input := paddedHead(`<meta charset="windows-1252"><body>`)
	input = append(input, 0x92)

	p := NewParser(Config{})
	for i := 0; i < len(input); i += 64 {
		end := i + 64
		if end > len(input) {
			end = len(input)
		}
		p.Write(input[i:end])
	}
	doc := p.Finish()
	assert.Equal(t, "windows-1252", doc.Document.CharacterSet)
	body := findElement(doc, "body")
	require.NotNil(t, body)
	require.NotEmpty(t, body.Children)
	assert.Equal(t, "’", body.Children[0].Data)
}

func TestMetaCharsetSecondChangeBlocked(t *testing.T) {
	input := paddedHead(`<meta charset="windows-1252"><meta charset="shift_jis"><body>x`)
	doc, errs := Parse(input, Config{})
	assert.Equal(t, "windows-1252", doc.Document.CharacterSet)

	var blocked bool
	for _, e := range errs {
		if e.Code == string(encodingChangeBlocked) {
			blocked = true
		}
	}
	assert.True(t, blocked, "expected %s in %v", encodingChangeBlocked, errs)
}

func TestMetaCharsetBlockedUnderBOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, paddedHead(`<meta charset="windows-1252"><body>x`)...)
	doc, errs := Parse(input, Config{})
	assert.Equal(t, "utf-8", doc.Document.CharacterSet)

	var blocked bool
	for _, e := range errs {
		if e.Code == string(encodingChangeBlocked) {
			blocked = true
		}
	}
	assert.True(t, blocked, "expected %s in %v", encodingChangeBlocked, errs)
}

func TestMetaCharsetBlockedUnderTransport(t *testing.T) {
	input := paddedHead(`<meta charset="shift_jis"><body>x`)
	doc, errs := Parse(input, Config{TransportCharset: "windows-1252"})
	assert.Equal(t, "windows-1252", doc.Document.CharacterSet)

	var blocked bool
	for _, e := range errs {
		if e.Code == string(encodingChangeBlocked) {
			blocked = true
		}
	}
	assert.True(t, blocked, "expected %s in %v", encodingChangeBlocked, errs)

	// A meta that agrees with the transport charset is not an error.
	doc, errs = Parse(paddedHead(`<meta charset="windows-1252"><body>x`), Config{TransportCharset: "windows-1252"})
	assert.Equal(t, "windows-1252", doc.Document.CharacterSet)
	for _, e := range errs {
		assert.NotEqual(t, string(encodingChangeBlocked), e.Code)
	}
}

func TestMetaCharsetInPrescanWindow(t *testing.T) {
	// A declaration inside the prescan window is picked up front and
	// never restarts the parse.
	input := append([]byte(`<!DOCTYPE html><meta charset="windows-1252"><body>`), 0x92)
	doc, _ := Parse(input, Config{})
	assert.Equal(t, "windows-1252", doc.Document.CharacterSet)
	body := findElement(doc, "body")
	require.NotNil(t, body)
	require.NotEmpty(t, body.Children)
	assert.Equal(t, "’", body.Children[0].Data)
}

func TestScriptCallbackDocumentWrite(t *testing.T) {
	var ran int
	cfg := Config{
		ScriptingEnabled: true,
		OnScript: func(p *Parser, script *dom.Node) {
			ran++
			require.Equal(t, "script", script.Name)
			p.DocumentWrite("<b>w</b>")
		},
	}
	doc, _ := Parse([]byte("<!DOCTYPE html><script>x</script><i>y</i>"), cfg)
	assert.Equal(t, 1, ran)

	want := dumpLines(
		"#document",
		"| <!DOCTYPE html>",
		"| <html>",
		"|   <head>",
		"|     <script>",
		`|       "x"`,
		"|   <body>",
		"|     <b>",
		`|       "w"`,
		"|     <i>",
		`|       "y"`,
	)
	assert.Equal(t, want, doc.Dump())
}

func TestScriptCallbackRequiresScripting(t *testing.T) {
	var ran int
	cfg := Config{
		OnScript: func(p *Parser, script *dom.Node) { ran++ },
	}
	Parse([]byte("<script>x</script>"), cfg)
	assert.Equal(t, 0, ran)
}

func TestParseErrorsReported(t *testing.T) {
	var seen []string
	_, errs := Parse([]byte("<!DOCTYPE html><p x=1 x=2>"), Config{
		OnParseError: func(code string, line, col int) { seen = append(seen, code) },
	})
	require.NotEmpty(t, errs)
	assert.Contains(t, seen, "duplicate-attribute")
	var found bool
	for _, e := range errs {
		if e.Code == "duplicate-attribute" {
			found = true
			assert.Equal(t, 1, e.Line)
			assert.Greater(t, e.Column, 1)
		}
	}
	assert.True(t, found)
}

func fragmentContext(name string) *dom.Node {
	doc := dom.NewDocument()
	return dom.NewElement(doc, dom.HTMLNamespace, name)
}

func TestParseFragment(t *testing.T) {
	tests := []struct {
		name    string
		context string
		markup  string
		want    string
	}{
		{
			name:    "div context",
			context: "div",
			markup:  "<b>bold</b> text",
			want: dumpLines(
				"#document-fragment",
				"| <b>",
				`|   "bold"`,
				`| " text"`,
			),
		},
		{
			name:    "tr context keeps cells",
			context: "tr",
			markup:  "<td>x</td>",
			want: dumpLines(
				"#document-fragment",
				"| <td>",
				`|   "x"`,
			),
		},
		{
			name:    "textarea context is rcdata",
			context: "textarea",
			markup:  "<b>x",
			want: dumpLines(
				"#document-fragment",
				`| "<b>x"`,
			),
		},
		{
			name:    "template context allows table parts",
			context: "template",
			markup:  "<tr><td>a",
			want: dumpLines(
				"#document-fragment",
				"| <tr>",
				"|   <td>",
				`|     "a"`,
			),
		},
		{
			name:    "script context is raw text",
			context: "script",
			markup:  "if (a < b) {}",
			want: dumpLines(
				"#document-fragment",
				`| "if (a < b) {}"`,
			),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frag, _ := ParseFragment(tt.markup, fragmentContext(tt.context), Config{})
			require.NotNil(t, frag)
			assert.Equal(t, tt.want, frag.Dump())
		})
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "basic document",
			in:   `<!DOCTYPE html><p id=x>a&amp;b<br>c</p>`,
			want: `<!DOCTYPE html><html><head></head><body><p id="x">a&amp;b<br>c</p></body></html>`,
		},
		{
			name: "script stays raw",
			in:   `<!DOCTYPE html><script>if (a < b) {}</script>`,
			want: `<!DOCTYPE html><html><head><script>if (a < b) {}</script></head><body></body></html>`,
		},
		{
			name: "attribute quoting",
			in:   `<!DOCTYPE html><p title='a"b'>x`,
			want: `<!DOCTYPE html><html><head></head><body><p title="a&quot;b">x</p></body></html>`,
		},
		{
			name: "template serializes its contents",
			in:   `<!DOCTYPE html><template><p>t</p></template>`,
			want: `<!DOCTYPE html><html><head><template><p>t</p></template></head><body></body></html>`,
		},
		{
			name: "comment",
			in:   `<!DOCTYPE html><body><!--note-->`,
			want: `<!DOCTYPE html><html><head></head><body><!--note--></body></html>`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, _ := Parse([]byte(tt.in), Config{})
			assert.Equal(t, tt.want, Serialize(doc))
		})
	}
}

func TestSerializeFragmentRoundTrip(t *testing.T) {
	frag, _ := ParseFragment(`<ul><li>a</li><li>b</li></ul>`, fragmentContext("div"), Config{})
	assert.Equal(t, `<ul><li>a</li><li>b</li></ul>`, Serialize(frag))
}
