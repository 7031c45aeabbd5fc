package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmew/Lithium-sub000/parser/dom"
)

func parseToDump(t *testing.T, input string) string {
	t.Helper()
	doc, _ := Parse([]byte(input), Config{})
	require.NotNil(t, doc)
	return doc.Dump()
}

func dumpLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestTreeConstruction(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "implied structure",
			in:   "<!DOCTYPE html><p>hi",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <p>",
				`|       "hi"`,
			),
		},
		{
			name: "attributes sorted in dump",
			in:   `<!DOCTYPE html><p id=x class="y">t<br>u`,
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <p>",
				`|       class="y"`,
				`|       id="x"`,
				`|       "t"`,
				"|       <br>",
				`|       "u"`,
			),
		},
		{
			name: "comment before doctype",
			in:   "<!--c--><!DOCTYPE html>",
			want: dumpLines(
				"#document",
				"| <!-- c -->",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
			),
		},
		{
			name: "formatting reconstruction",
			in:   "<!DOCTYPE html><p>1<b>2<i>3</b>4</i>5",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <p>",
				`|       "1"`,
				"|       <b>",
				`|         "2"`,
				"|       <i>",
				`|         "3"`,
				"|       <i>",
				`|         "4"`,
				`|       "5"`,
			),
		},
		{
			name: "adoption agency with furthest block",
			in:   "<!DOCTYPE html><b>1<p>2</b>3",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <b>",
				`|       "1"`,
				"|     <p>",
				"|       <b>",
				`|         "2"`,
				`|       "3"`,
			),
		},
		{
			name: "table with implied sections",
			in:   "<!DOCTYPE html><table><td>x</table>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <table>",
				"|       <tbody>",
				"|         <tr>",
				"|           <td>",
				`|             "x"`,
			),
		},
		{
			name: "foster parented text",
			in:   "<!DOCTYPE html><table><tr><td>A</td></tr>B</table>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				`|     "B"`,
				"|     <table>",
				"|       <tbody>",
				"|         <tr>",
				"|           <td>",
				`|             "A"`,
			),
		},
		{
			name: "template contents",
			in:   "<!DOCTYPE html><template><td>Cell</td></template>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|     <template>",
				"|       content",
				"|         <td>",
				`|           "Cell"`,
				"|   <body>",
			),
		},
		{
			name: "select implies option ends",
			in:   "<!DOCTYPE html><select><option>a<option>b</select>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <select>",
				"|       <option>",
				`|         "a"`,
				"|       <option>",
				`|         "b"`,
			),
		},
		{
			name: "svg subtree",
			in:   "<!DOCTYPE html><svg><circle/></svg>x",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <svg svg>",
				"|       <svg circle>",
				`|     "x"`,
			),
		},
		{
			name: "svg attribute case adjustment",
			in:   `<!DOCTYPE html><svg viewbox="0 0 1 1"></svg>`,
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <svg svg>",
				`|       viewBox="0 0 1 1"`,
			),
		},
		{
			name: "breakout from foreign content",
			in:   "<!DOCTYPE html><svg><p>x",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <svg svg>",
				"|     <p>",
				`|       "x"`,
			),
		},
		{
			name: "mathml subtree",
			in:   "<!DOCTYPE html><math><mi>x</mi></math>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <math math>",
				"|       <math mi>",
				`|         "x"`,
			),
		},
		{
			name: "cdata in foreign content",
			in:   "<!DOCTYPE html><svg><![CDATA[x<y]]></svg>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <svg svg>",
				`|       "x<y"`,
			),
		},
		{
			name: "cdata outside foreign content is a bogus comment",
			in:   "<!DOCTYPE html><body><![CDATA[x]]>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <!-- [CDATA[x]] -->",
			),
		},
		{
			name: "frameset replaces body",
			in:   "<!DOCTYPE html><frameset><frame></frameset>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <frameset>",
				"|     <frame>",
			),
		},
		{
			name: "stray end tags ignored",
			in:   "<!DOCTYPE html></div><p>x</span></p>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <p>",
				`|       "x"`,
			),
		},
		{
			name: "image renamed to img",
			in:   "<!DOCTYPE html><p><image src=x>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <p>",
				"|       <img>",
				`|         src="x"`,
			),
		},
		{
			name: "list items close each other",
			in:   "<!DOCTYPE html><ul><li>a<li>b</ul>",
			want: dumpLines(
				"#document",
				"| <!DOCTYPE html>",
				"| <html>",
				"|   <head>",
				"|   <body>",
				"|     <ul>",
				"|       <li>",
				`|         "a"`,
				"|       <li>",
				`|         "b"`,
			),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseToDump(t, tt.in)
			if got != tt.want {
				t.Errorf("tree mismatch\ninput: %s\nwant:\n%s\ngot:\n%s", tt.in, tt.want, got)
			}
		})
	}
}

func TestQuirksModeDetection(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want dom.QuirksMode
	}{
		{"standard doctype", "<!DOCTYPE html><p>", dom.NoQuirks},
		{"missing doctype", "<p>", dom.Quirks},
		{"html 3.2 public id", `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 3.2 Final//EN">`, dom.Quirks},
		{"transitional without system id", `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">`, dom.Quirks},
		{"transitional with system id", `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd">`, dom.LimitedQuirks},
		{"xhtml strict", `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`, dom.NoQuirks},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, _ := Parse([]byte(tt.in), Config{})
			require.NotNil(t, doc)
			assert.Equal(t, tt.want, doc.Document.Mode)
		})
	}
}

func TestParserCannotChangeMode(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"quirks doctype suppressed", `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 3.2 Final//EN"><p>`},
		{"missing doctype suppressed", "<p>"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, errs := Parse([]byte(tt.in), Config{ParserCannotChangeMode: true})
			require.NotNil(t, doc)
			assert.Equal(t, dom.NoQuirks, doc.Document.Mode)
			var reported bool
			for _, e := range errs {
				if e.Code == string(parserCannotChangeModeError) {
					reported = true
				}
			}
			assert.True(t, reported, "expected %s in %v", parserCannotChangeModeError, errs)
		})
	}
}

func TestQuirksTableInParagraph(t *testing.T) {
	// Standards mode closes the open p before a table; quirks mode
	// nests the table inside it.
	doc, _ := Parse([]byte("<!DOCTYPE html><p>x<table></table>"), Config{})
	body := findElement(doc, "body")
	require.NotNil(t, body)
	require.Len(t, body.Children, 2)
	assert.Equal(t, "p", body.Children[0].Name)
	assert.Equal(t, "table", body.Children[1].Name)

	doc, _ = Parse([]byte("<p>x<table></table>"), Config{})
	body = findElement(doc, "body")
	require.NotNil(t, body)
	require.Len(t, body.Children, 1)
	p := body.Children[0]
	require.Equal(t, "p", p.Name)
	require.Len(t, p.Children, 2)
	assert.Equal(t, "table", p.Children[1].Name)
}

func findElement(n *dom.Node, name string) *dom.Node {
	if n.Type == dom.ElementNode && n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func TestFormOwnerAssociation(t *testing.T) {
	doc, _ := Parse([]byte(`<!DOCTYPE html><form id=f><input name=a></form><input name=b>`), Config{})
	form := findElement(doc, "form")
	require.NotNil(t, form)
	require.Len(t, form.Children, 1)
	inside := form.Children[0]
	require.Equal(t, "input", inside.Name)
	assert.Equal(t, form, inside.FormOwner)

	body := findElement(doc, "body")
	require.NotNil(t, body)
	outside := body.Children[len(body.Children)-1]
	require.Equal(t, "input", outside.Name)
	assert.Nil(t, outside.FormOwner)
}

func TestHeadPointerReopensForLateMeta(t *testing.T) {
	got := parseToDump(t, `<!DOCTYPE html><head></head><meta charset="utf-8"><body>x`)
	want := dumpLines(
		"#document",
		"| <!DOCTYPE html>",
		"| <html>",
		"|   <head>",
		"|     <meta>",
		`|       charset="utf-8"`,
		"|   <body>",
		`|     "x"`,
	)
	assert.Equal(t, want, got)
}

func TestPreIgnoresLeadingNewline(t *testing.T) {
	got := parseToDump(t, "<!DOCTYPE html><pre>\nkeep\n</pre>")
	want := dumpLines(
		"#document",
		"| <!DOCTYPE html>",
		"| <html>",
		"|   <head>",
		"|   <body>",
		"|     <pre>",
		`|       "keep`,
		`"`,
	)
	assert.Equal(t, want, got)
}

func TestRawTextElements(t *testing.T) {
	got := parseToDump(t, "<!DOCTYPE html><style>p > a { color: red }</style><title>a < b</title>")
	want := dumpLines(
		"#document",
		"| <!DOCTYPE html>",
		"| <html>",
		"|   <head>",
		"|     <style>",
		`|       "p > a { color: red }"`,
		"|     <title>",
		`|       "a < b"`,
		"|   <body>",
	)
	assert.Equal(t, want, got)
}
