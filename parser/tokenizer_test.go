package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simpleToken is a flattened token for comparisons; adjacent character
// tokens are coalesced into one.
type simpleToken struct {
	Type        string
	Name        string
	Data        string
	Attrs       []Attribute
	SelfClosing bool
}

func drainTokens(z *Tokenizer) []simpleToken {
	var out []simpleToken
	for {
		tok := z.NextToken()
		if tok == nil {
			return out
		}
		if tok.TokenType == endOfFileToken {
			return out
		}
		if tok.TokenType == characterToken && len(out) > 0 && out[len(out)-1].Type == "character" {
			out[len(out)-1].Data += tok.Data
			continue
		}
		out = append(out, simpleToken{
			Type:        tok.TokenType.String(),
			Name:        tok.TagName,
			Data:        tok.Data,
			Attrs:       tok.Attributes,
			SelfClosing: tok.SelfClosing,
		})
	}
}

func tokenize(input string) ([]simpleToken, []string) {
	var errs []string
	z := NewTokenizer(func(code string, line, col int) {
		errs = append(errs, code)
	})
	z.AppendInput(input)
	z.MarkEndOfStream()
	return drainTokens(z), errs
}

func tokenizeChunked(input string, chunkSize int) []simpleToken {
	z := NewTokenizer(nil)
	var out []simpleToken
	runes := []rune(input)
	for i := 0; i < len(runes); i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		z.AppendInput(string(runes[i:end]))
		out = append(out, drainTokens(z)...)
	}
	z.MarkEndOfStream()
	out = append(out, drainTokens(z)...)
	// Re-coalesce characters split across chunk seams.
	var merged []simpleToken
	for _, tok := range out {
		if tok.Type == "character" && len(merged) > 0 && merged[len(merged)-1].Type == "character" {
			merged[len(merged)-1].Data += tok.Data
			continue
		}
		merged = append(merged, tok)
	}
	return merged
}

func TestTokenizerBasics(t *testing.T) {
	tests := []struct {
		in   string
		want []simpleToken
	}{
		{
			in: `<div class="a" id=b>x</div>`,
			want: []simpleToken{
				{Type: "start-tag", Name: "div", Attrs: []Attribute{{Name: "class", Value: "a"}, {Name: "id", Value: "b"}}},
				{Type: "character", Data: "x"},
				{Type: "end-tag", Name: "div"},
			},
		},
		{
			in: `<br/>`,
			want: []simpleToken{
				{Type: "start-tag", Name: "br", SelfClosing: true},
			},
		},
		{
			in: `<!-- hi -->`,
			want: []simpleToken{
				{Type: "comment", Data: " hi "},
			},
		},
		{
			in: `<!DOCTYPE html>`,
			want: []simpleToken{
				{Type: "doctype", Name: "html"},
			},
		},
		{
			in: `<INPUT TYPE=Text>`,
			want: []simpleToken{
				{Type: "start-tag", Name: "input", Attrs: []Attribute{{Name: "type", Value: "Text"}}},
			},
		},
		{
			in: `a< b`,
			want: []simpleToken{
				{Type: "character", Data: "a< b"},
			},
		},
		{
			in: `<?xml version="1.0"?>`,
			want: []simpleToken{
				{Type: "comment", Data: `?xml version="1.0"?`},
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, _ := tokenize(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizerDuplicateAttributeKeepsFirst(t *testing.T) {
	got, errs := tokenize(`<img src=1 src=2>`)
	require.Len(t, got, 1)
	assert.Equal(t, []Attribute{{Name: "src", Value: "1"}}, got[0].Attrs)
	assert.Contains(t, errs, "duplicate-attribute")
}

func TestTokenizerCharacterReferences(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr string
	}{
		{"a&amp;b", "a&b", ""},
		{"&lt;&gt;", "<>", ""},
		{"&#x41;&#66;", "AB", ""},
		{"&#65", "A", "missing-semicolon-after-character-reference"},
		{"&amp", "&", "missing-semicolon-after-character-reference"},
		{"&notit;", "¬it;", "missing-semicolon-after-character-reference"},
		{"&#128;", "€", "control-character-reference"},
		{"&#0;", "�", "null-character-reference"},
		{"&#xD800;", "�", "surrogate-character-reference"},
		{"&#x110000;", "�", "character-reference-outside-unicode-range"},
		{"&#18446744073709551657;", "�", "character-reference-outside-unicode-range"},
		{"&#xFFFFFFFFFFFFFFFF41;", "�", "character-reference-outside-unicode-range"},
		{"&bogus;", "&bogus;", "unknown-named-character-reference"},
		{"&", "&", ""},
		{"x & y", "x & y", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, errs := tokenize(tt.in)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Data)
			if tt.wantErr != "" {
				assert.Contains(t, errs, tt.wantErr)
			}
		})
	}
}

// The historical quirk: a semicolon-less reference inside an attribute
// stays literal when an equals sign or alphanumeric follows it.
func TestTokenizerAttributeCharacterReferenceQuirk(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<a b="x&noty">`, "x&noty"},
		{`<a b="x&amp=y">`, "x&amp=y"},
		{`<a b="x&amp;y">`, "x&y"},
		{`<a b="x&not z">`, "x¬ z"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, _ := tokenize(tt.in)
			require.Len(t, got, 1)
			require.Len(t, got[0].Attrs, 1)
			assert.Equal(t, tt.want, got[0].Attrs[0].Value)
		})
	}
}

func TestTokenizerNewlineNormalization(t *testing.T) {
	got, _ := tokenize("a\r\nb\rc\nd")
	require.Len(t, got, 1)
	assert.Equal(t, "a\nb\nc\nd", got[0].Data)
}

func TestTokenizerNullCharacter(t *testing.T) {
	got, errs := tokenize("a\u0000b")
	require.Len(t, got, 1)
	assert.Equal(t, "a\u0000b", got[0].Data)
	assert.Contains(t, errs, "unexpected-null-character")
}

func TestTokenizerRCDATA(t *testing.T) {
	z := NewTokenizer(nil)
	z.setState(rcDataState)
	z.setLastStartTag("title")
	z.AppendInput("a<b&amp;</title>")
	z.MarkEndOfStream()
	got := drainTokens(z)
	want := []simpleToken{
		{Type: "character", Data: "a<b&"},
		{Type: "end-tag", Name: "title"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizerScriptDoubleEscape(t *testing.T) {
	z := NewTokenizer(nil)
	z.setState(scriptDataState)
	z.setLastStartTag("script")
	z.AppendInput("<!--<script>x</script>--></script>ok")
	z.MarkEndOfStream()
	got := drainTokens(z)
	want := []simpleToken{
		{Type: "character", Data: "<!--<script>x</script>-->"},
		{Type: "end-tag", Name: "script"},
		{Type: "character", Data: "ok"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

// Feeding one rune at a time must produce the same stream as a single
// append, exercising every starvation/rewind path.
func TestTokenizerStreamingSeams(t *testing.T) {
	inputs := []string{
		`<div class="a" id=b>x&amp;y</div>`,
		`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN">`,
		`<!--comment--><p a="&notin;">&#x2209;</p>`,
		"line1\r\nline2\rline3",
		`<a href="?x=1&not=2">t</a>`,
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			want, _ := tokenize(in)
			for _, size := range []int{1, 2, 3, 7} {
				got := tokenizeChunked(in, size)
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("chunk size %d mismatch (-want +got):\n%s", size, diff)
				}
			}
		})
	}
}

func TestTokenizerDoctypeIdentifiers(t *testing.T) {
	z := NewTokenizer(nil)
	z.AppendInput(`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`)
	z.MarkEndOfStream()
	tok := z.NextToken()
	require.NotNil(t, tok)
	assert.Equal(t, docTypeToken, tok.TokenType)
	assert.Equal(t, "html", tok.TagName)
	assert.Equal(t, "-//W3C//DTD HTML 4.01//EN", tok.PublicIdentifier)
	assert.Equal(t, "http://www.w3.org/TR/html4/strict.dtd", tok.SystemIdentifier)
	assert.False(t, tok.ForceQuirks)
}

func TestTokenizerDocumentWriteSplice(t *testing.T) {
	z := NewTokenizer(nil)
	z.AppendInput("<p>ab")
	tok := z.NextToken()
	require.NotNil(t, tok)
	assert.Equal(t, startTagToken, tok.TokenType)
	tok = z.NextToken()
	require.NotNil(t, tok)
	assert.Equal(t, "a", tok.Data)

	// New text lands between the consumed "a" and the pending "b".
	z.InsertInputAtCurrentPosition("XY")
	z.MarkEndOfStream()
	var rest string
	for {
		tok = z.NextToken()
		if tok == nil || tok.TokenType == endOfFileToken {
			break
		}
		require.Equal(t, characterToken, tok.TokenType)
		rest += tok.Data
	}
	assert.Equal(t, "XYb", rest)
}

func TestResetAfterScriptExecution(t *testing.T) {
	z := NewTokenizer(nil)
	z.setState(scriptDataState)
	z.returnState = attributeValueDoubleQuotedState
	z.tokenBuilder.WriteTempBuffer('&')

	z.ResetAfterScriptExecution()
	assert.Equal(t, dataState, z.currentState)
	assert.Equal(t, dataState, z.returnState)
	assert.Equal(t, "", z.tokenBuilder.TempBuffer())

	z.AppendInput("<p>x")
	z.MarkEndOfStream()
	got := drainTokens(z)
	want := []simpleToken{
		{Type: "start-tag", Name: "p"},
		{Type: "character", Data: "x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchNamedEntity(t *testing.T) {
	tests := []struct {
		in    string
		name  string
		value string
		ok    bool
	}{
		{"amp;rest", "amp;", "&", true},
		{"amp rest", "amp", "&", true},
		{"notin;x", "notin;", "∉", true},
		{"noti", "not", "¬", true},
		{"zzz;", "", "", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			name, value, ok := matchNamedEntity([]rune(tt.in))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.name, name)
				assert.Equal(t, tt.value, value)
			}
		})
	}
}
