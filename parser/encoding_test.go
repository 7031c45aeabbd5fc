package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineEncoding(t *testing.T) {
	tests := []struct {
		name           string
		head           []byte
		transport      string
		wantLabel      string
		wantConfidence Confidence
		wantBOM        int
		wantErr        parseError
	}{
		{
			name:           "utf-8 BOM",
			head:           []byte{0xEF, 0xBB, 0xBF, '<', 'p', '>'},
			wantLabel:      "utf-8",
			wantConfidence: ConfidenceBOM,
			wantBOM:        3,
		},
		{
			name:           "BOM beats transport",
			head:           []byte{0xEF, 0xBB, 0xBF},
			transport:      "shift_jis",
			wantLabel:      "utf-8",
			wantConfidence: ConfidenceBOM,
			wantBOM:        3,
		},
		{
			name:           "transport charset",
			head:           []byte(`<meta charset="shift_jis">`),
			transport:      "Windows-1252",
			wantLabel:      "windows-1252",
			wantConfidence: ConfidenceTransport,
		},
		{
			name:           "unsupported transport falls back",
			head:           nil,
			transport:      "hz-gb-2312",
			wantLabel:      "utf-8",
			wantConfidence: ConfidenceTransport,
			wantErr:        unsupportedEncoding,
		},
		{
			name:           "meta charset",
			head:           []byte(`<html><head><meta charset=Shift_JIS></head>`),
			wantLabel:      "shift_jis",
			wantConfidence: ConfidenceMeta,
		},
		{
			name:           "meta http-equiv",
			head:           []byte(`<meta http-equiv="Content-Type" content="text/html; charset=windows-1252">`),
			wantLabel:      "windows-1252",
			wantConfidence: ConfidenceMeta,
		},
		{
			name:           "unsupported meta falls back",
			head:           []byte(`<meta charset="koi8-r">`),
			wantLabel:      "utf-8",
			wantConfidence: ConfidenceMeta,
			wantErr:        unsupportedEncoding,
		},
		{
			name:           "nothing declared",
			head:           []byte(`<html><body>hi</body></html>`),
			wantLabel:      "utf-8",
			wantConfidence: ConfidenceDefault,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := determineEncoding(tt.head, tt.transport)
			assert.Equal(t, tt.wantLabel, got.label)
			assert.Equal(t, tt.wantConfidence, got.confidence)
			assert.Equal(t, tt.wantBOM, got.bomLength)
			assert.Equal(t, tt.wantErr, got.err)
		})
	}
}

func TestPrescanForCharset(t *testing.T) {
	tests := []struct {
		name string
		head string
		want string
	}{
		{"double quoted", `<meta charset="utf-8">`, "utf-8"},
		{"single quoted", `<meta charset='windows-1252'>`, "windows-1252"},
		{"unquoted", `<meta charset=utf-8>`, "utf-8"},
		{"spaces around equals", `<meta charset = utf-8 >`, "utf-8"},
		{"uppercase tag", `<META CHARSET="UTF-8">`, "utf-8"},
		{"http-equiv content-type", `<meta http-equiv="content-type" content="text/html; charset=shift_jis">`, "shift_jis"},
		{"second meta wins when first has none", `<meta name="viewport" content="width=device-width"><meta charset=utf-8>`, "utf-8"},
		{"inside comment still found", `<!-- <meta charset=utf-8> -->`, "utf-8"},
		{"no meta", `<html><body></body></html>`, ""},
		{"unterminated quote", `<meta charset="utf-8`, ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, prescanForCharset([]byte(tt.head)))
		})
	}
}

func TestPrescanWindowLimit(t *testing.T) {
	head := make([]byte, 0, 2048)
	for len(head) < 1100 {
		head = append(head, "<!-- padding -->"...)
	}
	head = append(head, `<meta charset="shift_jis">`...)
	assert.Equal(t, "", prescanForCharset(head))
}

func TestNormalizeEncodingLabel(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"UTF-8", "utf-8", true},
		{" utf8 ", "utf-8", true},
		{"Windows-1252", "windows-1252", true},
		{"iso-8859-1", "iso-8859-1", true},
		{"Shift_JIS", "shift_jis", true},
		{"utf-16le", "utf-16le", false},
		{"ebcdic", "ebcdic", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := normalizeEncodingLabel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestCharsetFromMetaToken(t *testing.T) {
	tests := []struct {
		name string
		tok  *Token
		want string
	}{
		{
			name: "charset attribute",
			tok:  &Token{TokenType: startTagToken, TagName: "meta", Attributes: []Attribute{{Name: "charset", Value: " UTF-8 "}}},
			want: "utf-8",
		},
		{
			name: "http-equiv form",
			tok: &Token{TokenType: startTagToken, TagName: "meta", Attributes: []Attribute{
				{Name: "http-equiv", Value: "Content-Type"},
				{Name: "content", Value: "text/html; charset=windows-1252"},
			}},
			want: "windows-1252",
		},
		{
			name: "http-equiv without content-type",
			tok: &Token{TokenType: startTagToken, TagName: "meta", Attributes: []Attribute{
				{Name: "http-equiv", Value: "refresh"},
				{Name: "content", Value: "charset=utf-8"},
			}},
			want: "",
		},
		{
			name: "no declaration",
			tok:  &Token{TokenType: startTagToken, TagName: "meta", Attributes: []Attribute{{Name: "name", Value: "author"}}},
			want: "",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, charsetFromMetaToken(tt.tok))
		})
	}
}
