package parser

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Confidence says how the charset was decided, which in turn governs
// whether a late <meta charset> is allowed to restart the parse.
type Confidence uint

const (
	ConfidenceDefault Confidence = iota
	ConfidenceTransport
	ConfidenceBOM
	ConfidenceMeta
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceDefault:
		return "Default"
	case ConfidenceTransport:
		return "Transport"
	case ConfidenceBOM:
		return "BOM"
	case ConfidenceMeta:
		return "Meta"
	}
	return "Unknown"
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodingDecision is the outcome of sniffing the document head.
type encodingDecision struct {
	label      string
	confidence Confidence
	// bomLength is how many leading bytes the decoder must strip.
	bomLength int
	// err is set when an unsupported label forced the utf-8 fallback.
	err parseError
}

var decodersByLabel = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"shift_jis":    japanese.ShiftJIS,
}

// normalizeEncodingLabel lowercases and trims a charset label and
// reports whether a decoder backs it.
func normalizeEncodingLabel(label string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "utf8" {
		l = "utf-8"
	}
	_, ok := decodersByLabel[l]
	return l, ok
}

// determineEncoding runs the byte-order-mark, transport and meta
// prescan steps over the head of the document.
func determineEncoding(head []byte, transportCharset string) encodingDecision {
	if bytes.HasPrefix(head, utf8BOM) {
		return encodingDecision{label: "utf-8", confidence: ConfidenceBOM, bomLength: len(utf8BOM)}
	}
	if transportCharset != "" {
		label, ok := normalizeEncodingLabel(transportCharset)
		if !ok {
			return encodingDecision{label: "utf-8", confidence: ConfidenceTransport, err: unsupportedEncoding}
		}
		return encodingDecision{label: label, confidence: ConfidenceTransport}
	}
	if label := prescanForCharset(head); label != "" {
		normalized, ok := normalizeEncodingLabel(label)
		if !ok {
			return encodingDecision{label: "utf-8", confidence: ConfidenceMeta, err: unsupportedEncoding}
		}
		return encodingDecision{label: normalized, confidence: ConfidenceMeta}
	}
	return encodingDecision{label: "utf-8", confidence: ConfidenceDefault}
}

// prescanForCharset scans the first 1024 bytes for a meta charset
// declaration, lowercased and ASCII-only. Both <meta charset=...> and
// the http-equiv content-type form declare the charset inside the
// meta tag, so one in-tag scan covers both.
func prescanForCharset(head []byte) string {
	window := head
	if len(window) > 1024 {
		window = window[:1024]
	}
	lower := strings.ToLower(string(window))

	for i := 0; ; {
		start := strings.Index(lower[i:], "<meta")
		if start < 0 {
			return ""
		}
		start += i
		end := strings.IndexByte(lower[start:], '>')
		var tag string
		if end < 0 {
			tag = lower[start:]
			i = len(lower)
		} else {
			tag = lower[start : start+end]
			i = start + end + 1
		}
		if label := charsetFromDirective(tag); label != "" {
			return label
		}
		if i >= len(lower) {
			return ""
		}
	}
}

// charsetFromDirective extracts the value of the first charset=
// directive in s, honoring single and double quoting.
func charsetFromDirective(s string) string {
	idx := strings.Index(s, "charset")
	if idx < 0 {
		return ""
	}
	rest := s[idx+len("charset"):]
	rest = strings.TrimLeft(rest, " \t\n\f\r")
	if !strings.HasPrefix(rest, "=") {
		return charsetFromDirective(s[idx+len("charset"):])
	}
	rest = strings.TrimLeft(rest[1:], " \t\n\f\r")
	if rest == "" {
		return ""
	}
	switch rest[0] {
	case '"', '\'':
		quote := rest[0]
		closeIdx := strings.IndexByte(rest[1:], quote)
		if closeIdx < 0 {
			return ""
		}
		return strings.TrimSpace(rest[1 : 1+closeIdx])
	default:
		endIdx := strings.IndexAny(rest, " \t\n\f\r;>\"'")
		if endIdx < 0 {
			endIdx = len(rest)
		}
		return strings.TrimSpace(rest[:endIdx])
	}
}

// charsetFromMetaToken pulls a charset label out of an emitted <meta>
// start tag, for the in-flight restart check.
func charsetFromMetaToken(t *Token) string {
	if v, ok := t.Attr("charset"); ok {
		return strings.TrimSpace(strings.ToLower(v))
	}
	if equiv, ok := t.Attr("http-equiv"); ok && strings.EqualFold(strings.TrimSpace(equiv), "content-type") {
		if content, ok := t.Attr("content"); ok {
			return charsetFromDirective(strings.ToLower(content))
		}
	}
	return ""
}
