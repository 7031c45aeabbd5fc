package parser

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/text/transform"

	"github.com/quantmew/Lithium-sub000/parser/dom"
)

// Config carries the knobs for a parse. The zero value parses with
// scripting off, default encoding sniffing and no callbacks.
type Config struct {
	// ScriptingEnabled changes how <noscript> parses and whether
	// OnScript fires.
	ScriptingEnabled bool

	// IframeSrcdoc marks the document as an iframe srcdoc document,
	// which never enters quirks mode from a missing doctype.
	IframeSrcdoc bool

	// ParserCannotChangeMode pins the document mode against doctype
	// driven changes.
	ParserCannotChangeMode bool

	// TransportCharset is the encoding label from the outer protocol,
	// such as a Content-Type charset parameter. Empty means none.
	TransportCharset string

	// OnParseError receives every parse error as it happens. Errors
	// are also collected on the parser regardless.
	OnParseError func(code string, line, col int)

	// OnScript fires synchronously when a script element's end tag is
	// processed. The callback may call DocumentWrite.
	OnScript func(p *Parser, script *dom.Node)

	// Builder substitutes a custom DOM builder. Nil uses the built-in
	// tree.
	Builder DOMBuilder

	// Logger, when set, receives the package's debug tracing.
	Logger *logrus.Logger
}

// ParseError is one recorded parse error with its 1-based position in
// the decoded input.
type ParseError struct {
	Code   string
	Line   int
	Column int
}

// Parser drives the pipeline: bytes in, decoded stream through the
// tokenizer, tokens through the tree builder, DOM out. It supports
// both one-shot and chunked feeding.
type Parser struct {
	cfg Config

	domBuilder DOMBuilder
	tokenizer  *Tokenizer
	builder    *TreeBuilder
	doc        *dom.Node

	// raw is every byte received so far; a meta triggered restart
	// reparses it from the top.
	raw      []byte
	decision encodingDecision
	decided  bool
	decoder  transform.Transformer
	undec    []byte

	// reparses counts meta restarts; at most one is allowed.
	reparses  int
	restarted bool

	errs       []ParseError
	inScript   bool
	endOfInput bool
	finished   bool
}

// NewParser prepares a parser for chunked feeding via Write and
// Finish.
func NewParser(cfg Config) *Parser {
	if cfg.Logger != nil {
		SetLogger(cfg.Logger)
	}
	p := &Parser{cfg: cfg}
	p.domBuilder = cfg.Builder
	if p.domBuilder == nil {
		p.domBuilder = NewDOMBuilder()
	}
	p.setupPipeline()
	return p
}

// Parse is the one-shot entry point.
func Parse(input []byte, cfg Config) (*dom.Node, []ParseError) {
	p := NewParser(cfg)
	p.Write(input)
	doc := p.Finish()
	return doc, p.Errors()
}

func (p *Parser) setupPipeline() {
	errh := func(code string, line, col int) {
		p.errs = append(p.errs, ParseError{Code: code, Line: line, Column: col})
		if p.cfg.OnParseError != nil {
			p.cfg.OnParseError(code, line, col)
		}
	}
	p.doc = p.domBuilder.CreateDocument()
	p.tokenizer = NewTokenizer(errh)
	p.builder = newTreeBuilder(p.domBuilder, p.tokenizer, p.doc, errh)
	p.builder.scripting = p.cfg.ScriptingEnabled
	p.builder.iframeSrcdoc = p.cfg.IframeSrcdoc
	p.builder.cannotChangeMode = p.cfg.ParserCannotChangeMode
	p.builder.onMeta = p.metaCharset
}

func (p *Parser) recordError(code parseError, line, col int) {
	p.errs = append(p.errs, ParseError{Code: string(code), Line: line, Column: col})
	if p.cfg.OnParseError != nil {
		p.cfg.OnParseError(string(code), line, col)
	}
}

// Document returns the document under construction. The tree is only
// complete after Finish.
func (p *Parser) Document() *dom.Node { return p.doc }

// Errors returns every parse error recorded so far.
func (p *Parser) Errors() []ParseError { return p.errs }

// Write feeds the next chunk of input bytes. Tokenization and tree
// construction advance as far as the chunk allows.
func (p *Parser) Write(chunk []byte) {
	if p.finished {
		return
	}
	p.raw = append(p.raw, chunk...)
	if !p.decided {
		// The prescan wants up to 1024 bytes before committing to a
		// tentative encoding.
		if len(p.raw) < 1024 && !p.endOfInput {
			return
		}
		p.decide()
	} else {
		p.feed(chunk, false)
	}
	p.pump()
}

// Finish marks end of input, drains the pipeline and returns the
// document.
func (p *Parser) Finish() *dom.Node {
	if p.finished {
		return p.doc
	}
	p.endOfInput = true
	if !p.decided {
		p.decide()
	} else {
		p.feed(nil, true)
	}
	p.tokenizer.MarkEndOfStream()
	p.pump()
	p.finished = true
	return p.doc
}

// DocumentWrite splices markup into the input stream. Inside an
// OnScript callback the text lands at the current parse position,
// matching document.write; otherwise it is appended.
func (p *Parser) DocumentWrite(markup string) {
	if p.inScript {
		p.tokenizer.InsertInputAtCurrentPosition(markup)
		return
	}
	p.tokenizer.AppendInput(markup)
}

// decide commits to an encoding for the bytes seen so far and feeds
// the whole buffer through the new decoder.
func (p *Parser) decide() {
	p.decision = determineEncoding(p.raw, p.cfg.TransportCharset)
	p.decided = true
	if p.decision.err != noError {
		p.recordError(p.decision.err, 1, 1)
	}
	p.domBuilder.SetCharacterSet(p.doc, p.decision.label)
	log.WithFields(logrus.Fields{
		"label":      p.decision.label,
		"confidence": p.decision.confidence.String(),
	}).Debug("encoding decided")

	enc := decodersByLabel[p.decision.label]
	p.decoder = enc.NewDecoder()
	p.undec = nil
	p.feed(p.raw[p.decision.bomLength:], p.endOfInput)
}

// feed pushes bytes through the streaming decoder, holding back any
// incomplete trailing sequence until more bytes arrive.
func (p *Parser) feed(chunk []byte, atEOF bool) {
	src := append(p.undec, chunk...)
	var out []byte
	dst := make([]byte, len(src)*2+16)
	for {
		nDst, nSrc, err := p.decoder.Transform(dst, src, atEOF)
		out = append(out, dst[:nDst]...)
		src = src[nSrc:]
		if err == transform.ErrShortDst {
			continue
		}
		// ErrShortSrc leaves a partial sequence for the next chunk.
		break
	}
	p.undec = src
	if len(out) > 0 {
		p.tokenizer.AppendInput(string(out))
	}
}

// pump runs the token loop until the tokenizer starves or the
// document is done.
func (p *Parser) pump() {
	for {
		tok := p.tokenizer.NextToken()
		if tok == nil {
			return
		}
		p.builder.ProcessToken(tok)
		if p.restarted {
			// The pipeline was rebuilt mid-token; the new tokenizer
			// picks up from the start of the stream.
			p.restarted = false
			continue
		}
		if script := p.builder.pendingScript; script != nil {
			p.builder.pendingScript = nil
			p.runScript(script)
		}
		if p.builder.stopped {
			return
		}
	}
}

func (p *Parser) runScript(script *dom.Node) {
	if !p.cfg.ScriptingEnabled || p.cfg.OnScript == nil {
		return
	}
	p.inScript = true
	p.cfg.OnScript(p, script)
	p.inScript = false
	p.tokenizer.ResetAfterScriptExecution()
}

// metaCharset applies the late <meta charset> rules: the change is
// honored once, and only while the current encoding is tentative.
func (p *Parser) metaCharset(t *Token) {
	raw := charsetFromMetaToken(t)
	if raw == "" {
		return
	}
	// UTF-16 self-references cannot be right for a stream already
	// decoding as ASCII-compatible text.
	switch raw {
	case "utf-16", "utf-16le", "utf-16be":
		raw = "utf-8"
	case "x-user-defined":
		raw = "windows-1252"
	}
	label, ok := normalizeEncodingLabel(raw)
	if !ok {
		log.WithField("label", raw).Debug("meta names unsupported encoding, keeping current")
		return
	}
	if label == p.decision.label {
		if p.decision.confidence != ConfidenceBOM && p.decision.confidence != ConfidenceTransport {
			p.decision.confidence = ConfidenceMeta
		}
		return
	}
	if p.decision.confidence == ConfidenceBOM || p.decision.confidence == ConfidenceTransport {
		p.recordError(encodingChangeBlocked, t.Line, t.Column)
		return
	}
	if p.reparses >= 1 {
		p.recordError(encodingChangeBlocked, t.Line, t.Column)
		return
	}
	p.restart(label)
}

// restart throws away the tree and reparses the buffered bytes under
// the new encoding.
func (p *Parser) restart(label string) {
	log.WithField("label", label).Debug("meta charset restart")
	p.reparses++
	p.restarted = true
	p.errs = nil
	p.setupPipeline()
	p.decision = encodingDecision{label: label, confidence: ConfidenceMeta}
	p.domBuilder.SetCharacterSet(p.doc, label)
	p.decoder = decodersByLabel[label].NewDecoder()
	p.undec = nil
	p.feed(p.raw, p.endOfInput)
	if p.endOfInput {
		p.tokenizer.MarkEndOfStream()
	}
}
