package parser

import "github.com/quantmew/Lithium-sub000/parser/dom"

// ParseFragment parses markup the way innerHTML does, in the context
// of the given element. A nil context parses as if for an unknown
// element. The children of the returned fragment are the parsed
// content.
func ParseFragment(markup string, context *dom.Node, cfg Config) (*dom.Node, []ParseError) {
	p := NewParser(cfg)
	b := p.builder
	z := p.tokenizer

	// Fragment input is already text, so the encoding stage and the
	// meta charset rules are out of the picture.
	p.decided = true
	p.decision = encodingDecision{label: "utf-8", confidence: ConfidenceTransport}
	b.onMeta = nil

	if context != nil {
		if context.OwnerDocument != nil && context.OwnerDocument.Document != nil {
			p.domBuilder.SetQuirksMode(p.doc, context.OwnerDocument.Document.Mode)
		}
		if context.Namespace == dom.HTMLNamespace {
			switch context.Name {
			case "title", "textarea":
				z.setState(rcDataState)
			case "style", "xmp", "iframe", "noembed", "noframes":
				z.setState(rawTextState)
			case "script":
				z.setState(scriptDataState)
			case "noscript":
				if cfg.ScriptingEnabled {
					z.setState(rawTextState)
				}
			case "plaintext":
				z.setState(plaintextState)
			}
			z.setLastStartTag(context.Name)
		}
	}

	root := p.domBuilder.CreateElement(p.doc, dom.HTMLNamespace, "html")
	p.domBuilder.AppendChild(p.doc, root)
	b.push(root)

	if context != nil {
		b.fragmentContext = context
		if context.Namespace == dom.HTMLNamespace && context.Name == "template" {
			b.templateModes = append(b.templateModes, inTemplate)
		}
		b.mode = b.resetInsertionMode()
		for anc := context; anc != nil; anc = anc.Parent {
			if anc.Namespace == dom.HTMLNamespace && anc.Name == "form" {
				b.formPointer = anc
				break
			}
		}
		b.syncTokenizerForeignFlag()
	}

	z.AppendInput(markup)
	z.MarkEndOfStream()
	p.endOfInput = true
	p.pump()
	p.finished = true

	frag := p.domBuilder.CreateDocumentFragment(p.doc)
	root.ReparentChildren(frag)
	return frag, p.errs
}
