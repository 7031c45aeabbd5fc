package parser

import (
	"strings"

	"github.com/quantmew/Lithium-sub000/parser/dom"
)

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var insertionModeNames = [...]string{
	initial:            "initial",
	beforeHTML:         "before html",
	beforeHead:         "before head",
	inHead:             "in head",
	inHeadNoScript:     "in head noscript",
	afterHead:          "after head",
	inBody:             "in body",
	text:               "text",
	inTable:            "in table",
	inTableText:        "in table text",
	inCaption:          "in caption",
	inColumnGroup:      "in column group",
	inTableBody:        "in table body",
	inRow:              "in row",
	inCell:             "in cell",
	inSelect:           "in select",
	inSelectInTable:    "in select in table",
	inTemplate:         "in template",
	afterBody:          "after body",
	inFrameset:         "in frameset",
	afterFrameset:      "after frameset",
	afterAfterBody:     "after after body",
	afterAfterFrameset: "after after frameset",
}

func (m insertionMode) String() string {
	if int(m) < len(insertionModeNames) {
		return insertionModeNames[m]
	}
	return "unknown"
}

type treeConstructionModeHandler func(t *Token) (bool, insertionMode, parseError)

// formattingEntry is one slot in the list of active formatting
// elements. A nil node is a marker.
type formattingEntry struct {
	node  *dom.Node
	token *Token
}

// TreeBuilder runs the tree construction stage: it consumes tokens,
// maintains the stack of open elements and the list of active
// formatting elements, and drives a DOMBuilder.
type TreeBuilder struct {
	builder   DOMBuilder
	tokenizer *Tokenizer
	doc       *dom.Node

	mode, originalMode insertionMode
	templateModes      []insertionMode
	mappings           map[insertionMode]treeConstructionModeHandler

	openElements     []*dom.Node
	activeFormatting []formattingEntry

	headPointer *dom.Node
	formPointer *dom.Node

	pendingTableText    []*Token
	tableTextNonSpace   bool

	framesetOK      bool
	fosterParenting bool
	stopped         bool

	// ignoreLF swallows the newline right after <pre>, <listing> and
	// <textarea>.
	ignoreLF bool

	scripting        bool
	iframeSrcdoc     bool
	cannotChangeMode bool

	// fragmentContext is the context element sentinel when parsing a
	// fragment; nil for document parses.
	fragmentContext *dom.Node

	// pendingFormIDs holds form-associated elements whose form
	// attribute named an id that has not been seen yet.
	pendingFormIDs map[string][]*dom.Node

	// pendingScript is the script element whose end tag was just
	// processed; the driver collects it and runs the callback.
	pendingScript *dom.Node

	// onMeta fires for each <meta> handled in head, so the driver can
	// apply the late charset rules.
	onMeta func(t *Token)

	// ackSelfClosing is set when a mode handler honors a token's
	// self-closing flag.
	ackSelfClosing bool

	errh ErrorHandler
}

func newTreeBuilder(builder DOMBuilder, z *Tokenizer, doc *dom.Node, errh ErrorHandler) *TreeBuilder {
	b := &TreeBuilder{
		builder:        builder,
		tokenizer:      z,
		doc:            doc,
		framesetOK:     true,
		pendingFormIDs: map[string][]*dom.Node{},
		errh:           errh,
	}
	b.createMappings()
	return b
}

func (b *TreeBuilder) createMappings() {
	b.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:            b.initialModeHandler,
		beforeHTML:         b.beforeHTMLModeHandler,
		beforeHead:         b.beforeHeadModeHandler,
		inHead:             b.inHeadModeHandler,
		inHeadNoScript:     b.inHeadNoScriptModeHandler,
		afterHead:          b.afterHeadModeHandler,
		inBody:             b.inBodyModeHandler,
		text:               b.textModeHandler,
		inTable:            b.inTableModeHandler,
		inTableText:        b.inTableTextModeHandler,
		inCaption:          b.inCaptionModeHandler,
		inColumnGroup:      b.inColumnGroupModeHandler,
		inTableBody:        b.inTableBodyModeHandler,
		inRow:              b.inRowModeHandler,
		inCell:             b.inCellModeHandler,
		inSelect:           b.inSelectModeHandler,
		inSelectInTable:    b.inSelectInTableModeHandler,
		inTemplate:         b.inTemplateModeHandler,
		afterBody:          b.afterBodyModeHandler,
		inFrameset:         b.inFramesetModeHandler,
		afterFrameset:      b.afterFramesetModeHandler,
		afterAfterBody:     b.afterAfterBodyModeHandler,
		afterAfterFrameset: b.afterAfterFramesetModeHandler,
	}
}

func (b *TreeBuilder) reportError(e parseError, t *Token) {
	if e == noError {
		return
	}
	log.WithFields(map[string]interface{}{
		"error": string(e),
		"mode":  b.mode.String(),
		"token": t.String(),
	}).Debug("tree builder parse error")
	if b.errh != nil {
		b.errh(string(e), t.Line, t.Column)
	}
}

// ProcessToken runs one token through the dispatcher, reprocessing as
// mode handlers request.
func (b *TreeBuilder) ProcessToken(t *Token) {
	if b.stopped {
		return
	}
	if t.TokenType == startTagToken {
		b.ackSelfClosing = false
	}
	if b.ignoreLF {
		b.ignoreLF = false
		if t.TokenType == characterToken && t.Data == "\n" {
			return
		}
	}
	reprocess := true
	for reprocess && !b.stopped {
		var err parseError
		if b.useForeignRules(t) {
			reprocess, err = b.foreignContentHandler(t)
		} else {
			var next insertionMode
			reprocess, next, err = b.mappings[b.mode](t)
			b.mode = next
		}
		b.reportError(err, t)
	}
	if t.TokenType == startTagToken && t.SelfClosing && !b.ackSelfClosing {
		b.reportError(unackedSelfClosingFlag, t)
	}
	b.syncTokenizerForeignFlag()
}

func (b *TreeBuilder) currentNode() *dom.Node {
	if len(b.openElements) == 0 {
		return nil
	}
	return b.openElements[len(b.openElements)-1]
}

// adjustedCurrentNode is the context element when a fragment parse
// has only its sentinel on the stack, the current node otherwise.
func (b *TreeBuilder) adjustedCurrentNode() *dom.Node {
	if b.fragmentContext != nil && len(b.openElements) == 1 {
		return b.fragmentContext
	}
	return b.currentNode()
}

func (b *TreeBuilder) syncTokenizerForeignFlag() {
	if b.tokenizer == nil {
		return
	}
	acn := b.adjustedCurrentNode()
	b.tokenizer.setAdjustedCurrentNodeForeign(acn != nil && acn.Namespace != dom.HTMLNamespace)
}

// useForeignRules decides whether the token goes through the foreign
// content rules instead of the current insertion mode.
func (b *TreeBuilder) useForeignRules(t *Token) bool {
	if len(b.openElements) == 0 {
		return false
	}
	acn := b.adjustedCurrentNode()
	if acn == nil || acn.Namespace == dom.HTMLNamespace {
		return false
	}
	if t.TokenType == endOfFileToken {
		return false
	}
	if isMathMLTextIntegrationPoint(acn) {
		if t.TokenType == characterToken {
			return false
		}
		if t.TokenType == startTagToken && t.TagName != "mglyph" && t.TagName != "malignmark" {
			return false
		}
	}
	if acn.Namespace == dom.MathMLNamespace && acn.Name == "annotation-xml" &&
		t.TokenType == startTagToken && t.TagName == "svg" {
		return false
	}
	if isHTMLIntegrationPoint(acn) {
		if t.TokenType == startTagToken || t.TokenType == characterToken {
			return false
		}
	}
	return true
}

// Element category tables.

var specialElements = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true,
	"aside": true, "base": true, "basefont": true, "bgsound": true,
	"blockquote": true, "body": true, "br": true, "button": true,
	"caption": true, "center": true, "col": true, "colgroup": true,
	"dd": true, "details": true, "dir": true, "div": true, "dl": true,
	"dt": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true,
	"frameset": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "head": true, "header": true,
	"hgroup": true, "hr": true, "html": true, "iframe": true,
	"img": true, "input": true, "isindex": true, "keygen": true,
	"li": true, "link": true, "listing": true, "main": true,
	"marquee": true, "menu": true, "meta": true, "nav": true,
	"noembed": true, "noframes": true, "noscript": true,
	"object": true, "ol": true, "p": true, "param": true,
	"plaintext": true, "pre": true, "script": true, "section": true,
	"select": true, "source": true, "style": true, "summary": true,
	"table": true, "tbody": true, "td": true, "template": true,
	"textarea": true, "tfoot": true, "th": true, "thead": true,
	"title": true, "tr": true, "track": true, "ul": true, "wbr": true,
	"xmp": true,
}

var specialMathMLElements = map[string]bool{
	"mi": true, "mo": true, "mn": true, "ms": true, "mtext": true,
	"annotation-xml": true,
}

var specialSVGElements = map[string]bool{
	"foreignObject": true, "desc": true, "title": true,
}

func isSpecialElement(n *dom.Node) bool {
	switch n.Namespace {
	case dom.HTMLNamespace:
		return specialElements[n.Name]
	case dom.MathMLNamespace:
		return specialMathMLElements[n.Name]
	case dom.SVGNamespace:
		return specialSVGElements[n.Name]
	}
	return false
}

var formAssociatedElements = map[string]bool{
	"button": true, "fieldset": true, "input": true, "label": true,
	"object": true, "output": true, "select": true, "textarea": true,
	"option": true, "optgroup": true, "meter": true, "progress": true,
}

// Scope checks.

type scopeEntry struct{ namespace, name string }

var defaultScopeList = []scopeEntry{
	{dom.HTMLNamespace, "applet"}, {dom.HTMLNamespace, "caption"},
	{dom.HTMLNamespace, "html"}, {dom.HTMLNamespace, "table"},
	{dom.HTMLNamespace, "td"}, {dom.HTMLNamespace, "th"},
	{dom.HTMLNamespace, "marquee"}, {dom.HTMLNamespace, "object"},
	{dom.HTMLNamespace, "template"},
	{dom.MathMLNamespace, "mi"}, {dom.MathMLNamespace, "mo"},
	{dom.MathMLNamespace, "mn"}, {dom.MathMLNamespace, "ms"},
	{dom.MathMLNamespace, "mtext"}, {dom.MathMLNamespace, "annotation-xml"},
	{dom.SVGNamespace, "foreignObject"}, {dom.SVGNamespace, "desc"},
	{dom.SVGNamespace, "title"},
}

func inEntryList(n *dom.Node, list []scopeEntry) bool {
	for _, e := range list {
		if n.Namespace == e.namespace && n.Name == e.name {
			return true
		}
	}
	return false
}

// elementInSpecificScope walks the stack from the top looking for an
// HTML element named target, stopping at any element in the list.
func (b *TreeBuilder) elementInSpecificScope(target string, list []scopeEntry) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		n := b.openElements[i]
		if n.Namespace == dom.HTMLNamespace && n.Name == target {
			return true
		}
		if inEntryList(n, list) {
			return false
		}
	}
	return false
}

// nodeInScope is the node-identity variant used by the adoption
// agency algorithm.
func (b *TreeBuilder) nodeInScope(target *dom.Node) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		n := b.openElements[i]
		if n == target {
			return true
		}
		if inEntryList(n, defaultScopeList) {
			return false
		}
	}
	return false
}

func (b *TreeBuilder) elementInScope(target string) bool {
	return b.elementInSpecificScope(target, defaultScopeList)
}

func (b *TreeBuilder) elementInListItemScope(target string) bool {
	list := append([]scopeEntry{
		{dom.HTMLNamespace, "ol"}, {dom.HTMLNamespace, "ul"},
	}, defaultScopeList...)
	return b.elementInSpecificScope(target, list)
}

func (b *TreeBuilder) elementInButtonScope(target string) bool {
	list := append([]scopeEntry{{dom.HTMLNamespace, "button"}}, defaultScopeList...)
	return b.elementInSpecificScope(target, list)
}

func (b *TreeBuilder) elementInTableScope(target string) bool {
	return b.elementInSpecificScope(target, []scopeEntry{
		{dom.HTMLNamespace, "html"}, {dom.HTMLNamespace, "table"},
		{dom.HTMLNamespace, "template"},
	})
}

// elementInSelectScope inverts the usual check: everything except
// optgroup and option terminates the search.
func (b *TreeBuilder) elementInSelectScope(target string) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		n := b.openElements[i]
		if n.Namespace == dom.HTMLNamespace && n.Name == target {
			return true
		}
		if n.Namespace != dom.HTMLNamespace || (n.Name != "optgroup" && n.Name != "option") {
			return false
		}
	}
	return false
}

// Stack helpers.

func (b *TreeBuilder) push(n *dom.Node) { b.openElements = append(b.openElements, n) }

func (b *TreeBuilder) pop() *dom.Node {
	if len(b.openElements) == 0 {
		return nil
	}
	n := b.openElements[len(b.openElements)-1]
	b.openElements = b.openElements[:len(b.openElements)-1]
	return n
}

func (b *TreeBuilder) removeFromStack(target *dom.Node) {
	for i, n := range b.openElements {
		if n == target {
			b.openElements = append(b.openElements[:i], b.openElements[i+1:]...)
			return
		}
	}
}

func (b *TreeBuilder) stackIndex(target *dom.Node) int {
	for i, n := range b.openElements {
		if n == target {
			return i
		}
	}
	return -1
}

func (b *TreeBuilder) stackContains(name string) bool {
	for _, n := range b.openElements {
		if n.Namespace == dom.HTMLNamespace && n.Name == name {
			return true
		}
	}
	return false
}

// popUntilInclusive pops elements until an HTML element with one of
// the names was popped.
func (b *TreeBuilder) popUntilInclusive(names ...string) {
	for len(b.openElements) > 0 {
		n := b.pop()
		if n.Namespace != dom.HTMLNamespace {
			continue
		}
		for _, name := range names {
			if n.Name == name {
				return
			}
		}
	}
}

var impliedEndTags = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true,
	"option": true, "p": true, "rb": true, "rp": true, "rt": true,
	"rtc": true,
}

var thoroughImpliedEndTags = map[string]bool{
	"caption": true, "colgroup": true, "dd": true, "dt": true,
	"li": true, "optgroup": true, "option": true, "p": true,
	"rb": true, "rp": true, "rt": true, "rtc": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "tr": true,
}

func (b *TreeBuilder) generateImpliedEndTags(except ...string) {
	for {
		cur := b.currentNode()
		if cur == nil || cur.Namespace != dom.HTMLNamespace || !impliedEndTags[cur.Name] {
			return
		}
		for _, e := range except {
			if cur.Name == e {
				return
			}
		}
		b.pop()
	}
}

func (b *TreeBuilder) generateImpliedEndTagsThoroughly() {
	for {
		cur := b.currentNode()
		if cur == nil || cur.Namespace != dom.HTMLNamespace || !thoroughImpliedEndTags[cur.Name] {
			return
		}
		b.pop()
	}
}

// Insertion.

// appropriatePlace computes the parent and the reference child for
// the next insertion, honoring foster parenting and template
// contents redirection.
func (b *TreeBuilder) appropriatePlace(override *dom.Node) (parent, before *dom.Node) {
	target := override
	if target == nil {
		target = b.currentNode()
	}
	if target == nil {
		return b.doc, nil
	}
	parent = target

	if b.fosterParenting && target.Namespace == dom.HTMLNamespace {
		switch target.Name {
		case "table", "tbody", "tfoot", "thead", "tr":
			lastTable, lastTemplate := -1, -1
			for i, n := range b.openElements {
				if n.Namespace != dom.HTMLNamespace {
					continue
				}
				switch n.Name {
				case "table":
					lastTable = i
				case "template":
					lastTemplate = i
				}
			}
			switch {
			case lastTemplate >= 0 && lastTemplate > lastTable:
				parent = b.openElements[lastTemplate]
			case lastTable < 0:
				parent = b.openElements[0]
			case b.openElements[lastTable].Parent != nil:
				return b.openElements[lastTable].Parent, b.openElements[lastTable]
			default:
				parent = b.openElements[lastTable-1]
			}
		}
	}

	if parent.Namespace == dom.HTMLNamespace && parent.Name == "template" && parent.Contents != nil {
		parent = parent.Contents
	}
	return parent, nil
}

func (b *TreeBuilder) insertNodeAt(parent, before, child *dom.Node) {
	if before != nil {
		b.builder.InsertBefore(parent, child, before)
	} else {
		b.builder.AppendChild(parent, child)
	}
}

func (b *TreeBuilder) insertComment(t *Token) {
	parent, before := b.appropriatePlace(nil)
	b.insertNodeAt(parent, before, b.builder.CreateComment(b.doc, t.Data))
}

func (b *TreeBuilder) insertCommentAt(t *Token, parent *dom.Node) {
	b.builder.AppendChild(parent, b.builder.CreateComment(b.doc, t.Data))
}

// insertCharacter coalesces with a text node already at the insertion
// point; character data never lands directly under the document.
func (b *TreeBuilder) insertCharacter(t *Token) {
	parent, before := b.appropriatePlace(nil)
	if parent.Type == dom.DocumentNode {
		return
	}
	var prev *dom.Node
	if before != nil {
		prev = before.PreviousSibling()
	} else {
		prev = parent.LastChild()
	}
	if prev != nil && prev.Type == dom.TextNode {
		b.builder.AppendData(prev, t.Data)
		return
	}
	b.insertNodeAt(parent, before, b.builder.CreateTextNode(b.doc, t.Data))
}

// createElementForToken makes the element and applies the token's
// attributes, with namespaced adjustment for foreign elements.
func (b *TreeBuilder) createElementForToken(t *Token, namespace string) *dom.Node {
	name := t.TagName
	if namespace == dom.SVGNamespace {
		name = adjustSVGTagName(name)
	}
	el := b.builder.CreateElement(b.doc, namespace, name)
	for _, attr := range t.Attributes {
		if namespace != dom.HTMLNamespace {
			if adj, ok := foreignAttributeAdjustments[attr.Name]; ok {
				b.builder.SetAttributeNS(el, adj.namespace, adj.prefix, adj.local, attr.Value)
				continue
			}
		}
		b.builder.SetAttribute(el, attr.Name, attr.Value)
	}
	if namespace == dom.HTMLNamespace && name == "template" {
		el.Contents = b.builder.CreateDocumentFragment(b.doc)
	}
	if namespace == dom.HTMLNamespace {
		if name == "form" {
			b.drainPendingFormAssociations(el)
		} else if formAssociatedElements[name] {
			b.associateFormOwner(el, t)
		}
	}
	return el
}

func (b *TreeBuilder) insertHTMLElement(t *Token) *dom.Node {
	return b.insertForeignElement(t, dom.HTMLNamespace)
}

func (b *TreeBuilder) insertForeignElement(t *Token, namespace string) *dom.Node {
	parent, before := b.appropriatePlace(nil)
	el := b.createElementForToken(t, namespace)
	b.insertNodeAt(parent, before, el)
	b.push(el)
	return el
}

// Form owner association.

func (b *TreeBuilder) associateFormOwner(el *dom.Node, t *Token) {
	if b.stackContains("template") {
		return
	}
	if id, ok := t.Attr("form"); ok {
		if candidate := b.builder.ElementByID(b.doc, id); candidate != nil &&
			candidate.Namespace == dom.HTMLNamespace && candidate.Name == "form" {
			b.builder.SetFormOwner(el, candidate)
		} else if id != "" {
			b.pendingFormIDs[id] = append(b.pendingFormIDs[id], el)
		}
		return
	}
	if b.formPointer != nil {
		b.builder.SetFormOwner(el, b.formPointer)
		return
	}
	if el.Name == "option" || el.Name == "optgroup" {
		for i := len(b.openElements) - 1; i >= 0; i-- {
			n := b.openElements[i]
			if n.Namespace == dom.HTMLNamespace && n.Name == "select" {
				if n.FormOwner != nil {
					b.builder.SetFormOwner(el, n.FormOwner)
				}
				return
			}
		}
	}
}

func (b *TreeBuilder) drainPendingFormAssociations(form *dom.Node) {
	id, ok := form.GetAttribute("id")
	if !ok || id == "" {
		return
	}
	for _, el := range b.pendingFormIDs[id] {
		b.builder.SetFormOwner(el, form)
	}
	delete(b.pendingFormIDs, id)
}

// Active formatting elements.

func (b *TreeBuilder) insertFormattingMarker() {
	b.activeFormatting = append(b.activeFormatting, formattingEntry{})
}

// pushActiveFormatting applies the Noah's Ark clause: at most three
// entries with the same name, namespace and attributes since the
// last marker.
func (b *TreeBuilder) pushActiveFormatting(node *dom.Node, t *Token) {
	matches := 0
	firstMatch := -1
	for i := len(b.activeFormatting) - 1; i >= 0; i-- {
		e := b.activeFormatting[i]
		if e.node == nil {
			break
		}
		if sameFormattingElement(e.node, node) {
			matches++
			firstMatch = i
		}
	}
	if matches >= 3 {
		b.activeFormatting = append(b.activeFormatting[:firstMatch], b.activeFormatting[firstMatch+1:]...)
	}
	b.activeFormatting = append(b.activeFormatting, formattingEntry{node: node, token: t.clone()})
}

func sameFormattingElement(a, other *dom.Node) bool {
	if a.Name != other.Name || a.Namespace != other.Namespace {
		return false
	}
	if len(a.Attrs) != len(other.Attrs) {
		return false
	}
	for _, attr := range a.Attrs {
		v, ok := other.GetAttribute(attr.Name)
		if !ok || v != attr.Value || attr.Namespace != "" {
			return false
		}
	}
	return true
}

func (b *TreeBuilder) formattingEntryIndex(node *dom.Node) int {
	for i, e := range b.activeFormatting {
		if e.node == node {
			return i
		}
	}
	return -1
}

func (b *TreeBuilder) removeFromActiveFormatting(node *dom.Node) {
	if i := b.formattingEntryIndex(node); i >= 0 {
		b.activeFormatting = append(b.activeFormatting[:i], b.activeFormatting[i+1:]...)
	}
}

func (b *TreeBuilder) clearFormattingToMarker() {
	for len(b.activeFormatting) > 0 {
		last := b.activeFormatting[len(b.activeFormatting)-1]
		b.activeFormatting = b.activeFormatting[:len(b.activeFormatting)-1]
		if last.node == nil {
			return
		}
	}
}

func (b *TreeBuilder) reconstructActiveFormattingElements() {
	if len(b.activeFormatting) == 0 {
		return
	}
	last := b.activeFormatting[len(b.activeFormatting)-1]
	if last.node == nil || b.stackIndex(last.node) >= 0 {
		return
	}

	// Rewind to the earliest entry after the last marker that is not
	// already open, then re-open elements forward from there.
	i := len(b.activeFormatting) - 1
	for i > 0 {
		prev := b.activeFormatting[i-1]
		if prev.node == nil || b.stackIndex(prev.node) >= 0 {
			break
		}
		i--
	}
	for ; i < len(b.activeFormatting); i++ {
		entry := b.activeFormatting[i]
		el := b.insertForeignElement(entry.token, dom.HTMLNamespace)
		b.activeFormatting[i] = formattingEntry{node: el, token: entry.token}
	}
}

// Adoption agency. Returns true when the caller should fall through
// to the any-other-end-tag rules.
func (b *TreeBuilder) adoptionAgency(t *Token) (bool, parseError) {
	subject := t.TagName
	if cur := b.currentNode(); cur != nil &&
		cur.Namespace == dom.HTMLNamespace && cur.Name == subject &&
		b.formattingEntryIndex(cur) < 0 {
		b.pop()
		return false, noError
	}

	var reported parseError
	for outer := 0; outer < 8; outer++ {
		// Find the target formatting element after the last marker.
		feIndex := -1
		for i := len(b.activeFormatting) - 1; i >= 0; i-- {
			e := b.activeFormatting[i]
			if e.node == nil {
				break
			}
			if e.node.Name == subject && e.node.Namespace == dom.HTMLNamespace {
				feIndex = i
				break
			}
		}
		if feIndex < 0 {
			return true, reported
		}
		fe := b.activeFormatting[feIndex]

		stackPos := b.stackIndex(fe.node)
		if stackPos < 0 {
			b.removeFromActiveFormatting(fe.node)
			return false, adoptionAgencyMisnested
		}
		if !b.nodeInScope(fe.node) {
			return false, adoptionAgencyMisnested
		}
		if fe.node != b.currentNode() {
			reported = adoptionAgencyMisnested
		}

		// Furthest block: first special element below the formatting
		// element.
		furthestIdx := -1
		for i := stackPos + 1; i < len(b.openElements); i++ {
			if isSpecialElement(b.openElements[i]) {
				furthestIdx = i
				break
			}
		}
		if furthestIdx < 0 {
			for b.currentNode() != fe.node {
				b.pop()
			}
			b.pop()
			b.removeFromActiveFormatting(fe.node)
			return false, reported
		}

		furthestBlock := b.openElements[furthestIdx]
		commonAncestor := b.openElements[stackPos-1]
		bookmark := feIndex

		node := furthestBlock
		lastNode := furthestBlock
		nodeIdx := furthestIdx
		for inner := 1; ; inner++ {
			nodeIdx--
			node = b.openElements[nodeIdx]
			if node == fe.node {
				break
			}
			entryIdx := b.formattingEntryIndex(node)
			if inner > 3 && entryIdx >= 0 {
				b.activeFormatting = append(b.activeFormatting[:entryIdx], b.activeFormatting[entryIdx+1:]...)
				if entryIdx < bookmark {
					bookmark--
				}
				entryIdx = -1
			}
			if entryIdx < 0 {
				b.openElements = append(b.openElements[:nodeIdx], b.openElements[nodeIdx+1:]...)
				continue
			}
			clone := b.createElementForToken(b.activeFormatting[entryIdx].token, dom.HTMLNamespace)
			b.activeFormatting[entryIdx].node = clone
			b.openElements[nodeIdx] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = entryIdx + 1
			}
			if lastNode.Parent != nil {
				lastNode.Parent.RemoveChild(lastNode)
			}
			b.builder.AppendChild(node, lastNode)
			lastNode = node
		}

		if lastNode.Parent != nil {
			lastNode.Parent.RemoveChild(lastNode)
		}
		parent, before := b.appropriatePlaceForFosterAware(commonAncestor)
		b.insertNodeAt(parent, before, lastNode)

		clone := b.createElementForToken(fe.token, dom.HTMLNamespace)
		furthestBlock.ReparentChildren(clone)
		b.builder.AppendChild(furthestBlock, clone)

		b.removeFromActiveFormatting(fe.node)
		if bookmark > len(b.activeFormatting) {
			bookmark = len(b.activeFormatting)
		}
		b.activeFormatting = append(b.activeFormatting[:bookmark],
			append([]formattingEntry{{node: clone, token: fe.token}}, b.activeFormatting[bookmark:]...)...)

		b.removeFromStack(fe.node)
		if fbIdx := b.stackIndex(furthestBlock); fbIdx >= 0 {
			b.openElements = append(b.openElements[:fbIdx+1],
				append([]*dom.Node{clone}, b.openElements[fbIdx+1:]...)...)
		}
	}
	return false, reported
}

// appropriatePlaceForFosterAware is the insertion location with an
// override target, fostering when the target is a table part.
func (b *TreeBuilder) appropriatePlaceForFosterAware(target *dom.Node) (*dom.Node, *dom.Node) {
	if target.Namespace == dom.HTMLNamespace {
		switch target.Name {
		case "table", "tbody", "tfoot", "thead", "tr":
			saved := b.fosterParenting
			b.fosterParenting = true
			parent, before := b.appropriatePlace(target)
			b.fosterParenting = saved
			return parent, before
		}
	}
	return b.appropriatePlace(target)
}

// closePElement closes a p element in button scope.
func (b *TreeBuilder) closePElement() {
	b.generateImpliedEndTags("p")
	b.popUntilInclusive("p")
}

// resetInsertionMode picks the mode from the stack contents; the
// fragment context substitutes for the bottom frame.
func (b *TreeBuilder) resetInsertionMode() insertionMode {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		node := b.openElements[i]
		last := i == 0
		if last && b.fragmentContext != nil {
			node = b.fragmentContext
		}
		if node.Namespace != dom.HTMLNamespace {
			if last {
				return inBody
			}
			continue
		}
		switch node.Name {
		case "select":
			if !last {
				for j := i - 1; j > 0; j-- {
					ancestor := b.openElements[j]
					if ancestor.Namespace != dom.HTMLNamespace {
						continue
					}
					if ancestor.Name == "template" {
						break
					}
					if ancestor.Name == "table" {
						return inSelectInTable
					}
				}
			}
			return inSelect
		case "td", "th":
			if !last {
				return inCell
			}
		case "tr":
			return inRow
		case "tbody", "thead", "tfoot":
			return inTableBody
		case "caption":
			return inCaption
		case "colgroup":
			return inColumnGroup
		case "table":
			return inTable
		case "template":
			if len(b.templateModes) > 0 {
				return b.templateModes[len(b.templateModes)-1]
			}
		case "head":
			if !last {
				return inHead
			}
		case "body":
			return inBody
		case "frameset":
			return inFrameset
		case "html":
			if b.headPointer == nil {
				return beforeHead
			}
			return afterHead
		}
		if last {
			return inBody
		}
	}
	return inBody
}

// Quirks determination.

var quirksPublicIDPrefixes = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

var quirksPublicIDs = []string{
	"-//w3o//dtd w3 html strict 3.0//en//",
	"-/w3c/dtd html 4.0 transitional/en",
	"html",
}

const quirksSystemID = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

func (b *TreeBuilder) isForceQuirks(t *Token) bool {
	if b.iframeSrcdoc {
		return false
	}
	if t.ForceQuirks || t.TagName != "html" {
		return true
	}
	public := strings.ToLower(t.PublicIdentifier)
	system := strings.ToLower(t.SystemIdentifier)
	if t.PublicIdentifier != missing {
		for _, exact := range quirksPublicIDs {
			if public == exact {
				return true
			}
		}
		for _, prefix := range quirksPublicIDPrefixes {
			if strings.HasPrefix(public, prefix) {
				return true
			}
		}
		if t.SystemIdentifier == missing {
			if strings.HasPrefix(public, "-//w3c//dtd html 4.01 frameset//") ||
				strings.HasPrefix(public, "-//w3c//dtd html 4.01 transitional//") {
				return true
			}
		}
	}
	if t.SystemIdentifier != missing && system == quirksSystemID {
		return true
	}
	return false
}

func (b *TreeBuilder) isLimitedQuirks(t *Token) bool {
	if t.PublicIdentifier == missing {
		return false
	}
	public := strings.ToLower(t.PublicIdentifier)
	if strings.HasPrefix(public, "-//w3c//dtd xhtml 1.0 frameset//") ||
		strings.HasPrefix(public, "-//w3c//dtd xhtml 1.0 transitional//") {
		return true
	}
	if t.SystemIdentifier != missing {
		if strings.HasPrefix(public, "-//w3c//dtd html 4.01 frameset//") ||
			strings.HasPrefix(public, "-//w3c//dtd html 4.01 transitional//") {
			return true
		}
	}
	return false
}

// useRulesFor processes the token with another mode's rules while
// keeping the current mode unless that mode redirects.
func (b *TreeBuilder) useRulesFor(t *Token, current, target insertionMode) (bool, insertionMode, parseError) {
	reprocess, next, err := b.mappings[target](t)
	if next != target {
		return reprocess, next, err
	}
	return reprocess, current, err
}

// stopParsing pops everything and freezes the builder.
func (b *TreeBuilder) stopParsing() {
	b.openElements = nil
	b.stopped = true
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		if !isASCIIWhitespace(int(r)) {
			return false
		}
	}
	return true
}
