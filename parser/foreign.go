package parser

import (
	"github.com/quantmew/Lithium-sub000/parser/dom"
)

// Foreign content support: SVG and MathML case adjustment tables,
// integration points and the breakout tag set.

// svgTagNameAdjustments restores the canonical mixed-case SVG element
// names after the tokenizer lowercased them.
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

var svgAttributeAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

var mathmlAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

// foreignNamespacedAttribute names the namespace triple an xlink:,
// xml: or xmlns-prefixed attribute gets on a foreign element.
type foreignNamespacedAttribute struct {
	namespace, prefix, local string
}

var foreignAttributeAdjustments = map[string]foreignNamespacedAttribute{
	"xlink:actuate": {dom.XLinkNamespace, "xlink", "actuate"},
	"xlink:arcrole": {dom.XLinkNamespace, "xlink", "arcrole"},
	"xlink:href":    {dom.XLinkNamespace, "xlink", "href"},
	"xlink:role":    {dom.XLinkNamespace, "xlink", "role"},
	"xlink:show":    {dom.XLinkNamespace, "xlink", "show"},
	"xlink:title":   {dom.XLinkNamespace, "xlink", "title"},
	"xlink:type":    {dom.XLinkNamespace, "xlink", "type"},
	"xml:lang":      {dom.XMLNamespace, "xml", "lang"},
	"xml:space":     {dom.XMLNamespace, "xml", "space"},
	"xmlns":         {dom.XMLNSNamespace, "", "xmlns"},
	"xmlns:xlink":   {dom.XMLNSNamespace, "xmlns", "xlink"},
}

// foreignBreakoutTags are the HTML start tags that pop foreign
// content and hand processing back to the HTML rules.
var foreignBreakoutTags = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true,
	"hr": true, "i": true, "img": true, "li": true, "listing": true,
	"menu": true, "meta": true, "nobr": true, "ol": true, "p": true,
	"pre": true, "ruby": true, "s": true, "small": true, "span": true,
	"strong": true, "strike": true, "sub": true, "sup": true,
	"table": true, "tt": true, "u": true, "ul": true, "var": true,
}

// isForeignBreakout reports whether a start tag forces the parser out
// of foreign content.
func isForeignBreakout(t *Token) bool {
	if foreignBreakoutTags[t.TagName] {
		return true
	}
	if t.TagName == "font" {
		for _, name := range []string{"color", "face", "size"} {
			if _, ok := t.Attr(name); ok {
				return true
			}
		}
	}
	return false
}

func adjustSVGTagName(name string) string {
	if adjusted, ok := svgTagNameAdjustments[name]; ok {
		return adjusted
	}
	return name
}

func adjustSVGAttributes(t *Token) {
	for i := range t.Attributes {
		if adjusted, ok := svgAttributeAdjustments[t.Attributes[i].Name]; ok {
			t.Attributes[i].Name = adjusted
		}
	}
}

func adjustMathMLAttributes(t *Token) {
	for i := range t.Attributes {
		if adjusted, ok := mathmlAttributeAdjustments[t.Attributes[i].Name]; ok {
			t.Attributes[i].Name = adjusted
		}
	}
}

// isMathMLTextIntegrationPoint reports whether HTML rules apply to
// character and most start tag tokens inside the node.
func isMathMLTextIntegrationPoint(n *dom.Node) bool {
	if n == nil || n.Namespace != dom.MathMLNamespace {
		return false
	}
	switch n.Name {
	case "mi", "mo", "mn", "ms", "mtext":
		return true
	}
	return false
}

// isHTMLIntegrationPoint reports whether the node hosts HTML content
// inside a foreign subtree.
func isHTMLIntegrationPoint(n *dom.Node) bool {
	if n == nil {
		return false
	}
	switch n.Namespace {
	case dom.SVGNamespace:
		switch n.Name {
		case "foreignObject", "desc", "title":
			return true
		}
	case dom.MathMLNamespace:
		if n.Name == "annotation-xml" {
			if enc, ok := n.GetAttribute("encoding"); ok {
				switch toLowerASCII(enc) {
				case "text/html", "application/xhtml+xml":
					return true
				}
			}
		}
	}
	return false
}

func toLowerASCII(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = toASCIILower(r)
	}
	return string(out)
}

// foreignContentHandler applies the foreign content rules; the
// insertion mode does not change here. A true return sends the token
// back through the regular dispatcher.
func (b *TreeBuilder) foreignContentHandler(t *Token) (bool, parseError) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			b.insertCharacter(&Token{TokenType: characterToken, Data: "�", Line: t.Line, Column: t.Column})
			return false, unexpectedNullCharacter
		}
		b.insertCharacter(t)
		if !isAllWhitespace(t.Data) {
			b.framesetOK = false
		}
		return false, noError
	case commentToken:
		b.insertComment(t)
		return false, noError
	case docTypeToken:
		return false, unexpectedDoctype
	case startTagToken:
		if isForeignBreakout(t) {
			for {
				cur := b.currentNode()
				if cur == nil || cur.Namespace == dom.HTMLNamespace ||
					isMathMLTextIntegrationPoint(cur) || isHTMLIntegrationPoint(cur) {
					break
				}
				b.pop()
			}
			return true, misplacedStartTag
		}
		acn := b.adjustedCurrentNode()
		switch acn.Namespace {
		case dom.SVGNamespace:
			adjustSVGAttributes(t)
		case dom.MathMLNamespace:
			adjustMathMLAttributes(t)
		}
		b.insertForeignElement(t, acn.Namespace)
		if t.SelfClosing {
			el := b.pop()
			b.ackSelfClosing = true
			if el != nil && el.Namespace == dom.SVGNamespace && el.Name == "script" {
				b.pendingScript = el
			}
		}
		return false, noError
	case endTagToken:
		cur := b.currentNode()
		if cur != nil && cur.Namespace == dom.SVGNamespace && cur.Name == "script" &&
			t.TagName == "script" {
			b.pendingScript = b.pop()
			return false, noError
		}
		var err parseError
		if cur != nil && toLowerASCII(cur.Name) != t.TagName {
			err = misplacedEndTag
		}
		for i := len(b.openElements) - 1; i > 0; i-- {
			node := b.openElements[i]
			if toLowerASCII(node.Name) == t.TagName {
				for len(b.openElements) > i {
					b.pop()
				}
				return false, err
			}
			if b.openElements[i-1].Namespace == dom.HTMLNamespace {
				// No foreign match; hand the token to the current
				// insertion mode directly.
				b.reportError(err, t)
				reprocess, next, herr := b.mappings[b.mode](t)
				b.mode = next
				return reprocess, herr
			}
		}
		return false, err
	}
	return false, noError
}
