package parser

// Named character references. Keys are the entity name as it appears
// after the ampersand, including the terminating semicolon when the
// spec defines one. The legacy names in legacyEntities additionally
// resolve without a semicolon (with a missing-semicolon parse error).
//
// The table covers the legacy set in full plus the symbolic,
// punctuation, Greek and math names that occur in real documents.

// legacyEntities are the names that resolve with or without the
// trailing semicolon.
var legacyEntities = map[string]rune{
	"AElig": 0x00C6, "AMP": '&', "Aacute": 0x00C1, "Acirc": 0x00C2,
	"Agrave": 0x00C0, "Aring": 0x00C5, "Atilde": 0x00C3, "Auml": 0x00C4,
	"COPY": 0x00A9, "Ccedil": 0x00C7, "ETH": 0x00D0, "Eacute": 0x00C9,
	"Ecirc": 0x00CA, "Egrave": 0x00C8, "Euml": 0x00CB, "GT": '>',
	"Iacute": 0x00CD, "Icirc": 0x00CE, "Igrave": 0x00CC, "Iuml": 0x00CF,
	"LT": '<', "Ntilde": 0x00D1, "Oacute": 0x00D3, "Ocirc": 0x00D4,
	"Ograve": 0x00D2, "Oslash": 0x00D8, "Otilde": 0x00D5, "Ouml": 0x00D6,
	"QUOT": '"', "REG": 0x00AE, "THORN": 0x00DE, "Uacute": 0x00DA,
	"Ucirc": 0x00DB, "Ugrave": 0x00D9, "Uuml": 0x00DC, "Yacute": 0x00DD,
	"aacute": 0x00E1, "acirc": 0x00E2, "acute": 0x00B4, "aelig": 0x00E6,
	"agrave": 0x00E0, "amp": '&', "aring": 0x00E5, "atilde": 0x00E3,
	"auml": 0x00E4, "brvbar": 0x00A6, "ccedil": 0x00E7, "cedil": 0x00B8,
	"cent": 0x00A2, "copy": 0x00A9, "curren": 0x00A4, "deg": 0x00B0,
	"divide": 0x00F7, "eacute": 0x00E9, "ecirc": 0x00EA, "egrave": 0x00E8,
	"eth": 0x00F0, "euml": 0x00EB, "frac12": 0x00BD, "frac14": 0x00BC,
	"frac34": 0x00BE, "gt": '>', "iacute": 0x00ED, "icirc": 0x00EE,
	"iexcl": 0x00A1, "igrave": 0x00EC, "iquest": 0x00BF, "iuml": 0x00EF,
	"laquo": 0x00AB, "lt": '<', "macr": 0x00AF, "micro": 0x00B5,
	"middot": 0x00B7, "nbsp": 0x00A0, "not": 0x00AC, "ntilde": 0x00F1,
	"oacute": 0x00F3, "ocirc": 0x00F4, "ograve": 0x00F2, "ordf": 0x00AA,
	"ordm": 0x00BA, "oslash": 0x00F8, "otilde": 0x00F5, "ouml": 0x00F6,
	"para": 0x00B6, "plusmn": 0x00B1, "pound": 0x00A3, "quot": '"',
	"raquo": 0x00BB, "reg": 0x00AE, "sect": 0x00A7, "shy": 0x00AD,
	"sup1": 0x00B9, "sup2": 0x00B2, "sup3": 0x00B3, "szlig": 0x00DF,
	"thorn": 0x00FE, "times": 0x00D7, "uacute": 0x00FA, "ucirc": 0x00FB,
	"ugrave": 0x00F9, "uml": 0x00A8, "uuml": 0x00FC, "yacute": 0x00FD,
	"yen": 0x00A5, "yuml": 0x00FF,
}

// semicolonEntities only resolve with the semicolon.
var semicolonEntities = map[string]string{
	"apos":     "'",
	"OElig":    "Œ",
	"oelig":    "œ",
	"Scaron":   "Š",
	"scaron":   "š",
	"Yuml":     "Ÿ",
	"fnof":     "ƒ",
	"circ":     "ˆ",
	"tilde":    "˜",
	"ensp":     " ",
	"emsp":     " ",
	"thinsp":   " ",
	"zwnj":     "‌",
	"zwj":      "‍",
	"lrm":      "‎",
	"rlm":      "‏",
	"ndash":    "–",
	"mdash":    "—",
	"lsquo":    "‘",
	"rsquo":    "’",
	"sbquo":    "‚",
	"ldquo":    "“",
	"rdquo":    "”",
	"bdquo":    "„",
	"dagger":   "†",
	"Dagger":   "‡",
	"bull":     "•",
	"hellip":   "…",
	"permil":   "‰",
	"prime":    "′",
	"Prime":    "″",
	"lsaquo":   "‹",
	"rsaquo":   "›",
	"oline":    "‾",
	"frasl":    "⁄",
	"euro":     "€",
	"image":    "ℑ",
	"weierp":   "℘",
	"real":     "ℜ",
	"trade":    "™",
	"alefsym":  "ℵ",
	"larr":     "←",
	"uarr":     "↑",
	"rarr":     "→",
	"darr":     "↓",
	"harr":     "↔",
	"crarr":    "↵",
	"lArr":     "⇐",
	"uArr":     "⇑",
	"rArr":     "⇒",
	"dArr":     "⇓",
	"hArr":     "⇔",
	"forall":   "∀",
	"part":     "∂",
	"exist":    "∃",
	"empty":    "∅",
	"nabla":    "∇",
	"isin":     "∈",
	"notin":    "∉",
	"ni":       "∋",
	"prod":     "∏",
	"sum":      "∑",
	"minus":    "−",
	"lowast":   "∗",
	"radic":    "√",
	"prop":     "∝",
	"infin":    "∞",
	"ang":      "∠",
	"and":      "∧",
	"or":       "∨",
	"cap":      "∩",
	"cup":      "∪",
	"int":      "∫",
	"there4":   "∴",
	"sim":      "∼",
	"cong":     "≅",
	"asymp":    "≈",
	"ne":       "≠",
	"equiv":    "≡",
	"le":       "≤",
	"ge":       "≥",
	"sub":      "⊂",
	"sup":      "⊃",
	"nsub":     "⊄",
	"sube":     "⊆",
	"supe":     "⊇",
	"oplus":    "⊕",
	"otimes":   "⊗",
	"perp":     "⊥",
	"sdot":     "⋅",
	"lceil":    "⌈",
	"rceil":    "⌉",
	"lfloor":   "⌊",
	"rfloor":   "⌋",
	"lang":     "⟨",
	"rang":     "⟩",
	"loz":      "◊",
	"spades":   "♠",
	"clubs":    "♣",
	"hearts":   "♥",
	"diams":    "♦",
	"Alpha":    "Α",
	"Beta":     "Β",
	"Gamma":    "Γ",
	"Delta":    "Δ",
	"Epsilon":  "Ε",
	"Zeta":     "Ζ",
	"Eta":      "Η",
	"Theta":    "Θ",
	"Iota":     "Ι",
	"Kappa":    "Κ",
	"Lambda":   "Λ",
	"Mu":       "Μ",
	"Nu":       "Ν",
	"Xi":       "Ξ",
	"Omicron":  "Ο",
	"Pi":       "Π",
	"Rho":      "Ρ",
	"Sigma":    "Σ",
	"Tau":      "Τ",
	"Upsilon":  "Υ",
	"Phi":      "Φ",
	"Chi":      "Χ",
	"Psi":      "Ψ",
	"Omega":    "Ω",
	"alpha":    "α",
	"beta":     "β",
	"gamma":    "γ",
	"delta":    "δ",
	"epsilon":  "ε",
	"zeta":     "ζ",
	"eta":      "η",
	"theta":    "θ",
	"iota":     "ι",
	"kappa":    "κ",
	"lambda":   "λ",
	"mu":       "μ",
	"nu":       "ν",
	"xi":       "ξ",
	"omicron":  "ο",
	"pi":       "π",
	"rho":      "ρ",
	"sigmaf":   "ς",
	"sigma":    "σ",
	"tau":      "τ",
	"upsilon":  "υ",
	"phi":      "φ",
	"chi":      "χ",
	"psi":      "ψ",
	"omega":    "ω",
	"thetasym": "ϑ",
	"upsih":    "ϒ",
	"piv":      "ϖ",
}

// namedEntities is the flattened longest-match table; keys include
// the semicolon where it is required.
var namedEntities = map[string]string{}

// maxEntityNameLen bounds the lookahead a named reference needs.
var maxEntityNameLen int

func init() {
	for name, r := range legacyEntities {
		namedEntities[name] = string(r)
		namedEntities[name+";"] = string(r)
	}
	for name, s := range semicolonEntities {
		namedEntities[name+";"] = s
	}
	for name := range namedEntities {
		if len(name) > maxEntityNameLen {
			maxEntityNameLen = len(name)
		}
	}
}

// matchNamedEntity finds the longest table entry that is a prefix of
// input. It returns the matched name (semicolon included when
// matched) and its replacement.
func matchNamedEntity(input []rune) (name, value string, ok bool) {
	limit := maxEntityNameLen
	if len(input) < limit {
		limit = len(input)
	}
	for n := limit; n > 0; n-- {
		candidate := string(input[:n])
		if v, found := namedEntities[candidate]; found {
			return candidate, v, true
		}
	}
	return "", "", false
}
