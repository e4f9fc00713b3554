package mathml

// Identifiers rendered as <mi>.
var identifiers = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ϵ",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "vartheta": "ϑ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"omicron": "ο", "pi": "π", "varpi": "ϖ", "rho": "ρ", "varrho": "ϱ",
	"sigma": "σ", "varsigma": "ς", "tau": "τ", "upsilon": "υ", "phi": "ϕ",
	"varphi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",

	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ", "Phi": "Φ", "Psi": "Ψ",
	"Omega": "Ω",

	"infty": "∞", "emptyset": "∅", "varnothing": "∅", "hbar": "ℏ",
	"ell": "ℓ", "Re": "ℜ", "Im": "ℑ", "aleph": "ℵ", "partial": "∂",
	"nabla": "∇", "wp": "℘",
}

// Operators and relations rendered as <mo>.
var operators = map[string]string{
	"pm": "±", "mp": "∓", "times": "×", "div": "÷", "cdot": "⋅", "ast": "∗",
	"star": "⋆", "circ": "∘", "bullet": "∙", "oplus": "⊕", "otimes": "⊗",
	"ominus": "⊖", "odot": "⊙",

	"le": "≤", "leq": "≤", "ge": "≥", "geq": "≥", "ne": "≠", "neq": "≠",
	"approx": "≈", "equiv": "≡", "sim": "∼", "simeq": "≃", "cong": "≅",
	"propto": "∝", "ll": "≪", "gg": "≫", "prec": "≺", "succ": "≻",

	"in": "∈", "notin": "∉", "ni": "∋", "subset": "⊂", "supset": "⊃",
	"subseteq": "⊆", "supseteq": "⊇", "cup": "∪", "cap": "∩",
	"setminus": "∖", "wedge": "∧", "land": "∧", "vee": "∨", "lor": "∨",
	"neg": "¬", "lnot": "¬", "forall": "∀", "exists": "∃", "nexists": "∄",

	"to": "→", "rightarrow": "→", "leftarrow": "←", "gets": "←",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "leftrightarrow": "↔",
	"Leftrightarrow": "⇔", "iff": "⟺", "implies": "⟹", "mapsto": "↦",
	"uparrow": "↑", "downarrow": "↓", "longrightarrow": "⟶",

	"ldots": "…", "dots": "…", "cdots": "⋯", "vdots": "⋮", "ddots": "⋱",
	"angle": "∠", "perp": "⊥", "parallel": "∥", "mid": "∣", "colon": ":",
	"prime": "′",

	"langle": "⟨", "rangle": "⟩", "lfloor": "⌊", "rfloor": "⌋",
	"lceil": "⌈", "rceil": "⌉", "lvert": "|", "rvert": "|", "vert": "|",
	"lVert": "‖", "rVert": "‖", "Vert": "‖",

	"{": "{", "}": "}", "|": "‖", "%": "%", "$": "$", "#": "#", "&": "&",
	"_": "_",
}

// Large operators. The bool is true when scripts go above and below.
var largeOperators = map[string]struct {
	symbol string
	limits bool
}{
	"sum":       {"∑", true},
	"prod":      {"∏", true},
	"coprod":    {"∐", true},
	"bigcup":    {"⋃", true},
	"bigcap":    {"⋂", true},
	"bigoplus":  {"⨁", true},
	"bigotimes": {"⨂", true},
	"bigvee":    {"⋁", true},
	"bigwedge":  {"⋀", true},
	"int":       {"∫", false},
	"iint":      {"∬", false},
	"iiint":     {"∭", false},
	"oint":      {"∮", false},
}

// Named functions rendered upright. The bool marks limit-style functions.
var functions = map[string]bool{
	"sin": false, "cos": false, "tan": false, "cot": false, "sec": false,
	"csc": false, "arcsin": false, "arccos": false, "arctan": false,
	"sinh": false, "cosh": false, "tanh": false, "coth": false,
	"log": false, "ln": false, "lg": false, "exp": false, "det": true,
	"dim": false, "ker": false, "deg": false, "gcd": true, "arg": false,
	"hom": false, "Pr": true,
	"lim": true, "limsup": true, "liminf": true, "max": true, "min": true,
	"sup": true, "inf": true,
}

var functionText = map[string]string{
	"limsup": "lim sup",
	"liminf": "lim inf",
}

// Spacing commands and their widths.
var spaces = map[string]string{
	",":     "0.167em",
	":":     "0.222em",
	">":     "0.222em",
	";":     "0.278em",
	"!":     "-0.167em",
	" ":     "0.333em",
	"quad":  "1em",
	"qquad": "2em",
}

// Font commands and the mathvariant they set.
var fontVariants = map[string]string{
	"mathrm":     "normal",
	"mathbf":     "bold",
	"mathit":     "italic",
	"mathbb":     "double-struck",
	"mathcal":    "script",
	"mathfrak":   "fraktur",
	"mathsf":     "sans-serif",
	"mathtt":     "monospace",
	"boldsymbol": "bold-italic",
	"bm":         "bold-italic",
}

// Accents placed over their argument.
var accents = map[string]string{
	"hat":       "^",
	"widehat":   "^",
	"bar":       "¯",
	"overline":  "‾",
	"vec":       "→",
	"dot":       "˙",
	"ddot":      "¨",
	"tilde":     "˜",
	"widetilde": "˜",
	"check":     "ˇ",
	"breve":     "˘",
	"acute":     "´",
	"grave":     "`",
}

// Text-mode commands whose brace argument is taken verbatim.
var textCommands = map[string]string{
	"text":       "normal",
	"textrm":     "normal",
	"textnormal": "normal",
	"mbox":       "normal",
	"hbox":       "normal",
	"textbf":     "bold",
	"textit":     "italic",
	"texttt":     "monospace",
	"textsf":     "sans-serif",
}

// Sized delimiter prefixes such as \big( or \Bigr].
var sizedDelimiters = map[string]bool{
	"big": true, "Big": true, "bigg": true, "Bigg": true,
	"bigl": true, "Bigl": true, "biggl": true, "Biggl": true,
	"bigr": true, "Bigr": true, "biggr": true, "Biggr": true,
	"bigm": true, "Bigm": true, "biggm": true, "Biggm": true,
}

// Commands that produce no output.
var ignored = map[string]bool{
	"displaystyle":      true,
	"textstyle":         true,
	"scriptstyle":       true,
	"scriptscriptstyle": true,
	"nonumber":          true,
	"notag":             true,
}

// matrixEnvironments maps environment names to their surrounding fences.
var matrixEnvironments = map[string][2]string{
	"matrix":      {"", ""},
	"smallmatrix": {"", ""},
	"pmatrix":     {"(", ")"},
	"bmatrix":     {"[", "]"},
	"Bmatrix":     {"{", "}"},
	"vmatrix":     {"|", "|"},
	"Vmatrix":     {"‖", "‖"},
	"cases":       {"{", ""},
	"aligned":     {"", ""},
	"align":       {"", ""},
	"align*":      {"", ""},
	"gathered":    {"", ""},
	"gather":      {"", ""},
	"gather*":     {"", ""},
	"split":       {"", ""},
	"array":       {"", ""},
}
