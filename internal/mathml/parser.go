package mathml

import (
	"strings"

	"golang.org/x/net/html"
)

type parser struct {
	src  string
	toks []token
	pos  int
}

func parseFormula(src string) ([]*html.Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	nodes, err := p.parseRow(false)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.unexpected(t)
	}
	return nodes, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func isCommand(t token, names ...string) bool {
	if t.kind != tokCommand {
		return false
	}
	for _, n := range names {
		if t.val == n {
			return true
		}
	}
	return false
}

func (p *parser) unexpected(t token) error {
	switch {
	case t.kind == tokEOF:
		return errorf(t.pos, "unexpected end of formula")
	case t.kind == tokClose:
		return errorf(t.pos, "unexpected }")
	case t.kind == tokAlign:
		return errorf(t.pos, "misplaced alignment tab &")
	case isCommand(t, "right"):
		return errorf(t.pos, `\right without matching \left`)
	case isCommand(t, "end"):
		return errorf(t.pos, `\end without matching \begin`)
	case isCommand(t, `\`):
		return errorf(t.pos, `misplaced \\`)
	}
	return errorf(t.pos, "unexpected %q", t.val)
}

// parseRow parses until a token it does not own: }, &, \right, \end, the
// end of input, and \\ when inside a table.
func (p *parser) parseRow(inTable bool) ([]*html.Node, error) {
	var nodes []*html.Node
	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF, t.kind == tokClose, t.kind == tokAlign:
			return nodes, nil
		case isCommand(t, "right", "end"):
			return nodes, nil
		case isCommand(t, `\`):
			if inTable {
				return nodes, nil
			}
			p.next()
			if err := p.skipOptional(); err != nil {
				return nil, err
			}
			nodes = append(nodes, setAttr(elem("mspace"), "linebreak", "newline"))
			continue
		}
		n, err := p.parseScripted()
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
}

// parseScripted parses one atom and any sub/superscripts attached to it.
func (p *parser) parseScripted() (*html.Node, error) {
	base, limits, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	var sub, sup *html.Node
	var primes []*html.Node
loop:
	for {
		t := p.peek()
		switch {
		case isCommand(t, "limits", "nolimits"):
			p.next()
			limits = t.val == "limits"
		case t.kind == tokPrime:
			p.next()
			primes = append(primes, leaf("mo", "′"))
		case t.kind == tokSup:
			p.next()
			if sup != nil {
				return nil, errorf(t.pos, "double superscript")
			}
			if sup, err = p.parseArg("^"); err != nil {
				return nil, err
			}
		case t.kind == tokSub:
			p.next()
			if sub != nil {
				return nil, errorf(t.pos, "double subscript")
			}
			if sub, err = p.parseArg("_"); err != nil {
				return nil, err
			}
		default:
			break loop
		}
	}

	if len(primes) > 0 {
		if sup != nil {
			primes = append(primes, sup)
		}
		sup = row(primes)
	}
	if sub == nil && sup == nil {
		return base, nil
	}
	if base == nil {
		base = elem("mrow")
	}

	if limits {
		switch {
		case sub != nil && sup != nil:
			return elem("munderover", base, sub, sup), nil
		case sub != nil:
			return elem("munder", base, sub), nil
		default:
			return elem("mover", base, sup), nil
		}
	}
	switch {
	case sub != nil && sup != nil:
		return elem("msubsup", base, sub, sup), nil
	case sub != nil:
		return elem("msub", base, sub), nil
	default:
		return elem("msup", base, sup), nil
	}
}

// parseAtom parses a single element. A nil node with no error means the
// token produced no output (e.g. \displaystyle) or a script has no base.
func (p *parser) parseAtom() (*html.Node, bool, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return leaf("mn", t.val), false, nil
	case tokLetter:
		return leaf("mi", t.val), false, nil
	case tokPrime:
		return leaf("mo", "′"), false, nil
	case tokOperator:
		switch t.val {
		case "~":
			return space("0.333em"), false, nil
		case "-":
			return leaf("mo", "−"), false, nil
		}
		return leaf("mo", t.val), false, nil
	case tokOpen:
		p.pos--
		n, err := p.parseGroup()
		return n, false, err
	case tokSup, tokSub:
		p.pos--
		return nil, false, nil
	case tokCommand:
		return p.parseCommand(t)
	}
	return nil, false, p.unexpected(t)
}

func (p *parser) parseGroup() (*html.Node, error) {
	open := p.next()
	nodes, err := p.parseRow(false)
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind == tokClose {
		p.next()
		return row(nodes), nil
	}
	if t.kind == tokEOF {
		return nil, errorf(open.pos, "missing closing brace")
	}
	return nil, p.unexpected(t)
}

// parseArg reads one macro argument: a braced group or a single token.
func (p *parser) parseArg(what string) (*html.Node, error) {
	t := p.peek()
	switch {
	case t.kind == tokEOF, t.kind == tokClose, t.kind == tokAlign,
		t.kind == tokSup, t.kind == tokSub,
		isCommand(t, "right", "end", `\`):
		return nil, errorf(t.pos, "missing argument for %s", what)
	case t.kind == tokOpen:
		return p.parseGroup()
	case t.kind == tokNumber && len(t.val) > 1:
		// Only the first digit is the argument: x^23 is x² followed by 3.
		p.toks[p.pos].val = t.val[1:]
		p.toks[p.pos].pos++
		return leaf("mn", t.val[:1]), nil
	}
	n, _, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if n == nil {
		return elem("mrow"), nil
	}
	return n, nil
}

// verbatimArg returns the source text between a brace pair.
func (p *parser) verbatimArg(what string) (string, error) {
	open := p.peek()
	if open.kind != tokOpen {
		return "", errorf(open.pos, "missing argument for %s", what)
	}
	depth := 0
	for j := p.pos; j < len(p.toks); j++ {
		switch p.toks[j].kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
			if depth == 0 {
				text := p.src[open.pos+1 : p.toks[j].pos]
				p.pos = j + 1
				return text, nil
			}
		}
	}
	return "", errorf(open.pos, "missing closing brace")
}

// bracketEnd finds the ] that closes a [ at p.pos, skipping braced groups.
func (p *parser) bracketEnd() int {
	depth := 0
	for j := p.pos + 1; j < len(p.toks); j++ {
		switch t := p.toks[j]; {
		case t.kind == tokOpen:
			depth++
		case t.kind == tokClose:
			depth--
		case t.kind == tokOperator && t.val == "]" && depth == 0:
			return j
		}
	}
	return -1
}

// optionalArg parses a [..] argument if present.
func (p *parser) optionalArg() (*html.Node, error) {
	t := p.peek()
	if t.kind != tokOperator || t.val != "[" {
		return nil, nil
	}
	end := p.bracketEnd()
	if end < 0 {
		return nil, errorf(t.pos, "missing ]")
	}
	inner := make([]token, 0, end-p.pos)
	inner = append(inner, p.toks[p.pos+1:end]...)
	inner = append(inner, token{kind: tokEOF, pos: p.toks[end].pos})
	sub := &parser{src: p.src, toks: inner}
	nodes, err := sub.parseRow(false)
	if err != nil {
		return nil, err
	}
	if t := sub.peek(); t.kind != tokEOF {
		return nil, sub.unexpected(t)
	}
	p.pos = end + 1
	return row(nodes), nil
}

// skipOptional drops the spacing argument of \\[2pt].
func (p *parser) skipOptional() error {
	t := p.peek()
	if t.kind != tokOperator || t.val != "[" {
		return nil
	}
	end := p.bracketEnd()
	if end < 0 {
		return errorf(t.pos, "missing ]")
	}
	p.pos = end + 1
	return nil
}

// delimiter reads the fence after \left, \right, \middle or \big.
// "." yields "" (no fence).
func (p *parser) delimiter(what string) (string, error) {
	t := p.next()
	switch t.kind {
	case tokOperator:
		if t.val == "." {
			return "", nil
		}
		return t.val, nil
	case tokCommand:
		if s, ok := operators[t.val]; ok {
			return s, nil
		}
	}
	return "", errorf(t.pos, "missing delimiter after %s", what)
}

func (p *parser) parseCommand(t token) (*html.Node, bool, error) {
	name := t.val
	what := `\` + name

	if s, ok := identifiers[name]; ok {
		return leaf("mi", s), false, nil
	}
	if s, ok := operators[name]; ok {
		return leaf("mo", s), false, nil
	}
	if op, ok := largeOperators[name]; ok {
		return leaf("mo", op.symbol), op.limits, nil
	}
	if limits, ok := functions[name]; ok {
		text := name
		if ft, ok := functionText[name]; ok {
			text = ft
		}
		return leaf("mi", text), limits, nil
	}
	if w, ok := spaces[name]; ok {
		return space(w), false, nil
	}
	if ignored[name] {
		return nil, false, nil
	}
	if v, ok := fontVariants[name]; ok {
		arg, err := p.parseArg(what)
		if err != nil {
			return nil, false, err
		}
		return setVariant(arg, v), false, nil
	}
	if v, ok := textCommands[name]; ok {
		text, err := p.verbatimArg(what)
		if err != nil {
			return nil, false, err
		}
		n := leaf("mtext", text)
		if v != "normal" {
			setAttr(n, "mathvariant", v)
		}
		return n, false, nil
	}
	if a, ok := accents[name]; ok {
		arg, err := p.parseArg(what)
		if err != nil {
			return nil, false, err
		}
		return setAttr(elem("mover", arg, leaf("mo", a)), "accent", "true"), false, nil
	}
	if sizedDelimiters[name] {
		d, err := p.delimiter(what)
		if err != nil || d == "" {
			return nil, false, err
		}
		return leaf("mo", d), false, nil
	}

	switch name {
	case "frac", "dfrac", "tfrac", "cfrac":
		num, den, err := p.twoArgs(what)
		if err != nil {
			return nil, false, err
		}
		return elem("mfrac", num, den), false, nil
	case "binom", "dbinom", "tbinom":
		top, bottom, err := p.twoArgs(what)
		if err != nil {
			return nil, false, err
		}
		frac := setAttr(elem("mfrac", top, bottom), "linethickness", "0")
		return elem("mrow", leaf("mo", "("), frac, leaf("mo", ")")), false, nil
	case "sqrt":
		index, err := p.optionalArg()
		if err != nil {
			return nil, false, err
		}
		arg, err := p.parseArg(what)
		if err != nil {
			return nil, false, err
		}
		if index != nil {
			return elem("mroot", arg, index), false, nil
		}
		return elem("msqrt", arg), false, nil
	case "underline":
		arg, err := p.parseArg(what)
		if err != nil {
			return nil, false, err
		}
		return setAttr(elem("munder", arg, leaf("mo", "_")), "accentunder", "true"), false, nil
	case "overbrace", "underbrace":
		arg, err := p.parseArg(what)
		if err != nil {
			return nil, false, err
		}
		if name == "overbrace" {
			return elem("mover", arg, leaf("mo", "⏞")), true, nil
		}
		return elem("munder", arg, leaf("mo", "⏟")), true, nil
	case "operatorname":
		text, err := p.verbatimArg(what)
		if err != nil {
			return nil, false, err
		}
		return leaf("mi", strings.TrimSpace(text)), false, nil
	case "mathop":
		arg, err := p.parseArg(what)
		if err != nil {
			return nil, false, err
		}
		return arg, true, nil
	case "not":
		return p.parseNot(t)
	case "left":
		n, err := p.parseLeftRight(t)
		return n, false, err
	case "middle":
		d, err := p.delimiter(what)
		if err != nil || d == "" {
			return nil, false, err
		}
		return leaf("mo", d), false, nil
	case "begin":
		n, err := p.parseEnvironment(t)
		return n, false, err
	case "label", "tag":
		_, err := p.verbatimArg(what)
		return nil, false, err
	case "limits", "nolimits":
		return nil, false, nil
	}
	return nil, false, errorf(t.pos, `unknown command \%s`, name)
}

func (p *parser) twoArgs(what string) (*html.Node, *html.Node, error) {
	a, err := p.parseArg(what)
	if err != nil {
		return nil, nil, err
	}
	b, err := p.parseArg(what)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

var negated = map[string]string{
	"=": "≠",
	"∈": "∉",
	"<": "≮",
	">": "≯",
	"≤": "≰",
	"≥": "≱",
	"⊂": "⊄",
	"⊆": "⊈",
	"≡": "≢",
	"∼": "≁",
}

func (p *parser) parseNot(t token) (*html.Node, bool, error) {
	n, _, err := p.parseAtom()
	if err != nil {
		return nil, false, err
	}
	if n == nil || n.Data != "mo" {
		return nil, false, errorf(t.pos, `\not must be followed by a relation`)
	}
	text := textOf(n)
	if s, ok := negated[text]; ok {
		return leaf("mo", s), false, nil
	}
	return leaf("mo", text+"\u0338"), false, nil
}

func (p *parser) parseLeftRight(left token) (*html.Node, error) {
	open, err := p.delimiter(`\left`)
	if err != nil {
		return nil, err
	}
	body, err := p.parseRow(false)
	if err != nil {
		return nil, err
	}
	r := p.peek()
	if !isCommand(r, "right") {
		if r.kind == tokEOF {
			return nil, errorf(left.pos, `\left without matching \right`)
		}
		return nil, p.unexpected(r)
	}
	p.next()
	closing, err := p.delimiter(`\right`)
	if err != nil {
		return nil, err
	}

	var children []*html.Node
	if open != "" {
		children = append(children, setAttr(leaf("mo", open), "fence", "true"))
	}
	children = append(children, body...)
	if closing != "" {
		children = append(children, setAttr(leaf("mo", closing), "fence", "true"))
	}
	return elem("mrow", children...), nil
}

func (p *parser) parseEnvironment(begin token) (*html.Node, error) {
	raw, err := p.verbatimArg(`\begin`)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(raw)

	var content *html.Node
	switch name {
	case "equation", "equation*", "displaymath":
		nodes, err := p.parseRow(false)
		if err != nil {
			return nil, err
		}
		content = row(nodes)
	default:
		if _, ok := matrixEnvironments[name]; !ok {
			return nil, errorf(begin.pos, "unknown environment %q", name)
		}
		if name == "array" {
			if _, err := p.verbatimArg("array column spec"); err != nil {
				return nil, err
			}
		}
		rows, err := p.parseTable()
		if err != nil {
			return nil, err
		}
		content = elem("mtable", rows...)
	}

	end := p.peek()
	if !isCommand(end, "end") {
		if end.kind == tokEOF {
			return nil, errorf(begin.pos, `\begin{%s} without matching \end`, name)
		}
		return nil, p.unexpected(end)
	}
	p.next()
	endRaw, err := p.verbatimArg(`\end`)
	if err != nil {
		return nil, err
	}
	if endName := strings.TrimSpace(endRaw); endName != name {
		return nil, errorf(end.pos, `\begin{%s} ended by \end{%s}`, name, endName)
	}

	if content.Data != "mtable" {
		return content, nil
	}
	switch name {
	case "aligned", "align", "align*", "split":
		setAttr(content, "columnalign", "right left")
	case "cases":
		setAttr(content, "columnalign", "left left")
	}
	fences := matrixEnvironments[name]
	if fences[0] == "" && fences[1] == "" {
		return content, nil
	}
	var children []*html.Node
	if fences[0] != "" {
		children = append(children, setAttr(leaf("mo", fences[0]), "fence", "true"))
	}
	children = append(children, content)
	if fences[1] != "" {
		children = append(children, setAttr(leaf("mo", fences[1]), "fence", "true"))
	}
	return elem("mrow", children...), nil
}

// parseTable reads rows separated by \\ and cells separated by & up to the
// closing \end, which it leaves for the caller.
func (p *parser) parseTable() ([]*html.Node, error) {
	var rows, cells []*html.Node
	for {
		nodes, err := p.parseRow(true)
		if err != nil {
			return nil, err
		}
		cells = append(cells, elem("mtd", row(nodes)))

		t := p.peek()
		switch {
		case t.kind == tokAlign:
			p.next()
		case isCommand(t, `\`):
			p.next()
			if err := p.skipOptional(); err != nil {
				return nil, err
			}
			rows = append(rows, elem("mtr", cells...))
			cells = nil
		default:
			// A trailing \\ leaves one empty cell behind; drop it.
			if len(rows) == 0 || len(cells) > 1 || len(nodes) > 0 {
				rows = append(rows, elem("mtr", cells...))
			}
			return rows, nil
		}
	}
}
