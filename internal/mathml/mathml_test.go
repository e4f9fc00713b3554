package mathml

import (
	"errors"
	"strings"
	"testing"
)

func TestConvertSuperscript(t *testing.T) {
	got, err := Convert("x^2")
	if err != nil {
		t.Fatal(err)
	}
	want := `<math xmlns="http://www.w3.org/1998/Math/MathML" display="inline"><mrow><msup><mi>x</mi><mn>2</mn></msup></mrow></math>`
	if got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestConvertElements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"fraction", `\frac{a}{b}`, []string{`<mfrac><mi>a</mi><mi>b</mi></mfrac>`}},
		{"short fraction", `\frac12`, []string{`<mfrac><mn>1</mn><mn>2</mn></mfrac>`}},
		{"sqrt", `\sqrt{x}`, []string{`<msqrt><mi>x</mi></msqrt>`}},
		{"root", `\sqrt[3]{x}`, []string{`<mroot><mi>x</mi><mn>3</mn></mroot>`}},
		{"sum limits", `\sum_{i=1}^{n} i`, []string{
			`<munderover><mo>∑</mo><mrow><mi>i</mi><mo>=</mo><mn>1</mn></mrow><mi>n</mi></munderover>`,
		}},
		{"integral scripts", `\int_0^1 f`, []string{`<msubsup><mo>∫</mo><mn>0</mn><mn>1</mn></msubsup>`}},
		{"greek", `\alpha + \beta`, []string{`<mi>α</mi>`, `<mo>+</mo>`, `<mi>β</mi>`}},
		{"minus sign", `a - b`, []string{`<mo>−</mo>`}},
		{"first digit only", `x^23`, []string{`<msup><mi>x</mi><mn>2</mn></msup><mn>3</mn>`}},
		{"subscript", `a_{ij}`, []string{`<msub><mi>a</mi><mrow><mi>i</mi><mi>j</mi></mrow></msub>`}},
		{"prime", `f'(x)`, []string{`<msup><mi>f</mi><mo>′</mo></msup>`}},
		{"text", `x \text{if } y`, []string{`<mtext>if </mtext>`}},
		{"bold text", `\textbf{Total}`, []string{`<mtext mathvariant="bold">Total</mtext>`}},
		{"blackboard", `\mathbb{R}`, []string{`<mi mathvariant="double-struck">R</mi>`}},
		{"function", `\sin x`, []string{`<mi>sin</mi>`}},
		{"limit", `\lim_{x \to 0}`, []string{`<munder><mi>lim</mi>`, `<mo>→</mo>`}},
		{"operatorname", `\operatorname{rank} A`, []string{`<mi>rank</mi>`}},
		{"accent", `\hat{x}`, []string{`<mover accent="true"><mi>x</mi><mo>^</mo></mover>`}},
		{"negation", `a \not= b`, []string{`<mo>≠</mo>`}},
		{"fences", `\left( x \right)`, []string{
			`<mrow><mo fence="true">(</mo><mi>x</mi><mo fence="true">)</mo></mrow>`,
		}},
		{"empty fence", `\left. x \right|`, []string{`<mrow><mi>x</mi><mo fence="true">|</mo></mrow>`}},
		{"binomial", `\binom{n}{k}`, []string{`<mfrac linethickness="0"><mi>n</mi><mi>k</mi></mfrac>`}},
		{"spacing", `a\quad b`, []string{`<mspace width="1em"></mspace>`}},
		{"comment", "x % ignored\n+ y", []string{`<mo>+</mo>`}},
		{"line break", `x=1 \\ y=2`, []string{
			`<mn>1</mn><mspace linebreak="newline"></mspace><mi>y</mi>`,
		}},
		{"cases", `f = \begin{cases} 1 & x > 0 \\ 0 & \text{otherwise} \end{cases}`, []string{
			`<mo fence="true">{</mo><mtable columnalign="left left">`,
			`<mtext>otherwise</mtext>`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.src)
			if err != nil {
				t.Fatalf("Convert(%q): %v", tt.src, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("expected %q in\n%s", w, got)
				}
			}
		})
	}
}

func TestConvertComment(t *testing.T) {
	got, err := Convert("x % y\n")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<mi>y</mi>") {
		t.Errorf("expected comment to be dropped, got %s", got)
	}
}

func TestConvertMatrix(t *testing.T) {
	got, err := Convert(`\begin{pmatrix} a & b \\ c & d \\ \end{pmatrix}`)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(got, "<mtr>"); n != 2 {
		t.Errorf("expected 2 rows, got %d in %s", n, got)
	}
	if n := strings.Count(got, "<mtd>"); n != 4 {
		t.Errorf("expected 4 cells, got %d", n)
	}
	if !strings.Contains(got, `<mo fence="true">(</mo><mtable>`) {
		t.Errorf("expected parenthesis fence, got %s", got)
	}
}

func TestConvertDisplay(t *testing.T) {
	tests := []struct {
		src     string
		display string
	}{
		{"$x$", "inline"},
		{`\(x\)`, "inline"},
		{"$$x$$", "block"},
		{`\[x\]`, "block"},
		{"x", "inline"},
	}
	for _, tt := range tests {
		got, err := Convert(tt.src)
		if err != nil {
			t.Fatalf("Convert(%q): %v", tt.src, err)
		}
		if !strings.Contains(got, `display="`+tt.display+`"`) {
			t.Errorf("Convert(%q): expected display %s, got %s", tt.src, tt.display, got)
		}
		if !strings.Contains(got, "<mi>x</mi>") {
			t.Errorf("Convert(%q): expected <mi>x</mi>, got %s", tt.src, got)
		}
	}
}

func TestConvertDocument(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
The price is \$5 and the area is $a^2$. % $ignored$
\[ \frac{1}{2} \]
\begin{align}
x &= 1 \\
y &= 2
\end{align}
\end{document}
`
	got, err := Convert(doc)
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(got, "\n")
	if len(parts) != 3 {
		t.Fatalf("expected 3 math elements, got %d: %s", len(parts), got)
	}
	if !strings.Contains(parts[0], `display="inline"`) || !strings.Contains(parts[0], "<msup>") {
		t.Errorf("unexpected first element %s", parts[0])
	}
	if !strings.Contains(parts[1], `display="block"`) || !strings.Contains(parts[1], "<mfrac>") {
		t.Errorf("unexpected second element %s", parts[1])
	}
	if !strings.Contains(parts[2], `<mtable columnalign="right left">`) {
		t.Errorf("unexpected third element %s", parts[2])
	}
}

func TestConvertDocumentWithoutMath(t *testing.T) {
	_, err := Convert("\\documentclass{article}\n\\begin{document}\nHello.\n\\end{document}\n")
	if err == nil {
		t.Fatal("expected error for document without math")
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{`\frac{1}`, `missing argument for \frac`},
		{`{x`, "missing closing brace"},
		{`x}`, "unexpected }"},
		{`x^2^3`, "double superscript"},
		{`x_1_2`, "double subscript"},
		{`x^`, "missing argument for ^"},
		{`\foo`, `unknown command \foo`},
		{`\left( x`, `\left without matching \right`},
		{`x \right)`, `\right without matching \left`},
		{`\begin{pmatrix}1\end{bmatrix}`, `\begin{pmatrix} ended by \end{bmatrix}`},
		{`\begin{pmatrix}1`, `\begin{pmatrix} without matching \end`},
		{`\begin{tabular}x\end{tabular}`, "unknown environment"},
		{`a & b`, "misplaced alignment tab &"},
		{`x \`, "trailing backslash"},
		{`a $ b`, "math shift"},
	}
	for _, tt := range tests {
		_, err := Convert(tt.src)
		if err == nil {
			t.Errorf("Convert(%q): expected error", tt.src)
			continue
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Convert(%q): expected *SyntaxError, got %T", tt.src, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Errorf("Convert(%q): expected %q in %q", tt.src, tt.msg, err.Error())
		}
	}
}

func TestSyntaxErrorOffset(t *testing.T) {
	tests := []struct {
		src    string
		offset int
	}{
		{"x}", 1},
		{"$x}$", 2},
		{"  x}", 3},
	}
	for _, tt := range tests {
		_, err := Convert(tt.src)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("Convert(%q): expected *SyntaxError, got %v", tt.src, err)
		}
		if se.Offset != tt.offset {
			t.Errorf("Convert(%q): expected offset %d, got %d", tt.src, tt.offset, se.Offset)
		}
	}
}
