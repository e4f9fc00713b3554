package mathml

import "golang.org/x/net/html"

const namespace = "http://www.w3.org/1998/Math/MathML"

func elem(tag string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, Namespace: "math"}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

func leaf(tag, text string) *html.Node {
	n := elem(tag)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func setAttr(n *html.Node, key, val string) *html.Node {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}

func space(width string) *html.Node {
	return setAttr(elem("mspace"), "width", width)
}

// row collapses a single node and wraps anything else in <mrow>.
func row(nodes []*html.Node) *html.Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return elem("mrow", nodes...)
}

// textOf returns the text of a token element such as <mo>, or "".
func textOf(n *html.Node) string {
	if n == nil || n.FirstChild == nil || n.FirstChild.Type != html.TextNode {
		return ""
	}
	return n.FirstChild.Data
}

// setVariant applies a mathvariant to a token element, or wraps anything
// else in <mstyle>.
func setVariant(n *html.Node, variant string) *html.Node {
	switch n.Data {
	case "mi", "mn", "mo", "mtext":
		return setAttr(n, "mathvariant", variant)
	}
	return setAttr(elem("mstyle", n), "mathvariant", variant)
}
