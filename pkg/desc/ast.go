// ast.go defines the node tree a parsed description document is made of.
package desc

import "strings"

// FormatKind identifies a basic inline formatting style.
type FormatKind int

const (
	Bold FormatKind = iota
	Italic
	Underline
)

func (k FormatKind) String() string {
	switch k {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	}
	return "unknown"
}

// Node is one element of a parsed description. Nodes are immutable once the
// parser returns; the same tree is walked once per target site.
type Node interface {
	// PlainText returns the node's visible text with all markup stripped.
	PlainText() string
}

// TextNode is literal content between tags.
type TextNode struct {
	Text string
}

func (n *TextNode) PlainText() string { return n.Text }

// FormatNode wraps children in bold, italic or underline markup.
type FormatNode struct {
	Kind     FormatKind
	Children []Node
}

func (n *FormatNode) PlainText() string { return plainText(n.Children) }

// LinkNode is an explicit [url=...] tag; children are the display text.
type LinkNode struct {
	URL      string
	Children []Node
}

func (n *LinkNode) PlainText() string { return plainText(n.Children) }

// SelfLinkNode is the [self][/self] tag. It resolves at render time to a
// link to the uploading author's account on the target site.
type SelfLinkNode struct{}

func (n *SelfLinkNode) PlainText() string { return "" }

// SwitchNode is a [user] or [siteurl] wrapper holding a switch chain.
type SwitchNode struct {
	Chain   *Chain
	UserTag bool // true for [user], false for [siteurl]
}

func (n *SwitchNode) PlainText() string { return "" }

// CondParam is the left-hand side of an [if] condition.
type CondParam int

const (
	ParamSite CondParam = iota
	ParamDefine
)

// CondOp is the comparison operator of an [if] condition.
type CondOp int

const (
	OpEq CondOp = iota
	OpNotEq
	OpIn
)

// CondNode is an [if]...[/if] with an optional byte-adjacent [else] branch.
type CondNode struct {
	Param   CondParam
	Op      CondOp
	Operand []string // single identifier for ==/!=, a set for "in"
	Then    []Node
	Else    []Node // nil when no [else] was attached
}

func (n *CondNode) PlainText() string { return plainText(n.Then) }

// Document is a fully parsed description source.
type Document struct {
	Nodes []Node
}

func plainText(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.PlainText())
	}
	return sb.String()
}
