// parser.go turns a token stream into a Document tree. Parsing is strict:
// unknown tags, unbalanced nesting and malformed switch chains fail the whole
// document with a *ParseError, there is no recovery or passthrough.
package desc

import "strings"

// Structural tag names. Site aliases and [generic] are resolved through the
// registry and may only appear inside [user]/[siteurl] wrappers.
const (
	tagBold      = "b"
	tagItalic    = "i"
	tagUnderline = "u"
	tagURL       = "url"
	tagSelf      = "self"
	tagIf        = "if"
	tagElse      = "else"
	tagUser      = "user"
	tagSiteURL   = "siteurl"
	tagGeneric   = "generic"
)

// Parse parses a description source against a site registry.
func Parse(input string, reg *Registry) (*Document, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{reg: reg, tokens: tokens}
	nodes, _, err := p.parseNodes("")
	if err != nil {
		return nil, err
	}
	return &Document{Nodes: nodes}, nil
}

type parser struct {
	reg    *Registry
	tokens []Token
	i      int
}

func (p *parser) peek() (Token, bool) {
	if p.i >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.i], true
}

func (p *parser) next() Token {
	tok := p.tokens[p.i]
	p.i++
	return tok
}

// peekSwitchTag reports whether the next token opens a switch tag: a site
// alias or [generic].
func (p *parser) peekSwitchTag() bool {
	tok, ok := p.peek()
	if !ok || tok.Type != TokenOpenTag {
		return false
	}
	if tok.Name == tagGeneric {
		return true
	}
	if isStructuralTag(tok.Name) {
		return false
	}
	_, known := p.reg.Lookup(tok.Name)
	return known
}

func isStructuralTag(name string) bool {
	switch name {
	case tagBold, tagItalic, tagUnderline, tagURL, tagSelf, tagIf, tagElse, tagUser, tagSiteURL:
		return true
	}
	return false
}

// parseNodes parses content until the matching close tag of closing is
// consumed, or until end of input when closing is empty. It returns the byte
// offset just past the consumed close tag, used for [else] adjacency.
func (p *parser) parseNodes(closing string) ([]Node, int, error) {
	var nodes []Node

	for {
		tok, ok := p.peek()
		if !ok {
			if closing != "" {
				return nil, 0, parseErrorf(p.endOffset(), "missing closing [/%s]", closing)
			}
			return nodes, 0, nil
		}

		switch tok.Type {
		case TokenText:
			p.next()
			nodes = append(nodes, &TextNode{Text: tok.Text})

		case TokenCloseTag:
			if tok.Name == closing {
				p.next()
				return nodes, tok.End, nil
			}
			return nil, 0, parseErrorf(tok.Pos, "unexpected closing tag [/%s]", tok.Name)

		case TokenOpenTag:
			node, err := p.parseTag()
			if err != nil {
				return nil, 0, err
			}
			nodes = append(nodes, node)
		}
	}
}

// endOffset approximates the end of the input for missing-close errors.
func (p *parser) endOffset() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].End
}

func (p *parser) parseTag() (Node, error) {
	tok := p.next()

	switch tok.Name {
	case tagBold, tagItalic, tagUnderline:
		kind := map[string]FormatKind{tagBold: Bold, tagItalic: Italic, tagUnderline: Underline}[tok.Name]
		children, _, err := p.parseNodes(tok.Name)
		if err != nil {
			return nil, err
		}
		return &FormatNode{Kind: kind, Children: children}, nil

	case tagURL:
		children, _, err := p.parseNodes(tagURL)
		if err != nil {
			return nil, err
		}
		return &LinkNode{URL: strings.TrimSpace(tok.Attr), Children: children}, nil

	case tagSelf:
		children, _, err := p.parseNodes(tagSelf)
		if err != nil {
			return nil, err
		}
		if len(children) != 0 {
			return nil, parseErrorf(tok.Pos, "[self] must have no content")
		}
		return &SelfLinkNode{}, nil

	case tagIf:
		return p.parseIf(tok)

	case tagElse:
		return nil, parseErrorf(tok.Pos, "[else] without a preceding [/if]")

	case tagUser, tagSiteURL:
		chain, err := p.parseChain(tok)
		if err != nil {
			return nil, err
		}
		return &SwitchNode{Chain: chain, UserTag: tok.Name == tagUser}, nil
	}

	if _, known := p.reg.Lookup(tok.Name); known || tok.Name == tagGeneric {
		return nil, parseErrorf(tok.Pos, "switch tag [%s] is only valid inside [user] or [siteurl]", tok.Name)
	}
	return nil, parseErrorf(tok.Pos, "unknown tag [%s]", tok.Name)
}

func (p *parser) parseIf(tok Token) (Node, error) {
	if !tok.HasAttr || strings.TrimSpace(tok.Attr) == "" {
		return nil, parseErrorf(tok.Pos, "[if] requires a condition")
	}
	param, op, operand, err := parseCondition(tok.Attr, tok.Pos)
	if err != nil {
		return nil, err
	}

	then, closeEnd, err := p.parseNodes(tagIf)
	if err != nil {
		return nil, err
	}

	node := &CondNode{Param: param, Op: op, Operand: operand, Then: then}

	// An [else] binds only when it is byte-adjacent to the [/if]; anything in
	// between, whitespace included, leaves it an orphan.
	if elseTok, ok := p.peek(); ok && elseTok.Type == TokenOpenTag &&
		elseTok.Name == tagElse && elseTok.Pos == closeEnd {
		p.next()
		elseNodes, _, err := p.parseNodes(tagElse)
		if err != nil {
			return nil, err
		}
		node.Else = elseNodes
	}

	return node, nil
}

// parseChain parses the switch tags nested inside a [user] or [siteurl]
// wrapper into a Chain, outermost binding first.
func (p *parser) parseChain(wrapper Token) (*Chain, error) {
	chain := &Chain{}
	seen := make(map[SiteID]bool)

	if !p.peekSwitchTag() {
		return nil, parseErrorf(wrapper.Pos, "[%s] must contain a switch tag", wrapper.Name)
	}
	if err := p.parseBinding(chain, seen); err != nil {
		return nil, err
	}

	tok, ok := p.peek()
	if !ok {
		return nil, parseErrorf(wrapper.Pos, "missing closing [/%s]", wrapper.Name)
	}
	if tok.Type != TokenCloseTag || tok.Name != wrapper.Name {
		return nil, parseErrorf(tok.Pos, "unexpected content inside [%s]", wrapper.Name)
	}
	p.next()
	return chain, nil
}

func (p *parser) parseBinding(chain *Chain, seen map[SiteID]bool) error {
	tok := p.next()

	if tok.Name == tagGeneric {
		// A second [generic] cannot reach this point: [generic] never nests
		// another switch tag, so each chain path parses at most one.
		attr := strings.TrimSpace(tok.Attr)
		if !tok.HasAttr || attr == "" {
			return parseErrorf(tok.Pos, "[generic] requires a URL attribute")
		}
		display, _, err := p.parseNodes(tagGeneric)
		if err != nil {
			return err
		}
		if strings.TrimSpace(plainText(display)) == "" {
			display = nil
		}
		chain.Bindings = append(chain.Bindings, Binding{Generic: true, Attr: attr, Display: display})
		return nil
	}

	site, _ := p.reg.Lookup(tok.Name)
	if seen[site.ID] {
		return parseErrorf(tok.Pos, "duplicate switch tag for site %s in one chain", site.ID)
	}
	seen[site.ID] = true

	attr := strings.TrimSpace(tok.Attr)
	if !tok.HasAttr || attr == "" {
		// No attribute: the tag's literal content becomes the attribute, so
		// [fa]Lorem[/fa] parses identically to [fa=Lorem][/fa].
		content, _, err := p.parseNodes(tok.Name)
		if err != nil {
			return err
		}
		text := strings.TrimSpace(plainText(content))
		if text == "" {
			return parseErrorf(tok.Pos, "switch tag [%s] needs an attribute or text content", tok.Name)
		}
		chain.Bindings = append(chain.Bindings, Binding{Site: site.ID, Attr: text})
		return nil
	}

	idx := len(chain.Bindings)
	chain.Bindings = append(chain.Bindings, Binding{Site: site.ID, Attr: attr})

	if p.peekSwitchTag() {
		// Nested switch tag: this binding contributes no display text.
		if err := p.parseBinding(chain, seen); err != nil {
			return err
		}
		end, ok := p.peek()
		if !ok {
			return parseErrorf(tok.Pos, "missing closing [/%s]", tok.Name)
		}
		if end.Type != TokenCloseTag || end.Name != tok.Name {
			return parseErrorf(end.Pos, "unexpected content after nested switch tag in [%s]", tok.Name)
		}
		p.next()
		return nil
	}

	display, _, err := p.parseNodes(tok.Name)
	if err != nil {
		return err
	}
	if strings.TrimSpace(plainText(display)) != "" {
		chain.Bindings[idx].Display = display
	}
	return nil
}
