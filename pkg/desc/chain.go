// chain.go models nested site switch tags and picks the binding that applies
// for a target site.
package desc

// Binding is one switch tag in a chain, outermost to innermost.
type Binding struct {
	Site    SiteID // canonical site; unset when Generic
	Generic bool
	Attr    string // username for [user] chains, raw URL for [siteurl]/[generic]
	Display []Node // literal display content wrapped by this tag, if any
}

// Chain is the ordered nesting of switch tags, used as the unit of resolution.
// At most one binding carries display content: the innermost tag that wrapped
// literal text.
type Chain struct {
	Bindings []Binding
}

// Resolved is the outcome of resolving a chain for one target site.
type Resolved struct {
	// Site the link points at. Empty for generic bindings, whose Attr is
	// already a literal URL rather than a username.
	Site SiteID
	Attr string
	// Display is the content shown for the link. Nil means no override was
	// present and the Attr itself is echoed as the visible name.
	Display []Node
}

// override returns the chain-wide display override: literal content wrapped by
// a site-specific tag. A [generic] tag's body is private to the generic
// binding and never overrides an exact site match.
func (c *Chain) override() []Node {
	for _, b := range c.Bindings {
		if !b.Generic && len(b.Display) > 0 {
			return b.Display
		}
	}
	return nil
}

func (c *Chain) generic() *Binding {
	for i := range c.Bindings {
		if c.Bindings[i].Generic {
			return &c.Bindings[i]
		}
	}
	return nil
}

// innermost returns the innermost site-specific binding.
func (c *Chain) innermost() *Binding {
	for i := len(c.Bindings) - 1; i >= 0; i-- {
		if !c.Bindings[i].Generic {
			return &c.Bindings[i]
		}
	}
	return nil
}

// Resolve picks the binding that applies for target. Priority order:
//
//  1. exact site match, linked against the target site
//  2. generic fallback, linked at its literal URL
//  3. for user chains only, the innermost site tag, linked at that tag's own
//     site (the link keeps pointing at the tag owner's profile)
//  4. nothing: ok is false and the caller emits no output for this switch
//
// The generic fallback deliberately outranks the innermost fallback but loses
// to any exact match.
func (c *Chain) Resolve(target SiteID, userChain bool) (Resolved, bool) {
	for _, b := range c.Bindings {
		if !b.Generic && b.Site == target {
			return Resolved{Site: target, Attr: b.Attr, Display: c.override()}, true
		}
	}

	if g := c.generic(); g != nil {
		display := g.Display
		if display == nil {
			display = c.override()
		}
		return Resolved{Attr: g.Attr, Display: display}, true
	}

	if userChain {
		if b := c.innermost(); b != nil {
			return Resolved{Site: b.Site, Attr: b.Attr, Display: c.override()}, true
		}
	}

	return Resolved{}, false
}
