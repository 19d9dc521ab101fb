// render.go walks a parsed Document once per target site and produces the
// site's description text. Rendering never mutates the tree, the registry or
// the username configuration, so the same parse can serve every site.
package desc

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Users is an immutable snapshot of the username configuration, keyed by
// canonical site ID. A site absent from the map gets no description and its
// bindings are never selected by [self].
type Users map[SiteID]string

// Result is the output of rendering one document for one target site.
type Result struct {
	Site   SiteID
	Output string
	// Warnings records non-fatal gaps: a [siteurl] chain with no binding for
	// this site, or a [self] with no configured username. They never abort
	// the render.
	Warnings []string
}

// Render produces the description for one target site.
func Render(doc *Document, reg *Registry, users Users, ctx Context) Result {
	site, ok := reg.Get(ctx.Site)
	if !ok {
		return Result{Site: ctx.Site, Warnings: []string{"unknown target site " + string(ctx.Site)}}
	}
	r := &renderer{reg: reg, users: users, ctx: ctx, site: site}
	out := r.renderNodes(doc.Nodes)
	return Result{Site: ctx.Site, Output: out, Warnings: r.warnings}
}

// RenderAll renders every site present in users, concurrently. Renders are
// pure functions of the shared tree, so the fan-out needs no locking beyond
// result placement.
func RenderAll(doc *Document, reg *Registry, users Users, flags []string) []Result {
	var targets []SiteID
	for _, s := range reg.Sites() {
		if _, ok := users[s.ID]; ok {
			targets = append(targets, s.ID)
		}
	}

	results := make([]Result, len(targets))
	var wg sync.WaitGroup
	for i, id := range targets {
		wg.Add(1)
		go func(i int, id SiteID) {
			defer wg.Done()
			results[i] = Render(doc, reg, users, NewContext(id, flags))
		}(i, id)
	}
	wg.Wait()
	return results
}

var multiBlankLines = regexp.MustCompile(`\n\n+`)

// Finalize collapses runs of blank lines, trims the result and ensures a
// trailing newline, matching what the upload sites expect.
func Finalize(s string) string {
	s = multiBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s) + "\n"
}

type renderer struct {
	reg      *Registry
	users    Users
	ctx      Context
	site     *Site
	warnings []string
}

func (r *renderer) warnf(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *renderer) renderNodes(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(r.renderNode(n))
	}
	return sb.String()
}

func (r *renderer) renderNode(node Node) string {
	switch n := node.(type) {
	case *TextNode:
		return n.Text

	case *FormatNode:
		inner := r.renderNodes(n.Children)
		if strings.TrimSpace(inner) == "" {
			return ""
		}
		wrap := r.formatFunc(n.Kind)
		if wrap == nil {
			// The site has no markup for this style; degrade to bare content.
			return inner
		}
		return wrap(inner)

	case *LinkNode:
		return r.link(n.URL, r.renderNodes(n.Children))

	case *SelfLinkNode:
		return r.renderSelf()

	case *SwitchNode:
		res, ok := n.Chain.Resolve(r.ctx.Site, n.UserTag)
		if !ok {
			r.warnf("[siteurl] chain has no binding for %s; rendered empty", r.ctx.Site)
			return ""
		}
		return r.renderResolved(res, n.UserTag, false)

	case *CondNode:
		if n.Evaluate(r.reg, r.ctx) {
			return r.renderNodes(n.Then)
		}
		return r.renderNodes(n.Else)
	}
	return ""
}

func (r *renderer) formatFunc(kind FormatKind) func(string) string {
	switch kind {
	case Bold:
		return r.site.Markup.Bold
	case Italic:
		return r.site.Markup.Italic
	case Underline:
		return r.site.Markup.Underline
	}
	return nil
}

func (r *renderer) link(url, text string) string {
	if r.site.Markup.Link == nil {
		if strings.TrimSpace(text) == "" {
			return url
		}
		return strings.TrimSpace(text) + ": " + url
	}
	return r.site.Markup.Link(url, text)
}

// renderSelf treats [self] as a synthetic user chain built from the username
// configuration: one binding per configured site, no generic, no override.
func (r *renderer) renderSelf() string {
	chain := &Chain{}
	for _, s := range r.reg.Sites() {
		if u, ok := r.users[s.ID]; ok {
			chain.Bindings = append(chain.Bindings, Binding{Site: s.ID, Attr: u})
		}
	}
	// Exact match only: a [self] on a site the author has no account on
	// renders nothing rather than linking some arbitrary other account.
	res, ok := chain.Resolve(r.ctx.Site, false)
	if !ok {
		r.warnf("no username configured for %s; [self] rendered empty", r.ctx.Site)
		return ""
	}
	return r.renderResolved(res, true, true)
}

// renderResolved emits the markup for a resolved chain binding. For user
// chains the attribute is a username resolved through the owning site's
// profile URL builder; for site-url chains it is already a literal URL.
// allowIcon permits the site's user icon shorthand; it is set only for
// [self], where the reference is by definition an account on the target site.
func (r *renderer) renderResolved(res Resolved, userChain, allowIcon bool) string {
	// Generic binding: the attribute is a literal URL regardless of variant.
	if res.Site == "" {
		return r.link(res.Attr, r.renderNodes(res.Display))
	}

	echoed := res.Display == nil
	display := res.Attr
	if !echoed {
		display = r.renderNodes(res.Display)
	}

	if !userChain {
		return r.link(res.Attr, display)
	}

	linkSite, ok := r.reg.Get(res.Site)
	if !ok {
		return ""
	}
	if allowIcon && echoed && res.Site == r.ctx.Site && r.site.Markup.Icon != nil {
		return r.site.Markup.Icon(res.Attr)
	}
	return r.link(linkSite.ProfileURL(res.Attr), display)
}
