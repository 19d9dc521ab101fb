// cond.go evaluates [if]/[else] predicates against a rendering context.
package desc

import "strings"

// Context is the immutable per-render pair conditionals are evaluated
// against: the destination site and the caller-supplied defined flags.
type Context struct {
	Site  SiteID
	Flags map[string]bool
}

// NewContext builds a context for one target site.
func NewContext(site SiteID, flags []string) Context {
	set := make(map[string]bool, len(flags))
	for _, f := range flags {
		set[f] = true
	}
	return Context{Site: site, Flags: set}
}

// Evaluate reports whether the condition holds in ctx. Site identifiers are
// resolved through registry aliases; define flags are opaque strings.
// Total over well-formed conditionals: unknown parameters were already
// rejected at parse time.
func (n *CondNode) Evaluate(reg *Registry, ctx Context) bool {
	match := false
	for _, id := range n.Operand {
		if n.matches(reg, ctx, id) {
			match = true
			break
		}
	}
	if n.Op == OpNotEq {
		return !match
	}
	return match
}

func (n *CondNode) matches(reg *Registry, ctx Context, id string) bool {
	switch n.Param {
	case ParamSite:
		canonical, ok := reg.Canonical(id)
		return ok && canonical == ctx.Site
	case ParamDefine:
		return ctx.Flags[id]
	}
	return false
}

// parseCondition parses an [if] attribute such as "site==fa", "define!=hires"
// or "site in eka,fa".
func parseCondition(attr string, pos int) (CondParam, CondOp, []string, error) {
	var (
		param   string
		op      CondOp
		operand string
	)
	switch {
	case strings.Contains(attr, "=="):
		parts := strings.SplitN(attr, "==", 2)
		param, op, operand = parts[0], OpEq, parts[1]
	case strings.Contains(attr, "!="):
		parts := strings.SplitN(attr, "!=", 2)
		param, op, operand = parts[0], OpNotEq, parts[1]
	case strings.Contains(attr, " in "):
		parts := strings.SplitN(attr, " in ", 2)
		param, op, operand = parts[0], OpIn, parts[1]
	default:
		return 0, 0, nil, parseErrorf(pos, "invalid [if] condition %q", attr)
	}

	var condParam CondParam
	switch strings.TrimSpace(param) {
	case "site":
		condParam = ParamSite
	case "define":
		condParam = ParamDefine
	default:
		return 0, 0, nil, parseErrorf(pos, "unknown [if] parameter %q", strings.TrimSpace(param))
	}

	var ids []string
	if op == OpIn {
		for _, id := range strings.Split(operand, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	} else if id := strings.TrimSpace(operand); id != "" {
		ids = []string{id}
	}
	if len(ids) == 0 {
		return 0, 0, nil, parseErrorf(pos, "empty operand in [if] condition %q", attr)
	}

	return condParam, op, ids, nil
}
