package desc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_Site(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		name string
		cond *CondNode
		site SiteID
		want bool
	}{
		{"eq match", &CondNode{Param: ParamSite, Op: OpEq, Operand: []string{"fa"}}, Furaffinity, true},
		{"eq mismatch", &CondNode{Param: ParamSite, Op: OpEq, Operand: []string{"fa"}}, Weasyl, false},
		{"eq via alias", &CondNode{Param: ParamSite, Op: OpEq, Operand: []string{"furaffinity"}}, Furaffinity, true},
		{"eq via eka alias", &CondNode{Param: ParamSite, Op: OpEq, Operand: []string{"eka"}}, Aryion, true},
		{"neq match", &CondNode{Param: ParamSite, Op: OpNotEq, Operand: []string{"fa"}}, Weasyl, true},
		{"neq mismatch", &CondNode{Param: ParamSite, Op: OpNotEq, Operand: []string{"fa"}}, Furaffinity, false},
		{"in member", &CondNode{Param: ParamSite, Op: OpIn, Operand: []string{"eka", "fa"}}, Furaffinity, true},
		{"in member via alias", &CondNode{Param: ParamSite, Op: OpIn, Operand: []string{"eka", "fa"}}, Aryion, true},
		{"in non-member", &CondNode{Param: ParamSite, Op: OpIn, Operand: []string{"eka", "fa"}}, Weasyl, false},
		{"unknown identifier never matches", &CondNode{Param: ParamSite, Op: OpEq, Operand: []string{"nowhere"}}, Weasyl, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(tt.site, nil)
			assert.Equal(t, tt.want, tt.cond.Evaluate(reg, ctx))
		})
	}
}

func TestEvaluate_Define(t *testing.T) {
	reg := Builtin()
	ctx := NewContext(Furaffinity, []string{"hires", "wip"})

	tests := []struct {
		name string
		cond *CondNode
		want bool
	}{
		{"defined", &CondNode{Param: ParamDefine, Op: OpEq, Operand: []string{"hires"}}, true},
		{"undefined", &CondNode{Param: ParamDefine, Op: OpEq, Operand: []string{"final"}}, false},
		{"not defined", &CondNode{Param: ParamDefine, Op: OpNotEq, Operand: []string{"final"}}, true},
		{"in defined", &CondNode{Param: ParamDefine, Op: OpIn, Operand: []string{"final", "wip"}}, true},
		{"flags are opaque, no alias resolution", &CondNode{Param: ParamDefine, Op: OpEq, Operand: []string{"furaffinity"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.Evaluate(reg, ctx))
		})
	}
}
