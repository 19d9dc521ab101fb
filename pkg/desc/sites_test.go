package desc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AliasLookup(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		alias string
		want  SiteID
	}{
		{"aryion", Aryion},
		{"eka", Aryion},
		{"eka_portal", Aryion},
		{"EKA", Aryion},
		{"fa", Furaffinity},
		{"furaffinity", Furaffinity},
		{"weasyl", Weasyl},
		{"ib", Inkbunny},
		{"sf", Sofurry},
		{"twitter", Twitter},
		{"mastodon", Mastodon},
		{" fa ", Furaffinity},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			id, ok := reg.Canonical(tt.alias)
			require.True(t, ok)
			assert.Equal(t, tt.want, id)
		})
	}

	_, ok := reg.Lookup("deviantart")
	assert.False(t, ok)
}

func TestRegistry_OutputFilesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Builtin().Sites() {
		require.NotEmpty(t, s.OutputFile)
		assert.False(t, seen[s.OutputFile], "duplicate output file %s", s.OutputFile)
		seen[s.OutputFile] = true
	}
}

func TestSplitMastodonHandle(t *testing.T) {
	tests := []struct {
		input        string
		wantUser     string
		wantInstance string
	}{
		{"lorem@mas.example", "lorem", "mas.example"},
		{"@lorem@mas.example", "lorem", "mas.example"},
	}

	for _, tt := range tests {
		user, instance := splitMastodonHandle(tt.input)
		assert.Equal(t, tt.wantUser, user)
		assert.Equal(t, tt.wantInstance, instance)
	}
}
