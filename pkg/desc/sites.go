// sites.go defines the destination site registry: aliases, profile URL
// builders and per-site markup adapters. The registry is plain data passed
// into parsing and rendering; adding a site means adding one entry here.
package desc

import "strings"

// SiteID is the canonical identifier of a destination site.
type SiteID string

const (
	Aryion      SiteID = "aryion"
	Furaffinity SiteID = "furaffinity"
	Weasyl      SiteID = "weasyl"
	Inkbunny    SiteID = "inkbunny"
	Sofurry     SiteID = "sofurry"
	Twitter     SiteID = "twitter"
	Mastodon    SiteID = "mastodon"
)

// Markup is a site's formatting adapter. A nil function means the site has no
// markup for that style and children are rendered unwrapped.
type Markup struct {
	Bold      func(string) string
	Italic    func(string) string
	Underline func(string) string
	Link      func(url, text string) string
	// Icon is the site's shorthand for referencing one of its own users
	// (e.g. :iconname: on Fur Affinity). Optional.
	Icon func(username string) string
}

// Site describes one destination website.
type Site struct {
	ID         SiteID
	Name       string   // human-readable name
	Aliases    []string // accepted tag names / config keys, canonical ID included
	OutputFile string   // description file emitted for this site
	Markup     Markup
	// ProfileURL builds the canonical profile URL for a username on this site.
	ProfileURL func(username string) string
}

// Registry is the set of supported destination sites, looked up by alias.
type Registry struct {
	sites   []*Site
	byAlias map[string]*Site
}

// NewRegistry builds a registry from site descriptors.
func NewRegistry(sites ...*Site) *Registry {
	r := &Registry{
		sites:   sites,
		byAlias: make(map[string]*Site),
	}
	for _, s := range sites {
		for _, a := range s.Aliases {
			r.byAlias[strings.ToLower(a)] = s
		}
	}
	return r
}

// Sites returns the registered sites in registration order.
func (r *Registry) Sites() []*Site {
	return r.sites
}

// Lookup resolves a site alias (case-insensitive) to its descriptor.
func (r *Registry) Lookup(alias string) (*Site, bool) {
	s, ok := r.byAlias[strings.ToLower(strings.TrimSpace(alias))]
	return s, ok
}

// Canonical resolves an alias to its canonical SiteID.
func (r *Registry) Canonical(alias string) (SiteID, bool) {
	s, ok := r.Lookup(alias)
	if !ok {
		return "", false
	}
	return s.ID, true
}

// Get returns the descriptor for a canonical SiteID.
func (r *Registry) Get(id SiteID) (*Site, bool) {
	return r.Lookup(string(id))
}

// Markup families shared by several sites.

func bbcodeMarkup(icon func(string) string) Markup {
	return Markup{
		Bold:      func(s string) string { return "[b]" + s + "[/b]" },
		Italic:    func(s string) string { return "[i]" + s + "[/i]" },
		Underline: func(s string) string { return "[u]" + s + "[/u]" },
		Link:      func(url, text string) string { return "[url=" + url + "]" + text + "[/url]" },
		Icon:      icon,
	}
}

func markdownMarkup(icon func(string) string) Markup {
	return Markup{
		Bold:   func(s string) string { return "**" + s + "**" },
		Italic: func(s string) string { return "*" + s + "*" },
		// Markdown renderers on these sites accept simple inline HTML.
		Underline: func(s string) string { return "<u>" + s + "</u>" },
		Link:      func(url, text string) string { return "[" + text + "](" + url + ")" },
		Icon:      icon,
	}
}

func plaintextMarkup(icon func(string) string) Markup {
	return Markup{
		Link: func(url, text string) string {
			text = strings.TrimSpace(text)
			if text == "" || text == url {
				return url
			}
			return text + ": " + url
		},
		Icon: icon,
	}
}

// handleTail returns the part of a fediverse-style handle after the last '@'.
func handleTail(username string) string {
	if i := strings.LastIndexByte(username, '@'); i >= 0 {
		return username[i+1:]
	}
	return username
}

// splitMastodonHandle splits "user@instance" or "@user@instance".
func splitMastodonHandle(username string) (user, instance string) {
	instance = handleTail(username)
	rest := strings.TrimSuffix(username, "@"+instance)
	return handleTail(rest), instance
}

// Builtin returns the registry of all supported destination sites.
func Builtin() *Registry {
	return NewRegistry(
		&Site{
			ID:         Aryion,
			Name:       "Eka's Portal",
			Aliases:    []string{"aryion", "eka", "eka_portal"},
			OutputFile: "desc_aryion.txt",
			Markup:     bbcodeMarkup(func(u string) string { return ":icon" + u + ":" }),
			ProfileURL: func(u string) string { return "https://aryion.com/g4/user/" + u },
		},
		&Site{
			ID:         Furaffinity,
			Name:       "Fur Affinity",
			Aliases:    []string{"furaffinity", "fa"},
			OutputFile: "desc_furaffinity.txt",
			Markup:     bbcodeMarkup(func(u string) string { return ":icon" + u + ":" }),
			ProfileURL: func(u string) string {
				return "https://furaffinity.net/user/" + strings.ReplaceAll(u, "_", "")
			},
		},
		&Site{
			ID:         Weasyl,
			Name:       "Weasyl",
			Aliases:    []string{"weasyl"},
			OutputFile: "desc_weasyl.md",
			Markup: markdownMarkup(func(u string) string {
				return "<!~" + strings.ReplaceAll(u, " ", "") + ">"
			}),
			ProfileURL: func(u string) string {
				return "https://www.weasyl.com/~" + strings.ToLower(strings.ReplaceAll(u, " ", ""))
			},
		},
		&Site{
			ID:         Inkbunny,
			Name:       "Inkbunny",
			Aliases:    []string{"inkbunny", "ib"},
			OutputFile: "desc_inkbunny.txt",
			Markup:     bbcodeMarkup(func(u string) string { return "[iconname]" + u + "[/iconname]" }),
			ProfileURL: func(u string) string { return "https://inkbunny.net/" + u },
		},
		&Site{
			ID:         Sofurry,
			Name:       "SoFurry",
			Aliases:    []string{"sofurry", "sf"},
			OutputFile: "desc_sofurry.txt",
			Markup:     bbcodeMarkup(func(u string) string { return ":icon" + u + ":" }),
			ProfileURL: func(u string) string {
				return "https://" + strings.ToLower(strings.ReplaceAll(u, " ", "-")) + ".sofurry.com"
			},
		},
		&Site{
			ID:         Twitter,
			Name:       "Twitter",
			Aliases:    []string{"twitter"},
			OutputFile: "desc_twitter.txt",
			Markup:     plaintextMarkup(func(u string) string { return "@" + handleTail(u) }),
			ProfileURL: func(u string) string { return "https://twitter.com/" + handleTail(u) },
		},
		&Site{
			ID:         Mastodon,
			Name:       "Mastodon",
			Aliases:    []string{"mastodon"},
			OutputFile: "desc_mastodon.txt",
			Markup: plaintextMarkup(func(u string) string {
				user, _ := splitMastodonHandle(u)
				return "@" + user
			}),
			ProfileURL: func(u string) string {
				user, instance := splitMastodonHandle(u)
				return "https://" + instance + "/@" + user
			},
		},
	)
}
