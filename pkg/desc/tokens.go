// tokens.go defines the token stream the tag tokenizer produces.
package desc

// TokenType represents token types for the [tag]...[/tag] description syntax.
type TokenType int

const (
	TokenText     TokenType = iota // plain text between tags
	TokenOpenTag                   // [tag] or [tag=attr]
	TokenCloseTag                  // [/tag]
)

// Token represents a single token from the description source.
type Token struct {
	Type    TokenType
	Name    string // set for OpenTag, CloseTag (lowercase)
	Attr    string // set for OpenTag when an =attribute was present
	HasAttr bool   // distinguishes [tag=] from [tag]
	Text    string // set for Text tokens
	Pos     int    // byte offset of the token start in the input
	End     int    // byte offset just past the token (used for [else] adjacency)
}
