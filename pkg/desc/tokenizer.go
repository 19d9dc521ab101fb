// tokenizer.go implements tokenization for the [tag]...[/tag] description syntax.
package desc

// Tokenize scans input for bracket tag syntax and returns a token stream.
// Recognized forms:
//   - [tag] or [tag=attribute] - open tag
//   - [/tag] - close tag
//
// Text between tags is returned as TokenText tokens. Unlike forgiving BBCode
// parsers, a '[' that does not start a well-formed tag is a *ParseError:
// malformed markup never passes through silently. Tag name validation
// (known vs. unknown) happens in the parser.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	pos := 0
	textStart := 0

	for pos < len(input) {
		if input[pos] != '[' {
			pos++
			continue
		}

		// Emit any accumulated text before this bracket
		if pos > textStart {
			tokens = append(tokens, Token{
				Type: TokenText,
				Text: input[textStart:pos],
				Pos:  textStart,
				End:  pos,
			})
		}

		token, endPos, err := scanTag(input, pos)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		pos = endPos
		textStart = pos
	}

	// Emit any remaining text
	if textStart < len(input) {
		tokens = append(tokens, Token{
			Type: TokenText,
			Text: input[textStart:],
			Pos:  textStart,
			End:  len(input),
		})
	}

	return tokens, nil
}

// scanTag scans a single tag starting at the '[' at pos.
// Returns the token and the position just past the closing ']'.
func scanTag(input string, pos int) (Token, int, error) {
	startPos := pos
	pos++ // skip '['

	isCloseTag := false
	if pos < len(input) && input[pos] == '/' {
		isCloseTag = true
		pos++
	}

	nameStart := pos
	for pos < len(input) && isTagNameChar(input[pos]) {
		pos++
	}
	if pos == nameStart {
		return Token{}, startPos, parseErrorf(startPos, "empty tag name")
	}
	name := toLowerASCII(input[nameStart:pos])

	if isCloseTag {
		if pos >= len(input) || input[pos] != ']' {
			return Token{}, startPos, parseErrorf(startPos, "malformed close tag [/%s", name)
		}
		pos++ // skip ']'
		return Token{
			Type: TokenCloseTag,
			Name: name,
			Pos:  startPos,
			End:  pos,
		}, pos, nil
	}

	// Optional =attribute; the attribute runs to the first ']' so URLs with
	// arbitrary characters survive.
	hasAttr := false
	attr := ""
	if pos < len(input) && input[pos] == '=' {
		hasAttr = true
		pos++ // skip '='
		attrStart := pos
		for pos < len(input) && input[pos] != ']' {
			pos++
		}
		attr = input[attrStart:pos]
	}

	if pos >= len(input) || input[pos] != ']' {
		return Token{}, startPos, parseErrorf(startPos, "unclosed tag [%s", name)
	}
	pos++ // skip ']'

	return Token{
		Type:    TokenOpenTag,
		Name:    name,
		Attr:    attr,
		HasAttr: hasAttr,
		Pos:     startPos,
		End:     pos,
	}, pos, nil
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

func toLowerASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}
