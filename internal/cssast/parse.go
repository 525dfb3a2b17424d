package cssast

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// PluginCheck tags errors raised by the syntax check.
const PluginCheck = "check"

var importantTail = regexp.MustCompile(`\s*!\s*important$`)

// Check validates that src is well-formed enough to embed in a stylesheet:
// balanced blocks and terminated strings and urls.
func Check(src string) error {
	lexer := css.NewLexer(parse.NewInputString(src))

	var open []int
	offset := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return errorAt(src, offset, err.Error())
			}
			break
		}

		switch tt {
		case css.LeftBraceToken:
			open = append(open, offset)
		case css.RightBraceToken:
			if len(open) == 0 {
				return errorAt(src, offset, "Unexpected }")
			}
			open = open[:len(open)-1]
		case css.BadStringToken:
			return errorAt(src, offset, "Unclosed string")
		case css.BadURLToken:
			return errorAt(src, offset, "Unclosed url")
		}
		offset += len(data)
	}

	if len(open) > 0 {
		return errorAt(src, open[len(open)-1], "Unclosed block")
	}
	return nil
}

// CheckValue reports a declaration value that would leak into the
// surrounding stylesheet: unbalanced parentheses or brackets, and
// unterminated strings or urls.
func CheckValue(value string) error {
	lexer := css.NewLexer(parse.NewInputString(value))

	var open []byte
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			open = append(open, ')')
		case css.LeftBracketToken:
			open = append(open, ']')
		case css.RightParenthesisToken, css.RightBracketToken:
			if len(open) == 0 || open[len(open)-1] != data[0] {
				return fmt.Errorf("unexpected %q", data)
			}
			open = open[:len(open)-1]
		case css.StringToken:
			if !terminated(data) {
				return errors.New("unclosed string")
			}
		case css.BadStringToken:
			return errors.New("unclosed string")
		case css.BadURLToken:
			return errors.New("unclosed url")
		}
	}
	if len(open) > 0 {
		return fmt.Errorf("missing %q", open[len(open)-1])
	}
	return nil
}

// terminated reports whether a string token ends with its own unescaped
// delimiter. The lexer also returns strings cut off by the end of input.
func terminated(s []byte) bool {
	if len(s) < 2 || s[len(s)-1] != s[0] {
		return false
	}
	escapes := 0
	for i := len(s) - 2; i > 0 && s[i] == '\\'; i-- {
		escapes++
	}
	return escapes%2 == 0
}

func errorAt(src string, offset int, msg string) *SyntaxError {
	pe := parse.NewError(strings.NewReader(src), offset, "%s", msg)
	return &SyntaxError{
		Message: msg,
		Plugin:  PluginCheck,
		Line:    pe.Line,
		Column:  pe.Column,
		Context: pe.Context,
		Source:  src,
	}
}

type token struct {
	tt     css.TokenType
	data   string
	offset int
}

type parser struct {
	src    string
	tokens []token
	pos    int
}

// Parse builds a tree from src. Nested rules inside rules are not
// supported; at-rules may nest freely.
func Parse(src string) (*Root, error) {
	if err := Check(src); err != nil {
		return nil, err
	}

	p := &parser{src: src}
	lexer := css.NewLexer(parse.NewInputString(src))
	offset := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		p.tokens = append(p.tokens, token{tt: tt, data: string(data), offset: offset})
		offset += len(data)
	}

	root := &Root{}
	if err := p.block(root, false); err != nil {
		return nil, err
	}
	return root, nil
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

// block reads nodes into c until the closing brace, or the end of input
// at the top level.
func (p *parser) block(c Container, nested bool) error {
	for {
		t, ok := p.peek()
		if !ok {
			return nil
		}
		switch t.tt {
		case css.WhitespaceToken, css.SemicolonToken:
			p.pos++
			continue
		case css.RightBraceToken:
			p.pos++
			if nested {
				return nil
			}
			continue
		case css.CommentToken:
			p.pos++
			text := strings.TrimSuffix(strings.TrimPrefix(t.data, "/*"), "*/")
			c.Append(&Comment{Text: strings.TrimSpace(text)})
			continue
		}

		prelude, end := p.prelude()
		if len(prelude) == 0 {
			continue
		}

		if prelude[0].tt == css.AtKeywordToken {
			name := strings.TrimPrefix(prelude[0].data, "@")
			params := joinList(prelude[1:])
			if end == css.LeftBraceToken {
				at := NewAtRule(name, params)
				c.Append(at)
				if err := p.block(at, true); err != nil {
					return err
				}
				continue
			}
			c.Append(&AtRule{Name: name, Params: params})
			continue
		}

		if end == css.LeftBraceToken {
			rule := &Rule{Selector: joinList(prelude)}
			c.Append(rule)
			if err := p.block(rule, true); err != nil {
				return err
			}
			continue
		}

		decl, err := p.declaration(prelude)
		if err != nil {
			return err
		}
		c.Append(decl)
	}
}

// prelude collects tokens up to a top-level '{' or ';', or any '}'. The
// terminating brace is consumed when it opens a block; a closing brace is
// left for the enclosing block even inside unbalanced parentheses.
func (p *parser) prelude() ([]token, css.TokenType) {
	var out []token
	depth := 0
	for {
		t, ok := p.peek()
		if !ok {
			return out, css.ErrorToken
		}
		switch t.tt {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.LeftBraceToken, css.SemicolonToken:
			if depth <= 0 {
				p.pos++
				return out, t.tt
			}
		case css.RightBraceToken:
			return out, t.tt
		case css.CommentToken:
			p.pos++
			continue
		}
		out = append(out, t)
		p.pos++
	}
}

func (p *parser) declaration(tokens []token) (*Decl, error) {
	for i, t := range tokens {
		if t.tt != css.ColonToken {
			continue
		}
		prop := strings.TrimSpace(joinTokens(tokens[:i]))
		if prop == "" {
			break
		}
		value := strings.TrimSpace(joinTokens(tokens[i+1:]))
		if !strings.HasPrefix(prop, "--") {
			value = importantTail.ReplaceAllString(value, " !important")
		}
		return &Decl{Prop: prop, Value: value}, nil
	}
	return nil, errorAt(p.src, tokens[0].offset, "Unknown word")
}

// joinTokens concatenates token data, collapsing whitespace runs into a
// single space.
func joinTokens(tokens []token) string {
	var b strings.Builder
	space := false
	for _, t := range tokens {
		if t.tt == css.WhitespaceToken {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteString(t.data)
	}
	return b.String()
}

// joinList joins a comma separated prelude with ", ".
func joinList(tokens []token) string {
	var (
		parts []string
		start int
		depth int
	)
	for i, t := range tokens {
		switch t.tt {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(joinTokens(tokens[start:i])))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(joinTokens(tokens[start:])))
	return strings.Join(parts, ", ")
}
