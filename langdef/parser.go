package langdef

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/quickscan/grammar"
	"github.com/ava12/quickscan/lexer"
	"github.com/ava12/quickscan/source"
)

const (
	stringTok = "string"
	intTok    = "int"
	nameTok   = "name"
	opTok     = "op"
	wrongTok  = ""
)

const (
	stringTokType = 1
)

const (
	commaTok     = ","
	semicolonTok = ";"
	colonTok     = ":"
	atTok        = "@"
	lBraceTok    = "("
	rBraceTok    = ")"
	lSquareTok   = "["
	rSquareTok   = "]"
	lCurlyTok    = "{"
	rCurlyTok    = "}"
	tailTok      = ".."
	anchorTok    = "^.."
	letTok       = "let"
)

var quantifiers = map[string][2]int{
	"?": {0, 1},
	"*": {0, -1},
	"+": {1, -1},
}

var containers = map[string]bool{
	grammar.ListContainer:   true,
	grammar.SetContainer:    true,
	grammar.MapContainer:    true,
	grammar.SortedContainer: true,
	grammar.JoinContainer:   true,
	grammar.CountContainer:  true,
}

type escapeCharEntry struct {
	substitute, hexLen byte
}

var escapeCharMap = map[byte]escapeCharEntry{
	'\\': {'\\', 0},
	'"':  {'"', 0},
	'a':  {'\a', 0},
	'b':  {'\b', 0},
	'f':  {'\f', 0},
	'n':  {'\n', 0},
	'r':  {'\r', 0},
	't':  {'\t', 0},
	'v':  {'\v', 0},
	'x':  {0, 2},
	'u':  {0, 4},
	'U':  {0, 8},
}

var qsLexer *lexer.Lexer

func init() {
	tokenTypes := []lexer.TokenType{
		{Type: 1, TypeName: stringTok},
		{Type: 2, TypeName: intTok},
		{Type: 3, TypeName: nameTok},
		{Type: 4, TypeName: opTok},
		{Type: lexer.ErrorTokenType, TypeName: wrongTok},
	}

	re := regexp.MustCompile(
		`^(?:\s+|#[^\n]*|` +
			"((?:\"(?:[^\"\\\\\\n]|\\\\.)*\")|(?:`[^`]*`))|" +
			`([0-9]+)|` +
			`([A-Za-z_][A-Za-z0-9_]*)|` +
			`(\^\.\.|\.\.|[;,:@\[\](){}?*+])|` +
			"([\"`].{0,10}))")

	qsLexer = lexer.New(re, tokenTypes)
}

// ParseString parses pattern description and returns a grammar on success.
// Returns nil and quickscan.Error on error.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// ParseBytes parses pattern description and returns a grammar on success.
// Returns nil and quickscan.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, string(content)))
}

// Parse parses pattern description and returns a grammar on success.
// Returns nil and quickscan.Error on error.
func Parse(s *source.Source) (*grammar.Grammar, error) {
	tokens, e := qsLexer.Tokens(s)
	if e != nil {
		return nil, e
	}

	c := &parseContext{tokens: tokens}
	g := &grammar.Grammar{Name: s.Name()}
	for {
		var (
			r grammar.Rule
			t *lexer.Token
		)
		r, e = c.parseRule()
		if e != nil {
			return nil, e
		}

		g.Rules = append(g.Rules, r)
		t, e = c.fetch([]string{semicolonTok, lexer.EofTokenName}, true)
		if e != nil {
			return nil, e
		}

		if isEof(t) || isEof(c.peek()) {
			break
		}
	}

	return g, nil
}

type parseContext struct {
	tokens []*lexer.Token
	index  int
}

func isEof(t *lexer.Token) bool {
	return t.Type() == lexer.EofTokenType
}

func (c *parseContext) peek() *lexer.Token {
	return c.tokens[c.index]
}

func (c *parseContext) skip() {
	if c.index < len(c.tokens)-1 {
		c.index++
	}
}

// fetch returns next token if it matches one of types by type name or text.
// If strict is set returns an error for mismatching token, otherwise returns nil, nil
// and does not advance.
func (c *parseContext) fetch(types []string, strict bool) (*lexer.Token, error) {
	token := c.peek()
	if token.TypeName() == stringTok {
		var e error
		token, e = processStringToken(token)
		if e != nil {
			return nil, e
		}
	}

	for _, typ := range types {
		if matches(token, typ) {
			c.skip()
			return token, nil
		}
	}

	if !strict {
		return nil, nil
	}

	return nil, unexpected(token)
}

// matches compares token type name for type names and token text for everything else.
func matches(token *lexer.Token, typ string) bool {
	switch typ {
	case stringTok, intTok, nameTok, opTok, lexer.EofTokenName:
		return token.TypeName() == typ
	default:
		return token.TypeName() != stringTok && token.Text() == typ
	}
}

func (c *parseContext) fetchOne(typ string, strict bool) (*lexer.Token, error) {
	return c.fetch([]string{typ}, strict)
}

func (c *parseContext) accept(typ string) bool {
	t, _ := c.fetchOne(typ, false)
	return t != nil
}

func processStringToken(token *lexer.Token) (*lexer.Token, error) {
	content := token.Text()
	if content[0] == '`' {
		return lexer.NewToken(stringTokType, stringTok, content[1:len(content)-1], token.Pos()), nil
	}

	content = content[1 : len(content)-1]
	if strings.IndexByte(content, '\\') < 0 {
		return lexer.NewToken(stringTokType, stringTok, content, token.Pos()), nil
	}

	var peekRune = func(content string, hexLen int) (rune, error) {
		if len(content) < hexLen+2 {
			return 0, invalidEscapeError(token, content)
		}

		codePoint, e := strconv.ParseUint(content[2:hexLen+2], 16, 32)
		if e != nil {
			return 0, invalidEscapeError(token, content[:hexLen+2])
		}

		if hexLen > 2 && !utf8.ValidRune(rune(codePoint)) {
			return 0, invalidRuneError(token, content[2:hexLen+2])
		}
		return rune(codePoint), nil
	}

	result := make([]byte, 0, len(content))
	for {
		slashPos := strings.IndexByte(content, '\\')
		if slashPos < 0 {
			result = append(result, content...)
			break
		}

		if slashPos > 0 {
			result = append(result, content[:slashPos]...)
			content = content[slashPos:]
		}

		letter := content[1]
		entry, valid := escapeCharMap[letter]
		if !valid {
			return nil, invalidEscapeError(token, content[:2])
		}

		if entry.hexLen == 0 {
			result = append(result, entry.substitute)
			content = content[2:]
			continue
		}

		r, e := peekRune(content, int(entry.hexLen))
		if e != nil {
			return nil, e
		}

		if entry.hexLen == 2 {
			result = append(result, byte(r))
		} else {
			result = utf8.AppendRune(result, r)
		}
		content = content[entry.hexLen+2:]
	}

	return lexer.NewToken(stringTokType, stringTok, string(result), token.Pos()), nil
}

func (c *parseContext) parseRule() (grammar.Rule, error) {
	var r grammar.Rule
	if c.accept(atTok) {
		t, e := c.fetchOne(nameTok, true)
		if e != nil {
			return r, e
		}
		r.Label = t.Text()
	}

	var e error
	r.Terms, e = c.parseTerms()
	return r, e
}

func (c *parseContext) parseTerms() ([]grammar.Term, error) {
	var res []grammar.Term
	for {
		t, e := c.parseTerm()
		if e != nil {
			return nil, e
		}

		res = append(res, t)
		if !c.accept(commaTok) {
			return res, nil
		}
	}
}

func (c *parseContext) parseTerm() (grammar.Term, error) {
	t, e := c.fetch([]string{stringTok, letTok, lSquareTok, tailTok, anchorTok}, true)
	if e != nil {
		return grammar.Term{}, e
	}

	if t.TypeName() == stringTok {
		return grammar.Lit(t.Text()), nil
	}

	switch t.Text() {
	case letTok:
		return c.parseCapture()
	case lSquareTok:
		return c.parseRepeat()
	case tailTok, anchorTok:
		name, e := c.fetchOne(nameTok, true)
		if e != nil {
			return grammar.Term{}, e
		}
		if t.Text() == tailTok {
			return grammar.Tail(name.Text()), nil
		}
		return grammar.Anchor(name.Text()), nil
	}

	return grammar.Term{}, unexpectedTokenError(t)
}

func (c *parseContext) parseCapture() (grammar.Term, error) {
	name, e := c.fetchOne(nameTok, true)
	if e != nil {
		return grammar.Term{}, e
	}

	res := grammar.Capture(name.Text(), nil)
	if c.accept(colonTok) {
		res.Scanner, e = c.parseScanner()
	}
	return res, e
}

func (c *parseContext) parseScanner() (*grammar.ScannerRef, error) {
	name, e := c.fetchOne(nameTok, true)
	if e != nil {
		return nil, e
	}

	res := grammar.Scanner(name.Text())
	if !c.accept(lBraceTok) || c.accept(rBraceTok) {
		return res, nil
	}

	for {
		var arg grammar.Arg
		t, e := c.fetch([]string{intTok, stringTok, nameTok}, true)
		if e != nil {
			return nil, e
		}

		switch t.TypeName() {
		case intTok:
			n, e := parseInt(t)
			if e != nil {
				return nil, e
			}
			arg = grammar.IntArg(n)
		case stringTok:
			arg = grammar.StrArg(t.Text())
		default:
			c.index--
			sc, e := c.parseScanner()
			if e != nil {
				return nil, e
			}
			arg = grammar.ScannerArg(sc)
		}
		res.Args = append(res.Args, arg)

		t, e = c.fetch([]string{commaTok, rBraceTok}, true)
		if e != nil {
			return nil, e
		}
		if t.Text() == rBraceTok {
			return res, nil
		}
	}
}

func parseInt(t *lexer.Token) (int, error) {
	n, e := strconv.Atoi(t.Text())
	if e != nil {
		return 0, badIntError(t)
	}
	return n, nil
}

func (c *parseContext) parseRepeat() (grammar.Term, error) {
	var res grammar.Term
	inner, e := c.parseTerms()
	if e == nil {
		_, e = c.fetchOne(rSquareTok, true)
	}
	if e != nil {
		return res, e
	}

	var sep []grammar.Term
	if c.accept(commaTok) {
		sep = []grammar.Term{grammar.Lit(",")}
	} else if c.accept(lBraceTok) {
		sep, e = c.parseTerms()
		if e == nil {
			_, e = c.fetchOne(rBraceTok, true)
		}
		if e != nil {
			return res, e
		}
	}

	lo, hi, e := c.parseQuantifier()
	if e != nil {
		return res, e
	}

	res = grammar.Repeat(lo, hi, inner...)
	res.Sep = sep
	if c.accept(colonTok) {
		e = c.parseContainer(&res)
	}
	return res, e
}

// parseQuantifier returns repetition bounds, hi is negative for no upper limit.
func (c *parseContext) parseQuantifier() (lo, hi int, e error) {
	t, e := c.fetch([]string{"?", "*", "+", lCurlyTok}, true)
	if e != nil {
		return 0, 0, e
	}

	if q, found := quantifiers[t.Text()]; found {
		return q[0], q[1], nil
	}

	lo, hi = 0, -1
	hasMin := false
	if n, _ := c.fetchOne(intTok, false); n != nil {
		hasMin = true
		if lo, e = parseInt(n); e != nil {
			return
		}
		hi = lo
	}

	if c.accept(commaTok) {
		hi = -1
		if n, _ := c.fetchOne(intTok, false); n != nil {
			if hi, e = parseInt(n); e != nil {
				return
			}
		} else if !hasMin {
			return 0, 0, unexpected(c.peek())
		}
	} else if !hasMin {
		return 0, 0, unexpected(c.peek())
	}

	if _, e = c.fetchOne(rCurlyTok, true); e != nil {
		return
	}

	if hi >= 0 && lo > hi {
		return 0, 0, badBoundError(t, lo, hi)
	}
	return lo, hi, nil
}

func (c *parseContext) parseContainer(res *grammar.Term) error {
	name, e := c.fetchOne(nameTok, true)
	if e != nil {
		return e
	}
	if !containers[name.Text()] {
		return unknownContainerError(name)
	}

	res.Container = name.Text()
	if name.Text() != grammar.JoinContainer || !c.accept(lBraceTok) {
		return nil
	}

	sep, e := c.fetchOne(stringTok, true)
	if e == nil {
		_, e = c.fetchOne(rBraceTok, true)
	}
	if e == nil {
		res.Text = sep.Text()
	}
	return e
}
