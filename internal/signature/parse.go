package signature

import (
	"go/token"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/seitarof/defunc/internal/diag"
)

// sigLexer tokenizes the attribute argument. Word tokens and a handful of
// multi-rune operators are recognized; every other non-space rune is a
// one-rune punct token. Rules with lowercase names are elided.
var sigLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Arrow", Pattern: `->`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[^\s\w]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Parse parses the raw attribute argument into a CallSignature. Failures are
// *diag.Diagnostic values of kind SignatureSyntaxError or
// MissingParameterName.
func Parse(input string) (*CallSignature, error) {
	lx, err := sigLexer.LexString("signature", input)
	if err != nil {
		return nil, diag.New(diag.KindSignatureSyntax, token.Position{}, "cannot tokenize %q: %v", input, err)
	}
	toks, err := lexer.ConsumeAll(lx)
	if err != nil {
		return nil, diag.New(diag.KindSignatureSyntax, token.Position{}, "cannot tokenize %q: %v", input, err)
	}

	p := &tokenParser{toks: toks}
	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	return sig, nil
}

type tokenParser struct {
	toks []lexer.Token
	pos  int
}

func (p *tokenParser) cur() lexer.Token {
	return p.toks[p.pos]
}

func (p *tokenParser) advance() lexer.Token {
	t := p.toks[p.pos]
	if !t.EOF() {
		p.pos++
	}
	return t
}

func (p *tokenParser) eof() bool {
	return p.cur().EOF()
}

func (p *tokenParser) at(value string) bool {
	return !p.eof() && p.cur().Value == value
}

var identType = sigLexer.Symbols()["Ident"]

func (p *tokenParser) atIdent() bool {
	return !p.eof() && p.cur().Type == identType
}

func (p *tokenParser) syntaxErr(format string, args ...any) error {
	return diag.New(diag.KindSignatureSyntax, sigPos(p.cur()), format, args...)
}

func (p *tokenParser) expect(value string) error {
	if !p.at(value) {
		return p.syntaxErr("expected %q, found %q", value, p.cur().Value)
	}
	p.advance()
	return nil
}

func (p *tokenParser) parseSignature() (*CallSignature, error) {
	if !p.at("fn") {
		return nil, p.syntaxErr("attribute argument must start with \"fn\"")
	}
	p.advance()

	sig := &CallSignature{}

	if p.atIdent() {
		sig.ExplicitName = p.advance().Value
	}

	if p.at("<") {
		generics, err := p.parseGenerics()
		if err != nil {
			return nil, err
		}
		sig.Generics = generics
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	sig.Params = params

	if p.at("->") {
		p.advance()
		result, err := p.collectType("where")
		if err != nil {
			return nil, err
		}
		if result == "" {
			return nil, p.syntaxErr("missing result type after \"->\"")
		}
		sig.Result = result
	}

	if p.at("where") {
		p.advance()
		where, err := p.parseWhere()
		if err != nil {
			return nil, err
		}
		sig.Where = where
	}

	if !p.eof() {
		return nil, p.syntaxErr("unexpected trailing token %q", p.cur().Value)
	}
	return sig, nil
}

func (p *tokenParser) parseGenerics() ([]GenericParam, error) {
	if err := p.expect("<"); err != nil {
		return nil, err
	}

	var generics []GenericParam
	for {
		if p.eof() {
			return nil, p.syntaxErr("unterminated generic parameter list")
		}
		if !p.atIdent() {
			return nil, p.syntaxErr("expected generic parameter name, found %q", p.cur().Value)
		}
		gp := GenericParam{Name: p.advance().Value}

		if p.at(":") {
			p.advance()
			bounds, err := p.collectTokens(",", ">")
			if err != nil {
				return nil, err
			}
			if bounds == "" {
				return nil, p.syntaxErr("missing bounds for generic parameter %q", gp.Name)
			}
			gp.Bounds = bounds
		}
		generics = append(generics, gp)

		if p.at(",") {
			p.advance()
			continue
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return generics, nil
	}
}

func (p *tokenParser) parseParams() ([]Param, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	if p.at(")") {
		p.advance()
		return nil, nil
	}

	seen := map[string]bool{}
	var params []Param
	for {
		if p.eof() {
			return nil, p.syntaxErr("unterminated parameter list")
		}
		if !p.atIdent() || !p.nextIs(":") {
			return nil, diag.New(diag.KindMissingParameterName, sigPos(p.cur()),
				"parameter %d must be written as \"name: type\"", len(params)+1)
		}
		name := p.advance().Value
		p.advance() // ":"

		typ, err := p.collectTokens(",", ")")
		if err != nil {
			return nil, err
		}
		if typ == "" {
			return nil, p.syntaxErr("missing type for parameter %q", name)
		}
		if seen[name] {
			return nil, p.syntaxErr("duplicate parameter name %q", name)
		}
		seen[name] = true
		params = append(params, Param{Name: name, Type: typ})

		if p.at(",") {
			p.advance()
			continue
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return params, nil
	}
}

func (p *tokenParser) parseWhere() ([]string, error) {
	var preds []string
	for {
		pred, err := p.collectTokens(",")
		if err != nil {
			return nil, err
		}
		if pred == "" {
			return nil, p.syntaxErr("empty where-clause predicate")
		}
		preds = append(preds, pred)

		if p.at(",") {
			p.advance()
			continue
		}
		return preds, nil
	}
}

// nextIs reports whether the token after the current one has the given value.
func (p *tokenParser) nextIs(value string) bool {
	if p.eof() || p.pos+1 >= len(p.toks) {
		return false
	}
	next := p.toks[p.pos+1]
	return !next.EOF() && next.Value == value
}

// collectTokens consumes an opaque token run until one of the stop values
// appears outside any bracket nesting, or until EOF. The stop token itself is
// not consumed. The run is returned as canonical type text. Angle brackets
// are deliberately not tracked: Go type syntax never nests them, and inside
// where-predicates < and > are plain comparison operators that would
// mis-balance a depth count.
func (p *tokenParser) collectTokens(stops ...string) (string, error) {
	depth := 0
	var run []lexer.Token
	for !p.eof() {
		v := p.cur().Value
		if depth == 0 {
			for _, stop := range stops {
				if v == stop {
					return joinTokens(run), nil
				}
			}
		}
		switch v {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			if depth == 0 {
				return joinTokens(run), nil
			}
			depth--
		}
		run = append(run, p.advance())
	}
	if depth != 0 {
		return "", p.syntaxErr("unbalanced brackets in token sequence")
	}
	return joinTokens(run), nil
}

// collectType consumes the result type: an opaque token run terminated by the
// given keyword or EOF.
func (p *tokenParser) collectType(keyword string) (string, error) {
	depth := 0
	var run []lexer.Token
	for !p.eof() {
		v := p.cur().Value
		if depth == 0 && v == keyword {
			break
		}
		switch v {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
		run = append(run, p.advance())
	}
	if depth != 0 {
		return "", p.syntaxErr("unbalanced brackets in result type")
	}
	return joinTokens(run), nil
}

// joinTokens renders a token run as canonical type text: no whitespace except
// a single space between two adjacent word tokens.
func joinTokens(toks []lexer.Token) string {
	var b strings.Builder
	var last rune
	for _, t := range toks {
		if t.Value == "" {
			continue
		}
		first := rune(t.Value[0])
		if b.Len() > 0 && isWordRune(last) && isWordRune(first) {
			b.WriteByte(' ')
		}
		b.WriteString(t.Value)
		last = rune(t.Value[len(t.Value)-1])
	}
	return b.String()
}

func sigPos(t lexer.Token) token.Position {
	return token.Position{
		Filename: t.Pos.Filename,
		Offset:   t.Pos.Offset,
		Line:     t.Pos.Line,
		Column:   t.Pos.Column,
	}
}
