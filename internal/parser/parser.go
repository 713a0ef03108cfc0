package parser

import (
	"slices"

	"theorycheck/internal/ast"
	"theorycheck/internal/diag"
	"theorycheck/internal/lexer"
	"theorycheck/internal/source"
	"theorycheck/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser: состояние парсера на один файл.
// Токены берутся целиком заранее: касты и generic-аргументы требуют
// произвольного lookahead.
type Parser struct {
	src      *source.File
	toks     []token.Token
	pos      int
	file     *ast.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена

	speculative int // >0: пробный разбор, диагностики не выдаются

	namespace []string
	outer     []string
	usings    []ast.Using
}

// ParseFile lexes and parses one file. Lexical diagnostics go to the same
// reporter as syntax ones.
func ParseFile(src *source.File, opts Options) *ast.File {
	toks := lexer.Tokenize(src, lexer.Options{Reporter: opts.Reporter})
	return ParseTokens(src, toks, opts)
}

// ParseTokens parses an already lexed token slice ending with EOF.
func ParseTokens(src *source.File, toks []token.Token, opts Options) *ast.File {
	p := Parser{
		src:  src,
		toks: toks,
		file: ast.NewFile(src.ID),
		opts: opts,
	}
	p.lastSpan = source.Span{File: src.ID}
	p.parseCompilationUnit()
	return p.file
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	last := p.lastSpan
	return token.Token{Kind: token.EOF, Span: source.Span{File: last.File, Start: last.End, End: last.End}}
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atContextual checks for an identifier used as a contextual keyword.
func (p *Parser) atContextual(k token.Kind) bool {
	return p.peek().IsContextual(k)
}

// IsError reports whether any syntax error was reported.
func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}
