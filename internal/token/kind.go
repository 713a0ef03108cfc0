package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLit     // 42, 0x2A, 42u, 42L, 42UL
	FloatLit   // 1.5, 1e3, 42f, 42d
	DecimalLit // 42m
	CharLit    // 'a', '\n', 'A'
	StringLit  // "a", @"a", """a"""
	InterpLit  // $"a{b}", never a constant

	// ключевые слова
	KwUsing
	KwNamespace
	KwClass
	KwStruct
	KwRecord
	KwInterface
	KwEnum
	KwDelegate
	KwEvent
	KwOperator
	KwImplicit
	KwExplicit
	KwConst
	KwStatic
	KwReadonly
	KwParams
	KwThis
	KwRef
	KwOut
	KwIn
	KwNew
	KwTypeof
	KwNameof
	KwSizeof
	KwDefault
	KwNull
	KwTrue
	KwFalse
	KwVoid
	KwWhere
	KwIs
	KwAs
	KwChecked
	KwUnchecked
	// модификаторы доступа и прочие, которые парсер просто пропускает
	KwModifier

	// пунктуация
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Semicolon
	Colon
	ColonColon
	Question
	QuestionQuestion
	QuestionDot
	Assign
	EqEq
	BangEq
	FatArrow
	Lt
	Gt
	LtEq
	GtEq
	Shl
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	AndAnd
	Pipe
	OrOr
	Caret
	Bang
	Tilde
	PlusPlus
	MinusMinus
	Arrow
	Hash // only outside of directives
	OtherPunct
)

var kindNames = [...]string{
	Invalid:          "invalid",
	EOF:              "EOF",
	Ident:            "identifier",
	IntLit:           "integer literal",
	FloatLit:         "real literal",
	DecimalLit:       "decimal literal",
	CharLit:          "char literal",
	StringLit:        "string literal",
	InterpLit:        "interpolated string",
	KwUsing:          "using",
	KwNamespace:      "namespace",
	KwClass:          "class",
	KwStruct:         "struct",
	KwRecord:         "record",
	KwInterface:      "interface",
	KwEnum:           "enum",
	KwDelegate:       "delegate",
	KwEvent:          "event",
	KwOperator:       "operator",
	KwImplicit:       "implicit",
	KwExplicit:       "explicit",
	KwConst:          "const",
	KwStatic:         "static",
	KwReadonly:       "readonly",
	KwParams:         "params",
	KwThis:           "this",
	KwRef:            "ref",
	KwOut:            "out",
	KwIn:             "in",
	KwNew:            "new",
	KwTypeof:         "typeof",
	KwNameof:         "nameof",
	KwSizeof:         "sizeof",
	KwDefault:        "default",
	KwNull:           "null",
	KwTrue:           "true",
	KwFalse:          "false",
	KwVoid:           "void",
	KwWhere:          "where",
	KwIs:             "is",
	KwAs:             "as",
	KwChecked:        "checked",
	KwUnchecked:      "unchecked",
	KwModifier:       "modifier",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Comma:            ",",
	Dot:              ".",
	Semicolon:        ";",
	Colon:            ":",
	ColonColon:       "::",
	Question:         "?",
	QuestionQuestion: "??",
	QuestionDot:      "?.",
	Assign:           "=",
	EqEq:             "==",
	BangEq:           "!=",
	FatArrow:         "=>",
	Lt:               "<",
	Gt:               ">",
	LtEq:             "<=",
	GtEq:             ">=",
	Shl:              "<<",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	Amp:              "&",
	AndAnd:           "&&",
	Pipe:             "|",
	OrOr:             "||",
	Caret:            "^",
	Bang:             "!",
	Tilde:            "~",
	PlusPlus:         "++",
	MinusMinus:       "--",
	Arrow:            "->",
	Hash:             "#",
	OtherPunct:       "punctuation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}
