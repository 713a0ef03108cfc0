package diag

import (
	"fmt"
	"slices"
	"strings"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Правила xUnit (сами проверки InlineData)
	RuleInlineDataShortfall      Code = 1009
	RuleInlineDataNotConvertible Code = 1010
	RuleInlineDataExcess         Code = 1011
	RuleInlineDataNullValueType  Code = 1012

	// Лексические
	LexInfo                     Code = 2000
	LexUnknownChar              Code = 2001
	LexUnterminatedString       Code = 2002
	LexUnterminatedChar         Code = 2003
	LexUnterminatedBlockComment Code = 2004
	LexBadNumber                Code = 2005

	// Парсерные
	SynInfo                Code = 3000
	SynUnexpectedToken     Code = 3001
	SynExpectIdentifier    Code = 3002
	SynUnclosedDelimiter   Code = 3003
	SynExpectSemicolon     Code = 3004
	SynUnsupportedArgument Code = 3005
	SynParamsNotLast       Code = 3006
	SynExpectType          Code = 3007

	// Файлы и кэш
	IOInfo          Code = 4000
	IOReadFailed    Code = 4001
	IONoSources     Code = 4002
	IOCacheRejected Code = 4003

	// Манифест проекта
	PrjInfo            Code = 5000
	PrjManifestDecode  Code = 5001
	PrjManifestInvalid Code = 5002
	PrjUnknownKey      Code = 5003
	PrjDuplicateType   Code = 5004
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                  "Unknown error",
		RuleInlineDataShortfall:      "InlineData values must match the number of method parameters",
		RuleInlineDataNotConvertible: "The value is not convertible to the method parameter type",
		RuleInlineDataExcess:         "There is no matching method parameter",
		RuleInlineDataNullValueType:  "Null should not be used for value type parameters",
		LexInfo:                      "Lexical information",
		LexUnknownChar:               "Unknown character",
		LexUnterminatedString:        "Unterminated string literal",
		LexUnterminatedChar:          "Unterminated character literal",
		LexUnterminatedBlockComment:  "Unterminated block comment",
		LexBadNumber:                 "Invalid numeric literal",
		SynInfo:                      "Syntax information",
		SynUnexpectedToken:           "Unexpected token",
		SynExpectIdentifier:          "Expected identifier",
		SynUnclosedDelimiter:         "Unclosed delimiter",
		SynExpectSemicolon:           "Expected semicolon",
		SynUnsupportedArgument:       "Attribute argument is not a recognised constant expression",
		SynParamsNotLast:             "A params parameter must be the last parameter",
		SynExpectType:                "Expected type",
		IOInfo:                       "I/O information",
		IOReadFailed:                 "Failed to read source file",
		IONoSources:                  "No C# source files found",
		IOCacheRejected:              "Disk cache entry rejected",
		PrjInfo:                      "Project information",
		PrjManifestDecode:            "Failed to decode theorycheck.toml",
		PrjManifestInvalid:           "Invalid theorycheck.toml",
		PrjUnknownKey:                "Unknown key in theorycheck.toml",
		PrjDuplicateType:             "Type declared more than once",
	}

	// longer texts for `theorycheck explain`
	codeExplanation = map[Code]string{
		RuleInlineDataShortfall: "The Theory method declares more parameters than the InlineData attribute supplies, " +
			"and there is no params array to absorb the difference. Add the missing values or remove parameters.",
		RuleInlineDataNotConvertible: "A value supplied by InlineData cannot be converted to the declared type of the " +
			"parameter it binds to. Numeric values convert between numeric types and to char; char converts to numeric " +
			"types; strings, booleans and typeof expressions only flow into their own types or object.",
		RuleInlineDataExcess: "InlineData supplies more values than the Theory method has parameters, " +
			"and there is no params array to collect them. Remove the extra values or add parameters.",
		RuleInlineDataNullValueType: "null is bound to a parameter of a non-nullable value type. At run time the " +
			"parameter receives its default value, which is rarely what the test intends. Make the parameter nullable.",
		SynUnsupportedArgument: "The argument expression could not be classified as a compile-time constant " +
			"(literal, typeof, enum member, const field or array creation). The value is not checked.",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("xUnit%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

// Explain returns the long description of the code, falling back to its title.
func (c Code) Explain() string {
	if text, ok := codeExplanation[c]; ok {
		return text
	}
	return c.Title()
}

// IsRule reports whether the code belongs to the InlineData rule set.
func (c Code) IsRule() bool {
	return c >= 1000 && c < 2000
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode accepts an ID such as "xUnit1010" or "SYN3005" (case-insensitive).
func ParseCode(id string) (Code, bool) {
	for c := range codeDescription {
		if c != UnknownCode && strings.EqualFold(c.ID(), id) {
			return c, true
		}
	}
	return UnknownCode, false
}

// KnownCodes returns every registered code in ascending order.
func KnownCodes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		if c != UnknownCode {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}
