package token

var keywords = map[string]Kind{
	"using":     KwUsing,
	"namespace": KwNamespace,
	"class":     KwClass,
	"struct":    KwStruct,
	"interface": KwInterface,
	"enum":      KwEnum,
	"delegate":  KwDelegate,
	"event":     KwEvent,
	"operator":  KwOperator,
	"implicit":  KwImplicit,
	"explicit":  KwExplicit,
	"const":     KwConst,
	"static":    KwStatic,
	"readonly":  KwReadonly,
	"params":    KwParams,
	"this":      KwThis,
	"ref":       KwRef,
	"out":       KwOut,
	"in":        KwIn,
	"new":       KwNew,
	"typeof":    KwTypeof,
	"sizeof":    KwSizeof,
	"default":   KwDefault,
	"null":      KwNull,
	"true":      KwTrue,
	"false":     KwFalse,
	"void":      KwVoid,
	"is":        KwIs,
	"as":        KwAs,
	"checked":   KwChecked,
	"unchecked": KwUnchecked,

	"public":    KwModifier,
	"private":   KwModifier,
	"protected": KwModifier,
	"internal":  KwModifier,
	"abstract":  KwModifier,
	"sealed":    KwModifier,
	"virtual":   KwModifier,
	"override":  KwModifier,
	"extern":    KwModifier,
	"unsafe":    KwModifier,
	"volatile":  KwModifier,
}

// contextual keywords stay identifiers: `record`, `nameof`, `where`, `async`,
// `partial` are legal names in C#, so the parser asks for them by text.
var contextual = map[string]Kind{
	"record":   KwRecord,
	"nameof":   KwNameof,
	"where":    KwWhere,
	"async":    KwModifier,
	"partial":  KwModifier,
	"required": KwModifier,
	"file":     KwModifier,
}

// LookupKeyword returns the reserved keyword kind for lexeme.
func LookupKeyword(lexeme string) (Kind, bool) {
	k, ok := keywords[lexeme]
	return k, ok
}

// LookupContextual returns the kind a contextual keyword takes where it is
// meaningful. The lexer never produces these kinds.
func LookupContextual(lexeme string) (Kind, bool) {
	k, ok := contextual[lexeme]
	return k, ok
}
