// Package token defines lexical token kinds for the C# subset read by the
// front end.
//
// Predefined type keywords (int, string, object, ...) are identifiers: type
// classification belongs to internal/types. Contextual keywords (record,
// nameof, where, partial, async) are identifiers as well and are recognised
// by text where the grammar allows them.
//
// Trivia (whitespace, comments, preprocessor lines) is dropped by the lexer.
package token
