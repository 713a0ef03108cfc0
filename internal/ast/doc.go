// Package ast holds the declaration-level syntax tree of a C# test file:
// usings, type declarations, attributed methods with their parameters,
// enum members, const fields and attribute argument expressions.
// Method bodies are not represented.
package ast
