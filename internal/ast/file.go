package ast

import "theorycheck/internal/source"

// File is the parsed form of one C# source file. Nested types are
// flattened into Types; TypeDecl.Outer keeps the containing chain.
type File struct {
	Source source.FileID
	Span   source.Span
	Usings []Using
	Types  []TypeDecl
	Exprs  *Arena[Expr]
}

// NewFile creates an empty file node for src.
func NewFile(src source.FileID) *File {
	return &File{
		Source: src,
		Exprs:  NewArena[Expr](64),
	}
}

// Expr returns the expression for id, or nil for NoExprID.
func (f *File) Expr(id ExprID) *Expr {
	return f.Exprs.Get(uint32(id))
}

// NewExpr allocates e and returns its id.
func (f *File) NewExpr(e Expr) ExprID {
	return ExprID(f.Exprs.Allocate(e))
}

// Using is one using directive.
//
//	using System;                 Name="System"
//	using static System.Math;     Name="System.Math" Static
//	using Col = Acme.Color;       Alias="Col" Name="Acme.Color"
type Using struct {
	Alias  string
	Name   string
	Static bool
	Span   source.Span
}

// TypeByName returns the first declaration in f whose FullName is name.
func (f *File) TypeByName(name string) *TypeDecl {
	for i := range f.Types {
		if f.Types[i].FullName() == name {
			return &f.Types[i]
		}
	}
	return nil
}
