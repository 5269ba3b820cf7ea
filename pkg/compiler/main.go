// Package compiler provides the lexer, parser and code generator for a
// small imperative teaching language whose output is a line-oriented
// three-address intermediate representation (see package ir).
//
// Pipeline: source → Lex → Parse → Generate → IR text
package compiler
