// Package tung implements the Tung scripting language engine. The language is
// dynamically typed with a small, Python-flavoured surface:
//   - Integers, floats, strings, booleans, arrays and dictionaries.
//   - `var name = expr` declarations, `name = expr` and `name += expr` style
//     assignment.
//   - `if cond: { ... } elif cond: { ... } else: { ... }` and `while cond: { ... }`.
//   - Arithmetic (+, -, *, /, //, %, **), comparison, membership (in, not in)
//     and boolean logic (&&, ||, !).
//   - Built-ins such as print, input, len, range, casts, min/max/sum/round and
//     the list helpers append, insert, pop, index and sort.
//
// Source text is parsed into a generic parse tree of Node values. The evaluator
// folds expression nodes into Values and the executor walks statement nodes,
// giving every if/elif/else/while body a snapshot of the enclosing Env whose
// updates to pre-existing names are copied back when the body finishes.
//
// Comments beginning with `#` are ignored. Keyword aliases can be configured
// per Engine through an AliasTable.
package tung
