// Package program assembles expanded templates and their prompt sequence
// into a generation program and executes it.
//
// A [Program] is a flat list of [Op] values, each carrying the block depth
// computed from the statements preceding it. The [Executor] rebuilds the
// blocks from those depths and interprets them: bindings and prompts set
// variables, statements select and repeat blocks, and the remaining ops
// create the output tree. Expressions in statements are evaluated with
// expr-lang against the bound variables and the [builtin] environment.
//
// [builtin]: https://pkg.go.dev/github.com/ardnew/bspgen/builtin
package program
