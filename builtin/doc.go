// Package builtin provides the values and functions available to every
// template expression: host information, filesystem predicates, path
// helpers, and PATH-like list munging.
//
// Template variables shadow built-in names of the same spelling.
package builtin
