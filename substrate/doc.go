// Package substrate walks a tree of BSP templates and expands each file and
// directory into [lang.Line] values.
package substrate
