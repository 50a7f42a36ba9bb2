// Package lang parses the tag language of BSP templates into a line-level
// intermediate representation.
//
// # Tags
//
// A tag is delimited by "{{" and "}}" and never nests. There are three
// kinds:
//
//   - Assignment, "{{=name}}": may appear anywhere, any number of times per
//     line, and is replaced by the value of the variable name.
//   - Input, "{{ input type:boolean name:xserver msg:"Need X?" }}": declares
//     a prompt. The payload after the input keyword is a sequence of
//     shell-quoted key:value pairs. It must occupy the whole line.
//   - Statement, "{{ if xserver == "y": }}": any other tag. It must occupy the
//     whole line and is executed as control flow. A statement ending in a
//     colon opens a block that extends over the following lines up to the
//     next statement or blank line.
//
// File and directory names may contain assignment tags and at most one if
// statement, which makes creation of the file or directory conditional.
//
// # Input descriptors
//
// Every input requires type, name and msg. Items (choice and check) require
// val and msg instead and attach to the closest preceding list of the same
// file. Optional keys are default, prio, depends-on with depends-on-val,
// gen (the name of an options provider), and nameappend.
//
// # Lines
//
// [Parser.Line] turns one source line into a [Line], a variant discriminated
// by [Kind]. [ParseName] does the same for a template path. Interpolated
// lines record their assignment tags as [Span] values so that
// [Line.Render] substitutes them without disturbing later offsets.
//
// Grammar violations are reported as [*Error] values carrying the template
// path and line number.
package lang
