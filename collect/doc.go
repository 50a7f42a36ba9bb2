// Package collect orders the input descriptors of expanded templates into
// the sequence in which they are prompted, and answers queries about them.
package collect
