// Package prompt provides the front ends that collect answers to input
// prompts: an interactive terminal line editor and a plain line reader for
// pipes and scripts.
package prompt
