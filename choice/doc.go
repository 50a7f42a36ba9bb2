// Package choice resolves the options of choicelist and checklist prompts.
//
// Options come either from the choice or check items attached to a list, or
// from a [Provider] named by the list's gen property and looked up in a
// [Registry]. Providers may depend on answers given earlier in the same
// run, so a [Resolver] records each list with its captured [Context] when
// the generation program is assembled and invokes the provider only when
// the prompt is shown.
package choice
