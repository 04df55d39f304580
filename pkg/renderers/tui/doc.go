// Package tui adds rows to an editor from the terminal. The renderer prompts
// for every control of a new row through a PromptDriver (survey by default),
// applies choices through the editor so dependent options refresh, and emits
// the recomputed hidden value as JSON, form-encoded text, or a plain summary.
package tui
