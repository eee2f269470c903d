// Package lineedit implements the core interactive-input engine of a
// readline-style line editor: decoding raw TTY bytes into logical key
// codes, and driving an interactive tab-completion menu over those keys.
//
// The package is split into the same five components the design is built
// from: a byte source (ByteBuffer) with push-back, a key decoder
// (ReadKey) that reconciles a dozen terminal dialects into one grammar, a
// completion store (CandidateList), a completion menu driver (RunMenu),
// and a completion trigger (TriggerCompletion) that bridges the two. Everything
// else — raw-mode setup, terminal geometry, the editor buffer, history,
// help overlays — is an interface this package consumes; see
// EditorView, TerminalSink, and CompletionGenerator.
package lineedit
