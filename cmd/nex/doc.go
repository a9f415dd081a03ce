// Package main hosts the nex CLI entrypoint and command graph.
//
// The root command runs the interactive organize flow: it resolves the target
// directory, then drives internal/workflow through a terminal prompter that
// renders previews and duplicate tables and asks for confirmation. "nex scan"
// shows the same information without mutating anything, and "nex config"
// scaffolds and validates configuration.
//
// Keep this package lean: the organize semantics live in the internal
// packages; commands here only translate flags, prompts and rendering.
package main
