// Package preflight validates the filesystem paths nex depends on before a
// run starts.
//
// CheckTarget is the gate used by the organize flow: it resolves the target
// directory and fails with an invalid-input or permission error. RunAll and
// CheckDirectoryAccess produce display-friendly results for "nex config
// validate".
package preflight
