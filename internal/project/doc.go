// Package project decides whether a directory holds a software project and
// which of its top-level files must stay where they are.
//
// Detection looks only at direct children: a known manifest or VCS marker, or
// at least two conventional project subdirectories. Protection rules cover
// conventional entry points and docs, executable scripts, dotfiles, and
// anything named like a config file.
package project
