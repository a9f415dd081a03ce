// Package fserr classifies filesystem failures and accumulates per-item
// failure reports.
//
// Fatal conditions (invalid targets, unreadable directories) travel as
// ordinary wrapped errors tagged with one of the sentinel markers. Recoverable
// per-file failures from scanning, hashing, moving, and deleting are collected
// in a Report so callers can inspect them programmatically instead of parsing
// log output.
package fserr
