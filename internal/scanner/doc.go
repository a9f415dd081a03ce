// Package scanner walks the top level of a target directory and groups the
// eligible files by category.
//
// Output folders, other directories, hidden files, protected project files
// and entries matching an exclusion pattern are skipped. Per-entry failures
// land in an fserr.Report so a single unreadable file never aborts the scan.
package scanner
