// Package duplicates groups files by SHA-256 content digest.
//
// Files are hashed in fixed-size chunks. Digests shared by two or more files
// become groups ordered by first encounter; the first file of each group is
// the keeper and the rest are removable. Unreadable files are reported and
// left out of every group.
package duplicates
