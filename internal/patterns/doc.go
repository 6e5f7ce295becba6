// Package patterns turns user-supplied glob patterns and pattern files into
// concrete file paths.
//
// Patterns use doublestar syntax, so `**` matches any number of directories.
// A leading `~` is replaced with the invoking user's home directory. Hidden
// files and directories are skipped unless the pattern names them with an
// explicit leading dot, and only regular files are returned.
//
// Pattern files hold one pattern per line. A `#` starts a comment anywhere on
// the line, surrounding whitespace is trimmed, and blank lines are ignored.
package patterns
