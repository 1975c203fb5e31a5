// Package filemanager turns local files into annotation.FileContent records.
//
// It decides which files of a tree are worth analyzing (glob include and
// exclude patterns, size limit, binary sniffing and a front matter opt-out
// for Markdown), reads them through pkg/fileops and stamps each one with its
// git blob hash so local results line up with results fetched from a
// repository.
package filemanager
