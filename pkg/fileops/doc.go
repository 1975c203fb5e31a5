// Package fileops provides the file system primitives mcpscan builds on:
// contained directory walks over an os.Root, path checks, symlink
// containment, binary sniffing and atomic writes for exported reports.
//
// # Scanning a tree
//
//	files, err := fileops.Scan("./src", &fileops.ScanOptions{
//	    MaxDepth: 10,
//	    Match: func(rel string) bool {
//	        return strings.HasSuffix(rel, ".ts")
//	    },
//	})
//
// Paths in the result are slash-separated and relative to the scan root,
// in lexical walk order, so the same tree always yields the same sequence.
//
// # Writing results
//
// AtomicWriteFile writes through a temporary file in the target directory
// and renames it into place, so readers never observe a partial report.
package fileops
