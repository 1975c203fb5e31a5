package fileops

import "bytes"

// sniffLen matches the prefix git inspects when deciding whether a blob is
// binary.
const sniffLen = 8000

// IsProbablyBinary reports whether data looks like binary content: a NUL
// byte within its first 8000 bytes.
func IsProbablyBinary(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
