package filemanager

import (
	"github.com/go-git/go-git/v6/plumbing"
)

// BlobHash returns the git blob object id of data, the same value git
// stores for the file in a tree.
func BlobHash(data []byte) string {
	obj := &plumbing.MemoryObject{}
	obj.SetType(plumbing.BlobObject)
	obj.Write(data)
	return obj.Hash().String()
}
