// Package repository fetches the files of a repository so they can be
// analyzed.
//
// Two sources implement Source:
//   - GitSource clones a remote repository into memory and walks the tree
//     of its HEAD commit. Public access is tried first and a stored GitHub
//     Personal Access Token is used only when the remote asks for
//     credentials.
//   - LocalSource loads a directory on disk through the filemanager.
//
// Failures are reported as *FetchError, which carries an HTTP-like status
// (401/403 for authentication, 404 for missing repositories, 500 for
// everything else) so callers such as the HTTP API can pass it through.
package repository
