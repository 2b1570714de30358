// SPDX-License-Identifier: MPL-2.0

// Package layout resolves the launcher's on-disk neighbourhood: the directory
// holding the launcher binary, the virtual environment interpreter inside it,
// and the Python program the interpreter runs.
//
// All paths are anchored to the symlink-resolved location of the launcher, so
// the same Layout is produced regardless of the caller's working directory.
package layout
