// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds helpers for reporting CUE validation failures with
// JSON-path style locations (e.g. "launcher.cue: exec.env_files[1]: ...")
// and for bounding the size of CUE input files.
package cueutil
