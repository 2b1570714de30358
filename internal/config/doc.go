// SPDX-License-Identifier: MPL-2.0

// Package config handles launcher configuration using Viper with CUE as the file format.
//
// Configuration is optional. It is read from launcher.cue in the directory that
// holds the launcher binary (or from the file named by QETE_LAUNCHER_CONFIG),
// and any key can be overridden with a QETE_LAUNCHER_<SECTION>_<KEY> environment
// variable. With neither present the defaults describe the fixed layout:
// venv/bin/python3 running connect_and_price.py, spawned as a child process.
//
// Files are validated against the embedded config_schema.cue before being merged
// into Viper; values arriving from the environment are validated in Go.
package config
