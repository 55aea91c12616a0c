// Package main hosts the organize CLI entrypoint and command graph.
//
// The root command resolves configuration (file, environment, flags), prints
// the run banner and rule table, drives internal/organizer with a progress
// printer attached, and finishes with a summary table. The config subcommands
// show or validate the effective configuration without touching any files.
//
// Keep the heavy lifting in the internal packages; this package only wires
// them to the terminal.
package main
