// Package main hosts the vencode CLI entrypoint and command graph.
//
// Running vencode with file arguments opens the interactive terminal session.
// The run subcommand encodes the same queue headlessly, while check, probe
// and config cover dependency diagnostics, media inspection and
// configuration scaffolding. Session assembly, configuration resolution and
// the single-instance lock live in the command context so subcommands only
// describe their user experience.
package main
