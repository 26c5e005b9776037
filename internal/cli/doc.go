// Package cli implements the command-line interface for nps-explorer.
//
// The cli package provides the Cobra-based CLI. The root command runs the
// interactive explorer session; the states and sites subcommands print the state
// directory or a state's sites as text or JSON. All commands share the same
// configuration, cache and scraper wiring.
package cli
