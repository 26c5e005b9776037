// Package explorer implements the interactive state and site selection session.
//
// A Session moves between two states. In StateSelectingState it asks for a state
// name and lists that state's sites. In StateSelectingSite it carries the listed
// sites and asks for a site number, printing the businesses near the chosen site.
// "back" returns to state selection and "exit" ends the session. Bad input is
// reported and asked for again; errors from the scraper or places API end the
// session.
package explorer
