package explorer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pfrederiksen/nps-explorer/internal/logger"
	"github.com/pfrederiksen/nps-explorer/internal/park"
	"github.com/pfrederiksen/nps-explorer/internal/places"
)

const (
	promptState = "Please enter a state name you want to search (e.g. Michigan, michigan) or 'exit': "
	promptSite  = "Choose the number for detail search or 'exit' or 'back': "

	errBadState = "[Error] Please enter a proper state name"
	errBadInput = "[Error] Invalid input"

	cmdExit = "exit"
	cmdBack = "back"
)

// State is a step of the interactive session.
type State int

const (
	StateSelectingState State = iota
	StateSelectingSite
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSelectingState:
		return "SelectingState"
	case StateSelectingSite:
		return "SelectingSite"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SiteLister lists the sites found on a state page.
type SiteLister interface {
	ListSitesForState(ctx context.Context, stateURL string) ([]park.Site, error)
}

// PlaceFinder finds businesses near a site.
type PlaceFinder interface {
	NearbyPlaces(ctx context.Context, site park.Site) (*places.SearchResponse, error)
}

// selection is the payload of StateSelectingSite.
type selection struct {
	state string
	sites []park.Site
}

// line is the outcome of reading one line of input.
type line struct {
	text string
	err  error
}

// Session is one run of the interactive loop. It is not safe for concurrent use.
type Session struct {
	directory map[string]string
	sites     SiteLister
	places    PlaceFinder
	in        *bufio.Reader
	out       io.Writer
	pending   chan line // read in flight, nil when idle

	state     State
	selection *selection // non-nil exactly when state is StateSelectingSite
	history   []State
}

// New creates a session over a state directory (lower-cased state name to state
// page URL) reading commands from in and writing to out.
func New(directory map[string]string, sites SiteLister, finder PlaceFinder, in io.Reader, out io.Writer) *Session {
	return &Session{
		directory: directory,
		sites:     sites,
		places:    finder,
		in:        bufio.NewReader(in),
		out:       out,
		state:     StateSelectingState,
		history:   []State{StateSelectingState},
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Transitions returns every state the session has been in, in order, starting
// with the initial state.
func (s *Session) Transitions() []State {
	return append([]State(nil), s.history...)
}

// Run drives the session until the user exits or input ends. Fetch and parse
// failures are returned and end the session.
func (s *Session) Run(ctx context.Context) error {
	for s.state != StateDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch s.state {
		case StateSelectingState:
			err = s.selectState(ctx)
		case StateSelectingSite:
			err = s.selectSite(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) transition(next State, sel *selection) {
	s.state = next
	s.selection = sel
	s.history = append(s.history, next)
	logger.Debug("session transition", logger.Fields{"state": next.String()})
}

// readLine prompts and reads one line. ok is false once input is exhausted.
// The read runs on its own goroutine so a cancelled ctx ends the wait; a read
// abandoned that way is picked up by the next call.
func (s *Session) readLine(ctx context.Context, prompt string) (string, bool, error) {
	fmt.Fprint(s.out, prompt)

	if s.pending == nil {
		s.pending = make(chan line, 1)
		go func(ch chan<- line) {
			text, err := s.in.ReadString('\n')
			ch <- line{text: text, err: err}
		}(s.pending)
	}

	var result line
	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", false, ctx.Err()
	case result = <-s.pending:
		s.pending = nil
	}

	// Input may arrive in the same instant as the cancellation
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	switch {
	case result.err == nil:
	case errors.Is(result.err, io.EOF):
		if result.text == "" {
			fmt.Fprintln(s.out)
			return "", false, nil
		}
	default:
		return "", false, fmt.Errorf("reading input: %w", result.err)
	}

	return strings.TrimSpace(result.text), true, nil
}

func (s *Session) selectState(ctx context.Context) error {
	input, ok, err := s.readLine(ctx, promptState)
	if err != nil {
		return err
	}
	if !ok || input == cmdExit {
		s.transition(StateDone, nil)
		return nil
	}

	name := strings.ToLower(input)
	stateURL, known := s.directory[name]
	if !known {
		fmt.Fprintf(s.out, "%s\n\n", errBadState)
		return nil
	}

	sites, err := s.sites.ListSitesForState(ctx, stateURL)
	if err != nil {
		return fmt.Errorf("listing sites for %s: %w", name, err)
	}

	WriteSiteList(s.out, name, sites)
	s.transition(StateSelectingSite, &selection{state: name, sites: sites})
	return nil
}

func (s *Session) selectSite(ctx context.Context) error {
	fmt.Fprintln(s.out, separator)
	input, ok, err := s.readLine(ctx, promptSite)
	if err != nil {
		return err
	}
	if !ok {
		s.transition(StateDone, nil)
		return nil
	}

	switch input {
	case cmdExit:
		s.transition(StateDone, nil)
		return nil
	case cmdBack:
		s.transition(StateSelectingState, nil)
		return nil
	}

	index, valid := parseIndex(input, len(s.selection.sites))
	if !valid {
		fmt.Fprintf(s.out, "%s\n\n", errBadInput)
		return nil
	}

	site := s.selection.sites[index]
	result, err := s.places.NearbyPlaces(ctx, site)
	if err != nil {
		return fmt.Errorf("finding places near %s: %w", site.Name, err)
	}

	WritePlaces(s.out, site, result.SearchResults)
	return nil
}

// parseIndex converts a 1-based menu choice into a 0-based index into a list of
// n items. Only plain digits are accepted.
func parseIndex(input string, n int) (int, bool) {
	if input == "" || strings.TrimLeft(input, "0123456789") != "" {
		return 0, false
	}
	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > n {
		return 0, false
	}
	return choice - 1, true
}
