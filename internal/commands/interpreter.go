package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aivta/go-adventure/internal/game"
	"github.com/aivta/go-adventure/internal/world"
)

// ErrEmptyCommand is returned when the raw command contains no words. The
// narration in the accompanying Result is still player-presentable.
var ErrEmptyCommand = errors.New("empty command")

// Verb is a canonical action keyword. Raw input resolves to one of these
// through the synonym table before dispatch.
type Verb string

const (
	VerbGo        Verb = "go"
	VerbLook      Verb = "look"
	VerbInventory Verb = "inventory"
	VerbTake      Verb = "take"
	VerbDrop      Verb = "drop"
	VerbUse       Verb = "use"
	VerbHelp      Verb = "help"
)

// synonyms maps every accepted verb word to its canonical verb.
var synonyms = map[string]Verb{
	"go":        VerbGo,
	"move":      VerbGo,
	"walk":      VerbGo,
	"look":      VerbLook,
	"examine":   VerbLook,
	"l":         VerbLook,
	"inventory": VerbInventory,
	"i":         VerbInventory,
	"take":      VerbTake,
	"get":       VerbTake,
	"pick":      VerbTake,
	"drop":      VerbDrop,
	"put":       VerbDrop,
	"use":       VerbUse,
	"activate":  VerbUse,
	"help":      VerbHelp,
	"?":         VerbHelp,
}

// directions maps bare direction words (and their single-letter aliases) to
// the direction passed to the movement handler.
var directions = map[string]string{
	"north": "north",
	"south": "south",
	"east":  "east",
	"west":  "west",
	"n":     "north",
	"s":     "south",
	"e":     "east",
	"w":     "west",
}

// handlerFunc executes one canonical verb against a session. It returns the
// narration and whether the action's effect actually applied.
type handlerFunc func(sess *game.Session, arg string) (string, bool)

// Result is the structured outcome of one executed command.
type Result struct {
	Narration string             `json:"response"`
	Success   bool               `json:"success"`
	State     game.StateSnapshot `json:"game_state"`
	Valid     []string           `json:"valid_commands"`
}

// Interpreter parses raw text commands and applies them to a session's
// state. All side effects are confined to the session passed in; the
// catalog is never written.
type Interpreter struct {
	catalog  *world.Catalog
	scoring  Scoring
	handlers map[Verb]handlerFunc
}

// NewInterpreter builds an interpreter over a catalog with the given
// scoring rules.
func NewInterpreter(catalog *world.Catalog, scoring Scoring) *Interpreter {
	i := &Interpreter{
		catalog: catalog,
		scoring: scoring,
	}
	i.handlers = map[Verb]handlerFunc{
		VerbGo:        i.handleMove,
		VerbLook:      i.handleLook,
		VerbInventory: i.handleInventory,
		VerbTake:      i.handleTake,
		VerbDrop:      i.handleDrop,
		VerbUse:       i.handleUse,
		VerbHelp:      i.handleHelp,
	}
	return i
}

// Execute runs one raw command against the session. Every dispatched
// command counts as a move, whether or not it does anything; a failed
// action yields a normal narration, not an error. Errors are structural
// only: a non-active session, or empty input.
func (i *Interpreter) Execute(sess *game.Session, raw string) (*Result, error) {
	if sess.Status != game.StatusActive {
		return nil, fmt.Errorf("session %s: %w", sess.ID, game.ErrSessionNotActive)
	}

	norm := strings.ToLower(strings.TrimSpace(raw))
	words := strings.Fields(norm)
	if len(words) == 0 {
		return &Result{
			Narration: "Please enter a command.",
			State:     game.NewSnapshot(i.catalog, sess),
			Valid:     i.ValidCommands(sess),
		}, ErrEmptyCommand
	}

	verb := words[0]
	arg := strings.Join(words[1:], " ")

	narration, success := i.dispatch(sess, verb, arg)

	sess.Player.Moves++
	sess.LastCommand = norm

	// Win check runs after every command. It can only fire once: the
	// status transition takes the session out of active.
	if sess.Player.Room == i.catalog.WinRoomID() && sess.Status == game.StatusActive {
		sess.Status = game.StatusWon
		sess.Player.Score += i.scoring.Win
		narration += "\n\nCongratulations! You've successfully completed the adventure!"
	}

	return &Result{
		Narration: narration,
		Success:   success,
		State:     game.NewSnapshot(i.catalog, sess),
		Valid:     i.ValidCommands(sess),
	}, nil
}

func (i *Interpreter) dispatch(sess *game.Session, verb, arg string) (string, bool) {
	// Bare direction words move without a verb.
	if dir, ok := directions[verb]; ok && arg == "" {
		return i.handleMove(sess, dir)
	}

	canonical, ok := synonyms[verb]
	if !ok {
		return fmt.Sprintf("I don't understand '%s'. Type 'help' for a list of commands.", verb), false
	}

	// Movement requires a direction argument; "go" alone is not a command.
	if canonical == VerbGo && arg == "" {
		return fmt.Sprintf("I don't understand '%s'. Type 'help' for a list of commands.", verb), false
	}

	return i.handlers[canonical](sess, arg)
}

// ValidCommands recomputes the currently sensible commands from the
// session's room exits, room items, and inventory. No caching; the result
// always reflects the state passed in.
func (i *Interpreter) ValidCommands(sess *game.Session) []string {
	cmds := []string{"look", "inventory", "help"}

	room := i.catalog.Room(sess.Player.Room)
	if room != nil {
		dirs := make([]string, 0, len(room.Exits))
		for dir := range room.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		for _, dir := range dirs {
			cmds = append(cmds, "go "+dir, dir)
		}
	}

	for _, item := range sess.RoomItems(sess.Player.Room) {
		cmds = append(cmds, "take "+item, "examine "+item)
	}

	for _, item := range sess.Player.Inventory {
		cmds = append(cmds, "drop "+item, "use "+item, "examine "+item)
	}

	return cmds
}
