package listener

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aivta/go-adventure/internal/commands"
	"github.com/aivta/go-adventure/internal/display"
	"github.com/aivta/go-adventure/internal/engine"
)

// ConnectionManager turns one network connection into one interactive
// playthrough: a fresh session, a command loop, and a farewell on quit or
// game over. The session outlives the connection so it still shows up in
// listings and stats.
type ConnectionManager struct {
	eng *engine.Engine
}

func NewConnectionManager(eng *engine.Engine) *ConnectionManager {
	return &ConnectionManager{
		eng: eng,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.play(ctx, newCRLFReadWriter(conn)); err != nil && !errors.Is(err, io.EOF) {
		slog.WarnContext(ctx, "adventure session", "error", err)
	}
}

func (m *ConnectionManager) play(ctx context.Context, rw io.ReadWriter) error {
	info := m.eng.GameInfo()
	fmt.Fprintf(rw, "%s v%s\n%s\n\n", info.Name, info.Version, display.Wrap(info.Description))

	sess, err := m.eng.CreateSession(ctx, "")
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	res, err := m.eng.ExecuteCommand(ctx, sess.ID, "look")
	if err != nil {
		return fmt.Errorf("opening look: %w", err)
	}
	fmt.Fprintf(rw, "%s\n\n> ", display.Wrap(res.Narration))

	scanner := bufio.NewScanner(rw)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			fmt.Fprintln(rw, "Goodbye!")
			return nil
		}

		res, err := m.eng.ExecuteCommand(ctx, sess.ID, line)
		if err != nil && !errors.Is(err, commands.ErrEmptyCommand) {
			return fmt.Errorf("executing %q: %w", line, err)
		}

		fmt.Fprintf(rw, "%s\n", display.Wrap(res.Narration))

		if res.State.Victory || res.State.GameOver {
			fmt.Fprintf(rw, "\nFinal score: %d in %d moves.\n", res.State.Score, res.State.Moves)
			return nil
		}
		fmt.Fprint(rw, "\n> ")
	}
	return scanner.Err()
}
