package messaging

import (
	"encoding/json"
	"log/slog"
	"time"
)

const (
	SubjectSessionCreated = "game.session.created"
	SubjectSessionDeleted = "game.session.deleted"
	SubjectSessionWon     = "game.session.won"
	SubjectCommand        = "game.session.command"
)

// Publisher is the narrow surface the event publisher needs from the nats
// server.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// SessionEvent is the JSON payload published for session lifecycle events.
type SessionEvent struct {
	SessionID string    `json:"session_id"`
	GameType  string    `json:"game_type,omitempty"`
	Command   string    `json:"command,omitempty"`
	Success   bool      `json:"success,omitempty"`
	Score     int       `json:"score,omitempty"`
	Moves     int       `json:"moves,omitempty"`
	At        time.Time `json:"at"`
}

// EventPublisher publishes typed session events to the game subjects.
// Publishing is best effort: a broker failure is logged, never surfaced,
// because game state must not depend on event delivery.
type EventPublisher struct {
	pub Publisher
}

func NewEventPublisher(pub Publisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

func (p *EventPublisher) SessionCreated(id, gameType string) {
	p.publish(SubjectSessionCreated, SessionEvent{SessionID: id, GameType: gameType, At: time.Now().UTC()})
}

func (p *EventPublisher) SessionDeleted(id string) {
	p.publish(SubjectSessionDeleted, SessionEvent{SessionID: id, At: time.Now().UTC()})
}

func (p *EventPublisher) SessionWon(id string, score, moves int) {
	p.publish(SubjectSessionWon, SessionEvent{SessionID: id, Score: score, Moves: moves, At: time.Now().UTC()})
}

func (p *EventPublisher) CommandExecuted(id, command string, success bool, score, moves int) {
	p.publish(SubjectCommand, SessionEvent{
		SessionID: id,
		Command:   command,
		Success:   success,
		Score:     score,
		Moves:     moves,
		At:        time.Now().UTC(),
	})
}

func (p *EventPublisher) publish(subject string, event SessionEvent) {
	if p == nil || p.pub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		slog.Warn("encoding session event", "subject", subject, "error", err)
		return
	}

	if err := p.pub.Publish(subject, data); err != nil {
		slog.Warn("publishing session event", "subject", subject, "error", err)
	}
}
