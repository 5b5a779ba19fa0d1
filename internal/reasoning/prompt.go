package reasoning

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// analysisContext is the system framing sent with every proposal request.
const analysisContext = `You are an AI assistant playing a text-based adventure game.
Analyze the game state and suggest the best action to take.

Consider:
- Current situation and location
- Available actions or objects
- Game objectives
- Previous actions taken

Respond with a JSON object containing:
- "analysis": brief analysis of the current state
- "suggested_action": the recommended action to take
- "reasoning": why this action is recommended`

// promptHistoryLimit bounds how many previous commands are quoted in the
// prompt. Advisory only; it keeps the prompt small, nothing depends on it.
const promptHistoryLimit = 5

var promptTemplate = template.Must(template.New("propose").Funcs(sprig.TxtFuncMap()).Parse(
	`Current game state:
{{ .State }}

Previous actions: {{ if .History }}{{ join ", " .History }}{{ else }}None{{ end }}

What should I do next?`))

type promptData struct {
	State   string
	History []string
}

func buildPrompt(state string, history []string) (string, error) {
	if len(history) > promptHistoryLimit {
		history = history[len(history)-promptHistoryLimit:]
	}

	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, promptData{State: state, History: history})
	if err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}

	return buf.String(), nil
}
