package game

import "fmt"

// Message texts shown by the presentation layer.
const (
	WelcomeTitle = "Welcome to Monster Catch!"
	WelcomeBody  = "Click the monsters as they appear!"
	PausedTitle  = "Game paused"
	PausedBody   = "Resume to keep playing."
)

// EndMessage returns the title and body announcing a finished session.
func EndMessage(outcome Outcome, finalScore int) (title, body string) {
	var detail string

	switch outcome {
	case OutcomeSurvived:
		title = "Game complete!"
		detail = "You survived the clock!"
	case OutcomeAbandoned:
		title = "Game over!"
		detail = "The game was abandoned."
	default:
		title = "Game over!"
		detail = "You ran out of lives."
	}

	return title, fmt.Sprintf("Final score: %d\n%s", finalScore, detail)
}
