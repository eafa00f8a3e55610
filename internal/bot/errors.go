package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PostHog/contributions-bot/internal/intent"
)

// Error 可以直接回复给用户的已知错误
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func IsKnownError(err error) (*Error, bool) {
	var known *Error
	if errors.As(err, &known) {
		return known, true
	}
	return nil, false
}

const troubleMessage = "We had trouble processing your request. Please try again later."

func unknownIntentError(botName string) error {
	return &Error{Message: fmt.Sprintf("I could not determine your intention.\n\n"+
		"Basic usage: @%s please add @jakebolam for code, doc and infra\n\n"+
		"Or ask me to summarize this thread: @%s please summarize", botName, botName)}
}

func noContributionsError() error {
	return &Error{Message: "I couldn't determine any contributions to add, did you specify any contributions?\n" +
		"Please make sure to use [valid contribution names](https://allcontributors.org/docs/en/emoji-key): " +
		strings.Join(intent.ContributionCodes(), ", ")}
}

func nothingToSummarizeError() error {
	return &Error{Message: "There is nothing to summarize yet."}
}
