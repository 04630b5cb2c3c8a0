package llm

import "errors"

var (
	// ErrUnavailable indicates the model API endpoint is unreachable.
	ErrUnavailable = errors.New("model api unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("model request timed out")

	// ErrOverloaded indicates the API reported overload (HTTP 529).
	ErrOverloaded = errors.New("model api overloaded")

	// ErrRateLimited indicates the API rejected the request for rate
	// limiting (HTTP 429).
	ErrRateLimited = errors.New("model api rate limited")

	// ErrAuthentication indicates a missing or rejected API key.
	ErrAuthentication = errors.New("model api authentication failed")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")
)

// FriendlyMessage maps an API error to the message shown to the user.
// Collection turns never fail hard on these; the caller reports the
// message and the user retries with the next turn.
func FriendlyMessage(err error) string {
	switch {
	case errors.Is(err, ErrOverloaded):
		return "The AI service is temporarily overloaded. Please try again in a few minutes."
	case errors.Is(err, ErrRateLimited):
		return "Rate limit exceeded. Please wait a moment before trying again."
	case errors.Is(err, ErrAuthentication):
		return "Authentication error. Please check the API key configuration."
	case errors.Is(err, ErrTimeout):
		return "The AI service took too long to respond. Please try again."
	default:
		return "The AI service is unavailable right now. Please try again."
	}
}
