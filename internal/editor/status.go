package editor

import "fmt"

const (
	// DefaultCommandCapacity bounds the text collected after ':'.
	DefaultCommandCapacity = 15
	// MaxCommandCapacity is the largest capacity NewStatusBar accepts.
	MaxCommandCapacity = 4096
)

// StatusBar holds the ':' command line being collected and the temporary
// status message.
type StatusBar struct {
	Prompting     bool   // ':' command input is active
	StatusMessage string // Temporary message, cleared on the next key

	promptText []byte
	capacity   int
}

func NewStatusBar(capacity int) *StatusBar {
	if capacity <= 0 {
		capacity = DefaultCommandCapacity
	}
	capacity = min(capacity, MaxCommandCapacity)
	return &StatusBar{
		promptText: make([]byte, 0, capacity),
		capacity:   capacity,
	}
}

// StartPrompt begins collecting a command line.
func (s *StatusBar) StartPrompt() {
	s.Prompting = true
	s.promptText = s.promptText[:0]
}

// ClearPrompt resets the prompt state.
func (s *StatusBar) ClearPrompt() {
	s.Prompting = false
	s.promptText = s.promptText[:0]
}

// PromptText returns the command line collected so far.
func (s *StatusBar) PromptText() string {
	return string(s.promptText)
}

// AppendPrompt adds b to the command line. Bytes beyond the capacity are
// dropped and AppendPrompt reports false.
func (s *StatusBar) AppendPrompt(b byte) bool {
	if len(s.promptText) >= s.capacity {
		return false
	}
	s.promptText = append(s.promptText, b)
	return true
}

// BackspacePrompt removes the last collected byte, if any.
func (s *StatusBar) BackspacePrompt() {
	if n := len(s.promptText); n > 0 {
		s.promptText = s.promptText[:n-1]
	}
}

// SubmitPrompt ends the prompt and returns its text.
func (s *StatusBar) SubmitPrompt() string {
	text := s.PromptText()
	s.ClearPrompt()
	return text
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(format string, args ...any) {
	s.StatusMessage = fmt.Sprintf(format, args...)
}

// ClearMessage clears the temporary status message.
func (s *StatusBar) ClearMessage() {
	s.StatusMessage = ""
}
