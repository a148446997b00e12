// Package session holds the state behind an interactive generator front end:
// the form the user edits, the last generated password and a status line.
// The password builder never sees this state; a Session snapshots the form
// into an immutable request and calls the builder.
package session

import (
	"errors"
	"fmt"

	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/crypto"
)

const (
	StatusGenerated = "Generated."
	StatusCopied    = "Copied to clipboard."
)

var ErrNothingToCopy = errors.New("nothing to copy")

// Clipboard receives text to place on the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Form is a snapshot of the generator inputs as the user entered them.
type Form struct {
	LengthText string
	Classes    crypto.ClassSet
}

// DefaultForm returns the form pre-filled from defaults.
func DefaultForm(d config.Defaults) Form {
	return Form{LengthText: fmt.Sprint(d.Length), Classes: d.Classes}
}

// Request validates the form and converts it into a generation request.
func (f Form) Request() (crypto.GenerationRequest, error) {
	length, err := crypto.ParseLength(f.LengthText)
	if err != nil {
		return crypto.GenerationRequest{}, err
	}
	req := crypto.GenerationRequest{Length: length, Classes: f.Classes}
	if err := req.Validate(); err != nil {
		return crypto.GenerationRequest{}, err
	}
	return req, nil
}

// Session is not safe for concurrent use.
type Session struct {
	gen    *crypto.Generator
	clip   Clipboard
	form   Form
	output string
	status string
}

// New creates a Session starting from form. clip may be nil, in which case
// copying always fails.
func New(gen *crypto.Generator, clip Clipboard, form Form) *Session {
	if gen == nil {
		gen = crypto.NewGenerator(nil)
	}
	return &Session{gen: gen, clip: clip, form: form}
}

func (s *Session) Form() Form { return s.form }

// Output returns the last successfully generated password.
func (s *Session) Output() string { return s.output }

// Status returns the message describing the last action.
func (s *Session) Status() string { return s.status }

// SetLength replaces the length field text.
func (s *Session) SetLength(text string) {
	s.form.LengthText = text
}

// Toggle flips one character class checkbox.
func (s *Session) Toggle(c crypto.CharacterClass) {
	s.form.Classes = s.form.Classes.Toggle(c)
}

// Generate builds a password from the current form. On failure the previous
// output is kept and the status explains the problem.
func (s *Session) Generate() (string, error) {
	req, err := s.form.Request()
	if err != nil {
		s.status = Message(err)
		return "", err
	}

	password, err := s.gen.Generate(req)
	if err != nil {
		s.status = Message(err)
		return "", err
	}

	s.output = password
	s.status = StatusGenerated
	return password, nil
}

// Copy places the last generated password on the clipboard.
func (s *Session) Copy() error {
	if s.output == "" {
		s.status = Message(ErrNothingToCopy)
		return ErrNothingToCopy
	}
	if s.clip == nil {
		err := errors.New("no clipboard available")
		s.status = "Copy failed: " + err.Error()
		return err
	}
	if err := s.clip.WriteAll(s.output); err != nil {
		s.status = "Copy failed: " + err.Error()
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	s.status = StatusCopied
	return nil
}

// Message renders err as the sentence shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, crypto.ErrInvalidLength):
		return "Length must be a number."
	case errors.Is(err, crypto.ErrOutOfRange):
		return fmt.Sprintf("Choose a length between %d and %d.", crypto.MinLength, crypto.MaxLength)
	case errors.Is(err, crypto.ErrNoClassSelected):
		return "Select at least one character set."
	case errors.Is(err, crypto.ErrLengthInsufficient):
		return "Length must be at least the number of selected character sets."
	case errors.Is(err, ErrNothingToCopy):
		return "Nothing to copy. Generate first."
	}
	return "Generation failed: " + err.Error()
}
