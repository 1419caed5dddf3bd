// Package confirm shows the operator what is about to happen and asks for
// approval before anything leaves the machine.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Verbs accepted in addition to "yes" and "y".
const (
	VerbSend   = "send"
	VerbDraft  = "draft"
	VerbCreate = "create"
)

// Request is a single confirmation question.
type Request struct {
	// Preview is printed before the question.
	Preview string
	// Question is asked verbatim, e.g. "Send this email?".
	Question string
	// Verb is the action word the operator may answer with.
	Verb string
}

// Confirmer decides whether an action may proceed.
type Confirmer interface {
	Confirm(req Request) (bool, error)
}

// Always approves every request without showing anything. It backs --yes.
type Always struct{}

func (Always) Confirm(Request) (bool, error) {
	return true, nil
}

// Prompt prints the preview to Out and reads one answer line from In.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// Confirm returns true only for an accepted answer. End of input counts as
// a refusal.
func (p Prompt) Confirm(req Request) (bool, error) {
	if req.Preview != "" {
		if _, err := io.WriteString(p.Out, req.Preview); err != nil {
			return false, fmt.Errorf("failed to write preview: %w", err)
		}
	}
	if _, err := fmt.Fprintf(p.Out, "%s (yes/no): ", req.Question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return Accepted(line, req.Verb), nil
}

// Accepted reports whether answer approves an action named verb.
func Accepted(answer, verb string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return false
	}
	return a == "yes" || a == "y" || (verb != "" && a == strings.ToLower(verb))
}
