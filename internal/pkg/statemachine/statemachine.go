package statemachine

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Transition[S ~string] struct {
	From S
	To   S
}

// Table is an explicit list of allowed status changes. Statuses that appear
// only as a target are terminal.
type Table[S ~string] struct {
	name        string
	transitions map[S][]S
	known       map[S]struct{}
}

func NewTable[S ~string](name string, transitions ...Transition[S]) *Table[S] {
	t := &Table[S]{
		name:        name,
		transitions: make(map[S][]S, len(transitions)),
		known:       make(map[S]struct{}, len(transitions)*2),
	}
	for _, tr := range transitions {
		t.transitions[tr.From] = append(t.transitions[tr.From], tr.To)
		t.known[tr.From] = struct{}{}
		t.known[tr.To] = struct{}{}
	}
	return t
}

func (t *Table[S]) Name() string {
	return t.name
}

// Known reports whether s takes part in any transition of the table.
func (t *Table[S]) Known(s S) bool {
	_, ok := t.known[s]
	return ok
}

// Next returns the statuses reachable from s in one step, in declaration order.
func (t *Table[S]) Next(from S) []S {
	next := t.transitions[from]
	out := make([]S, len(next))
	copy(out, next)
	return out
}

func (t *Table[S]) Can(from, to S) error {
	for _, candidate := range t.transitions[from] {
		if candidate == to {
			return nil
		}
	}

	next := make([]string, 0, len(t.transitions[from]))
	for _, s := range t.transitions[from] {
		next = append(next, string(s))
	}
	return &TransitionError{
		Table: t.name,
		From:  string(from),
		To:    string(to),
		Next:  next,
	}
}

// TransitionError describes a rejected transition. It matches ErrInvalidTransition.
type TransitionError struct {
	Table string
	From  string
	To    string
	Next  []string
}

func (e *TransitionError) Error() string {
	valid := "none (terminal state)"
	if len(e.Next) > 0 {
		valid = strings.Join(e.Next, ", ")
	}
	return fmt.Sprintf("%s: %s %s -> %s, valid next states: %s", ErrInvalidTransition, e.Table, e.From, e.To, valid)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NextStates extracts the valid next states from err, if it carries them.
func NextStates(err error) ([]string, bool) {
	var te *TransitionError
	if !errors.As(err, &te) {
		return nil, false
	}
	return te.Next, true
}
