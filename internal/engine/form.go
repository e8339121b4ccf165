package engine

import (
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxCharacters caps the character list of a draft.
const MaxCharacters = 5

var (
	ErrIndexOutOfRange   = errors.New("character index out of range")
	ErrPermanentSlot     = errors.New("first character slot cannot be removed")
	ErrFormClosed        = errors.New("form is closed")
	ErrSubmissionPending = errors.New("submission pending")
)

// Draft is the ephemeral content of a creation form. It always holds between
// 1 and MaxCharacters character names.
type Draft struct {
	ageGroup   string
	theme      string
	characters []string
}

// NewDraft returns an empty draft with one blank character slot.
func NewDraft() Draft { return Draft{characters: []string{""}} }

func (d Draft) AgeGroup() string { return d.ageGroup }
func (d Draft) Theme() string    { return d.theme }

// Characters returns a copy of the character names.
func (d Draft) Characters() []string { return slices.Clone(d.characters) }

func (d Draft) Len() int { return len(d.characters) }

// Clone deep-copies d.
func (d Draft) Clone() Draft {
	d.characters = slices.Clone(d.characters)
	return d
}

func (d *Draft) SetAgeGroup(text string) { d.ageGroup = text }
func (d *Draft) SetTheme(text string)    { d.theme = text }

// AddCharacter appends a blank slot. At MaxCharacters it does nothing and
// reports false.
func (d *Draft) AddCharacter() bool {
	if len(d.characters) >= MaxCharacters {
		return false
	}
	d.characters = append(d.characters, "")
	return true
}

func (d *Draft) UpdateCharacter(index int, text string) error {
	if index < 0 || index >= len(d.characters) {
		return errors.Wrapf(ErrIndexOutOfRange, "update %d of %d", index, len(d.characters))
	}
	d.characters[index] = text
	return nil
}

// RemoveCharacter drops the slot at index, keeping the order of the rest.
func (d *Draft) RemoveCharacter(index int) error {
	if index == 0 {
		return ErrPermanentSlot
	}
	if index < 0 || index >= len(d.characters) {
		return errors.Wrapf(ErrIndexOutOfRange, "remove %d of %d", index, len(d.characters))
	}
	d.characters = slices.Delete(d.characters, index, index+1)
	return nil
}

// FormOp names what changed in a FormChange.
type FormOp int

const (
	OpOpen FormOp = iota
	OpClose
	OpEdit
	OpSubmit
	OpComplete
)

func (o FormOp) String() string {
	return [...]string{"open", "close", "edit", "submit", "complete"}[o]
}

// FormChange is delivered to form subscribers after every state change.
type FormChange struct {
	Form *Form
	Op   FormOp
}

// Submission is the snapshot handed to the generator.
type Submission struct {
	Session uuid.UUID
	Kind    Kind
	Draft   Draft
}

// Form is the per-screen creation form: a Closed/Open state machine around a
// Draft, with a submitting flag while generation is pending.
type Form struct {
	kind       Kind
	visibility Visibility
	draft      Draft
	submitting bool
	session    uuid.UUID
	subs       subscribers[FormChange]
}

// NewForm returns a Closed form.
func NewForm(kind Kind) *Form { return &Form{kind: kind} }

func (f *Form) Kind() Kind             { return f.kind }
func (f *Form) Visibility() Visibility { return f.visibility }
func (f *Form) IsOpen() bool           { return f.visibility == Open }
func (f *Form) Submitting() bool       { return f.submitting }
func (f *Form) Session() uuid.UUID     { return f.session }
func (f *Form) Draft() Draft           { return f.draft.Clone() }
func (f *Form) CanAddCharacter() bool  { return f.IsOpen() && f.draft.Len() < MaxCharacters }

// Subscribe registers fn for every state change.
func (f *Form) Subscribe(fn func(FormChange)) (unsubscribe func()) { return f.subs.add(fn) }

// Open starts a new session with a fresh draft. Nothing from an earlier
// session carries over.
func (f *Form) Open() error {
	if f.submitting {
		return ErrSubmissionPending
	}
	f.visibility = Open
	f.draft = NewDraft()
	f.session = uuid.New()
	f.emit(OpOpen)
	return nil
}

// Close discards the draft. A pending submission keeps the form open.
func (f *Form) Close() error {
	if f.visibility == Closed {
		return nil
	}
	if f.submitting {
		return ErrSubmissionPending
	}
	f.reset()
	f.emit(OpClose)
	return nil
}

func (f *Form) SetAgeGroup(text string) {
	if !f.IsOpen() {
		return
	}
	f.draft.SetAgeGroup(text)
	f.emit(OpEdit)
}

func (f *Form) SetTheme(text string) {
	if !f.IsOpen() {
		return
	}
	f.draft.SetTheme(text)
	f.emit(OpEdit)
}

// AddCharacter reports whether a slot was added.
func (f *Form) AddCharacter() bool {
	if !f.IsOpen() || !f.draft.AddCharacter() {
		return false
	}
	f.emit(OpEdit)
	return true
}

func (f *Form) UpdateCharacter(index int, text string) error {
	if !f.IsOpen() {
		return ErrFormClosed
	}
	if err := f.draft.UpdateCharacter(index, text); err != nil {
		return err
	}
	f.emit(OpEdit)
	return nil
}

func (f *Form) RemoveCharacter(index int) error {
	if !f.IsOpen() {
		return ErrFormClosed
	}
	if err := f.draft.RemoveCharacter(index); err != nil {
		return err
	}
	f.emit(OpEdit)
	return nil
}

// Submit marks the form as submitting and returns the snapshot to generate
// from. The draft contents are not checked.
func (f *Form) Submit() (Submission, error) {
	if !f.IsOpen() {
		return Submission{}, ErrFormClosed
	}
	if f.submitting {
		return Submission{}, ErrSubmissionPending
	}
	f.submitting = true
	f.emit(OpSubmit)
	return Submission{Session: f.session, Kind: f.kind, Draft: f.draft.Clone()}, nil
}

// Complete finishes the pending submission of the current session and closes
// the form. Completions for another session are ignored.
func (f *Form) Complete(c Completion) bool {
	if !f.submitting || c.Session != f.session {
		return false
	}
	f.reset()
	f.emit(OpComplete)
	return true
}

func (f *Form) reset() {
	f.visibility = Closed
	f.submitting = false
	f.draft = Draft{}
}

func (f *Form) emit(op FormOp) { f.subs.notify(FormChange{Form: f, Op: op}) }
