package model

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// AnswerValue is one committed answer: a selected option index for a
// multiple-choice question or free text for a text question. Clients are
// sloppy about number representation, so the decoder accepts an index as a
// JSON number or a numeric string interchangeably.
type AnswerValue struct {
	Selected *int
	Text     string
}

// SelectedAnswer builds an mcq answer value.
func SelectedAnswer(idx int) AnswerValue {
	return AnswerValue{Selected: &idx}
}

// TextAnswer builds a free-text answer value.
func TextAnswer(s string) AnswerValue {
	return AnswerValue{Text: s}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.Selected != nil {
		return json.Marshal(*v.Selected)
	}
	return json.Marshal(v.Text)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		v.Selected = &n
		v.Text = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("answer must be a number or a string")
	}
	v.Selected = nil
	v.Text = s
	return nil
}

// Index returns the value as an option index when it holds one, coercing
// numeric strings: "1" and 1 both select option 1.
func (v AnswerValue) Index() (int, bool) {
	if v.Selected != nil {
		return *v.Selected, true
	}
	t := strings.TrimSpace(v.Text)
	if t == "" {
		return 0, false
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the value as free text, stringifying a stored index.
func (v AnswerValue) String() string {
	if v.Selected != nil {
		return strconv.Itoa(*v.Selected)
	}
	return v.Text
}

// IsZero reports whether the value carries neither an index nor text.
func (v AnswerValue) IsZero() bool {
	return v.Selected == nil && strings.TrimSpace(v.Text) == ""
}

// AnswerSet maps question position to the recorded answer. It lives only
// inside an attempt session; only the derived Result is ever persisted.
type AnswerSet map[int]AnswerValue

// Clone returns an independent copy of the set.
func (s AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
