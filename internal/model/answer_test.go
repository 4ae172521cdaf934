package model

import (
	"encoding/json"
	"testing"
)

func TestAnswerValueUnmarshal(t *testing.T) {
	var v AnswerValue
	if err := json.Unmarshal([]byte(`1`), &v); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if v.Selected == nil || *v.Selected != 1 {
		t.Fatalf("expected selected index 1, got %+v", v)
	}

	if err := json.Unmarshal([]byte(`"paris"`), &v); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if v.Selected != nil || v.Text != "paris" {
		t.Fatalf("expected text value, got %+v", v)
	}

	if err := json.Unmarshal([]byte(`{"a":1}`), &v); err == nil {
		t.Fatal("object accepted as answer value")
	}
}

func TestAnswerValueMarshal(t *testing.T) {
	data, err := json.Marshal(SelectedAnswer(2))
	if err != nil {
		t.Fatalf("marshal selected: %v", err)
	}
	if string(data) != "2" {
		t.Fatalf("expected 2, got %s", data)
	}

	data, err = json.Marshal(TextAnswer("paris"))
	if err != nil {
		t.Fatalf("marshal text: %v", err)
	}
	if string(data) != `"paris"` {
		t.Fatalf(`expected "paris", got %s`, data)
	}
}

func TestAnswerValueIndexCoercion(t *testing.T) {
	if idx, ok := SelectedAnswer(3).Index(); !ok || idx != 3 {
		t.Fatalf("expected (3, true), got (%d, %v)", idx, ok)
	}
	// A numeric string selects the same option as the matching number.
	if idx, ok := TextAnswer("1").Index(); !ok || idx != 1 {
		t.Fatalf("expected (1, true), got (%d, %v)", idx, ok)
	}
	if _, ok := TextAnswer("paris").Index(); ok {
		t.Fatal("non-numeric text coerced into an index")
	}
	if _, ok := TextAnswer("  ").Index(); ok {
		t.Fatal("blank text coerced into an index")
	}
}

func TestAnswerValueString(t *testing.T) {
	if got := SelectedAnswer(2).String(); got != "2" {
		t.Fatalf("expected \"2\", got %q", got)
	}
	if got := TextAnswer("Paris").String(); got != "Paris" {
		t.Fatalf("expected \"Paris\", got %q", got)
	}
}

func TestAnswerSetClone(t *testing.T) {
	set := AnswerSet{0: SelectedAnswer(1)}
	cp := set.Clone()
	cp[0] = TextAnswer("changed")
	if set[0].Text == "changed" {
		t.Fatal("clone shares entries with the source")
	}
}
