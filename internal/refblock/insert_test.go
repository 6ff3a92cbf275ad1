package refblock

import (
	"testing"

	"github.com/zejiany/bibnote/internal/bibtex"
)

func TestInsertReplacesExistingRegion(t *testing.T) {
	body := "Intro.\n\n" + BeginMark + "\nstale\n" + EndMark + "\n\nOutro.\n"

	got := Insert(body, BeginMark+"\nfresh\n"+EndMark+"\n")
	want := "Intro.\n\n" + BeginMark + "\nfresh\n" + EndMark + "\n\nOutro.\n"
	if got != want {
		t.Errorf("Insert() =\n%q\nwant\n%q", got, want)
	}
}

func TestInsertReplacesOnlyFirstRegion(t *testing.T) {
	body := BeginMark + "\nold one\n" + EndMark + "\n\nmiddle\n\n" + BeginMark + "\nold two\n" + EndMark + "\n"

	got := Insert(body, BeginMark+"\nnew\n"+EndMark)
	want := BeginMark + "\nnew\n" + EndMark + "\n\nmiddle\n\n" + BeginMark + "\nold two\n" + EndMark + "\n"
	if got != want {
		t.Errorf("Insert() =\n%q\nwant\n%q", got, want)
	}
}

func TestInsertAppendsWhenMarkersAbsent(t *testing.T) {
	blk := BeginMark + "\ncontent\n" + EndMark + "\n"
	want := "# Note\n\nText.\n\n" + blk

	tests := []struct {
		name string
		body string
	}{
		{name: "no trailing newline", body: "# Note\n\nText."},
		{name: "one trailing newline", body: "# Note\n\nText.\n"},
		{name: "many trailing newlines", body: "# Note\n\nText.\n\n\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Insert(tt.body, blk)
			if got != want {
				t.Errorf("Insert(%q) =\n%q\nwant\n%q", tt.body, got, want)
			}
		})
	}
}

func TestInsertEmptyBody(t *testing.T) {
	blk := BeginMark + "\ncontent\n" + EndMark + "\n"

	got := Insert("", blk)
	want := "\n\n" + blk
	if got != want {
		t.Errorf("Insert(\"\") = %q, want %q", got, want)
	}
}

func TestInsertOutOfOrderMarkersLeaveBodyAlone(t *testing.T) {
	body := EndMark + "\n\ntext\n\n" + BeginMark + "\n"

	got := Insert(body, BeginMark+"\nnew\n"+EndMark)
	if got != body {
		t.Errorf("Insert() = %q, want body unchanged %q", got, body)
	}
}

func TestInsertIdempotentForSameBlock(t *testing.T) {
	idx := bibtex.Index{"k": {Key: "k", Type: "misc", Fields: map[string]string{}}}
	blk := Generate([]string{"k"}, idx, false, stampTime)

	once := Insert("Prose.\n", blk)
	twice := Insert(once, blk)
	if once != twice {
		t.Errorf("second insert changed the file:\n%q\nvs\n%q", once, twice)
	}
}
