package pipeline

import (
	"reflect"
	"testing"

	"github.com/matzehuels/wordpages/pkg/errors"
	"github.com/matzehuels/wordpages/pkg/table"
	"github.com/matzehuels/wordpages/pkg/text"
)

func TestGenerateLayoutDerive(t *testing.T) {
	opts := onePerPage()
	opts.Derive = DerivedColumns
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}

	l, err := GenerateLayout(twoLines(), opts)
	if err != nil {
		t.Fatal(err)
	}

	// Two pages on a 2x2 grid, filled column first: page 2 sits below page 1.
	want := map[string][]string{
		DeriveLength: {"3", "3", "3", "2", "3", "3"},
		DeriveParity: {"odd", "odd", "odd", "even", "even", "even"},
		DeriveColumn: {"0", "0", "0", "0", "0", "0"},
		DeriveRow:    {"0", "0", "0", "1", "1", "1"},
	}
	for name, values := range want {
		col, ok := l.Annotation(name)
		if !ok {
			t.Errorf("missing derived column %q", name)
			continue
		}
		if !reflect.DeepEqual(col.Values, values) {
			t.Errorf("%s = %v, want %v", name, col.Values, values)
		}
	}
}

func TestGenerateLayoutCarry(t *testing.T) {
	speaker := "ann"
	f, err := table.New(
		table.Column{Name: table.TextColumn, Values: []string{"the cat sat", "", "on the mat"}},
		table.FromNullable("speaker", []*string{&speaker, nil, nil}).Columns()[0],
	)
	if err != nil {
		t.Fatal(err)
	}

	opts := onePerPage()
	opts.Shape = text.ShapeLines
	opts.Carry = []string{"speaker"}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	l, err := GenerateLayout(f, opts)
	if err != nil {
		t.Fatal(err)
	}

	col, ok := l.Annotation("speaker")
	if !ok {
		t.Fatal("speaker column not carried")
	}
	if got := col.Strings(); !reflect.DeepEqual(got, []string{"ann", "ann", "ann", "", "", ""}) {
		t.Errorf("speaker = %v", got)
	}
	if col.IsMissing(0) || !col.IsMissing(3) {
		t.Error("missing flags should follow the source records")
	}
	// The empty record still took page 2.
	if l.Tokens[3].Page != 3 {
		t.Errorf("word %q on page %d, want 3", l.Tokens[3].Word, l.Tokens[3].Page)
	}
}

func TestGenerateLayoutCarryErrors(t *testing.T) {
	words := make([]string, 20)
	for i := range words {
		words[i] = "w"
	}
	f, _ := table.New(
		table.Column{Name: table.TextColumn, Values: words},
		table.Column{Name: "n", Values: make([]string, 20)},
	)

	opts := DefaultOptions()
	opts.Carry = []string{"n"}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if _, err := GenerateLayout(f, opts); !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("carry through word input: got %v, want INVALID_OPTIONS", err)
	}

	opts.Shape = text.ShapeLines
	opts.Carry = []string{"absent"}
	if _, err := GenerateLayout(f, opts); !errors.Is(err, errors.ErrCodeInvalidColumn) {
		t.Errorf("carry of absent column: got %v, want INVALID_COLUMN", err)
	}

	opts.Carry = []string{table.TextColumn}
	if _, err := GenerateLayout(f, opts); err != nil {
		t.Errorf("carrying the text column should work: %v", err)
	}

	if _, err := GenerateLayout(nil, opts); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil table: got %v, want INVALID_INPUT", err)
	}
}
