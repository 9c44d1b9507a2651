package core_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/thatsneat-dev/argmark/internal/core"
	"github.com/thatsneat-dev/argmark/pkg/argmark"
)

func newRunner(t *testing.T) *core.Runner {
	t.Helper()
	var info, errw bytes.Buffer
	p, err := argmark.New(argmark.Config{Info: &info, Err: &errw})
	if err != nil {
		t.Fatalf("argmark.New returned error: %v", err)
	}
	return core.NewRunner(p, zap.NewNop())
}

func testDecl() argmark.Declarations {
	return argmark.Declarations{
		Flags:  argmark.Table{Short: []rune{'v', 0}, Long: []string{"verbose", "help"}},
		Values: argmark.Table{Short: []rune("o"), Long: []string{"output"}},
	}
}

func TestRunner_Parse(t *testing.T) {
	r := newRunner(t)
	tokens := []string{"prog", "hello.c", "-o", "out", "-v"}

	got, err := r.Parse(tokens, testDecl(), argmark.Policy{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := &core.Report{
		Tokens: []core.TokenResult{
			{Index: 0, Token: "prog", Role: "program"},
			{Index: 1, Token: "hello.c", Role: "anonymous"},
			{Index: 2, Token: "-o", Role: "short"},
			{Index: 3, Token: "out", Role: "value"},
			{Index: 4, Token: "-v", Role: "short"},
		},
		Flags: []core.FlagResult{
			{Short: "v", Long: "verbose", Set: true},
			{Long: "help"},
		},
		Values: []core.ValueResult{
			{Short: "o", Long: "output", Value: "out", Bound: true},
		},
		Anonymous: []string{"hello.c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_ParseError(t *testing.T) {
	r := newRunner(t)
	_, err := r.Parse([]string{"prog", "-o"}, testDecl(), argmark.Policy{})
	if !errors.Is(err, argmark.ErrMissingValue) {
		t.Errorf("Parse error = %v, want ErrMissingValue", err)
	}
}

func TestRunner_Mark(t *testing.T) {
	r := newRunner(t)
	got, err := r.Mark([]string{"prog", "a", "--output", "b", "c"}, testDecl(), argmark.Policy{})
	if err != nil {
		t.Fatalf("Mark returned error: %v", err)
	}
	roles := make([]string, len(got.Tokens))
	for i, tr := range got.Tokens {
		roles[i] = tr.Role
	}
	if diff := cmp.Diff([]string{"program", "anonymous", "long", "value", "anonymous"}, roles); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "c"}, got.Anonymous); diff != "" {
		t.Errorf("anonymous mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_ValidateInfers(t *testing.T) {
	r := newRunner(t)
	got, err := r.Validate([]string{"prog", "-v", "-v"}, testDecl(), argmark.Policy{Infer: true})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	want := []core.FlagResult{
		{Short: "v", Long: "verbose"},
		{Short: "h", Long: "help"},
	}
	if diff := cmp.Diff(want, got.Flags); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"-v/--verbose given more than once"}, got.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_ValidateCrossover(t *testing.T) {
	r := newRunner(t)
	_, err := r.Validate([]string{"prog", "-v", "--verbose"}, testDecl(), argmark.Policy{})
	if !errors.Is(err, argmark.ErrCrossover) {
		t.Errorf("Validate error = %v, want ErrCrossover", err)
	}
}
