package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/focusnova/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add Write report", TypeAdd},
		{"mode clean", TypeMode},
		{"/duration 90", TypeDuration},
		{"/duration 25m", TypeDuration},
		{"/ask me distraigo mucho", TypeAsk},
		{"/select 2", TypeSelect},
		{"/RESET", TypeReset},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/add   Write   report ")
	if err != nil || cmd.Add.Text != "Write report" {
		t.Fatalf("unexpected add: %+v err=%v", cmd.Add, err)
	}
	cmd, err = Parse("/mode Mentor")
	if err != nil || cmd.Mode.Mode != model.ModeMentor {
		t.Fatalf("unexpected mode: %+v err=%v", cmd.Mode, err)
	}
	cmd, err = Parse("/duration 25m")
	if err != nil || cmd.Duration.Minutes != 25 {
		t.Fatalf("unexpected duration: %+v err=%v", cmd.Duration, err)
	}
	cmd, err = Parse("/select 3")
	if err != nil || cmd.Select.Index != 3 {
		t.Fatalf("unexpected select: %+v err=%v", cmd.Select, err)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	inputs := []string{
		"/add",
		"/mode zen",
		"/mode",
		"/duration 45",
		"/duration soon",
		"/ask   ",
		"/select 0",
		"/select first",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input, got %v", in, err)
		}
	}

	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}

	cmd, _ = Parse("/reset")
	res, err = Execute(cmd, Handlers{Reset: func() (Result, error) { return Result{Message: "reset"}, nil }})
	if err != nil || res.Message != "reset" {
		t.Fatalf("reset dispatch failed: %+v err=%v", res, err)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"/mode clean", "/duration 50", "/ask hola", "/select 1", "/reset"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}
