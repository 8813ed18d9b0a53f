package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focusnova/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeMode     Type = "mode"
	TypeDuration Type = "duration"
	TypeAsk      Type = "ask"
	TypeSelect   Type = "select"
	TypeReset    Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type ModeArgs struct {
	Mode model.Mode
}

type DurationArgs struct {
	Minutes int
}

type AskArgs struct {
	Question string
}

// SelectArgs.Index is 1-based, as typed by the user.
type SelectArgs struct {
	Index int
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Mode     *ModeArgs
	Duration *DurationArgs
	Ask      *AskArgs
	Select   *SelectArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeMode:
		return parseMode(input, args)
	case TypeDuration:
		return parseDuration(input, args)
	case TypeAsk:
		return parseAsk(input, args)
	case TypeSelect:
		return parseSelect(input, args)
	case TypeReset:
		return Command{Type: TypeReset, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseMode(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mode requires one of pomodoro, mission, clean, mentor"}
	}
	m, err := model.ParseMode(strings.ToLower(args[0]))
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown mode: %s", args[0])}
	}
	return Command{Type: TypeMode, Raw: raw, Mode: &ModeArgs{Mode: m}}, nil
}

func parseDuration(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "duration requires minutes (25, 50 or 90)"}
	}
	minutes, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[0]), "m"))
	if err != nil || model.ValidateDuration(minutes) != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("duration must be 25, 50 or 90, got %s", args[0])}
	}
	return Command{Type: TypeDuration, Raw: raw, Duration: &DurationArgs{Minutes: minutes}}, nil
}

func parseAsk(raw string, args []string) (Command, error) {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "ask requires a question"}
	}
	return Command{Type: TypeAsk, Raw: raw, Ask: &AskArgs{Question: question}}, nil
}

func parseSelect(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "select requires a task number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", args[0])}
	}
	return Command{Type: TypeSelect, Raw: raw, Select: &SelectArgs{Index: n}}, nil
}
