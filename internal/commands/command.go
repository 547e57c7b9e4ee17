package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/deadlinetodo/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeDone   Type = "done"
	TypeDoing  Type = "doing"
	TypeDelete Type = "delete"
	TypeUndo   Type = "undo"
	TypeShow   Type = "show"
	TypeSync   Type = "sync"
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

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Content  string
	Due      time.Duration
	Need     time.Duration
	Priority model.Priority
	Cycle    model.Cycle
}

type EditField string

const (
	EditContent  EditField = "content"
	EditDue      EditField = "due"
	EditNeed     EditField = "need"
	EditPriority EditField = "priority"
	EditCycle    EditField = "every"
)

// EditArgs changes one field of the selected task. Only the member matching
// Field is set.
type EditArgs struct {
	Field    EditField
	Content  string
	Span     time.Duration
	Priority model.Priority
	Cycle    model.Cycle
}

type ShowArgs struct {
	Subject string
}

type SyncArgs struct {
	Target string
	On     bool
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Edit *EditArgs
	Show *ShowArgs
	Sync *SyncArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
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
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDone, TypeDoing, TypeDelete, TypeUndo:
		if len(args) > 0 {
			return Command{}, invalid("%s takes no arguments", head)
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeShow:
		return parseShow(input, args)
	case TypeSync:
		return parseSync(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads "add <content...> due <span> [need <span>] [priority <p>] [every <cycle>]".
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	var content []string
	i := 0
	for ; i < len(args) && !isAddKeyword(args[i]); i++ {
		content = append(content, args[i])
	}
	out.Content = strings.TrimSpace(strings.Join(content, " "))
	if out.Content == "" {
		return Command{}, invalid("add requires content")
	}
	for i < len(args) {
		key := strings.ToLower(args[i])
		if i+1 >= len(args) {
			return Command{}, invalid("%s requires a value", key)
		}
		val := args[i+1]
		i += 2
		var err error
		switch key {
		case "due":
			out.Due, err = ParseSpan(val)
		case "need":
			out.Need, err = ParseSpan(val)
		case "priority":
			out.Priority, err = model.ParsePriority(val)
		case "every":
			out.Cycle, err = model.ParseCycle(val)
		default:
			return Command{}, invalid("unexpected %q after content", args[i-2])
		}
		if err != nil {
			return Command{}, invalid("%s: %v", key, err)
		}
	}
	if out.Due <= 0 {
		return Command{}, invalid("add requires a positive due span, e.g. due 2h")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func isAddKeyword(s string) bool {
	switch strings.ToLower(s) {
	case "due", "need", "priority", "every":
		return true
	}
	return false
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("edit requires a field and a value")
	}
	field := EditField(strings.ToLower(args[0]))
	value := strings.Join(args[1:], " ")
	out := EditArgs{Field: field}
	var err error
	switch field {
	case EditContent:
		out.Content = value
	case EditDue, EditNeed:
		out.Span, err = ParseSpan(value)
		if err == nil && field == EditDue && out.Span <= 0 {
			err = fmt.Errorf("must be positive")
		}
	case EditPriority:
		out.Priority, err = model.ParsePriority(value)
	case EditCycle:
		out.Cycle, err = model.ParseCycle(value)
	default:
		return Command{}, invalid("unknown field %q", args[0])
	}
	if err != nil {
		return Command{}, invalid("%s: %v", field, err)
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &out}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("show requires one of week, month, year, heatmap")
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "week", "month", "year", "heatmap":
	default:
		return Command{}, invalid("cannot show %q", args[0])
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}

func parseSync(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("sync requires reminder|calendar and on|off")
	}
	target := strings.ToLower(args[0])
	if target != "reminder" && target != "calendar" {
		return Command{}, invalid("cannot sync %q", args[0])
	}
	var on bool
	switch strings.ToLower(args[1]) {
	case "on":
		on = true
	case "off":
	default:
		return Command{}, invalid("sync state must be on or off")
	}
	return Command{Type: TypeSync, Raw: raw, Sync: &SyncArgs{Target: target, On: on}}, nil
}

// ParseSpan accepts Go durations plus whole days ("3d") and weeks ("2w").
func ParseSpan(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n := len(s); n > 1 && (s[n-1] == 'd' || s[n-1] == 'w') {
		unit := 24 * time.Hour
		if s[n-1] == 'w' {
			unit *= 7
		}
		count, err := strconv.ParseInt(s[:n-1], 10, 64)
		if err != nil || count < 0 || count > math.MaxInt64/int64(unit) {
			return 0, fmt.Errorf("invalid span %q", s)
		}
		return time.Duration(count) * unit, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid span %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid span %q", s)
	}
	return d, nil
}
