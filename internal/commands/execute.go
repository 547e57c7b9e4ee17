package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Edit   func(EditArgs) (Result, error)
	Done   func() (Result, error)
	Doing  func() (Result, error)
	Delete func() (Result, error)
	Undo   func() (Result, error)
	Show   func(ShowArgs) (Result, error)
	Sync   func(SyncArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Edit)
	case TypeDone, TypeDoing, TypeDelete, TypeUndo:
		fn := map[Type]func() (Result, error){
			TypeDone:   handlers.Done,
			TypeDoing:  handlers.Doing,
			TypeDelete: handlers.Delete,
			TypeUndo:   handlers.Undo,
		}[cmd.Type]
		if fn == nil {
			return Result{}, missing(cmd.Type)
		}
		return fn()
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Show(*cmd.Show)
	case TypeSync:
		if handlers.Sync == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Sync(*cmd.Sync)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
