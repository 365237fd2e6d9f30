package pathres

import "fmt"

// ErrorKind classifies a resolution failure.
type ErrorKind int

const (
	NotFound ErrorKind = iota
	AtRoot
	NotDirectory
	DoesNotExist
	IsDirectory
)

// Error is a resolution failure naming the requested path.
type Error struct {
	Kind ErrorKind
	Path string
}

func (e *Error) Error() string {
	switch e.Kind {
	case AtRoot:
		return "already at root"
	case NotDirectory:
		return fmt.Sprintf("not a directory: %s", e.Path)
	case DoesNotExist:
		return fmt.Sprintf("%s does not exist", e.Path)
	case IsDirectory:
		return fmt.Sprintf("Is a directory: %s", e.Path)
	default:
		return fmt.Sprintf("no such file or directory: %s", e.Path)
	}
}

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: IsDirectory}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
