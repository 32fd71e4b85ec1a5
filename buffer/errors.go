package buffer

import "fmt"

// IOError reports a failed storage operation. Use errors.Is with fs.ErrNotExist
// or fs.ErrPermission to tell the causes apart.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
