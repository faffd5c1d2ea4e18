package hpanic

import (
	"fmt"
	"runtime/debug"
)

// Error is a recovered panic.
type Error struct {
	Value any
	Stack []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *Error) Unwrap() error {
	err, _ := e.Value.(error)

	return err
}

func RecoverV[T any](f func() (T, error)) (_ T, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &Error{Value: v, Stack: debug.Stack()}
		}
	}()

	return f()
}

func Recover(f func() error) error {
	_, err := RecoverV(func() (struct{}, error) {
		return struct{}{}, f()
	})

	return err
}
