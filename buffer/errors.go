package buffer

import (
	"fmt"
	"reflect"
)

type TypeMismatchError struct {
	Want, Got reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("buffer: holds %v, accessed as %v", e.Want, e.Got)
}

type OutOfRangeError struct {
	Index, Len int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("buffer: index %d out of range [0:%d]", e.Index, e.Len)
}
