package ember

import "fmt"

// InvalidInputError is returned by the lexer for a character it cannot classify.
type InvalidInputError struct {
	Char   rune
	Offset int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid symbol '%c' (%U) at offset %d", e.Char, e.Char, e.Offset)
}

// InvalidArgumentError is returned when a literal is built from a non-integer value.
type InvalidArgumentError struct {
	Value interface{}
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid literal value %v (%T): expected an integer", e.Value, e.Value)
}

type DuplicateKeyError struct {
	Key interface{}
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %v", e.Key)
}

type KeyNotFoundError struct {
	Key interface{}
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %v", e.Key)
}

type NullKeyError struct{}

func (e *NullKeyError) Error() string {
	return "key is nil"
}

// UndefinedVariableError is returned by IR lowering for a variable read before assignment.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined: %s", e.Name)
}

type UnknownOperatorError struct {
	Op string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator '%s'", e.Op)
}
