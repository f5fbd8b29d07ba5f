package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error definitions for the model package.
var (
	ErrNotFound      = errors.New("model not found in registry")
	ErrAlreadyExists = errors.New("model already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotRegistered = errors.New("not registered")
	ErrIncompatible  = errors.New("incompatible mode or engine")
	ErrConflict      = errors.New("conflicting registration")
	ErrSchema        = errors.New("schema violation")
	ErrNoPredict     = errors.New("model has no predict methods")
	ErrNoPredictType = errors.New("model has no predict methods for this type")
	ErrSealed        = errors.New("registry is sealed")
)

// ValidationError reports a malformed scalar argument.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NotRegisteredError reports a reference to something never registered.
// Available, when known, lists what could have been used instead.
type NotRegisteredError struct {
	What      string
	Name      string
	Model     string
	Available []string
}

func (e *NotRegisteredError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q has not been registered", e.What, e.Name)
	if e.Model != "" {
		fmt.Fprintf(&b, " for model %q", e.Model)
	}
	if len(e.Available) > 0 {
		fmt.Fprintf(&b, "; available %ss are: %s", e.What, quoteJoin(e.Available))
	}
	return b.String()
}

func (e *NotRegisteredError) Is(target error) bool {
	return target == ErrNotRegistered || (target == ErrNotFound && e.What == "model")
}

// IncompatibleError reports a mode or engine that is not legal for the requested combination.
type IncompatibleError struct {
	Model  string
	Engine string
	Mode   Mode
	// Field is "mode" or "engine".
	Field string
	Legal []string
}

func (e *IncompatibleError) Error() string {
	switch {
	case e.Field == "engine":
		return fmt.Sprintf("available engines for model %q in mode %q are: %s", e.Model, e.Mode, quoteJoin(e.Legal))
	case e.Engine != "":
		return fmt.Sprintf("available modes for model %q with engine %q are: %s", e.Model, e.Engine, quoteJoin(e.Legal))
	default:
		return fmt.Sprintf("available modes for model %q are: %s", e.Model, quoteJoin(e.Legal))
	}
}

func (e *IncompatibleError) Is(target error) bool {
	return target == ErrIncompatible
}

// ConflictError reports a registration whose key exists with different content.
type ConflictError struct {
	Model string
	Table string
	Key   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("model %q already has a different %s registration for %s", e.Model, e.Table, e.Key)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// SchemaError reports a module payload with missing or disallowed fields.
type SchemaError struct {
	Component string
	Required  []string
	Problems  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s module requires %s: %s", e.Component, strings.Join(e.Required, ", "), strings.Join(e.Problems, "; "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
