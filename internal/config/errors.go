// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration matches every error returned by [Builder.Build].
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Reasons a single field fails validation. They are wrapped in a
// [ValidationError].
var (
	// ErrBlank indicates an empty or whitespace-only string.
	ErrBlank = errors.New("must not be blank")
	// ErrNotPositive indicates a number or duration that must be > 0.
	ErrNotPositive = errors.New("must be positive")
	// ErrOutOfRange indicates a number outside its allowed range.
	ErrOutOfRange = errors.New("out of range")
	// ErrMissing indicates a required collaborator or value is not set.
	ErrMissing = errors.New("must be set")
	// ErrCoreHooks indicates the listener manager does not hold exactly one
	// core hooks listener.
	ErrCoreHooks = errors.New("listener manager must contain exactly one core hooks listener")
)

// ErrDependencyUnavailable is returned by [Factory] methods called before a
// subsystem they build on exists.
var ErrDependencyUnavailable = errors.New("dependency unavailable")

// ValidationError identifies the first field [Builder.Build] rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfiguration, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match [ErrInvalidConfiguration].
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func unavailable(dependency string) error {
	return fmt.Errorf("%w: %s", ErrDependencyUnavailable, dependency)
}

// Errors returned while loading settings from the environment, flags or a
// JSON file.
var (
	// ErrUnknownEncoding indicates an encoding label x/text does not know.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrInvalidLocale indicates a malformed BCP 47 language tag.
	ErrInvalidLocale = errors.New("invalid locale")
	// ErrInvalidAddress indicates a malformed IP address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrUnsupportedProxy indicates a proxy URL no dialer can be built for.
	ErrUnsupportedProxy = errors.New("unsupported proxy")
)
