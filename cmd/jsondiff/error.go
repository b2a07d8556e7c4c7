package main

import (
	"errors"
)

type usageError struct {
	error
}

func newUsageError(msg string) usageError {
	return usageError{error: errors.New(msg)}
}

// errDifferences is returned with --exit-code when the documents differ. It
// only sets the exit status & is never printed
var errDifferences = errors.New("documents differ")

var errorWantedTwoArgs = newUsageError("please supply two files to compare")
