// Package errors builds user-facing errors for the CLI.
package errors

import "fmt"

type cuierror struct {
	summary     string
	printDetail func(summary string) (string, error)
	base        error
}

func (ce *cuierror) Unwrap() error {
	return ce.base
}

func (ce *cuierror) Error() string {
	if ce.printDetail == nil {
		return ce.summary
	}
	message, err := ce.printDetail(ce.summary)
	if err != nil {
		message = fmt.Sprintf(
			"%s\n(building detailed message causes error: %s)",
			ce.summary, err.Error(),
		)
	}
	return message
}

type CuiErrorOption func(cerr *cuierror) *cuierror

// NewCuiError creates an error whose message is meant for the terminal.
//
// The summary is the one-line message. Options can append a lazily
// rendered detail block or record the causing error for errors.Is.
func NewCuiError(
	summary string,
	options ...CuiErrorOption,
) error {
	err := &cuierror{summary: summary}
	for _, o := range options {
		err = o(err)
	}
	return err
}

func WithDetail(printer func(summary string) (string, error)) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.printDetail = printer
		return cerr
	}
}

func WithCause(err error) CuiErrorOption {
	return func(cerr *cuierror) *cuierror {
		cerr.base = err
		return cerr
	}
}
