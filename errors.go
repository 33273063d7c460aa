package nodepath

import "errors"

var (
	// ErrSyntax reports a malformed path expression. Returned only by
	// ParsePath (and the Lookup convenience that calls it); navigation and
	// mutation never raise it.
	ErrSyntax = errors.New("nodepath: invalid path")

	// ErrNotApplicable reports that a path did not resolve to a value, or
	// that a mutation precondition (range, key presence, container type) was
	// violated. The message is deliberately constant: retrying cannot change
	// the outcome, and failed mutations leave the tree untouched.
	ErrNotApplicable = errors.New("nodepath: unable to find path to value")
)
