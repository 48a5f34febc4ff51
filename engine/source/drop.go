package source

import "fmt"

// Drop records one input item that was rejected during normalization.
// Drops are reported back to the caller instead of aborting the run; a
// malformed item never takes the whole aggregation down with it.
type Drop struct {
	// Kind is the classified shape of the rejected item, KindMalformed when
	// the shape itself was the problem.
	Kind Kind
	// Reason says why the item was rejected.
	Reason string
}

// DropOf builds a Drop for a classified source, carrying its reason forward
// when the classifier already rejected it.
func DropOf(src Source, format string, args ...any) Drop {
	reason := fmt.Sprintf(format, args...)
	if src.Kind == KindMalformed && src.Reason != "" {
		reason = src.Reason
	}
	return Drop{Kind: src.Kind, Reason: reason}
}

func (d Drop) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Reason)
}
