package registry

import "fmt"

// OpKind tells what an Operation does to a field.
type OpKind int

const (
	// OpReplace sets the field to the given value(s).
	OpReplace OpKind = iota
	// OpAppend adds values to the end of a list field, keeping existing order
	// and without removing duplicates.
	OpAppend
	// OpClear resets the field to "" or an empty list.
	OpClear
)

func (k OpKind) String() string {
	switch k {
	case OpReplace:
		return "replace"
	case OpAppend:
		return "append"
	case OpClear:
		return "clear"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Operation is a single field update applied through Store.UpdateField.
type Operation struct {
	kind   OpKind
	values []string
}

// Replace sets a field. String fields take exactly one value.
func Replace(values ...string) Operation {
	return Operation{kind: OpReplace, values: append([]string{}, values...)}
}

// Append extends a list field with values.
func Append(values ...string) Operation {
	return Operation{kind: OpAppend, values: append([]string{}, values...)}
}

// Clear empties a field.
func Clear() Operation {
	return Operation{kind: OpClear}
}

// Kind returns what the operation does.
func (o Operation) Kind() OpKind {
	return o.kind
}

// Values returns the operation's arguments.
func (o Operation) Values() []string {
	return append([]string{}, o.values...)
}

func (o Operation) apply(r *Record, f Field) error {
	if seq := r.sequence(f); seq != nil {
		switch o.kind {
		case OpReplace:
			*seq = append([]string{}, o.values...)
		case OpAppend:
			*seq = append(append([]string{}, (*seq)...), o.values...)
		case OpClear:
			*seq = []string{}
		default:
			return fmt.Errorf("%w: unknown operation %s", ErrInvalidOperation, o.kind)
		}
		return nil
	}

	str := r.scalar(f)
	if str == nil {
		return fmt.Errorf("%w: unknown field %d", ErrInvalidOperation, int(f))
	}
	switch o.kind {
	case OpReplace:
		if len(o.values) != 1 {
			return fmt.Errorf("%w: %q takes a single value, got %d", ErrInvalidOperation, f.Key(), len(o.values))
		}
		*str = o.values[0]
	case OpAppend:
		return fmt.Errorf("%w: %q", ErrNotSequence, f.Key())
	case OpClear:
		*str = ""
	default:
		return fmt.Errorf("%w: unknown operation %s", ErrInvalidOperation, o.kind)
	}
	return nil
}
