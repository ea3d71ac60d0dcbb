package cmd

import (
	"fmt"

	"jarvis/internal/registry"
)

// Field-update grammar shared by `edit --edit` and `edit --append`:
//
//	list   "+,a,b"  append a and b
//	list   "-"      clear
//	list   "a,b"    replace with [a b]
//	scalar "-"      clear
//	scalar "x"      replace with x
const (
	appendMarker = "+"
	clearMarker  = "-"
)

func parseListUpdate(tokens []string) (registry.Operation, error) {
	switch {
	case len(tokens) > 0 && tokens[0] == appendMarker:
		return registry.Append(tokens[1:]...), nil
	case len(tokens) > 0 && tokens[0] == clearMarker:
		if len(tokens) > 1 {
			return registry.Operation{}, fmt.Errorf("\"%s\" clears a list and cannot be combined with other values", clearMarker)
		}
		return registry.Clear(), nil
	default:
		return registry.Replace(tokens...), nil
	}
}

func parseScalarUpdate(value string) registry.Operation {
	if value == clearMarker {
		return registry.Clear()
	}
	return registry.Replace(value)
}

// fieldUpdate pairs a field with the operation a flag asked for.
type fieldUpdate struct {
	field registry.Field
	op    registry.Operation
}

// applyUpdates runs every update against name, stopping at the first failure.
func applyUpdates(st *registry.Store, name string, updates []fieldUpdate) error {
	for _, u := range updates {
		if err := st.UpdateField(name, u.field, u.op); err != nil {
			return fmt.Errorf("cannot update %s of \"%s\": %w", u.field.Key(), name, err)
		}
	}
	return nil
}
