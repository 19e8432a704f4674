package plotdata

// ResolveAxes decides which fields drive the x and y axes, validating them
// against the first datapoint of the aggregated sequence.
//
// An explicit axis field must exist in the datapoint. When x is unset the
// synthetic index field is used. When y is unset it defaults to the sole
// remaining field besides index, revision and x; zero or several
// candidates make the default ambiguous.
func ResolveAxes(first *Record, props Props) (x, y string, err error) {
	if first == nil {
		return "", "", NewNoFieldInDataError(props.Y)
	}

	x = props.X
	if x != "" {
		if !first.Has(x) {
			return "", "", NewNoFieldInDataError(x)
		}
	} else {
		if !first.Has(IndexField) {
			return "", "", NewNoFieldInDataError(IndexField)
		}
		x = IndexField
	}

	y = props.Y
	if y != "" {
		if !first.Has(y) {
			return "", "", NewNoFieldInDataError(y)
		}
		return x, y, nil
	}

	var candidates []string
	for _, key := range first.Keys() {
		if key == IndexField || key == RevisionField || key == x {
			continue
		}
		candidates = append(candidates, key)
	}
	if len(candidates) != 1 {
		return "", "", NewNoFieldInDataError("y")
	}
	return x, candidates[0], nil
}
