package plotdata

// Source is the raw content of one metric file at one revision.
type Source struct {
	Path     string
	Revision string
	Format   Format
	Content  []byte
}

// Extract converts raw file content into an ordered datapoint sequence.
//
// Delimited sources produce string values; structured sources keep the
// values as parsed. Every datapoint is tagged with the producing revision,
// and a synthetic 0-based index field is injected unless both axes are
// already explicitly satisfied by source fields. Extraction order is
// strictly the order of rows/elements in the source.
func Extract(src Source, props Props) ([]*Record, error) {
	var (
		records []*Record
		err     error
	)
	switch src.Format {
	case FormatCSV:
		records, err = extractDelimited(src, ',', props.HasHeader())
	case FormatTSV:
		records, err = extractDelimited(src, '\t', props.HasHeader())
	case FormatJSON:
		records, err = extractJSON(src)
	case FormatYAML:
		records, err = extractYAML(src)
	default:
		return nil, NewMetricTypeError(src.Path)
	}
	if err != nil {
		return nil, err
	}

	filterFields(records, props.Fields)
	if props.X == "" || props.Y == "" {
		appendIndex(records)
	}
	appendRevision(records, src.Revision)
	return records, nil
}

// filterFields drops every field not named in keep. An empty keep list
// retains everything. Runs before index/revision injection, so those
// fields never need to be listed.
func filterFields(records []*Record, keep []string) {
	if len(keep) == 0 {
		return
	}
	kept := make(map[string]struct{}, len(keep))
	for _, f := range keep {
		kept[f] = struct{}{}
	}
	for _, rec := range records {
		for _, key := range append([]string(nil), rec.Keys()...) {
			if _, ok := kept[key]; !ok {
				rec.Delete(key)
			}
		}
	}
}

func appendIndex(records []*Record) {
	for i, rec := range records {
		rec.Set(IndexField, i)
	}
}

func appendRevision(records []*Record, rev string) {
	for _, rec := range records {
		rec.Set(RevisionField, rev)
	}
}
