package definition

// Dedupe removes definitions with duplicate identity, preserving first-seen
// order. Placeholders share one identity, so any number of them collapse to
// the first.
func Dedupe(defs []ScriptDefinition) []ScriptDefinition {
	if len(defs) < 2 {
		return defs
	}

	seen := make(map[string]struct{}, len(defs))
	out := make([]ScriptDefinition, 0, len(defs))
	for _, d := range defs {
		key := d.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}

// AggregateClasspath flattens the template classpath across all definitions,
// deduplicated as a set with first-seen order preserved. Placeholders
// contribute nothing.
func AggregateClasspath(defs []ScriptDefinition) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range defs {
		if IsPlaceholder(d) {
			continue
		}
		for _, entry := range d.Classpath {
			if _, dup := seen[entry]; dup {
				continue
			}
			seen[entry] = struct{}{}
			out = append(out, entry)
		}
	}
	return out
}
