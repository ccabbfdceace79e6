package service

// Search-configuration settings are opaque to the connector except for one
// contract: they may reference index field names as exact map keys, either
// bare or with a " asc"/" desc" suffix, at any nesting depth. Renaming or
// deleting a field mapping must rewrite those keys so the host platform's
// stored query configurations never point at a vanished field.

// fieldKeyVariants returns the three settings-key spellings of a field name.
func fieldKeyVariants(field string) [3]string {
	return [3]string{field, field + " asc", field + " desc"}
}

// renameFieldKeys rewrites every key variant of oldField to the matching
// variant of newField, recursively. Reports whether anything changed.
func renameFieldKeys(settings map[string]any, oldField, newField string) bool {
	old := fieldKeyVariants(oldField)
	repl := fieldKeyVariants(newField)

	changed := false
	for i := range old {
		if v, ok := settings[old[i]]; ok {
			delete(settings, old[i])
			settings[repl[i]] = v
			changed = true
		}
	}
	for _, v := range settings {
		if changed2 := renameFieldKeysIn(v, oldField, newField); changed2 {
			changed = true
		}
	}
	return changed
}

func renameFieldKeysIn(v any, oldField, newField string) bool {
	switch nested := v.(type) {
	case map[string]any:
		return renameFieldKeys(nested, oldField, newField)
	case []any:
		changed := false
		for _, item := range nested {
			if renameFieldKeysIn(item, oldField, newField) {
				changed = true
			}
		}
		return changed
	}
	return false
}

// removeFieldKeys deletes every key variant of field, recursively. Reports
// whether anything changed.
func removeFieldKeys(settings map[string]any, field string) bool {
	variants := fieldKeyVariants(field)

	changed := false
	for i := range variants {
		if _, ok := settings[variants[i]]; ok {
			delete(settings, variants[i])
			changed = true
		}
	}
	for _, v := range settings {
		if removeFieldKeysIn(v, field) {
			changed = true
		}
	}
	return changed
}

func removeFieldKeysIn(v any, field string) bool {
	switch nested := v.(type) {
	case map[string]any:
		return removeFieldKeys(nested, field)
	case []any:
		changed := false
		for _, item := range nested {
			if removeFieldKeysIn(item, field) {
				changed = true
			}
		}
		return changed
	}
	return false
}
