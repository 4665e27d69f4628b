package booking

import (
	"strings"

	"rently/models"
)

// ResolveAddOn maps a UI-local add-on key to its catalog entry. Matching is
// case-insensitive with precedence exact name, exact slug, exact id, then
// substring containment in either direction. The first match wins; catalog
// order breaks ties. Returns false (never an error) when nothing matches —
// callers must drop unresolved add-ons instead of submitting placeholder ids.
func ResolveAddOn(catalog []models.AddOn, localKey string) (*models.AddOn, bool) {
	key := strings.ToLower(strings.TrimSpace(localKey))
	if key == "" || len(catalog) == 0 {
		return nil, false
	}

	for i := range catalog {
		if strings.ToLower(catalog[i].Name) == key {
			return &catalog[i], true
		}
	}
	for i := range catalog {
		if strings.ToLower(catalog[i].Slug) == key {
			return &catalog[i], true
		}
	}
	for i := range catalog {
		if strings.ToLower(catalog[i].ID) == key {
			return &catalog[i], true
		}
	}
	for i := range catalog {
		name := strings.ToLower(catalog[i].Name)
		if name != "" && (strings.Contains(name, key) || strings.Contains(key, name)) {
			return &catalog[i], true
		}
	}
	return nil, false
}

// ResolveAddOnID returns only the backend id of the matched add-on.
func ResolveAddOnID(catalog []models.AddOn, localKey string) (string, bool) {
	addOn, ok := ResolveAddOn(catalog, localKey)
	if !ok {
		return "", false
	}
	return addOn.ID, true
}

// ResolvePlan maps a UI-local plan key to its catalog entry, with the same
// precedence as add-ons (key, name, id, then substring).
func ResolvePlan(plans []models.ProtectionPlan, localKey string) (*models.ProtectionPlan, bool) {
	key := strings.ToLower(strings.TrimSpace(localKey))
	if key == "" || len(plans) == 0 {
		return nil, false
	}

	for i := range plans {
		if strings.ToLower(plans[i].Key) == key {
			return &plans[i], true
		}
	}
	for i := range plans {
		if strings.ToLower(plans[i].Name) == key {
			return &plans[i], true
		}
	}
	for i := range plans {
		if strings.ToLower(plans[i].ID) == key {
			return &plans[i], true
		}
	}
	for i := range plans {
		name := strings.ToLower(plans[i].Name)
		if name != "" && (strings.Contains(name, key) || strings.Contains(key, name)) {
			return &plans[i], true
		}
	}
	return nil, false
}
