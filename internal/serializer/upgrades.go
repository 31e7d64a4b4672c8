package serializer

import "github.com/meur/dotasource/internal/models"

// LinkUpgrades sets, on every item, the keys of the other non-recipe items
// whose requirements contain it. Upgrades follow the order of items.
func LinkUpgrades(items []models.Item) {
	consumers := make(map[string][]string)
	for _, it := range items {
		if it.Recipe {
			continue
		}
		seen := make(map[string]bool, len(it.Requirements))
		for _, req := range it.Requirements {
			if seen[req] || req == it.Key {
				continue
			}
			seen[req] = true
			consumers[req] = append(consumers[req], it.Key)
		}
	}

	for i := range items {
		ups := consumers[items[i].Key]
		if ups == nil {
			ups = []string{}
		}
		items[i].Upgrades = ups
	}
}
