package domain

import (
	"sort"
	"strings"
)

// ItemKind distinguishes the two inventory item families
type ItemKind string

const (
	ItemKindSeed ItemKind = "seed"
	ItemKindCrop ItemKind = "crop"
)

const itemIDSeparator = ":"

// SeedItemID returns the inventory item ID for a crop's seeds
func SeedItemID(cropID string) string {
	return string(ItemKindSeed) + itemIDSeparator + cropID
}

// CropItemID returns the inventory item ID for a harvested crop
func CropItemID(cropID string) string {
	return string(ItemKindCrop) + itemIDSeparator + cropID
}

// ParseItemID splits an inventory item ID into its kind and crop ID
func ParseItemID(itemID string) (ItemKind, string, bool) {
	kind, cropID, ok := strings.Cut(itemID, itemIDSeparator)
	if !ok || cropID == "" {
		return "", "", false
	}
	switch ItemKind(kind) {
	case ItemKindSeed, ItemKindCrop:
		return ItemKind(kind), cropID, true
	}
	return "", "", false
}

// InventoryEntry is a single (item, count) pair of a user's inventory
type InventoryEntry struct {
	ItemID string   `json:"item_id"`
	Kind   ItemKind `json:"kind"`
	CropID string   `json:"crop_id"`
	Count  int      `json:"count"`
}

// Inventory maps item IDs to counts. Zero counts are omitted.
type Inventory map[string]int

// Count returns the number of units held for an item
func (inv Inventory) Count(itemID string) int {
	return inv[itemID]
}

// Entries returns the positive entries of the given kind sorted by crop ID
func (inv Inventory) Entries(kind ItemKind) []InventoryEntry {
	entries := make([]InventoryEntry, 0, len(inv))
	for itemID, count := range inv {
		if count <= 0 {
			continue
		}
		k, cropID, ok := ParseItemID(itemID)
		if !ok || k != kind {
			continue
		}
		entries = append(entries, InventoryEntry{ItemID: itemID, Kind: k, CropID: cropID, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CropID < entries[j].CropID
	})
	return entries
}
