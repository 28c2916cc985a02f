package outfit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ApplyWardrobe resolves display labels and images for every display slot and
// rebuilds the one-liner from them. Applying it twice with the same wardrobe is
// a no-op the second time.
func ApplyWardrobe(rec *Recommendation, wardrobe Wardrobe) {
	display := make(map[Slot]SlotDisplay, len(DisplaySlots))
	for _, slot := range DisplaySlots {
		display[slot] = resolveSlot(slot, rec.Item(slot), wardrobe)
	}
	rec.Display = display
	rec.OutfitOneliner = labelledOneliner(rec)
}

func resolveSlot(slot Slot, generic string, wardrobe Wardrobe) SlotDisplay {
	if !present(generic) {
		return SlotDisplay{}
	}
	items, ok := wardrobe[slot]
	if !ok {
		return SlotDisplay{Label: generic}
	}
	cfg, ok := items[generic]
	if !ok {
		return SlotDisplay{Label: generic}
	}
	label := cfg.Label
	if label == "" {
		label = generic
	}
	return SlotDisplay{Label: label, Image: cfg.Image}
}

func labelledOneliner(rec *Recommendation) string {
	parts := make([]string, 0, len(DisplaySlots))
	for _, slot := range DisplaySlots {
		if v := shown(rec, slot); present(v) {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return shown(rec, SlotLayer) + oneLinerSeparator + shown(rec, SlotPants) + oneLinerSeparator + shown(rec, SlotShoes)
	}
	return strings.Join(parts, oneLinerSeparator)
}

func shown(rec *Recommendation, slot Slot) string {
	if label := rec.Label(slot); label != "" {
		return label
	}
	return rec.Item(slot)
}

// DecodeWardrobe parses a wardrobe document. Only a document that is not a JSON
// object is an error; unknown slots and malformed entries are dropped and
// reported as warnings so the rest of the document still applies.
func DecodeWardrobe(data []byte) (Wardrobe, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Wardrobe{}, nil, fmt.Errorf("decode wardrobe: %w", err)
	}
	if raw == nil {
		return Wardrobe{}, nil, fmt.Errorf("decode wardrobe: document is not an object")
	}

	var warnings []string
	wardrobe := make(Wardrobe, len(raw))
	for _, key := range sortedKeys(raw) {
		slot := Slot(key)
		if !isDisplaySlot(slot) {
			warnings = append(warnings, fmt.Sprintf("unknown slot %q ignored", key))
			continue
		}
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw[key], &entries); err != nil || entries == nil {
			warnings = append(warnings, fmt.Sprintf("slot %q is not an object", key))
			continue
		}
		items := make(map[string]ItemConfig, len(entries))
		for _, name := range sortedKeys(entries) {
			cfg, ok := decodeItem(entries[name])
			if !ok {
				warnings = append(warnings, fmt.Sprintf("%s.%s is not a {label, image} object", key, name))
				continue
			}
			items[name] = cfg
		}
		wardrobe[slot] = items
	}
	return wardrobe, warnings, nil
}

func decodeItem(raw json.RawMessage) (ItemConfig, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return ItemConfig{}, false
	}
	var cfg ItemConfig
	if v, ok := fields["label"]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &cfg.Label); err != nil {
			return ItemConfig{}, false
		}
	}
	if v, ok := fields["image"]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &cfg.Image); err != nil {
			return ItemConfig{}, false
		}
	}
	return cfg, true
}

func isDisplaySlot(slot Slot) bool {
	for _, s := range DisplaySlots {
		if s == slot {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
