package utils

import (
	"sort"
	"strings"

	"capsule-os/models"
)

// slotCategories maps template slots to the catalog categories that can fill them
var slotCategories = map[models.Slot][]models.Category{
	models.SlotTrenchCoat:   {models.CategoryOuterwear},
	models.SlotWoolCoat:     {models.CategoryOuterwear},
	models.SlotBlazer:       {models.CategoryOuterwear},
	models.SlotKimono:       {models.CategoryOuterwear},
	models.SlotCoverup:      {models.CategoryOuterwear},
	models.SlotSweater:      {models.CategoryTop, models.CategorySweater},
	models.SlotCardigan:     {models.CategoryTop, models.CategorySweater},
	models.SlotTurtleneck:   {models.CategoryTop},
	models.SlotLinenShirt:   {models.CategoryTop},
	models.SlotTank:         {models.CategoryTop},
	models.SlotBikini:       {models.CategoryTop},
	models.SlotTee:          {models.CategoryTop, models.CategoryTee},
	models.SlotJeans:        {models.CategoryBottom, models.CategoryJeans},
	models.SlotTrousers:     {models.CategoryBottom},
	models.SlotWideLegPants: {models.CategoryBottom},
	models.SlotShorts:       {models.CategoryBottom},
	models.SlotLinenPants:   {models.CategoryBottom},
	models.SlotMidiDress:    {models.CategoryDress},
	models.SlotSundress:     {models.CategoryDress},
	models.SlotBoots:        {models.CategoryShoes},
	models.SlotLoafers:      {models.CategoryShoes},
	models.SlotSneakers:     {models.CategoryShoes},
	models.SlotSandals:      {models.CategoryShoes},
	models.SlotScarf:        {models.CategoryAccessory},
	models.SlotBag:          {models.CategoryAccessory},
	models.SlotBelt:         {models.CategoryAccessory},
	models.SlotTote:         {models.CategoryAccessory},
	models.SlotCrossbody:    {models.CategoryAccessory},
	models.SlotSunglasses:   {models.CategoryAccessory},
	models.SlotHat:          {models.CategoryAccessory},
	models.SlotGloves:       {models.CategoryAccessory},
}

// premiumBrands is the brand tier used as a proxy for materials and construction
var premiumBrands = map[string]bool{
	"aritzia":     true,
	"everlane":    true,
	"reformation": true,
}

// IsPremiumBrand reports whether brand is in the premium tier (case-insensitive)
func IsPremiumBrand(brand string) bool {
	return premiumBrands[strings.ToLower(strings.TrimSpace(brand))]
}

// MapSlotToCategories resolves a template slot to catalog categories
// Unknown slots map to a single category named after the slot ("rain_jacket" -> "Rain Jacket")
func MapSlotToCategories(slot models.Slot) []string {
	normalized := models.Slot(strings.ToLower(strings.TrimSpace(string(slot))))
	if categories, exists := slotCategories[normalized]; exists {
		out := make([]string, len(categories))
		for i, c := range categories {
			out[i] = string(c)
		}
		return out
	}
	return []string{FormatSlotName(slot)}
}

// FormatSlotName turns a slot identifier into a display name ("trench_coat" -> "Trench Coat")
func FormatSlotName(slot models.Slot) string {
	return CapitalizeWords(strings.ReplaceAll(string(slot), "_", " "))
}

// CapitalizeWords capitalizes the first letter of each word
func CapitalizeWords(s string) string {
	if s == "" {
		return s
	}
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(string(word[0])) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}

// slotKeywords is the slot list ordered longest phrase first so "linen pants" wins over "pants"
var slotKeywords = func() []models.Slot {
	slots := make([]models.Slot, 0, len(slotCategories))
	for slot := range slotCategories {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		if len(slots[i]) != len(slots[j]) {
			return len(slots[i]) > len(slots[j])
		}
		return slots[i] < slots[j]
	})
	return slots
}()

// InferCategories guesses catalog categories from free product text ("basic tee" -> Top, Tee)
// Returns nil when nothing in the text matches a known slot or category
func InferCategories(text string) []string {
	lower := " " + strings.ToLower(text) + " "
	if strings.TrimSpace(lower) == "" {
		return nil
	}

	for _, slot := range slotKeywords {
		phrase := strings.ReplaceAll(string(slot), "_", " ")
		if containsWord(lower, phrase) || containsWord(lower, phrase+"s") {
			return MapSlotToCategories(slot)
		}
	}

	for _, category := range models.KnownCategories {
		name := strings.ToLower(string(category))
		if containsWord(lower, name) {
			return []string{string(category)}
		}
	}
	return nil
}

// containsWord reports whether phrase appears in padded text on word boundaries
func containsWord(paddedText, phrase string) bool {
	idx := strings.Index(paddedText, phrase)
	for idx >= 0 {
		before := paddedText[idx-1]
		end := idx + len(phrase)
		if !isLetter(before) && (end >= len(paddedText) || !isLetter(paddedText[end])) {
			return true
		}
		next := strings.Index(paddedText[idx+1:], phrase)
		if next < 0 {
			return false
		}
		idx += next + 1
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
