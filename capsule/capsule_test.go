package capsule

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"capsule-os/models"
	"capsule-os/repository"
)

type fakeCatalog struct {
	products []models.CatalogProduct
	err      error
}

func (f *fakeCatalog) QueryProducts(_ context.Context, filter repository.ProductFilter) ([]models.CatalogProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[string]bool, len(filter.Categories))
	for _, c := range filter.Categories {
		wanted[c] = true
	}
	var out []models.CatalogProduct
	for _, p := range f.products {
		if len(wanted) == 0 || wanted[p.Category] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CountProducts(ctx context.Context, filter repository.ProductFilter) (int, error) {
	products, err := f.QueryProducts(ctx, filter)
	return len(products), err
}

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{products: []models.CatalogProduct{
		{ID: 1, Brand: "Everlane", Name: "The Car Coat", Category: "Outerwear", Price: 198, Colors: []string{"camel", "black"}},
		{ID: 2, Brand: "Uniqlo", Name: "Trench Coat", Category: "Outerwear", Price: 79.9, Colors: []string{"beige"}},
		{ID: 3, Brand: "Aritzia", Name: "Wool Sweater", Category: "Sweater", Price: 148, Colors: []string{"cream"}},
		{ID: 4, Brand: "Uniqlo", Name: "Merino Crew", Category: "Top", Price: 39.9, Colors: []string{"navy", "gray"}},
		{ID: 5, Brand: "Everlane", Name: "Way-High Jean", Category: "Jeans", Price: 98, Colors: []string{"denim"}},
		{ID: 6, Brand: "Levi's", Name: "501", Category: "Bottom", Price: 69.5, Colors: []string{"Denim", "black"}},
		{ID: 7, Brand: "Everlane", Name: "Day Boot", Category: "Shoes", Price: 225, Colors: []string{"black"}},
	}}
}

func TestGenerateQ1EndToEnd(t *testing.T) {
	gen := NewGenerator(DefaultTemplates(), sampleCatalog())
	result, err := gen.Generate(context.Background(), Request{
		Quarter:          models.QuarterQ1,
		Climate:          models.ClimateModerate,
		StyleWords:       []string{"relaxed", "minimal", "classic"},
		Budget:           800,
		BrandPreferences: []string{"Everlane", "Aritzia"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Items) == 0 || len(result.Items) > MaxCapsuleItems {
		t.Errorf("Expected 1..12 items, got %d", len(result.Items))
	}
	if len(result.Palette) < 4 || len(result.Palette) > 6 {
		t.Errorf("Expected palette length in [4,6], got %d: %v", len(result.Palette), result.Palette)
	}
	if len(result.OutfitFormulas) > 4 {
		t.Errorf("Expected at most 4 formulas, got %d", len(result.OutfitFormulas))
	}
	if len(result.DoNotBuy) > 3 {
		t.Errorf("Expected at most 3 do-not-buy entries, got %d", len(result.DoNotBuy))
	}
	for _, item := range result.Items {
		if item.BestValue.Price <= 0 || item.BestQuality.Price <= 0 {
			t.Errorf("Expected positive prices for %s, got %f / %f", item.Category, item.BestValue.Price, item.BestQuality.Price)
		}
	}
	if result.CoherenceScores == nil {
		t.Error("Expected coherence scores")
	}

	// scarf has no catalog candidates
	last := result.Items[len(result.Items)-1]
	if !last.Placeholder || last.BestValue.Brand != "Everlane" || last.BestQuality.Brand != "Aritzia" {
		t.Errorf("Expected placeholder scarf branded from preferences, got %+v", last)
	}
}

func TestGeneratePropagatesCatalogErrors(t *testing.T) {
	gen := NewGenerator(DefaultTemplates(), &fakeCatalog{err: errors.New("connection reset")})
	if _, err := gen.Generate(context.Background(), Request{Quarter: models.QuarterQ1, Budget: 500}); err == nil {
		t.Error("Expected error when the catalog fails")
	}
}

func TestGenerateDoNotBuyFromCloset(t *testing.T) {
	gen := NewGenerator(DefaultTemplates(), sampleCatalog())
	result, err := gen.Generate(context.Background(), Request{
		Quarter: models.QuarterQ1,
		Budget:  600,
		Closet:  []models.ClosetItem{{Category: "jeans"}, {Category: "BOOTS"}},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := []string{"Jeans", "Boots"}
	if !reflect.DeepEqual(result.DoNotBuy, want) {
		t.Errorf("Expected do-not-buy %v, got %v", want, result.DoNotBuy)
	}
}

func TestSelectBestValue(t *testing.T) {
	candidates := []models.CatalogProduct{
		{ID: 1, Price: 120},
		{ID: 2, Price: 40},
		{ID: 3, Price: 60},
		{ID: 4, Price: 80},
	}
	// budget 100: ceiling 120, target 70; 60 and 80 tie, earlier wins
	if got := SelectBestValue(candidates, 100); got.ID != 3 {
		t.Errorf("Expected product 3, got %d", got.ID)
	}

	expensive := []models.CatalogProduct{{ID: 1, Price: 300}, {ID: 2, Price: 250}}
	if got := SelectBestValue(expensive, 100); got.ID != 2 {
		t.Errorf("Expected cheapest product 2 when none fit, got %d", got.ID)
	}
}

func TestSelectBestQuality(t *testing.T) {
	candidates := []models.CatalogProduct{
		{ID: 1, Brand: "Gucci", Price: 900},
		{ID: 2, Brand: "everlane", Price: 100},
		{ID: 3, Brand: "Aritzia", Price: 150},
	}
	if got := SelectBestQuality(candidates); got.ID != 3 {
		t.Errorf("Expected premium product 3, got %d", got.ID)
	}

	plain := []models.CatalogProduct{{ID: 1, Brand: "A", Price: 50}, {ID: 2, Brand: "B", Price: 50}}
	if got := SelectBestQuality(plain); got.ID != 1 {
		t.Errorf("Expected first of tied products, got %d", got.ID)
	}
}

func TestFilterByBrandIgnoredWithoutMatch(t *testing.T) {
	candidates := []models.CatalogProduct{{Brand: "Uniqlo"}, {Brand: "Gap"}}
	if got := filterByBrand(candidates, []string{"Everlane"}); len(got) != 2 {
		t.Errorf("Expected brand filter ignored, got %d candidates", len(got))
	}
	if got := filterByBrand(candidates, []string{" gap "}); len(got) != 1 || got[0].Brand != "Gap" {
		t.Errorf("Expected only Gap, got %+v", got)
	}
}

func TestPlaceholderPrices(t *testing.T) {
	item := placeholderItem(models.SlotScarf, DefaultTemplates().TemplateFor(models.QuarterQ1), 100, nil)
	if item.BestValue.Price != 60 || item.BestQuality.Price != 140 {
		t.Errorf("Expected 60/140, got %f/%f", item.BestValue.Price, item.BestQuality.Price)
	}
	if item.BestValue.Brand != "Generic" || item.BestQuality.Brand != "Premium" {
		t.Errorf("Expected Generic/Premium, got %s/%s", item.BestValue.Brand, item.BestQuality.Brand)
	}
	if !reflect.DeepEqual(item.PaletteColors, []string{"black", "navy"}) {
		t.Errorf("Expected template head colors, got %v", item.PaletteColors)
	}
}

func TestExtractPalette(t *testing.T) {
	items := []models.CapsuleItem{
		{PaletteColors: []string{"Black", "white"}},
		{PaletteColors: []string{"black", "red"}},
		{PaletteColors: []string{"navy", "green", "white", "black"}},
		{PaletteColors: []string{"pink", "teal"}},
	}
	got := ExtractPalette(items, []string{"cream"})
	want := []string{"black", "white", "red", "navy", "green", "pink"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	backfilled := ExtractPalette([]models.CapsuleItem{{PaletteColors: []string{"camel"}}}, []string{"black", "Camel", "navy", "cream"})
	if !reflect.DeepEqual(backfilled, []string{"camel", "black", "navy", "cream"}) {
		t.Errorf("Expected backfill from template, got %v", backfilled)
	}
}

func TestGenerateOutfitFormulas(t *testing.T) {
	mk := func(names ...string) []models.CapsuleItem {
		items := make([]models.CapsuleItem, len(names))
		for i, n := range names {
			items[i] = models.CapsuleItem{Category: n}
		}
		return items
	}

	if got := GenerateOutfitFormulas(nil); len(got) != 0 {
		t.Errorf("Expected no formulas, got %v", got)
	}
	if got := GenerateOutfitFormulas(mk("Tee")); !reflect.DeepEqual(got, []string{"Tee + Accessories"}) {
		t.Errorf("Unexpected single item formula: %v", got)
	}
	if got := GenerateOutfitFormulas(mk("Tee", "Jeans")); !reflect.DeepEqual(got, []string{"Tee + Jeans"}) {
		t.Errorf("Unexpected pair formula: %v", got)
	}
	got := GenerateOutfitFormulas(mk("A", "B", "C", "D", "E", "F", "G"))
	if !reflect.DeepEqual(got, []string{"A + B + C", "D + E + F"}) {
		t.Errorf("Expected only complete groups, got %v", got)
	}
}

func TestComputeDoNotBuyCap(t *testing.T) {
	closet := []models.ClosetItem{{Category: "a"}, {Category: "b"}, {Category: "c"}, {Category: "d"}}
	items := []models.CapsuleItem{{Category: "A"}, {Category: "B"}, {Category: "X"}, {Category: "C"}, {Category: "D"}}
	got := ComputeDoNotBuy(closet, items)
	if !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Expected [A B C], got %v", got)
	}
	if got := ComputeDoNotBuy(nil, items); len(got) != 0 {
		t.Errorf("Expected empty without closet, got %v", got)
	}
}

func TestLoadTemplatesFallback(t *testing.T) {
	if c := LoadTemplates(filepath.Join(t.TempDir(), "missing.json")); !c.IsBuiltin() {
		t.Error("Expected built-in templates for a missing file")
	}

	path := filepath.Join(t.TempDir(), "templates.json")
	bad := `{"Q1": {"palette": ["black", "white"], "items": ["tee"]}}`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if c := LoadTemplates(path); !c.IsBuiltin() {
		t.Error("Expected built-in templates for a short palette")
	}
	caseDup := `{"Q1": {"palette": ["black", "Black", "navy", "cream"], "items": ["tee"]}}`
	if err := os.WriteFile(path, []byte(caseDup), 0o644); err != nil {
		t.Fatal(err)
	}
	if c := LoadTemplates(path); !c.IsBuiltin() {
		t.Error("Expected built-in templates when the palette has fewer than 4 distinct colors")
	}
}

func TestCountDistinctColors(t *testing.T) {
	tests := []struct {
		palette []string
		want    int
	}{
		{[]string{"black", "navy", "cream", "camel"}, 4},
		{[]string{"black", "Black", "navy", "cream"}, 3},
		{[]string{" black", "BLACK ", "", "  "}, 1},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := countDistinctColors(tt.palette); got != tt.want {
			t.Errorf("countDistinctColors(%v): expected %d, got %d", tt.palette, tt.want, got)
		}
	}
}

func TestLoadTemplatesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	body := `{
		"Q1": {"palette": ["black", "navy", "cream", "camel"], "items": ["wool_coat", "turtleneck"]},
		"Q3": {"palette": ["white", "sand", "sage", "coral"], "items": ["sundress", "sandals", "rain_jacket"]}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c := LoadTemplates(path)
	if c.IsBuiltin() {
		t.Fatal("Expected templates from file")
	}
	if got := c.TemplateFor(models.QuarterQ3); len(got.Items) != 3 || got.Period != models.QuarterQ3 {
		t.Errorf("Unexpected Q3 template: %+v", got)
	}
	if got := c.TemplateFor(models.QuarterQ4); got.Period != models.QuarterQ1 {
		t.Errorf("Expected Q4 to fall back to Q1, got %s", got.Period)
	}
}
