package repository

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildProductQueryNoFilter(t *testing.T) {
	query, args := buildProductQuery(ProductFilter{})

	if strings.Contains(query, "WHERE") {
		t.Errorf("Expected no WHERE clause, got: %s", query)
	}
	if !strings.HasSuffix(query, "ORDER BY id ASC") {
		t.Errorf("Expected catalog order, got: %s", query)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %v", args)
	}
}

func TestBuildProductQueryCategories(t *testing.T) {
	query, args := buildProductQuery(ProductFilter{Categories: []string{"Top", "Tee"}})

	if !strings.Contains(query, "WHERE category = ANY($1)") {
		t.Errorf("Expected category filter, got: %s", query)
	}
	if len(args) != 1 || !reflect.DeepEqual(args[0], []string{"Top", "Tee"}) {
		t.Errorf("Expected categories arg, got %v", args)
	}
}

func TestBuildProductQueryPriceBandExcludeBrand(t *testing.T) {
	minPrice, maxPrice := 14.0, 42.0
	query, args := buildProductQuery(ProductFilter{
		MinPrice:     &minPrice,
		MaxPrice:     &maxPrice,
		ExcludeBrand: "Everlane",
		OrderByPrice: true,
		Limit:        3,
	})

	for _, fragment := range []string{
		"price >= $1",
		"price <= $2",
		"lower(brand) <> lower($3)",
		"ORDER BY price ASC, id ASC",
		"LIMIT $4",
	} {
		if !strings.Contains(query, fragment) {
			t.Errorf("Expected %q in query: %s", fragment, query)
		}
	}

	want := []interface{}{14.0, 42.0, "Everlane", 3}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Expected args %v, got %v", want, args)
	}
}

func TestBuildProductQueryPagination(t *testing.T) {
	query, args := buildProductQuery(ProductFilter{Categories: []string{"Dress"}, Limit: 100, Offset: 200})

	if !strings.Contains(query, "LIMIT $2 OFFSET $3") {
		t.Errorf("Expected pagination placeholders, got: %s", query)
	}
	if len(args) != 3 || args[1] != 100 || args[2] != 200 {
		t.Errorf("Unexpected args: %v", args)
	}
}

func TestBuildWhereBlankBrandIgnored(t *testing.T) {
	where, args := buildWhere(ProductFilter{ExcludeBrand: "   "})
	if where != "" || len(args) != 0 {
		t.Errorf("Expected blank brand to be ignored, got %q %v", where, args)
	}
}
