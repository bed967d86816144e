package plans

import (
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestGetPlanByID(t *testing.T) {
	for _, id := range []string{Free, Pro, Ultimate} {
		got := GetPlanByID(id)
		if got.ID != id {
			t.Fatalf("GetPlanByID(%q).ID = %q", id, got.ID)
		}
	}
}

func TestGetPlanByID_UnknownFallsBackToFree(t *testing.T) {
	free := GetPlanByID(Free)
	for _, id := range []string{"nonexistent", "", "PRO", "Free", " pro"} {
		got := GetPlanByID(id)
		if !reflect.DeepEqual(got, free) {
			t.Fatalf("GetPlanByID(%q) = %+v, want free tier", id, got)
		}
	}
}

func TestGetPlanNumericPrice(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{Free, 0},
		{Pro, 1500},
		{Ultimate, 5000},
		{"nonexistent", 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := GetPlanNumericPrice(tt.id); got != tt.want {
				t.Fatalf("GetPlanNumericPrice(%q) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestNumericPriceMatchesDisplayPrice(t *testing.T) {
	for _, p := range All() {
		want := 0
		if p.Price != "0" {
			n, err := parsePrice(p.Price)
			if err != nil {
				t.Fatalf("plan %q: %v", p.ID, err)
			}
			want = n
		}
		if got := GetPlanNumericPrice(p.ID); got != want {
			t.Errorf("plan %q: numeric price %d, display %q", p.ID, got, p.Price)
		}
		if strings.Contains(p.Price, ".") {
			t.Errorf("plan %q: price %q must not carry decimals", p.ID, p.Price)
		}
	}
}

func TestCatalogIntegrity(t *testing.T) {
	if err := validate(catalog); err != nil {
		t.Fatalf("catalog invalid: %v", err)
	}
	all := All()
	if all[0].ID != Free || all[0].Price != "0" || !all[0].IsFree() {
		t.Fatalf("first plan must be the free tier, got %+v", all[0])
	}
	seen := map[string]bool{}
	for _, p := range all {
		if seen[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
		if !IsKnown(p.ID) {
			t.Fatalf("IsKnown(%q) = false", p.ID)
		}
	}
	if IsKnown("nonexistent") {
		t.Fatal("IsKnown(nonexistent) = true")
	}
}

func TestValidateRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name  string
		plans []Plan
	}{
		{"empty", nil},
		{"paid first", []Plan{{ID: Pro, Price: "1,500"}}},
		{"duplicate", []Plan{{ID: Free, Price: "0"}, {ID: Free, Price: "0"}}},
		{"malformed", []Plan{{ID: Free, Price: "0"}, {ID: Pro, Price: "Rs 1,500"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validate(tt.plans); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCallersCannotMutateCatalog(t *testing.T) {
	p := GetPlanByID(Pro)
	p.Price = "1"
	p.Features[0] = "changed"

	all := All()
	all[0].Name = "changed"

	again := GetPlanByID(Pro)
	if again.Price != "1,500" || again.Features[0] == "changed" {
		t.Fatalf("catalog was mutated: %+v", again)
	}
	if GetPlanByID(Free).Name != "Free" {
		t.Fatal("All() exposed catalog storage")
	}
}

func TestConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if GetPlanNumericPrice(Ultimate) != 5000 {
					t.Error("unexpected price")
					return
				}
			}
		}()
	}
	wg.Wait()
}
