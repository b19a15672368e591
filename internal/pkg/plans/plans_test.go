package plans

import "testing"

func TestFindByID(t *testing.T) {
	tests := []struct {
		in      string
		want    PlanID
		wantOK  bool
		credits int
	}{
		{in: "free", want: PlanFree, wantOK: true, credits: 10},
		{in: "flash", want: PlanFlash, wantOK: true, credits: 100},
		{in: "pro", want: PlanPro, wantOK: true, credits: 500},
		{in: "PRO", want: PlanPro, wantOK: true, credits: 500},
		{in: "enterprise", wantOK: false},
	}

	for _, tt := range tests {
		tier, ok := FindByID(tt.in)
		if ok != tt.wantOK || tier.ID != tt.want {
			t.Fatalf("FindByID(%q) = %v, %v", tt.in, tier.ID, ok)
		}
		if tier.Credits != tt.credits {
			t.Fatalf("FindByID(%q).Credits = %d, want %d", tt.in, tier.Credits, tt.credits)
		}
	}
}

func TestNormalizeUnknownFallsBackToFree(t *testing.T) {
	if got := Normalize("enterprise"); got != "free" {
		t.Fatalf("Normalize(enterprise) = %q, want free", got)
	}
}

func TestRankOrdering(t *testing.T) {
	if Rank("free") >= Rank("flash") {
		t.Fatalf("expected flash to outrank free")
	}
	if Rank("flash") >= Rank("pro") {
		t.Fatalf("expected pro to outrank flash")
	}
}

func TestIsUpgrade(t *testing.T) {
	if !IsUpgrade("free", "pro") {
		t.Fatalf("free -> pro should be an upgrade")
	}
	if IsUpgrade("pro", "flash") {
		t.Fatalf("pro -> flash is a downgrade")
	}
	if IsUpgrade("flash", "flash") {
		t.Fatalf("same plan is not an upgrade")
	}
}

func TestCatalogInvariants(t *testing.T) {
	freeCount := 0
	lastPrice := -1
	for _, tier := range Catalog {
		if tier.Price == 0 {
			freeCount++
		}
		if tier.Price < lastPrice {
			t.Fatalf("catalog not ordered by ascending price at %q", tier.ID)
		}
		lastPrice = tier.Price
		if tier.Credits < 0 || tier.Duration <= 0 {
			t.Fatalf("tier %q has invalid allotment or duration", tier.ID)
		}
	}
	if freeCount != 1 {
		t.Fatalf("catalog must contain exactly one free tier, got %d", freeCount)
	}
}
