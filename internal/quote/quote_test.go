package quote_test

import (
	"strings"
	"testing"
	"unicode"

	"avtovybor/internal/quote"
)

func TestCompute_KnownPoints(t *testing.T) {
	cases := []struct {
		name          string
		year, mileage int
		want          int64
	}{
		{"new car", 2025, 0, 4_500_000},
		{"oldest allowed", 1980, 0, 1_350_000},
		{"typical", 2020, 100_000, 3_850_000},
		{"clamped to floor", 1980, 1_000_000, 100_000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := quote.Compute(tc.year, tc.mileage)
			if got.FinalPrice != tc.want {
				t.Fatalf("Compute(%d,%d) = %d, want %d", tc.year, tc.mileage, got.FinalPrice, tc.want)
			}
		})
	}
}

func TestCompute_Breakdown(t *testing.T) {
	e := quote.Compute(2020, 100_000)
	if e.BasePrice != 4_500_000 || e.YearPenalty != 350_000 || e.MileagePenalty != 300_000 {
		t.Fatalf("unexpected breakdown: %+v", e)
	}
}

func TestCompute_FloorHoldsAcrossRange(t *testing.T) {
	for year := quote.MinYear; year <= quote.MaxYear; year++ {
		for _, mileage := range []int{0, 1, 50_000, 300_000, 1_500_000, 10_000_000} {
			e := quote.Compute(year, mileage)
			raw := int64(4_500_000) - int64(2025-year)*70_000 - int64(mileage)*3
			want := max(int64(100_000), raw)
			if e.FinalPrice != want {
				t.Fatalf("year=%d mileage=%d: got %d want %d", year, mileage, e.FinalPrice, want)
			}
			if e.FinalPrice < quote.FloorPrice {
				t.Fatalf("floor violated: %+v", e)
			}
		}
	}
}

func TestCompute_HugeMileageStaysAtFloor(t *testing.T) {
	for _, mileage := range []int{quote.MaxMileage, quote.MaxMileage + 1, 1 << 40, 1 << 62, int(^uint(0) >> 1)} {
		e := quote.Compute(2025, mileage)
		if e.FinalPrice != quote.FloorPrice {
			t.Fatalf("mileage=%d: final %d, want floor", mileage, e.FinalPrice)
		}
		if e.MileagePenalty < 0 || e.MileagePenalty > int64(quote.MaxMileage)*quote.MileagePenalty {
			t.Fatalf("mileage=%d: penalty %d out of range", mileage, e.MileagePenalty)
		}
	}
}

func TestFormat_GroupsThousands(t *testing.T) {
	s := quote.Format(3_850_000)
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if digits != "3850000" {
		t.Fatalf("digits changed: %q", s)
	}
	if len([]rune(s)) <= len(digits) {
		t.Fatalf("expected group separators in %q", s)
	}
	if !strings.HasSuffix(quote.Compute(2025, 0).Display(), "₽") {
		t.Fatal("display missing currency")
	}
}
