package utils

import (
	"errors"
	"testing"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
)

func TestParsePriceRange(t *testing.T) {
	cases := []struct {
		in      string
		want    models.PriceRange
		wantErr bool
	}{
		{"100000-200000", models.PriceRange{Min: 100000, Max: 200000}, false},
		{" 5000 - 7500.50 ", models.PriceRange{Min: 5000, Max: 7500.50}, false},
		{"0-0", models.PriceRange{}, false},
		{"200000-100000", models.PriceRange{}, true},
		{"-100-200", models.PriceRange{}, true},
		{"cheap-expensive", models.PriceRange{}, true},
		{"100000", models.PriceRange{}, true},
		{"", models.PriceRange{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePriceRange(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrBadPriceRange) {
					t.Errorf("ParsePriceRange(%q): got err %v, want ErrBadPriceRange", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePriceRange(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParsePriceRange(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}
