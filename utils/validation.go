package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
)

var ErrBadPriceRange = errors.New("price range must be \"min-max\" with min <= max")

// ParsePriceRange converts the legacy "min-max" string clients still send
// into the structured range stored on estate documents.
func ParsePriceRange(s string) (models.PriceRange, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return models.PriceRange{}, ErrBadPriceRange
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.PriceRange{}, ErrBadPriceRange
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.PriceRange{}, ErrBadPriceRange
	}
	if min < 0 || max < min {
		return models.PriceRange{}, ErrBadPriceRange
	}
	return models.PriceRange{Min: min, Max: max}, nil
}
