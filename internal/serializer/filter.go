package serializer

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/store"
)

// DecodeAdFilter reads the ad list query: repeatable cat ids, name and
// location substrings, and inclusive price_from/price_to bounds. Empty
// values are ignored; non-integer ids or prices are type mismatches.
func DecodeAdFilter(q url.Values) (store.AdFilter, error) {
	var (
		filter store.AdFilter
		errs   domain.ValidationErrors
	)

	for _, raw := range q["cat"] {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs.Add("cat", domain.KindTypeMismatch, "must be an integer")
			break
		}
		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	filter.Name = q.Get("name")
	filter.Location = q.Get("location")

	parseBound := func(key string) *int64 {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs.Add(key, domain.KindTypeMismatch, "must be an integer")
			return nil
		}
		return &v
	}
	filter.PriceFrom = parseBound("price_from")
	filter.PriceTo = parseBound("price_to")

	if err := errs.Err(); err != nil {
		return store.AdFilter{}, err
	}
	return filter, nil
}
