package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"examsync/shared/cache"
	"examsync/shared/constant"
	"examsync/shared/dto"
	"examsync/shared/timezone"
)

func ConvertStringToInt(value string) (int, error) {
	res, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to convert string to int: %w", err)
	}

	return res, nil
}

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

// BuildCacheKey joins a prefix and its parts into a colon-separated cache key.
func BuildCacheKey(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a cache key from the query params and filter
// so that distinct listings get distinct cache entries.
func BuildCacheKeyWithQuery(prefix string, params any, filter dto.FilterGroup) string {
	payload, err := json.Marshal(struct {
		Params any             `json:"params"`
		Filter dto.FilterGroup `json:"filter"`
	}{Params: params, Filter: filter})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal cache key payload")

		return BuildCacheKey(prefix, "all")
	}

	h := fnv.New64a()
	_, _ = h.Write(payload)

	return BuildCacheKey(prefix, strconv.FormatUint(h.Sum64(), 16))
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}
