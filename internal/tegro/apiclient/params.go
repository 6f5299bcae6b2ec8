package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidParam = errors.New("invalid request parameter")

// Params is a loosely typed request body. Values are coerced per field name
// before the body is signed.
type Params map[string]any

type fieldKind int

const (
	kindUntyped fieldKind = iota
	kindString
	kindInteger
	kindNumber
)

var fieldKinds = map[string]fieldKind{
	"shop_id":        kindString,
	"currency":       kindString,
	"order_id":       kindString,
	"email":          kindString,
	"phone":          kindString,
	"name":           kindString,
	"account":        kindString,
	"payment_id":     kindString,
	"nonce":          kindInteger,
	"payment_system": kindInteger,
	"page":           kindInteger,
	"amount":         kindNumber,
	"count":          kindNumber,
	"price":          kindNumber,
}

// Builder turns Params into the canonical JSON body sent to the API.
type Builder struct {
	shopID string
	now    func() time.Time
}

func NewBuilder(shopID string) *Builder {
	return &Builder{
		shopID: shopID,
		now:    time.Now,
	}
}

// Normalize returns a coerced copy of raw with shop_id and nonce defaulted.
// raw itself is never modified.
func (b *Builder) Normalize(raw Params) (Params, error) {
	res := make(Params, len(raw)+2)
	for key, value := range raw {
		res[key] = value
	}
	if isBlank(res["shop_id"]) {
		res["shop_id"] = b.shopID
	}
	if isBlank(res["nonce"]) {
		res["nonce"] = b.now().UTC().UnixMilli()
	}
	normalized, err := normalizeMap(res)
	if err != nil {
		return nil, err
	}
	return normalized, nil
}

// Build normalizes raw and serializes it. encoding/json sorts map keys, so the
// body is stable for equal input.
func (b *Builder) Build(raw Params) ([]byte, error) {
	normalized, err := b.Normalize(raw)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return body, nil
}

func normalizeMap(m map[string]any) (map[string]any, error) {
	res := make(map[string]any, len(m))
	for key, value := range m {
		normalized, err := normalizeValue(key, value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		res[key] = normalized
	}
	return res, nil
}

func normalizeValue(key string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch fieldKinds[key] {
	case kindString:
		return ToString(value)
	case kindInteger:
		return ToInt64(value)
	case kindNumber:
		d, err := ToDecimal(value)
		if err != nil {
			return nil, err
		}
		return jsonNumber(d), nil
	}
	switch v := value.(type) {
	case Params:
		return normalizeMap(v)
	case map[string]any:
		return normalizeMap(v)
	case []Params:
		res := make([]any, len(v))
		for i, item := range v {
			normalized, err := normalizeMap(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			res[i] = normalized
		}
		return res, nil
	case []map[string]any:
		res := make([]any, len(v))
		for i, item := range v {
			normalized, err := normalizeMap(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			res[i] = normalized
		}
		return res, nil
	case []any:
		res := make([]any, len(v))
		for i, item := range v {
			normalized, err := normalizeValue("", item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			res[i] = normalized
		}
		return res, nil
	}
	return value, nil
}

// jsonNumber renders integral values without a fractional part.
func jsonNumber(d decimal.Decimal) json.Number {
	if d.Equal(d.Truncate(0)) {
		return json.Number(d.Truncate(0).String())
	}
	return json.Number(d.String())
}

// isBlank reports values that count as absent for defaulted fields: nil,
// empty strings, false and any zero number.
func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case json.Number:
		if v == "" {
			return true
		}
		d, err := decimal.NewFromString(string(v))
		return err == nil && d.IsZero()
	case decimal.Decimal:
		return v.IsZero()
	case float32:
		return v == 0
	case float64:
		return v == 0
	case uint64:
		return v == 0
	}
	if i, ok := asInt64(value); ok {
		return i == 0
	}
	return false
}

func ToString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case decimal.Decimal:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	if i, ok := asInt64(value); ok {
		return strconv.FormatInt(i, 10), nil
	}
	if u, ok := value.(uint64); ok {
		return strconv.FormatUint(u, 10), nil
	}
	return "", fmt.Errorf("%w: cannot use %T as string", ErrInvalidParam, value)
}

func ToInt64(value any) (int64, error) {
	if i, ok := asInt64(value); ok {
		return i, nil
	}
	switch v := value.(type) {
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrInvalidParam, v)
		}
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidParam, v)
		}
		return i, nil
	case json.Number:
		return ToInt64(string(v))
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case float32:
		return ToInt64(float64(v))
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidParam, v)
		}
		return int64(v), nil
	case decimal.Decimal:
		if !v.Equal(v.Truncate(0)) {
			return 0, fmt.Errorf("%w: %s is not an integer", ErrInvalidParam, v)
		}
		return v.IntPart(), nil
	}
	return 0, fmt.Errorf("%w: cannot use %T as integer", ErrInvalidParam, value)
}

func ToDecimal(value any) (decimal.Decimal, error) {
	if i, ok := asInt64(value); ok {
		return decimal.NewFromInt(i), nil
	}
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidParam, v)
		}
		return d, nil
	case json.Number:
		return ToDecimal(string(v))
	case float32:
		return decimal.NewFromFloat32(v), nil
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return decimal.Zero, fmt.Errorf("%w: %v is not a number", ErrInvalidParam, v)
		}
		return decimal.NewFromFloat(v), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), nil
	}
	return decimal.Zero, fmt.Errorf("%w: cannot use %T as number", ErrInvalidParam, value)
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), uint64(v) <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	}
	return 0, false
}
