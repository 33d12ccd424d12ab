package hotel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

//go:generate mockgen -source=repository.go -destination=../../mocks/mock_hotel.go -package=mocks

// Endpoint identifies an upstream resource. Path is relative to the hotel API base URL.
type Endpoint struct {
	Name string
	Path string
}

func HotelsEndpoint() Endpoint {
	return Endpoint{Name: "hotels", Path: "/hotels"}
}

func PricesEndpoint() Endpoint {
	return Endpoint{Name: "prices", Path: "/hotels/prices"}
}

func HotelPriceEndpoint(hotelID string) Endpoint {
	return Endpoint{Name: "hotel_price", Path: "/hotels/" + url.PathEscape(hotelID) + "/price"}
}

func HotelEndpoint(hotelID string) Endpoint {
	return Endpoint{Name: "hotel", Path: "/hotels/" + url.PathEscape(hotelID)}
}

// QueryParams maps upstream query parameter names to string, number or boolean values.
// Nil values and empty strings are not sent.
type QueryParams map[string]any

func (p QueryParams) Encode() url.Values {
	values := url.Values{}
	for key, value := range p {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
			values.Set(key, v)
		case bool:
			values.Set(key, strconv.FormatBool(v))
		case int:
			values.Set(key, strconv.Itoa(v))
		case int64:
			values.Set(key, strconv.FormatInt(v, 10))
		case float64:
			values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		case *string:
			if v != nil && *v != "" {
				values.Set(key, *v)
			}
		default:
			if encoded, ok := encodeOther(v); ok {
				values.Set(key, encoded)
			}
		}
	}
	return values
}

// encodeOther formats values of any other kind, dereferencing pointers. A nil pointer is absent.
func encodeOther(value any) (string, bool) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	encoded := fmt.Sprint(rv.Interface())
	return encoded, encoded != ""
}

// With returns a copy of p with extra merged over it.
func (p QueryParams) With(extra QueryParams) QueryParams {
	merged := make(QueryParams, len(p)+len(extra))
	for key, value := range p {
		merged[key] = value
	}
	for key, value := range extra {
		merged[key] = value
	}
	return merged
}

// Provider performs a single GET against the hotel API and returns the raw JSON body.
type Provider interface {
	Get(ctx context.Context, endpoint Endpoint, params QueryParams) (json.RawMessage, error)
}

type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
