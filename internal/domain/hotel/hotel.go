package hotel

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type ImageDetails struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
	Count  int    `json:"count"`
}

type TrustYouScore struct {
	Overall       *float64 `json:"overall,omitempty"`
	KaligoOverall *float64 `json:"kaligo_overall,omitempty"`
	Solo          *float64 `json:"solo,omitempty"`
	Couple        *float64 `json:"couple,omitempty"`
	Family        *float64 `json:"family,omitempty"`
	Business      *float64 `json:"business,omitempty"`
}

type TrustYou struct {
	Score *TrustYouScore `json:"score,omitempty"`
}

// Metadata is one entry of the upstream hotel list for a destination.
// Pointer fields distinguish "absent upstream" from a zero value.
type Metadata struct {
	ID           string          `json:"id"`
	Name         string          `json:"name,omitempty"`
	Address      string          `json:"address,omitempty"`
	Address1     string          `json:"address1,omitempty"`
	Rating       *float64        `json:"rating,omitempty"`
	Latitude     *float64        `json:"latitude,omitempty"`
	Longitude    *float64        `json:"longitude,omitempty"`
	Description  string          `json:"description,omitempty"`
	Amenities    map[string]bool `json:"amenities,omitempty"`
	ImageDetails *ImageDetails   `json:"image_details,omitempty"`
	TrustYou     *TrustYou       `json:"trustyou,omitempty"`
}

// PriceQuote is one hotel entry of a completed destination price response.
type PriceQuote struct {
	ID                   string  `json:"id"`
	ConvertedPrice       float64 `json:"converted_price"`
	LowestConvertedPrice float64 `json:"lowest_converted_price"`
	RoomsAvailable       int     `json:"rooms_available"`
	FreeCancellation     bool    `json:"free_cancellation"`
}

// PriceEnvelope wraps a pricing response. Hotels is only populated once Completed is true.
type PriceEnvelope struct {
	Completed bool         `json:"completed"`
	Currency  string       `json:"currency,omitempty"`
	Hotels    []PriceQuote `json:"hotels"`
}

// MergedHotel is the public search result shape.
type MergedHotel struct {
	ID               string          `json:"id"`
	Name             *string         `json:"name,omitempty"`
	Address          *string         `json:"address,omitempty"`
	Rating           *float64        `json:"rating,omitempty"`
	ImageDetails     *ImageDetails   `json:"imageDetails,omitempty"`
	TrustYouScore    *float64        `json:"trustyouScore,omitempty"`
	Description      *string         `json:"description,omitempty"`
	Amenities        map[string]bool `json:"amenities,omitempty"`
	Price            float64         `json:"price"`
	LowestPrice      float64         `json:"lowestPrice"`
	RoomsAvailable   int             `json:"roomsAvailable"`
	FreeCancellation bool            `json:"freeCancellation"`
	Latitude         *float64        `json:"latitude,omitempty"`
	Longitude        *float64        `json:"longitude,omitempty"`
}

// RoomOffer is the per-hotel price payload as returned upstream with the matching
// hotel record attached under "hotel".
type RoomOffer struct {
	Payload map[string]json.RawMessage
	Hotel   *Metadata
}

func (r RoomOffer) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Payload)+1)
	for key, value := range r.Payload {
		out[key] = value
	}

	hotelJSON := json.RawMessage("null")
	if r.Hotel != nil {
		data, err := json.Marshal(r.Hotel)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal hotel: %w", err)
		}
		hotelJSON = data
	}
	out["hotel"] = hotelJSON

	return json.Marshal(out)
}

func DecodeMetadataList(raw json.RawMessage) ([]Metadata, error) {
	if isEmptyBody(raw) {
		return []Metadata{}, nil
	}

	var list []Metadata
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode hotel list: %w", err)
	}
	if list == nil {
		list = []Metadata{}
	}
	return list, nil
}

func DecodeMetadata(raw json.RawMessage) (*Metadata, error) {
	if isEmptyBody(raw) {
		return nil, ErrNotFound
	}

	var metadata Metadata
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode hotel: %w", err)
	}
	return &metadata, nil
}

// DecodePriceEnvelope treats an empty body as an incomplete envelope with no quotes.
func DecodePriceEnvelope(raw json.RawMessage) (*PriceEnvelope, error) {
	envelope := &PriceEnvelope{Hotels: []PriceQuote{}}
	if isEmptyBody(raw) {
		return envelope, nil
	}

	if err := json.Unmarshal(raw, envelope); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}
	if envelope.Hotels == nil {
		envelope.Hotels = []PriceQuote{}
	}
	return envelope, nil
}

func DecodeRoomPayload(raw json.RawMessage) (map[string]json.RawMessage, error) {
	payload := make(map[string]json.RawMessage)
	if isEmptyBody(raw) {
		return payload, nil
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode room price response: %w", err)
	}
	if payload == nil {
		payload = make(map[string]json.RawMessage)
	}
	return payload, nil
}

// FindByID returns the first entry whose id matches.
func FindByID(list []Metadata, id string) (*Metadata, bool) {
	for i := range list {
		if list[i].ID == id {
			return &list[i], true
		}
	}
	return nil, false
}

func isEmptyBody(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
