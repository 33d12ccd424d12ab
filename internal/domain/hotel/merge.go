package hotel

// Merge joins quotes with metadata on hotel id. Output order follows quotes.
// Quotes without a metadata entry are kept with the metadata fields left absent.
// Either input being empty yields an empty result.
func Merge(metadata []Metadata, quotes []PriceQuote) []MergedHotel {
	if len(metadata) == 0 || len(quotes) == 0 {
		return []MergedHotel{}
	}

	index := make(map[string]int, len(metadata))
	for i := len(metadata) - 1; i >= 0; i-- {
		index[metadata[i].ID] = i
	}

	merged := make([]MergedHotel, 0, len(quotes))
	for _, quote := range quotes {
		var meta *Metadata
		if i, ok := index[quote.ID]; ok {
			meta = &metadata[i]
		}
		merged = append(merged, project(meta, quote))
	}
	return merged
}

func project(meta *Metadata, quote PriceQuote) MergedHotel {
	h := MergedHotel{
		ID:               quote.ID,
		Price:            quote.ConvertedPrice,
		LowestPrice:      quote.LowestConvertedPrice,
		RoomsAvailable:   quote.RoomsAvailable,
		FreeCancellation: quote.FreeCancellation,
	}
	if meta == nil {
		return h
	}

	h.Name = firstString(meta.Name)
	h.Address = firstString(meta.Address, meta.Address1)
	h.Rating = meta.Rating
	h.ImageDetails = meta.ImageDetails
	h.TrustYouScore = firstFloat(trustYouOverall(meta), trustYouKaligoOverall(meta))
	h.Description = firstString(meta.Description)
	h.Amenities = meta.Amenities
	h.Latitude = meta.Latitude
	h.Longitude = meta.Longitude
	return h
}

func trustYouOverall(meta *Metadata) *float64 {
	if meta.TrustYou == nil || meta.TrustYou.Score == nil {
		return nil
	}
	return meta.TrustYou.Score.Overall
}

func trustYouKaligoOverall(meta *Metadata) *float64 {
	if meta.TrustYou == nil || meta.TrustYou.Score == nil {
		return nil
	}
	return meta.TrustYou.Score.KaligoOverall
}

// firstString returns the first non-empty candidate.
func firstString(candidates ...string) *string {
	for _, candidate := range candidates {
		if candidate != "" {
			value := candidate
			return &value
		}
	}
	return nil
}

func firstFloat(candidates ...*float64) *float64 {
	for _, candidate := range candidates {
		if candidate != nil {
			value := *candidate
			return &value
		}
	}
	return nil
}
