package dto

// SearchCreatorsRequest represents matchmaking search criteria
type SearchCreatorsRequest struct {
	CustomerID        uint     `json:"-"`
	TargetPincode     string   `json:"target_pincode" validate:"required,len=6,numeric"`
	RadiusKm          float64  `json:"radius_km" validate:"omitempty,gt=0,lte=2000"`
	ContentCategories []string `json:"content_categories" validate:"omitempty,dive,min=1"`
	Languages         []string `json:"languages" validate:"omitempty,dive,min=1"`
	MinViewers        *int64   `json:"min_viewers" validate:"omitempty,gte=0"`
	Limit             int      `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

// CreatorMatchDTO is one ranked creator in search results
type CreatorMatchDTO struct {
	CreatorUUID         string   `json:"creator_uuid"`
	DisplayName         string   `json:"display_name"`
	ChannelURL          *string  `json:"channel_url,omitempty"`
	Score               float64  `json:"score"`
	GeoOverlapPct       float64  `json:"geo_overlap_pct"`
	CategoryMatchPct    float64  `json:"category_match_pct"`
	LanguageMatchPct    float64  `json:"language_match_pct"`
	ViewersInTarget     int64    `json:"viewers_in_target"`
	OverlappingPincodes []string `json:"overlapping_pincodes"`
}

// SearchCreatorsResponse represents ranked matchmaking results
type SearchCreatorsResponse struct {
	TargetPincode string            `json:"target_pincode"`
	RadiusKm      float64           `json:"radius_km"`
	Matches       []CreatorMatchDTO `json:"matches"`
}
