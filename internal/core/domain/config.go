package domain

// ScoreWeights exposes the asset matching weights. The defaults preserve
// the tuned relative ordering (declared-type match > name match > keyword
// match > priority nudge); exact values are not a correctness contract
// and may be overridden through configuration.
type ScoreWeights struct {
	// TypeMatch is awarded for a taxonomy-declared type match.
	TypeMatch int `toml:"type_match"`

	// SubQualifier is the maximum bonus for type sub-qualifiers
	// matching the requested sub-intent.
	SubQualifier int `toml:"sub_qualifier"`

	// NameSubstring is awarded per product-name substring hit.
	NameSubstring int `toml:"name_substring"`

	// StructuredName is awarded when the hit is inside structured
	// product metadata rather than free text.
	StructuredName int `toml:"structured_name"`

	// DefaultBonus is awarded to assets flagged default.
	DefaultBonus int `toml:"default_bonus"`

	// DefaultBonusGeneric replaces DefaultBonus in the generic
	// keyword path.
	DefaultBonusGeneric int `toml:"default_bonus_generic"`

	// TransparentBonus rewards alpha-capable formats in the typed path.
	TransparentBonus int `toml:"transparent_bonus"`

	// TransparentBonusKeyword is the same reward in the keyword path.
	TransparentBonusKeyword int `toml:"transparent_bonus_keyword"`

	// DirectNameHit is awarded when the asset name itself appears in
	// the visual direction text.
	DirectNameHit int `toml:"direct_name_hit"`

	// EntityNameHit is awarded for a brand/entity-name hit.
	EntityNameHit int `toml:"entity_name_hit"`

	// RankedTypeBonus is the flat bonus for assets of a type that
	// matched or ranked in the top five.
	RankedTypeBonus int `toml:"ranked_type_bonus"`

	// PositionalBase and PositionalStep form the positional bonus
	// max(0, PositionalBase - typeIndex*PositionalStep).
	PositionalBase int `toml:"positional_base"`
	PositionalStep int `toml:"positional_step"`

	// MaxProducts/MaxLogos/MaxLocations cap the match lists.
	MaxProducts  int `toml:"max_products"`
	MaxLogos     int `toml:"max_logos"`
	MaxLocations int `toml:"max_locations"`
}

// DefaultScoreWeights returns the tuned matching weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		TypeMatch:               20,
		SubQualifier:            25,
		NameSubstring:           10,
		StructuredName:          15,
		DefaultBonus:            3,
		DefaultBonusGeneric:     5,
		TransparentBonus:        3,
		TransparentBonusKeyword: 2,
		DirectNameHit:           50,
		EntityNameHit:           40,
		RankedTypeBonus:         25,
		PositionalBase:          20,
		PositionalStep:          2,
		MaxProducts:             5,
		MaxLogos:                3,
		MaxLocations:            3,
	}
}

// PlacementWeights exposes the overlay placement scores and thresholds.
type PlacementWeights struct {
	// Base is every candidate's starting score.
	Base int `toml:"base"`

	// PreferredPosition rewards candidates in the overlay type's
	// preferred-position list.
	PreferredPosition int `toml:"preferred_position"`

	// SafeZone rewards candidates flagged safe by frame analysis.
	SafeZone int `toml:"safe_zone"`

	// FacePenalty is subtracted when a candidate overlaps a detected
	// face (after padding).
	FacePenalty int `toml:"face_penalty"`

	// BusyPenalty is subtracted for candidates in busy regions.
	BusyPenalty int `toml:"busy_penalty"`

	// LowerThirdBusyPenalty is additionally subtracted for the
	// lower-third candidate when any bottom region is busy.
	LowerThirdBusyPenalty int `toml:"lower_third_busy_penalty"`

	// CrowdingPenalty is subtracted per already-accepted overlay
	// within the closeness threshold of the candidate.
	CrowdingPenalty int `toml:"crowding_penalty"`

	// CrowdingDX / CrowdingDY are the closeness thresholds in canvas
	// percent.
	CrowdingDX float64 `toml:"crowding_dx"`
	CrowdingDY float64 `toml:"crowding_dy"`

	// FacePaddingPct expands detected face boxes before the overlap
	// test.
	FacePaddingPct float64 `toml:"face_padding_pct"`

	// RejectBelow is the rejection threshold: candidates must score
	// strictly above it to place. The zero default means "no bad
	// placement is better than a wrong one."
	RejectBelow int `toml:"reject_below"`

	// CollisionBufferFrames is the gap inserted between two overlays
	// whose windows would otherwise overlap in the same screen space.
	CollisionBufferFrames int `toml:"collision_buffer_frames"`
}

// DefaultPlacementWeights returns the tuned placement weights.
func DefaultPlacementWeights() PlacementWeights {
	return PlacementWeights{
		Base:                  50,
		PreferredPosition:     30,
		SafeZone:              20,
		FacePenalty:           100,
		BusyPenalty:           25,
		LowerThirdBusyPenalty: 15,
		CrowdingPenalty:       50,
		CrowdingDX:            20,
		CrowdingDY:            15,
		FacePaddingPct:        10,
		RejectBelow:           0,
		CollisionBufferFrames: 10,
	}
}

// EngineConfig bundles every tunable the engine reads.
type EngineConfig struct {
	// Weights are the asset matching weights.
	Weights ScoreWeights `toml:"weights"`

	// Placement are the overlay placement weights.
	Placement PlacementWeights `toml:"placement"`

	// SafeZoneMargin is the minimum pixel distance any overlay keeps
	// from the canvas edge.
	SafeZoneMargin int `toml:"safe_zone_margin"`

	// WatermarkOpacityCeiling caps watermark logo opacity.
	WatermarkOpacityCeiling float64 `toml:"watermark_opacity_ceiling"`
}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Weights:                 DefaultScoreWeights(),
		Placement:               DefaultPlacementWeights(),
		SafeZoneMargin:          96,
		WatermarkOpacityCeiling: 0.5,
	}
}
