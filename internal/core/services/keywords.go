package services

// Keyword tables for requirement analysis. Matching is case-insensitive
// substring containment over the combined visual direction + narration.

var productCueWords = []string{
	"product", "bottle", "jar", "tube", "box", "packshot", "packaging",
	"supplement", "extract", "capsule", "serum", "cream", "device",
	"our product", "the product",
}

var logoCueWords = []string{
	"logo", "branding", "brand mark", "brandmark", "wordmark",
	"logo visible", "with logo", "branded",
}

var watermarkCueWords = []string{
	"watermark", "subtle logo", "corner logo", "logo bug",
}

var certificationCueWords = []string{
	"certification", "certified", "seal of", "quality seal", "badge",
}

var partnerCueWords = []string{
	"partner logo", "co-branded", "cobranded", "in partnership",
}

var locationCueWords = []string{
	"storefront", "our store", "headquarters", "office interior",
	"facility", "warehouse", "showroom", "flagship",
}

var closeupCueWords = []string{
	"close-up", "closeup", "close up", "macro shot", "hero shot",
	"full frame",
}

var inContextCueWords = []string{
	"in context", "on a desk", "on the desk", "on a table", "on the table",
	"in hand", "held in", "on a shelf", "on the counter", "next to",
	"on wooden", "in the kitchen", "on marble",
}

var backgroundCueWords = []string{
	"in the background", "background", "behind", "out of focus", "blurred",
}

var subtleCueWords = []string{
	"subtle", "discreet", "understated", "barely visible",
}

var prominentCueWords = []string{
	"prominent", "prominently", "front and center", "hero", "featured",
	"showcase", "spotlight",
}

// Signal weights for the confidence sum. Independent signals accumulate
// and the total is clamped to [0,1].
const (
	weightProductName = 0.30
	weightProductCue  = 0.15
	weightLogoCue     = 0.20
	weightLocationCue = 0.15
	weightSceneCue    = 0.15
	weightNarration   = 0.05
)
