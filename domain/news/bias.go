package news

import "strings"

// Bias is the political-bias label attached to an article by enrichment
type Bias string

const (
	BiasLeft   Bias = "left"
	BiasCenter Bias = "center"
	BiasRight  Bias = "right"

	// BiasUnknown means enrichment did not produce a usable label
	BiasUnknown Bias = ""
)

// ParseBias normalizes a bias label. Portuguese variants are accepted
// because the enrichment prompts are written in Portuguese.
func ParseBias(raw string) Bias {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left", "esquerda":
		return BiasLeft
	case "center", "centro":
		return BiasCenter
	case "right", "direita":
		return BiasRight
	default:
		return BiasUnknown
	}
}

// IsKnown reports whether the bias carries a usable label
func (b Bias) IsKnown() bool {
	return b == BiasLeft || b == BiasCenter || b == BiasRight
}
