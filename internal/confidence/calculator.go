// Package confidence provides pure heuristics for scoring the quality of each
// refinement pipeline stage and combining them into an overall score.
package confidence

import "math"

// Default component weights. Schema matching dominates because the structured
// output is what callers ultimately consume.
const (
	DefaultOcrWeight            = 0.3
	DefaultSummarizationWeight  = 0.2
	DefaultSchemaMatchingWeight = 0.5
)

// Calculator combines per-stage confidence scores into a weighted overall score.
type Calculator struct {
	OcrWeight            float64
	SummarizationWeight  float64
	SchemaMatchingWeight float64
}

// NewCalculator returns a Calculator with the default weights.
func NewCalculator() *Calculator {
	return &Calculator{
		OcrWeight:            DefaultOcrWeight,
		SummarizationWeight:  DefaultSummarizationWeight,
		SchemaMatchingWeight: DefaultSchemaMatchingWeight,
	}
}

// Overall computes the weighted average of whichever component scores are
// present. Absent components redistribute their weight proportionally among
// the rest. With no components at all a neutral 0.5 is returned. The result
// is rounded to 3 decimal places.
func (c *Calculator) Overall(ocr, summarization, schemaMatching *float64) float64 {
	var scores, weights []float64

	if ocr != nil {
		scores = append(scores, *ocr)
		weights = append(weights, c.OcrWeight)
	}
	if summarization != nil {
		scores = append(scores, *summarization)
		weights = append(weights, c.SummarizationWeight)
	}
	if schemaMatching != nil {
		scores = append(scores, *schemaMatching)
		weights = append(weights, c.SchemaMatchingWeight)
	}

	if len(scores) == 0 {
		return 0.5
	}

	var totalWeight float64
	for _, w := range weights {
		totalWeight += w
	}

	var overall float64
	for i, s := range scores {
		overall += s * (weights[i] / totalWeight)
	}

	return math.Round(overall*1000) / 1000
}

// EstimateOcr estimates OCR quality from the amount of text extracted per
// page. More text generally means a cleaner extraction.
func (c *Calculator) EstimateOcr(textLength, pageCount int) float64 {
	var avgCharsPerPage float64
	if pageCount > 0 {
		avgCharsPerPage = float64(textLength) / float64(pageCount)
	}

	switch {
	case avgCharsPerPage < 100:
		return 0.3
	case avgCharsPerPage < 500:
		return 0.6
	case avgCharsPerPage < 1500:
		return 0.8
	default:
		return 0.9
	}
}

// EstimateSummarization estimates summary quality from the compression ratio.
// The ideal band must be checked before the wider acceptable band since the
// two overlap.
func (c *Calculator) EstimateSummarization(originalLength, summaryLength int) float64 {
	if originalLength == 0 {
		return 0.3
	}

	ratio := float64(summaryLength) / float64(originalLength)

	switch {
	case ratio >= 0.1 && ratio <= 0.3:
		return 0.9
	case ratio >= 0.05 && ratio <= 0.4:
		return 0.7
	case ratio < 0.05:
		// Too compressed, might lose information.
		return 0.5
	default:
		// Not compressed enough to be a useful summary.
		return 0.6
	}
}

// Float returns a pointer to v. Convenience for optional score arguments.
func Float(v float64) *float64 {
	return &v
}
