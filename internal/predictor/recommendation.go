package predictor

import "strings"

// Recommendation maps a risk score to a fixed coaching message. Medium-risk
// advice is keyed on the most important feature of the prediction.
func Recommendation(riskScore float64, topFeatures []FeatureContribution) string {
	if riskScore < 0.3 {
		return "Great momentum! Keep up the excellent work. Your habit is on track."
	}
	if riskScore < 0.6 {
		recommendation := "You're doing well, but there's room for improvement. "
		if len(topFeatures) > 0 {
			top := topFeatures[0].Feature
			switch {
			case strings.Contains(top, "completion_rate"):
				recommendation += "Try to maintain consistency in your completions."
			case strings.Contains(top, "streak"):
				recommendation += "Focus on building your streak day by day."
			case strings.Contains(top, "difficulty"):
				recommendation += "Consider adjusting the difficulty to match your capacity."
			case strings.Contains(top, "energy"):
				recommendation += "Schedule this habit when your energy levels are higher."
			}
		}
		return recommendation
	}
	return "This habit needs attention. Consider breaking it into smaller steps, " +
		"adjusting the timing, or seeking support from the community."
}
