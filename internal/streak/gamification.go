package streak

import "github.com/neurohabit/backend/pkg/entity"

const (
	// Granted on every logged completion.
	CompletionXP        = 10
	CompletionHappiness = 2

	maxHappiness = 100
)

// GrantCompletionXP applies the per-completion pet reward.
func GrantCompletionXP(user *entity.User) {
	Grant(user, CompletionXP, CompletionHappiness)
}

// Grant adds experience and happiness to the user's pet. Happiness is
// clamped to [0,100]. Leveling loops: the threshold is pet_level*100, and a
// single large grant may cross several thresholds in one call.
func Grant(user *entity.User, xp, happiness int) {
	user.PetExperience += xp
	user.PetHappiness = min(maxHappiness, user.PetHappiness+happiness)
	for user.PetExperience >= user.PetLevel*100 {
		user.PetExperience -= user.PetLevel * 100
		user.PetLevel++
	}
}
