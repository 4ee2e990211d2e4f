package simulation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileKindDivisor = 6
)

// Constants for profile archetypes.
const (
	caseVeteran    = 0
	caseSolid      = 1
	caseNewcomer   = 2
	caseExpensive  = 3
	caseUnavailabe = 4
	caseGeneralist = 5
)

var roleSkills = map[string][]string{
	"bartender":  {"Bartender", "Mixology", "Craft Cocktails"},
	"server":     {"Server", "Fine Dining Server", "Banquet Server"},
	"host":       {"Host", "Guest Relations"},
	"sommelier":  {"Sommelier", "Wine Service"},
	"valet":      {"Valet", "Valet Parking"},
	"security":   {"Security", "Event Security"},
	"coat_check": {"Coat Check"},
}

var roleNames = []string{"bartender", "server", "host", "sommelier", "valet", "security", "coat_check"}

var locations = []string{"SoMa", "Mission District", "Nob Hill", "Marina", "Financial District"}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func getRandomInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

// generateTalent creates a varied pool of talent profiles. Archetypes keep
// the pool interesting: veterans, newcomers, overpriced and unavailable
// profiles all show up so auto-fill filtering has something to reject.
func generateTalent(numTalent int) []talentRequest {
	profiles := make([]talentRequest, numTalent)
	for i := range profiles {
		role := roleNames[int(getRandomInt(int64(len(roleNames))))]
		skills := roleSkills[role]
		p := talentRequest{
			DisplayName: fmt.Sprintf("sim-talent-%04d", i),
			Skills:      []string{skills[int(getRandomInt(int64(len(skills))))]},
		}

		switch getRandomInt(profileKindDivisor) {
		case caseVeteran:
			p.AvailableNow = true
			p.MinHourlyRate = 20 + getRandomFloat()*10
			p.Rating = 4.5 + getRandomFloat()*0.5
			p.CompletedShifts = 50 + int(getRandomInt(150))
		case caseSolid:
			p.AvailableNow = true
			p.MinHourlyRate = 18 + getRandomFloat()*12
			p.Rating = 3.5 + getRandomFloat()*1.0
			p.CompletedShifts = 10 + int(getRandomInt(40))
		case caseNewcomer:
			p.AvailableNow = true
			p.MinHourlyRate = 15 + getRandomFloat()*5
			p.Rating = 2.5 + getRandomFloat()*1.5
			p.CompletedShifts = int(getRandomInt(10))
		case caseExpensive:
			p.AvailableNow = true
			p.MinHourlyRate = 60 + getRandomFloat()*40
			p.Rating = 4.0 + getRandomFloat()*1.0
			p.CompletedShifts = 30 + int(getRandomInt(100))
		case caseUnavailabe:
			p.AvailableNow = false
			p.MinHourlyRate = 20 + getRandomFloat()*10
			p.Rating = 3.0 + getRandomFloat()*2.0
			p.CompletedShifts = int(getRandomInt(80))
		case caseGeneralist:
			p.AvailableNow = true
			p.MinHourlyRate = 18 + getRandomFloat()*10
			p.Rating = 3.0 + getRandomFloat()*2.0
			p.CompletedShifts = int(getRandomInt(60))
			// A second skill from another role's pool.
			other := roleNames[int(getRandomInt(int64(len(roleNames))))]
			p.Skills = append(p.Skills, roleSkills[other][0])
		}
		profiles[i] = p
	}
	return profiles
}

// generateShifts creates shift postings across all roles and a spread of
// rates, some low enough that most of the pool prices itself out.
func generateShifts(numShifts int) []shiftRequest {
	shifts := make([]shiftRequest, numShifts)
	now := time.Now().UTC()
	for i := range shifts {
		role := roleNames[i%len(roleNames)]
		start := now.Add(time.Duration(24+getRandomInt(72)) * time.Hour)
		shifts[i] = shiftRequest{
			BusinessID:    fmt.Sprintf("sim-biz-%02d", getRandomInt(20)),
			RoleType:      role,
			HourlyRate:    18 + getRandomFloat()*40,
			WorkersNeeded: 1 + int(getRandomInt(5)),
			Location:      locations[int(getRandomInt(int64(len(locations))))],
			StartsAt:      start.Format(time.RFC3339),
			EndsAt:        start.Add(time.Duration(4+getRandomInt(6)) * time.Hour).Format(time.RFC3339),
		}
	}
	return shifts
}
