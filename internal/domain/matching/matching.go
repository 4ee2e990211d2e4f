// Package matching implements candidate selection for auto-filling shifts:
// role-to-skill-term mapping, loose skill matching, weighted scoring and
// ranking.
package matching

import (
	"sort"
	"strings"

	"github.com/shiftsync/shiftsync/internal/domain/model"
)

// Default scoring weights. Rating contributes up to 100 points, experience up
// to 25 (capped so extreme veterans don't dominate), and skill-tag count is an
// uncapped breadth signal.
const (
	defaultRatingWeight     = 20.0
	defaultExperienceWeight = 0.5
	defaultExperienceCap    = 50
	defaultSkillTagWeight   = 2.0
)

// Overfetch is the candidate pool multiplier applied before skill filtering.
// Fetching 2x the requested headcount is a heuristic, not a guarantee: when
// skill filtering rejects more than half the pool, the final selection can
// return fewer candidates than requested even though eligible talent exists
// beyond the fetch cap.
const Overfetch = 2

// roleSkillTerms maps each role type to the human-readable term matched
// against candidate skill tags.
var roleSkillTerms = map[model.RoleType]string{
	model.RoleBartender: "Bartender",
	model.RoleServer:    "Server",
	model.RoleHost:      "Host",
	model.RoleSommelier: "Sommelier",
	model.RoleValet:     "Valet",
	model.RoleSecurity:  "Security",
	model.RoleCoatCheck: "Coat Check",
}

// SkillTerm returns the skill term for a role. Unmapped roles fall back to
// the raw role string, keeping the lookup total.
func SkillTerm(role model.RoleType) string {
	if term, ok := roleSkillTerms[role]; ok {
		return term
	}
	return string(role)
}

// SkillMatches reports whether any of tags loosely matches term: the
// comparison is case-insensitive and substring-symmetric, so "Bartender"
// matches tags "Bar" and "Master Bartender" alike.
func SkillMatches(term string, tags []string) bool {
	lowTerm := strings.ToLower(term)
	for _, tag := range tags {
		lowTag := strings.ToLower(tag)
		if lowTag == "" {
			continue
		}
		if strings.Contains(lowTag, lowTerm) || strings.Contains(lowTerm, lowTag) {
			return true
		}
	}
	return false
}

// Candidate is a scored talent profile.
type Candidate struct {
	Profile model.TalentProfile
	Score   float64
}

// Ranker scores and orders candidates for a shift.
type Ranker struct {
	ratingWeight     float64
	experienceWeight float64
	experienceCap    int
	skillTagWeight   float64
}

// NewRanker creates a Ranker with the default weights, adjusted by opts.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		ratingWeight:     defaultRatingWeight,
		experienceWeight: defaultExperienceWeight,
		experienceCap:    defaultExperienceCap,
		skillTagWeight:   defaultSkillTagWeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Score computes the weighted fit score for a profile.
func (r *Ranker) Score(p model.TalentProfile) float64 {
	experience := p.CompletedShifts
	if experience > r.experienceCap {
		experience = r.experienceCap
	}
	return p.Rating*r.ratingWeight +
		float64(experience)*r.experienceWeight +
		float64(len(p.Skills))*r.skillTagWeight
}

// Rank filters pool to profiles whose skills match the term for role, scores
// the survivors, orders them by score descending and returns at most count.
// The sort is stable: equal scores keep the pool's arrival order, so tie
// order depends on how the store sorted the fetch (rating desc, completed
// shifts desc). No secondary tie-break key exists.
func (r *Ranker) Rank(role model.RoleType, pool []model.TalentProfile, count int) []Candidate {
	term := SkillTerm(role)

	matched := make([]Candidate, 0, len(pool))
	for _, p := range pool {
		if !SkillMatches(term, p.Skills) {
			continue
		}
		matched = append(matched, Candidate{Profile: p, Score: r.Score(p)})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	if count < len(matched) {
		matched = matched[:count]
	}
	return matched
}
