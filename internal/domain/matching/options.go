// Package matching implements candidate selection for auto-filling shifts.
package matching

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithRatingWeight sets the multiplier applied to the star rating.
func WithRatingWeight(w float64) Option {
	return func(r *Ranker) {
		if w > 0 {
			r.ratingWeight = w
		}
	}
}

// WithExperienceWeight sets the multiplier applied to capped completed shifts.
func WithExperienceWeight(w float64) Option {
	return func(r *Ranker) {
		if w > 0 {
			r.experienceWeight = w
		}
	}
}

// WithExperienceCap sets the completed-shift count above which extra
// experience stops contributing.
func WithExperienceCap(cap int) Option {
	return func(r *Ranker) {
		if cap > 0 {
			r.experienceCap = cap
		}
	}
}

// WithSkillTagWeight sets the multiplier applied to the skill-tag count.
func WithSkillTagWeight(w float64) Option {
	return func(r *Ranker) {
		if w > 0 {
			r.skillTagWeight = w
		}
	}
}
