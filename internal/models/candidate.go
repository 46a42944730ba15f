// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package models

// Candidate is a retrieval hit before enrichment. Candidates are immutable
// per request; lists are values, never shared references.
type Candidate struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Year           int      `json:"year"`
	Genres         []string `json:"genres"`
	Rating         float64  `json:"rating"`
	Popularity     float64  `json:"popularity"`
	VoteCount      int      `json:"voteCount"`
	RuntimeMinutes int      `json:"runtimeMinutes"`
	Similarity     float64  `json:"similarity"`

	// Retrieval metadata carried forward so enrichment failures still leave
	// a presentable item.
	PosterPath   string `json:"posterPath,omitempty"`
	BackdropPath string `json:"backdropPath,omitempty"`
	Overview     string `json:"overview,omitempty"`
	ReleaseDate  string `json:"releaseDate,omitempty"`
}

// SurpriseKind names one of the closed set of surprise flavors.
type SurpriseKind string

const (
	SurpriseHiddenGem         SurpriseKind = "hidden_gem"
	SurpriseAdjacentDiscovery SurpriseKind = "adjacent_discovery"
	SurpriseWildcard          SurpriseKind = "wildcard"
	SurpriseTimeCapsule       SurpriseKind = "time_capsule"
	SurpriseForeign           SurpriseKind = "foreign_surprise"
	SurpriseGenreBending      SurpriseKind = "genre_bending"
)

// SurpriseKinds lists every kind in a stable order.
func SurpriseKinds() []SurpriseKind {
	return []SurpriseKind{
		SurpriseHiddenGem,
		SurpriseAdjacentDiscovery,
		SurpriseWildcard,
		SurpriseTimeCapsule,
		SurpriseForeign,
		SurpriseGenreBending,
	}
}

// RecommendationItem is an enriched candidate with rank and optional
// surprise metadata. Rank is 1-based list position.
type RecommendationItem struct {
	Candidate

	Rank        int      `json:"rank"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	BackdropURL string   `json:"backdropUrl,omitempty"`
	Synopsis    string   `json:"synopsis,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	StreamingOn []string `json:"streamingOn,omitempty"`

	IsSurprise         bool         `json:"isSurprise,omitempty"`
	SurpriseKind       SurpriseKind `json:"surpriseKind,omitempty"`
	SurpriseReason     string       `json:"surpriseReason,omitempty"`
	SurpriseConfidence float64      `json:"surpriseConfidence,omitempty"`
}
