// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package models

// EnergyLevel is the energy axis of the emotional profile.
type EnergyLevel string

const (
	EnergyDrained   EnergyLevel = "drained"
	EnergyNeutral   EnergyLevel = "neutral"
	EnergyEnergized EnergyLevel = "energized"
)

// MoodState is the mood axis of the emotional profile.
type MoodState string

const (
	MoodMelancholic MoodState = "melancholic"
	MoodContent     MoodState = "content"
	MoodAdventurous MoodState = "adventurous"
)

// OpennessLevel is the openness axis of the emotional profile.
type OpennessLevel string

const (
	OpennessComfortZone  OpennessLevel = "comfort_zone"
	OpennessExploring    OpennessLevel = "exploring"
	OpennessExperimental OpennessLevel = "experimental"
)

// FocusLevel is the focus axis of the emotional profile.
type FocusLevel string

const (
	FocusScattered FocusLevel = "scattered"
	FocusPresent   FocusLevel = "present"
	FocusImmersed  FocusLevel = "immersed"
)

// EmotionalProfile is the four-axis categorical summary of the user's
// moment, derived deterministically from the answer set.
type EmotionalProfile struct {
	Energy   EnergyLevel   `json:"energy"`
	Mood     MoodState     `json:"mood"`
	Openness OpennessLevel `json:"openness"`
	Focus    FocusLevel    `json:"focus"`
}

// DefaultProfile is the profile produced when no relevant answer exists.
func DefaultProfile() EmotionalProfile {
	return EmotionalProfile{
		Energy:   EnergyNeutral,
		Mood:     MoodContent,
		Openness: OpennessExploring,
		Focus:    FocusPresent,
	}
}
