// Package scouting holds the fixed ordering tables scouts use to sort
// position categories, personalities and squad status.
package scouting

import "strings"

// Fallback ranks for values outside the tables. Lower ranks sort first.
const (
	UnknownCategoryRank    = 99
	UnknownPersonalityRank = 50
	UnknownPlayingTimeRank = 99
)

// categories lists position categories from the back line forward.
var categories = []string{
	"Center Back", "Full Back", "Wing Back", "Defensive Midfield", "Central Midfield",
	"Attacking Midfield", "Outside Midfield", "Wing", "Striker",
}

// personalityRanks is tiered: elite 1-5, strong 10-12, acceptable 20-33,
// avoid 40-49, bad 60-70.
var personalityRanks = map[string]int{
	"model citizen":      1,
	"perfectionist":      2,
	"resolute":           3,
	"model professional": 4,
	"professional":       5,

	"fairly professional": 10,
	"spirited":            11,
	"resilient":           12,

	"driven":             20,
	"very ambitious":     21,
	"unsporting":         22,
	"realist":            23,
	"iron willed":        24,
	"born leader":        25,
	"mercenary":          26,
	"fickle":             27,
	"ambitious":          28,
	"leader":             29,
	"charismatic leader": 30,
	"fairly loyal":       31,
	"fairly sporting":    32,
	"balanced":           33,

	"sporting":          40,
	"spineless":         41,
	"low self belief":   42,
	"honest":            43,
	"light-hearted":     44,
	"fairly ambitious":  45,
	"fairly determined": 46,
	"determined":        47,
	"very loyal":        48,
	"loyal":             49,

	"devoted":            60,
	"low determination":  61,
	"easily discouraged": 62,
	"temperamental":      66,
	"unambitious":        67,
	"jovial":             68,
	"casual":             69,
	"slack":              70,
}

var playingTimeRanks = map[string]int{
	"star player":             1,
	"important player":        2,
	"regular starter":         3,
	"squad player":            4,
	"impact sub":              5,
	"fringe player":           6,
	"youngster":               7,
	"surplus to requirements": 8,
}

var categoryRanks = func() map[string]int {
	m := make(map[string]int, len(categories))
	for i, c := range categories {
		m[strings.ToLower(c)] = i
	}
	return m
}()

func lookup(table map[string]int, key string, fallback int) int {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return fallback
	}
	if r, ok := table[key]; ok {
		return r
	}
	return fallback
}

// CategoryRank returns the display position of a role category.
func CategoryRank(category string) int {
	return lookup(categoryRanks, category, UnknownCategoryRank)
}

// PersonalityRank returns how desirable a personality is.
func PersonalityRank(personality string) int {
	return lookup(personalityRanks, personality, UnknownPersonalityRank)
}

// PlayingTimeRank returns the squad status order of a playing-time label.
func PlayingTimeRank(playingTime string) int {
	return lookup(playingTimeRanks, playingTime, UnknownPlayingTimeRank)
}
