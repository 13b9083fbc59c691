// Package fortune draws the daily fortune text.
package fortune

import "hash/fnv"

var texts = []string{
	"A small step today saves a long walk tomorrow.",
	"Someone is grateful for something you already forgot you did.",
	"Finish the smallest task first; momentum will do the rest.",
	"An old idea looks new in the morning light.",
	"Good news travels slowly, but it is on its way.",
	"Drink a glass of water and answer the message you have been avoiding.",
	"Today favors tidy desks and short meetings.",
	"A question you ask today opens a door next week.",
	"Rest is part of the work, not a break from it.",
	"Your patience will be noticed by the right person.",
	"Write it down before it becomes a worry.",
	"Lunch with a friend brings an unexpected answer.",
}

// Pick returns the fortune for a calendar-day key. The same key always
// yields the same text.
func Pick(dateKey string) string {
	h := fnv.New32a()
	h.Write([]byte(dateKey))
	return texts[h.Sum32()%uint32(len(texts))]
}
