package negotiation

import "strings"

// Tier identifies a receptionist personality. Tiers are derived from the
// provider's rating, so the same provider always answers the phone the same
// way.
type Tier string

const (
	TierFriendly Tier = "friendly"
	TierNeutral  Tier = "neutral"
	TierBusy     Tier = "busy"
)

// Script is the fixed line set of one personality. Lines carry the named
// placeholders {provider}, {service}, {slot} and {alternative}.
type Script struct {
	Greeting       string
	Acknowledgment string
	Available      string
	Booked         string
	Unavailable    string
	NoSlots        string
}

// Personality bundles a tier's think-time, base availability probability and
// script. New tiers only need a table entry; the state machine never branches
// on the tier itself.
type Personality struct {
	Tier            Tier
	ThinkTimeMs     int
	BaseProbability float64
	Script          Script
}

var personalities = map[Tier]Personality{
	TierFriendly: {
		Tier:            TierFriendly,
		ThinkTimeMs:     1200,
		BaseProbability: 0.8,
		Script: Script{
			Greeting:       "Thank you for calling {provider}, this is the front desk. How can I help you today?",
			Acknowledgment: "Of course! Let me pull up the schedule for you, one moment please.",
			Available:      "Great news, we do have {slot} open. Shall I put you down?",
			Booked:         "Wonderful, you're all booked for {slot}. We look forward to seeing you!",
			Unavailable:    "I'm so sorry, that time is taken. The closest I have is {alternative} - would that work?",
			NoSlots:        "I'm really sorry, we're fully booked at the moment. Do try us again soon!",
		},
	},
	TierNeutral: {
		Tier:            TierNeutral,
		ThinkTimeMs:     1800,
		BaseProbability: 0.6,
		Script: Script{
			Greeting:       "{provider}, good day. What can I do for you?",
			Acknowledgment: "Alright, let me check the book.",
			Available:      "We can do {slot}. Do you want it?",
			Booked:         "Okay, {slot} it is. You're in the book.",
			Unavailable:    "That slot's not free. I could offer {alternative} instead.",
			NoSlots:        "We don't have anything open right now.",
		},
	},
	TierBusy: {
		Tier:            TierBusy,
		ThinkTimeMs:     2500,
		BaseProbability: 0.4,
		Script: Script{
			Greeting:       "{provider}, please hold... okay, go ahead.",
			Acknowledgment: "Hold on, checking.",
			Available:      "{slot} works. Taking it or not?",
			Booked:         "Fine, {slot}. Don't be late.",
			Unavailable:    "No. Best I can do is {alternative}.",
			NoSlots:        "Nothing available. Sorry.",
		},
	},
}

// personalityFor maps a provider rating to its receptionist tier.
func personalityFor(rating float64) Personality {
	switch {
	case rating >= 4.5:
		return personalities[TierFriendly]
	case rating >= 4.0:
		return personalities[TierNeutral]
	default:
		return personalities[TierBusy]
	}
}

// render substitutes the named placeholders of a script line.
func render(line string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(line)
}
