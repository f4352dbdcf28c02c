package http

import "github.com/sacensibas/backend/contest"

// Latvian scoreboard header strings. Keys the map does not know pass
// through untranslated.
var lvStrings = map[string]string{
	"Rank":                 "Vieta",
	"User":                 "Dalībnieks",
	"Solved":               "Atrisināti",
	"Time":                 "Laiks",
	"Time (Seconds)":       "Laiks (sekundes)",
	"Total Time":           "Kopējais laiks",
	"Total Time (Seconds)": "Kopējais laiks (sekundes)",
	"Score":                "Punkti",
	"Total Score":          "Kopējie punkti",
	"Original Score":       "Punkti bez soda",
}

func translatorFor(lang string) func(string) string {
	if lang != "lv" {
		return contest.NoTranslate
	}
	return func(key string) string {
		if v, ok := lvStrings[key]; ok {
			return v
		}
		return key
	}
}
