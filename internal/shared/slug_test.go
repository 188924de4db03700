package shared

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Study in Canada 2026":      "study-in-canada-2026",
		"Études à Montréal":         "etudes-a-montreal",
		"  IELTS -- or TOEFL?  ":    "ielts-or-toefl",
		"Österreich für Anfänger":   "osterreich-fur-anfanger",
		"already-a-slug":            "already-a-slug",
		"":                          "",
		"!!!":                       "",
		"MBA vs. MSc: what to pick": "mba-vs-msc-what-to-pick",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}
