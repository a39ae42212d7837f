package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Demo", "demo"},
		{"spaces", "Campus Open Day", "campus-open-day"},
		{"accents", "Crédential Überprüfung", "credential-uberprufung"},
		{"punctuation runs", "A  --  B!!C", "a-b-c"},
		{"leading and trailing symbols", "  ?Demo! ", "demo"},
		{"digits kept", "Demo 2 Go", "demo-2-go"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.in); got != tc.want {
				t.Fatalf("Slugify(%q): want=%q got=%q", tc.in, tc.want, got)
			}
		})
	}
}
