package textutil

import "testing"

func TestExtractAndFixEmail(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain email", "kontakt: jan.kowalski@kancelaria.pl, tel 600100200", "jan.kowalski@kancelaria.pl"},
		{"uppercase lowered", "Proszę pisać na JAN@EXAMPLE.COM", "jan@example.com"},
		{"junk glued after tld", "12.user@domain.plabc", "user@domain.pl"},
		{"junk after compound tld", "zapraszam anna@uczelnia.edu.plzadzwoń", "anna@uczelnia.edu.pl"},
		{"compound tld wins over short", "biuro@firma.com.plpilne", "biuro@firma.com.pl"},
		{"no at sign", "zastępstwo jutro o 9:00, SR Warszawa", ""},
		{"empty", "", ""},
		{"plus addressing", "mail: adwokat+subst@example.org", "adwokat+subst@example.org"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractAndFixEmail(tc.in)
			if got != tc.want {
				t.Errorf("ExtractAndFixEmail(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize("<b>Pilne</b> zastępstwo <br> w SR"); got != "Pilne zastępstwo w SR" {
		t.Errorf("Sanitize html strip = %q", got)
	}
	if got := Sanitize("zastępstwo   jutro \t rano"); got != "zastępstwo jutro rano" {
		t.Errorf("Sanitize whitespace = %q", got)
	}
	if got := Sanitize("  “pilne” i ‘trudne’  "); got != `"pilne" i 'trudne'` {
		t.Errorf("Sanitize quotes = %q", got)
	}
}
