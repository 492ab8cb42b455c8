package server

import "testing"

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", MediaTurtle},
		{"text/turtle", MediaTurtle},
		{"application/ld+json", MediaJSONLD},
		{"application/json", MediaJSONLD},
		{"text/html", MediaHTML},
		{"application/schema+json", MediaJSONSchema},
		{"*/*", MediaTurtle},
		{"text/*", MediaTurtle},
		{"application/*", MediaJSONLD},
		{"application/pdf", ""},
		{"application/pdf, text/turtle", MediaTurtle},
		{"text/html;q=0.5, text/turtle;q=0.9", MediaTurtle},
		{"text/turtle;q=0.1, text/html", MediaHTML},
		{"text/turtle;q=0, text/html", MediaHTML},
		{"text/turtle;q=0", ""},
		{"TEXT/TURTLE", MediaTurtle},
	}

	for _, tt := range tests {
		if got := negotiate(tt.header); got != tt.want {
			t.Errorf("negotiate(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestRankedAccept(t *testing.T) {
	ranked := rankedAccept("text/html;q=0.8, text/turtle, application/ld+json;q=0.9")
	want := []string{"text/turtle", "application/ld+json", "text/html"}
	if len(ranked) != len(want) {
		t.Fatalf("got %v, want %v", ranked, want)
	}
	for i := range want {
		if ranked[i] != want[i] {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i], want[i])
		}
	}
}
