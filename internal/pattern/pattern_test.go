package pattern

import "testing"

func TestSkippable(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", true},
		{"chrome://extensions", true},
		{"edge://settings", true},
		{"about:blank", true},
		{"https://example.com", false},
		{"http://chrome.example.com", false},
	}

	for _, tt := range tests {
		if got := Skippable(tt.url); got != tt.want {
			t.Errorf("Skippable(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestMatchesAnyAnchored(t *testing.T) {
	// Without a wildcard the rule must match the full URL, not a substring.
	if MatchesAny("https://example.com/page", []string{"example.com"}) {
		t.Fatal("bare rule should be full-string anchored")
	}
	if !MatchesAny("https://example.com/page", []string{"*example.com*"}) {
		t.Fatal("wildcarded rule should match")
	}
}

func TestMatchesAnyWildcard(t *testing.T) {
	patterns := []string{"https://mail.*", "*&utm_source=*"}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://mail.example.com/inbox", true},
		{"https://shop.example.com/?a=1&utm_source=ad", true},
		{"https://docs.example.com", false},
	}
	for _, tt := range tests {
		if got := MatchesAny(tt.url, patterns); got != tt.want {
			t.Errorf("MatchesAny(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestMatchesAnyCaseInsensitive(t *testing.T) {
	if !MatchesAny("https://Example.COM/Path", []string{"https://example.com/*"}) {
		t.Fatal("matching should ignore case")
	}
}

func TestMatchesAnyLiteralMetacharacters(t *testing.T) {
	// Regexp metacharacters in rules are literal text.
	if !MatchesAny("https://example.com/a.b?c=d", []string{"https://example.com/a.b?c=d"}) {
		t.Fatal("dots and question marks should match literally")
	}
	if MatchesAny("https://example.com/aXb", []string{"https://example.com/a.b"}) {
		t.Fatal("dot must not act as a regexp wildcard")
	}
}

func TestMatchesAnyIgnoresEmptyRules(t *testing.T) {
	if MatchesAny("https://example.com", []string{"", ""}) {
		t.Fatal("empty rules must never match")
	}
	if MatchesAny("https://example.com", nil) {
		t.Fatal("nil rule list must never match")
	}
}
