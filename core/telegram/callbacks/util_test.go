package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		unique  string
		payload string
	}{
		{"unique only", "\\fSendNews", "SendNews", ""},
		{"unique with payload", "\\fSendNewsChoice|3", "SendNewsChoice", "3"},
		{"no prefix", "ToMain", "ToMain", ""},
		{"payload with pipe", "\\fApproveNews|a|b", "ApproveNews", "a|b"},
		{"empty", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			unique, payload := ParseCallbackData(&tele.Callback{Data: tc.data})
			if unique != tc.unique || payload != tc.payload {
				t.Fatalf("got (%q, %q), want (%q, %q)", unique, payload, tc.unique, tc.payload)
			}
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	prefixes := []string{"ApproveNews", "DeclineNews"}

	base, param := NormalizeTag("ApproveNews_42-abc", prefixes)
	if base != "ApproveNews" || param != "42-abc" {
		t.Fatalf("got (%q, %q)", base, param)
	}

	base, param = NormalizeTag("ApproveNewsList", prefixes)
	if base != "ApproveNewsList" || param != "" {
		t.Fatalf("plain tag mangled: (%q, %q)", base, param)
	}

	base, param = NormalizeTag("SendNews", nil)
	if base != "SendNews" || param != "" {
		t.Fatalf("nil prefixes mangled: (%q, %q)", base, param)
	}
}
