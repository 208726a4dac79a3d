package protocol

import (
	"testing"

	"github.com/vctt94/austerity/pkg/austerity"
)

func TestMessageRoundTrip(t *testing.T) {
	lines := []string{
		"ridUNO,1,0",
		"ridlong game,3,3",
		"ridname,with,commas,12,25",
		"playinfoB/4",
		"tokens7",
		"tokens0",
		"newcardB:2:1,0,3,0",
		"purchasedA:0:1,0,2,0,1",
		"purchasedC:7:0,0,0,0,9",
		"tookB:1,1,0,1",
		"wildD",
		"playerA:4:d=1,0,0,0:t=2,1,0,0,3",
		"dowhat",
		"discoC",
		"invalidB",
		"eog",
	}
	for _, line := range lines {
		m, err := ParseMessage(line)
		if err != nil {
			t.Errorf("ParseMessage(%q): %v", line, err)
			continue
		}
		if got := m.Encode(); got != line {
			t.Errorf("round trip of %q produced %q", line, got)
		}
	}
}

func TestParseMessageRejects(t *testing.T) {
	lines := []string{
		"",
		"nonsense",
		"dowhatx",
		"eogg",
		"tokens",
		"tokens-1",
		"tokens07",
		"tokens 7",
		"rid",
		"ridname",
		"ridname,1",
		"rid,1,0",
		"ridname,1,A",
		"ridname,1,26",
		"ridname,1,-1",
		"playinfoB",
		"playinfoB/1",
		"playinfoB/27",
		"playinfoC/2",
		"playinfob/4",
		"newcardW:1:0,0,0,0",
		"purchasedA:8:0,0,0,0,0",
		"purchasedA:0:0,0,0,0",
		"purchaseda:0:0,0,0,0,0",
		"tookB:1,1,0",
		"tookB:1,1,0,1,0",
		"wild",
		"wildAB",
		"playerA:4:d=1,0,0,0:t=2,1,0,0",
		"playerA:4:t=1,0,0,0:d=2,1,0,0,3",
		"playerA:4:d=1,0,0,0",
		"disco",
		"disco1",
		"invalid",
	}
	for _, line := range lines {
		if m, err := ParseMessage(line); err == nil {
			t.Errorf("ParseMessage(%q) accepted as %T", line, m)
		}
	}
}

func TestActionRoundTrip(t *testing.T) {
	lines := []string{
		"purchase0:1,0,2,0,1",
		"purchase7:0,0,0,0,0",
		"take1,1,0,1",
		"wild",
	}
	for _, line := range lines {
		a, err := ParseAction(line)
		if err != nil {
			t.Errorf("ParseAction(%q): %v", line, err)
			continue
		}
		if got := a.Encode(); got != line {
			t.Errorf("round trip of %q produced %q", line, got)
		}
	}
}

func TestParseActionRejects(t *testing.T) {
	lines := []string{
		"",
		"wildA",
		"purchase",
		"purchase8:0,0,0,0,0",
		"purchase1",
		"purchase1:0,0,0,0",
		"purchase-1:0,0,0,0,0",
		"purchase1:0,0,0,0,0 ",
		"take1,1,1",
		"take1,1,1,1,1",
		"take1,1,-1,0",
		"buy1:0,0,0,0,0",
	}
	for _, line := range lines {
		if a, err := ParseAction(line); err == nil {
			t.Errorf("ParseAction(%q) accepted as %T", line, a)
		}
	}
}

func TestParseAuth(t *testing.T) {
	tests := []struct {
		line string
		kind AuthKind
		key  string
	}{
		{"playhunter2", AuthPlay, "hunter2"},
		{"play", AuthPlay, ""},
		{"reconnecthunter2", AuthReconnect, "hunter2"},
		{"scores", AuthScores, ""},
		{"scoresX", AuthBad, ""},
		{"hello", AuthBad, ""},
		{"", AuthBad, ""},
	}
	for _, tt := range tests {
		got := ParseAuth(tt.line)
		if got.Kind != tt.kind || got.Key != tt.key {
			t.Errorf("ParseAuth(%q) = %+v, want kind %v key %q",
				tt.line, got, tt.kind, tt.key)
		}
	}
}

func TestPurchasedCarriesWallet(t *testing.T) {
	m, err := ParseMessage("purchasedB:3:1,2,3,4,5")
	if err != nil {
		t.Fatal(err)
	}
	p, ok := m.(Purchased)
	if !ok {
		t.Fatalf("parsed as %T", m)
	}
	if p.Seat != 1 || p.Card != 3 || p.Paid != (austerity.Wallet{1, 2, 3, 4, 5}) {
		t.Errorf("Purchased = %+v", p)
	}
}
