package austerity

import "testing"

func TestParseCard(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Card
		wantErr bool
	}{
		{
			name: "basic card",
			in:   "B:2:1,0,3,0",
			want: NewCard(Brown, 2, TokenVec{1, 0, 3, 0}),
		},
		{
			name: "zero value and price",
			in:   "P:0:0,0,0,0",
			want: NewCard(Purple, 0, TokenVec{}),
		},
		{
			name: "large numbers",
			in:   "R:10:12,0,0,7",
			want: NewCard(Red, 10, TokenVec{12, 0, 0, 7}),
		},
		{name: "wild discount rejected", in: "W:1:0,0,0,0", wantErr: true},
		{name: "lowercase discount", in: "b:2:1,0,3,0", wantErr: true},
		{name: "missing price field", in: "B:2:1,0,3", wantErr: true},
		{name: "extra price field", in: "B:2:1,0,3,0,0", wantErr: true},
		{name: "negative value", in: "B:-2:1,0,3,0", wantErr: true},
		{name: "leading zero", in: "B:02:1,0,3,0", wantErr: true},
		{name: "embedded space", in: "B:2: 1,0,3,0", wantErr: true},
		{name: "empty string", in: "", wantErr: true},
		{name: "empty value", in: "B::1,0,3,0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCard(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCard(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCard(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCardStringRoundTrip(t *testing.T) {
	lines := []string{
		"P:1:0,0,0,0",
		"B:2:1,0,3,0",
		"Y:0:2,2,0,2",
		"R:15:20,0,1,0",
	}
	for _, line := range lines {
		c, err := ParseCard(line)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", line, err)
		}
		if got := c.String(); got != line {
			t.Errorf("round trip of %q produced %q", line, got)
		}
	}
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"7", 7, true},
		{"42", 42, true},
		{"65535", 65535, true},
		{"", 0, false},
		{"007", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{" 1", 0, false},
		{"1 ", 0, false},
		{"1x", 0, false},
		{"99999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseUint(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseUint(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseWallet(t *testing.T) {
	w, ok := ParseWallet("1,2,3,4,5")
	if !ok || w != (Wallet{1, 2, 3, 4, 5}) {
		t.Fatalf("ParseWallet = %v,%v", w, ok)
	}
	for _, bad := range []string{"1,2,3,4", "1,2,3,4,5,6", "1,2,3,4,", "1,2,3,4,-5", ""} {
		if _, ok := ParseWallet(bad); ok {
			t.Errorf("ParseWallet(%q) accepted", bad)
		}
	}
	if got := FormatWallet(Wallet{1, 2, 3, 4, 5}); got != "1,2,3,4,5" {
		t.Errorf("FormatWallet = %q", got)
	}
}
