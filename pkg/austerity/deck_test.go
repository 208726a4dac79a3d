package austerity

import "testing"

func TestParseDeck(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		size    int
		wantErr bool
	}{
		{name: "single card", raw: "B:2:1,0,3,0\n", size: 1},
		{name: "several cards", raw: "B:2:1,0,3,0\nP:1:0,0,0,1\nY:3:2,2,2,2\n", size: 3},
		{name: "missing final newline", raw: "B:2:1,0,3,0", wantErr: true},
		{name: "empty file", raw: "", wantErr: true},
		{name: "only newline", raw: "\n", wantErr: true},
		{name: "blank interior line", raw: "B:2:1,0,3,0\n\nP:1:0,0,0,1\n", wantErr: true},
		{name: "trailing spaces", raw: "B:2:1,0,3,0 \n", wantErr: true},
		{name: "bad card line", raw: "B:2:1,0,3,0\nnot a card\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDeck(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDeck accepted %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDeck(%q): %v", tt.raw, err)
			}
			if d.Size() != tt.size {
				t.Errorf("deck size = %d, want %d", d.Size(), tt.size)
			}
		})
	}
}

func TestDeckDrawOrder(t *testing.T) {
	d, err := ParseDeck("B:2:1,0,3,0\nP:1:0,0,0,1\n")
	if err != nil {
		t.Fatal(err)
	}
	first, ok := d.Draw()
	if !ok || first.Discount() != Brown {
		t.Fatalf("first draw = %v,%v", first, ok)
	}
	second, ok := d.Draw()
	if !ok || second.Discount() != Purple {
		t.Fatalf("second draw = %v,%v", second, ok)
	}
	if _, ok := d.Draw(); ok {
		t.Error("draw from empty deck succeeded")
	}
}

func TestDeckCopyIsIndependent(t *testing.T) {
	d, err := ParseDeck("B:2:1,0,3,0\nP:1:0,0,0,1\n")
	if err != nil {
		t.Fatal(err)
	}
	c := d.Copy()
	c.Draw()
	if d.Size() != 2 {
		t.Errorf("draw from copy drained original, size = %d", d.Size())
	}
}
