package austerity

import "testing"

func testGame(t *testing.T, deckRaw string, players, tokens, threshold int) *Game {
	t.Helper()
	var deck *Deck
	if deckRaw != "" {
		d, err := ParseDeck(deckRaw)
		if err != nil {
			t.Fatalf("bad test deck: %v", err)
		}
		deck = d
	}
	names := make([]string, players)
	for i := range names {
		names[i] = string(SeatLetter(i))
	}
	g, err := NewGame(Config{
		Deck:          deck,
		PlayerNames:   names,
		InitialTokens: tokens,
		WinThreshold:  threshold,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestNewGameBounds(t *testing.T) {
	for _, n := range []int{0, 1, 27} {
		names := make([]string, n)
		if _, err := NewGame(Config{PlayerNames: names, InitialTokens: 1, WinThreshold: 1}); err == nil {
			t.Errorf("NewGame accepted %d players", n)
		}
	}
}

func TestRequiredPayment(t *testing.T) {
	tests := []struct {
		name      string
		price     TokenVec
		discounts TokenVec
		tokens    Wallet
		want      Wallet
	}{
		{
			name:   "exact colours",
			price:  TokenVec{2, 1, 0, 0},
			tokens: Wallet{2, 1, 0, 0, 0},
			want:   Wallet{2, 1, 0, 0, 0},
		},
		{
			name:   "shortfall in wilds",
			price:  TokenVec{3, 0, 0, 0},
			tokens: Wallet{1, 0, 0, 0, 5},
			want:   Wallet{1, 0, 0, 0, 2},
		},
		{
			name:      "discount reduces price",
			price:     TokenVec{3, 2, 0, 0},
			discounts: TokenVec{1, 2, 0, 0},
			tokens:    Wallet{2, 0, 0, 0, 0},
			want:      Wallet{2, 0, 0, 0, 0},
		},
		{
			name:      "discount exceeds price",
			price:     TokenVec{1, 0, 0, 0},
			discounts: TokenVec{4, 0, 0, 0},
			tokens:    Wallet{3, 0, 0, 0, 0},
			want:      Wallet{0, 0, 0, 0, 0},
		},
		{
			name:   "all wilds",
			price:  TokenVec{1, 1, 1, 1},
			tokens: Wallet{0, 0, 0, 0, 4},
			want:   Wallet{0, 0, 0, 0, 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGame(t, "", 2, 0, 100)
			g.players[0].Discounts = tt.discounts
			g.players[0].Tokens = tt.tokens
			g.board = []Card{NewCard(Purple, 1, tt.price)}
			got, err := g.RequiredPayment(0, 0)
			if err != nil {
				t.Fatalf("RequiredPayment: %v", err)
			}
			if got != tt.want {
				t.Errorf("RequiredPayment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAfford(t *testing.T) {
	g := testGame(t, "", 2, 0, 100)
	g.board = []Card{NewCard(Purple, 1, TokenVec{2, 0, 0, 0})}

	g.players[0].Tokens = Wallet{1, 0, 0, 0, 0}
	if g.CanAfford(0, 0) {
		t.Error("afford with a one-token shortfall and no wilds")
	}
	g.players[0].Tokens = Wallet{1, 0, 0, 0, 1}
	if !g.CanAfford(0, 0) {
		t.Error("cannot afford despite covering shortfall with a wild")
	}
	if g.CanAfford(0, 3) {
		t.Error("afford an empty board position")
	}
}

func TestPurchase(t *testing.T) {
	g := testGame(t, "B:2:1,0,3,0\nP:1:0,0,0,1\n", 2, 4, 100)
	g.Reveal()
	g.players[0].Tokens = Wallet{1, 0, 2, 0, 1}

	pay := Wallet{1, 0, 2, 0, 1}
	if err := g.Purchase(0, 0, pay); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	p := g.players[0]
	if p.Score != 2 {
		t.Errorf("score = %d, want 2", p.Score)
	}
	if p.Discounts[Brown] != 1 {
		t.Errorf("brown discount = %d, want 1", p.Discounts[Brown])
	}
	if p.Tokens != (Wallet{}) {
		t.Errorf("wallet after purchase = %v, want empty", p.Tokens)
	}
	// Real colours return to the piles; the spent wild does not.
	if g.piles != (TokenVec{5, 4, 6, 4}) {
		t.Errorf("piles = %v, want {5 4 6 4}", g.piles)
	}
	if !g.BoardEmpty() {
		t.Error("purchased card still on board")
	}
}

func TestPurchaseRejectsWrongPayment(t *testing.T) {
	g := testGame(t, "", 2, 4, 100)
	g.board = []Card{NewCard(Brown, 2, TokenVec{1, 0, 0, 0})}
	g.players[0].Tokens = Wallet{1, 0, 0, 0, 1}

	// Paying with a wild while holding the colour is not the required
	// payment.
	if err := g.Purchase(0, 0, Wallet{0, 0, 0, 0, 1}); err != ErrWrongPayment {
		t.Errorf("wild overuse: err = %v, want ErrWrongPayment", err)
	}
	if err := g.Purchase(0, 0, Wallet{1, 0, 0, 0, 1}); err != ErrWrongPayment {
		t.Errorf("overpay: err = %v, want ErrWrongPayment", err)
	}
	if err := g.Purchase(0, 5, Wallet{}); err != ErrNoSuchCard {
		t.Errorf("bad index: err = %v, want ErrNoSuchCard", err)
	}
	g.players[0].Tokens = Wallet{}
	if err := g.Purchase(0, 0, Wallet{1, 0, 0, 0, 0}); err != ErrCannotAfford {
		t.Errorf("broke buyer: err = %v, want ErrCannotAfford", err)
	}
}

func TestBoardShiftsDownAfterPurchase(t *testing.T) {
	g := testGame(t, "", 2, 4, 100)
	g.board = []Card{
		NewCard(Purple, 0, TokenVec{}),
		NewCard(Brown, 1, TokenVec{}),
		NewCard(Yellow, 2, TokenVec{}),
	}
	if err := g.Purchase(0, 1, Wallet{}); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if g.BoardLen() != 2 {
		t.Fatalf("board len = %d, want 2", g.BoardLen())
	}
	if c, _ := g.CardAt(1); c.Discount() != Yellow {
		t.Errorf("card above did not shift down, position 1 = %v", c)
	}
}

func TestValidTake(t *testing.T) {
	tests := []struct {
		name  string
		piles TokenVec
		take  TokenVec
		want  bool
	}{
		{name: "three distinct", piles: TokenVec{4, 4, 4, 4}, take: TokenVec{1, 1, 1, 0}, want: true},
		{name: "two from one pile", piles: TokenVec{4, 4, 4, 4}, take: TokenVec{2, 1, 0, 0}, want: false},
		{name: "only two tokens", piles: TokenVec{4, 4, 4, 4}, take: TokenVec{1, 1, 0, 0}, want: false},
		{name: "four tokens", piles: TokenVec{4, 4, 4, 4}, take: TokenVec{1, 1, 1, 1}, want: false},
		{name: "empty pile chosen", piles: TokenVec{0, 4, 4, 4}, take: TokenVec{1, 1, 1, 0}, want: false},
		{name: "skips the empty pile", piles: TokenVec{0, 4, 4, 4}, take: TokenVec{0, 1, 1, 1}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGame(t, "", 2, 0, 100)
			g.piles = tt.piles
			if got := g.ValidTake(tt.take); got != tt.want {
				t.Errorf("ValidTake(%v) with piles %v = %v, want %v",
					tt.take, tt.piles, got, tt.want)
			}
		})
	}
}

func TestCanTakeTokens(t *testing.T) {
	g := testGame(t, "", 2, 0, 100)
	g.piles = TokenVec{1, 1, 0, 0}
	if g.CanTakeTokens() {
		t.Error("take reported possible with two non-empty piles")
	}
	g.piles = TokenVec{1, 1, 1, 0}
	if !g.CanTakeTokens() {
		t.Error("take reported impossible with three non-empty piles")
	}
}

func TestTakeTokensMovesTokens(t *testing.T) {
	g := testGame(t, "", 2, 4, 100)
	if err := g.TakeTokens(1, TokenVec{1, 0, 1, 1}); err != nil {
		t.Fatalf("TakeTokens: %v", err)
	}
	if g.piles != (TokenVec{3, 4, 3, 3}) {
		t.Errorf("piles = %v", g.piles)
	}
	if g.players[1].Tokens != (Wallet{1, 0, 1, 1, 0}) {
		t.Errorf("wallet = %v", g.players[1].Tokens)
	}
}

func TestTakeWildUnbounded(t *testing.T) {
	g := testGame(t, "", 2, 0, 100)
	for i := 0; i < 50; i++ {
		g.TakeWild(0)
	}
	if g.players[0].Tokens[Wild] != 50 {
		t.Errorf("wilds = %d, want 50", g.players[0].Tokens[Wild])
	}
}

func TestIsOverAndWinners(t *testing.T) {
	g := testGame(t, "", 3, 0, 5)
	if g.IsOver() {
		t.Fatal("fresh game already over")
	}
	g.players[0].Score = 5
	g.players[2].Score = 5
	g.players[1].Score = 3
	if !g.IsOver() {
		t.Fatal("game with a threshold score not over")
	}
	if got := g.WinnerLetters(); got != "A,C" {
		t.Errorf("WinnerLetters = %q, want %q", got, "A,C")
	}
}

func TestRevealStopsAtBoardSize(t *testing.T) {
	raw := ""
	for i := 0; i < 10; i++ {
		raw += "P:1:0,0,0,0\n"
	}
	g := testGame(t, raw, 2, 4, 100)
	drawn := 0
	for {
		if _, ok := g.Reveal(); !ok {
			break
		}
		drawn++
	}
	if drawn != BoardSize {
		t.Errorf("revealed %d cards, want %d", drawn, BoardSize)
	}
	if g.DeckSize() != 2 {
		t.Errorf("deck size = %d, want 2", g.DeckSize())
	}
}

func TestApplyPlayerSnapshotAdjustsPiles(t *testing.T) {
	g, err := NewMirror(2)
	if err != nil {
		t.Fatal(err)
	}
	g.SetInitialTokens(6)
	if err := g.ApplyPlayerSnapshot(1, 4, TokenVec{1, 0, 0, 0}, Wallet{2, 1, 0, 0, 3}); err != nil {
		t.Fatal(err)
	}
	if g.piles != (TokenVec{4, 5, 6, 6}) {
		t.Errorf("piles = %v, want {4 5 6 6}", g.piles)
	}
	p := g.Player(1)
	if p.Score != 4 || p.Tokens[Wild] != 3 {
		t.Errorf("snapshot not installed: %+v", p)
	}
}
