package ledger

import "testing"

func TestLenientFloat(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"123.45", 123.45},
		{"-0.5", -0.5},
		{"  42 ", 42},
		{"", 0},
		{"n/a", 0},
		{"1e3", 1000},
	}
	for _, tc := range cases {
		if got := lenientFloat(tc.raw); got != tc.want {
			t.Fatalf("lenientFloat(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestEnrichPosition(t *testing.T) {
	raw := RawPosition{
		Symbol:           "BTCUSDT",
		PositionAmt:      "0.250",
		EntryPrice:       "60000",
		MarkPrice:        "61000.5",
		UnrealizedProfit: "250.125",
		LiquidationPrice: "45000",
		Leverage:         "10",
		MarginType:       "cross",
		Notional:         "15250.125",
		PositionSide:     "BOTH",
		UpdateTime:       1700000000000,
	}
	got := enrichPosition(raw)
	if got.PositionAmt != 0.25 || got.EntryPrice != 60000 {
		t.Fatalf("numeric fields not reparsed: %+v", got)
	}
	if got.UnrealizedProfit != 250.125 || got.Notional != 15250.125 {
		t.Fatalf("value fields not reparsed: %+v", got)
	}
	if got.MarkPrice != "61000.5" || got.Leverage != "10" {
		t.Fatalf("pass-through fields altered: %+v", got)
	}
}

func TestEnrichPositionGarbageNumbers(t *testing.T) {
	got := enrichPosition(RawPosition{Symbol: "ETHUSDT", PositionAmt: "??", Notional: ""})
	if got.PositionAmt != 0 || got.Notional != 0 {
		t.Fatalf("garbage input must parse to zero: %+v", got)
	}
	if got.Symbol != "ETHUSDT" {
		t.Fatalf("symbol lost: %+v", got)
	}
}
