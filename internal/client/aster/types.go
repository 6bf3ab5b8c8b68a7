package aster

import "strings"

// Account is the /fapi/v2/account balance summary. Numeric fields stay
// as exchange strings; callers parse what they need.
type Account struct {
	TotalWalletBalance    string `json:"totalWalletBalance"`
	TotalMarginBalance    string `json:"totalMarginBalance"`
	TotalUnrealizedProfit string `json:"totalUnrealizedProfit"`
	AvailableBalance      string `json:"availableBalance"`
	UpdateTime            int64  `json:"updateTime"`
}

// Position is one /fapi/v2/positionRisk row, verbatim.
type Position struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"`
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	UnrealizedProfit string `json:"unRealizedProfit"`
	LiquidationPrice string `json:"liquidationPrice"`
	Leverage         string `json:"leverage"`
	MarginType       string `json:"marginType"`
	Notional         string `json:"notional"`
	PositionSide     string `json:"positionSide"`
	UpdateTime       int64  `json:"updateTime"`
}

// IsOpen reports whether the row carries an actual position. The
// exchange returns a row per symbol even when flat; flat rows have a
// zero positionAmt string.
func (p Position) IsOpen() bool {
	amt := strings.TrimSpace(p.PositionAmt)
	switch amt {
	case "", "0", "0.0", "0.00000000":
		return false
	}
	trimmed := strings.TrimLeft(amt, "-0.")
	return trimmed != ""
}

// OpenPositions filters positionRisk rows down to held positions.
func OpenPositions(rows []Position) []Position {
	out := make([]Position, 0, len(rows))
	for _, row := range rows {
		if row.IsOpen() {
			out = append(out, row)
		}
	}
	return out
}
