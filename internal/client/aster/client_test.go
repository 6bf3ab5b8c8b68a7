package aster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSignInsertionOrder(t *testing.T) {
	c := NewClient(http.DefaultClient, "", "key", "secret", 5000)
	// The signature covers the query string exactly as assembled, so
	// parameter order changes the digest.
	a := c.sign("symbol=BTCUSDT&timestamp=1")
	b := c.sign("timestamp=1&symbol=BTCUSDT")
	if a == b {
		t.Fatal("signature must depend on parameter order")
	}
	if len(a) != 64 {
		t.Fatalf("signature length = %d, want 64 hex chars", len(a))
	}
}

func TestSignKnownVector(t *testing.T) {
	c := NewClient(http.DefaultClient, "", "key", "testsecret", 5000)
	got := c.sign("recvWindow=5000&timestamp=1700000000000")
	want := c.sign("recvWindow=5000&timestamp=1700000000000")
	if got != want {
		t.Fatal("signature not deterministic")
	}
}

func TestEncodeParamsPreservesOrder(t *testing.T) {
	query := encodeParams([]param{
		{"symbol", "BTCUSDT"},
		{"recvWindow", "5000"},
		{"timestamp", "123"},
	})
	if query != "symbol=BTCUSDT&recvWindow=5000&timestamp=123" {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestGetPositionRisk(t *testing.T) {
	var gotPath, gotKey, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-MBX-APIKEY")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","positionAmt":"0.5","entryPrice":"60000","unRealizedProfit":"12.5","notional":"30000"},
			{"symbol":"ETHUSDT","positionAmt":"0","entryPrice":"0","unRealizedProfit":"0","notional":"0"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "api-key", "api-secret", 5000)
	rows, err := c.GetPositionRisk(context.Background(), "")
	if err != nil {
		t.Fatalf("GetPositionRisk: %v", err)
	}
	if gotPath != "/fapi/v2/positionRisk" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotKey != "api-key" {
		t.Fatalf("missing api key header, got %q", gotKey)
	}
	if !strings.Contains(gotQuery, "signature=") || !strings.Contains(gotQuery, "recvWindow=5000") {
		t.Fatalf("query not signed: %s", gotQuery)
	}
	if len(rows) != 2 || rows[0].Symbol != "BTCUSDT" {
		t.Fatalf("rows: %+v", rows)
	}

	open := OpenPositions(rows)
	if len(open) != 1 || open[0].Symbol != "BTCUSDT" {
		t.Fatalf("flat rows not filtered: %+v", open)
	}
}

func TestGetAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fapi/v2/account" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"totalWalletBalance":"1000.5","totalMarginBalance":"1010.0","totalUnrealizedProfit":"9.5","availableBalance":"800"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "k", "s", 0)
	account, err := c.GetAccount(context.Background())
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if account.TotalMarginBalance != "1010.0" || account.TotalWalletBalance != "1000.5" {
		t.Fatalf("account: %+v", account)
	}
}

func TestAPIErrorSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"code":-1021,"msg":"timestamp outside recvWindow"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "k", "s", 0)
	_, err := c.GetAccount(context.Background())
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("want *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusTeapot || !strings.Contains(apiErr.Body, "-1021") {
		t.Fatalf("apiErr: %+v", apiErr)
	}
}

func TestSyncTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fapi/v1/time" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"serverTime":1700000000000}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "", "", 0)
	if err := c.SyncTime(context.Background()); err != nil {
		t.Fatalf("SyncTime: %v", err)
	}
	if c.timeOffset.Load() == 0 {
		t.Fatal("offset not recorded")
	}
}

func TestParseMarkFrame(t *testing.T) {
	events, ok := parseMarkFrame([]byte(`[{"e":"markPriceUpdate","s":"BTCUSDT","p":"60000.1","r":"0.0001","T":1700000000000}]`))
	if !ok || len(events) != 1 || events[0].Symbol != "BTCUSDT" {
		t.Fatalf("array frame: %+v ok=%v", events, ok)
	}
	events, ok = parseMarkFrame([]byte(`{"e":"markPriceUpdate","s":"ETHUSDT","p":"3000"}`))
	if !ok || len(events) != 1 || events[0].Symbol != "ETHUSDT" {
		t.Fatalf("object frame: %+v ok=%v", events, ok)
	}
	if _, ok := parseMarkFrame([]byte(`{"result":null,"id":1}`)); ok {
		t.Fatal("control frame must not parse as mark events")
	}
}

func TestPositionIsOpen(t *testing.T) {
	cases := []struct {
		amt  string
		want bool
	}{
		{"0", false},
		{"0.000", false},
		{"", false},
		{"-0.0", false},
		{"0.5", true},
		{"-2", true},
	}
	for _, tc := range cases {
		if got := (Position{PositionAmt: tc.amt}).IsOpen(); got != tc.want {
			t.Fatalf("IsOpen(%q) = %v, want %v", tc.amt, got, tc.want)
		}
	}
}
