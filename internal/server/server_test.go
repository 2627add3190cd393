package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/raaihank/maskform/internal/config"
	"github.com/raaihank/maskform/internal/currency"
	"github.com/raaihank/maskform/internal/logger"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()

	cfg := config.GetDefaults()
	cfg.Events.Enabled = false
	cfg.Presets.Enabled = false
	cfg.RateLimit.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	log := &logger.Logger{Logger: zap.NewNop()}
	srv, err := New(cfg, log)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return srv
}

func postJSON(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to encode request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthAndInfo(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("Health", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("Info", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/info", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		var info map[string]any
		decodeBody(t, rec, &info)
		if info["service"] != "maskform" {
			t.Errorf("service = %v, want maskform", info["service"])
		}
	})
}

func TestFormatEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("Money", func(t *testing.T) {
		rec := postJSON(t, srv, "/v1/format/money", map[string]any{"value": 1234.56})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var obj currency.MoneyObject
		decodeBody(t, rec, &obj)
		if obj.Result != "$1,234.56" {
			t.Errorf("Result = %q, want %q", obj.Result, "$1,234.56")
		}
	})

	t.Run("MoneyWithLocale", func(t *testing.T) {
		rec := postJSON(t, srv, "/v1/format/money", map[string]any{"value": 1234.56, "locale": "fr"})

		var obj currency.MoneyObject
		decodeBody(t, rec, &obj)
		if obj.Result != "1 234,56 €" {
			t.Errorf("Result = %q, want %q", obj.Result, "1 234,56 €")
		}
	})

	t.Run("MoneyUnknownLocale", func(t *testing.T) {
		rec := postJSON(t, srv, "/v1/format/money", map[string]any{"value": 1, "locale": "!!"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("Number", func(t *testing.T) {
		rec := postJSON(t, srv, "/v1/format/number", map[string]any{"value": 1234.5678, "decimalDigits": 2})

		var resp map[string]any
		decodeBody(t, rec, &resp)
		if resp["result"] != "1,234.57" {
			t.Errorf("result = %v, want %q", resp["result"], "1,234.57")
		}
	})

	t.Run("Unformat", func(t *testing.T) {
		rec := postJSON(t, srv, "/v1/unformat", map[string]any{"value": "($1,234.56)"})

		var resp map[string]float64
		decodeBody(t, rec, &resp)
		// The narrow parenthesized-negative rule: symbol blocks negation.
		if resp["value"] != 1234.56 {
			t.Errorf("value = %v, want 1234.56", resp["value"])
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/format/money", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestMaskEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("Match", func(t *testing.T) {
		rec := postJSON(t, srv, "/v1/mask/match", map[string]any{
			"value": "2124567890",
			"mask":  "(999) 999-9999",
		})

		var resp map[string]any
		decodeBody(t, rec, &resp)
		if resp["masked"] != "(212) 456-7890" {
			t.Errorf("masked = %v, want %q", resp["masked"], "(212) 456-7890")
		}
		if resp["valid"] != true {
			t.Error("complete match should be valid")
		}
	})

	t.Run("Phone", func(t *testing.T) {
		rec := postJSON(t, srv, "/v1/mask/phone", map[string]any{
			"value":   "2124567890",
			"country": "us",
		})

		var resp map[string]any
		decodeBody(t, rec, &resp)
		if resp["masked"] != "(212) 456-7890" {
			t.Errorf("masked = %v, want %q", resp["masked"], "(212) 456-7890")
		}
		if resp["placeholder"] != "(___) ___-____" {
			t.Errorf("placeholder = %v, want %q", resp["placeholder"], "(___) ___-____")
		}
	})

	t.Run("Date", func(t *testing.T) {
		rec := postJSON(t, srv, "/v1/mask/date", map[string]any{"value": "31012024"})

		var resp map[string]any
		decodeBody(t, rec, &resp)
		if resp["masked"] != "31/01/2024" {
			t.Errorf("masked = %v, want %q", resp["masked"], "31/01/2024")
		}
	})

	t.Run("Number", func(t *testing.T) {
		rec := postJSON(t, srv, "/v1/mask/number", map[string]any{
			"value":     "123456",
			"precision": 2,
			"delimiter": ".",
			"separator": ",",
			"prefix":    "R$ ",
		})

		var resp map[string]any
		decodeBody(t, rec, &resp)
		if resp["masked"] != "R$ 1.234,56" {
			t.Errorf("masked = %v, want %q", resp["masked"], "R$ 1.234,56")
		}
	})
}

func TestDefaultsEndpoints(t *testing.T) {
	old := currency.SessionDefaults()
	defer currency.Configure(old)

	srv := newTestServer(t, nil)

	next := currency.Options{Symbol: "£", DecimalDigits: 2, ThousandSeparator: ",", DecimalSeparator: ".", Format: "%s%v"}
	payload, _ := json.Marshal(next)

	req := httptest.NewRequest(http.MethodPut, "/v1/defaults", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if got := currency.SessionDefaults(); got != next {
		t.Errorf("SessionDefaults = %+v, want %+v", got, next)
	}

	rec = postJSON(t, srv, "/v1/format/money", map[string]any{"value": 5})
	var obj currency.MoneyObject
	decodeBody(t, rec, &obj)
	if obj.Result != "£5.00" {
		t.Errorf("Result = %q, want %q", obj.Result, "£5.00")
	}
}

func TestPresetEndpointsUnavailable(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/presets/retail", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when the store is disabled", rec.Code)
	}

	rec = postJSON(t, srv, "/v1/format/money", map[string]any{"value": 1, "preset": "retail"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 for preset references", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RequestsPerSecond = 1
		cfg.RateLimit.Burst = 1
	})

	first := postJSON(t, srv, "/v1/unformat", map[string]any{"value": "1"})
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	second := postJSON(t, srv, "/v1/unformat", map[string]any{"value": "1"})
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
}
