package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/raaihank/maskform/internal/currency"
	"github.com/raaihank/maskform/internal/events"
	"github.com/raaihank/maskform/internal/mask"
	"github.com/raaihank/maskform/internal/presets"
)

// formatRequest is the shared request shape of the formatting endpoints.
// Value accepts a JSON number or a formatted string. Pointer fields
// distinguish "absent" from zero values; Preset and Locale resolve shared
// option sets before the explicit fields are applied on top.
type formatRequest struct {
	Value             any     `json:"value"`
	Symbol            *string `json:"symbol"`
	DecimalDigits     *int    `json:"decimalDigits"`
	ThousandSeparator *string `json:"thousandSeparator"`
	DecimalSeparator  *string `json:"decimalSeparator"`
	Format            *string `json:"format"`
	Preset            string  `json:"preset"`
	Locale            string  `json:"locale"`
}

type maskMatchRequest struct {
	Value           string `json:"value"`
	Mask            string `json:"mask"`
	ObfuscationChar string `json:"obfuscationChar"`
	AutoComplete    *bool  `json:"autoComplete"`
}

type maskPhoneRequest struct {
	Value   string `json:"value"`
	Country string `json:"country"`
}

type maskDateRequest struct {
	Value     string `json:"value"`
	Separator string `json:"separator"`
}

type maskNumberRequest struct {
	Value     string `json:"value"`
	Precision int    `json:"precision"`
	Delimiter string `json:"delimiter"`
	Separator string `json:"separator"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
}

type unformatResponse struct {
	Value float64 `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": Version})
}

// handleInfo reports the service configuration and runtime counters.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info := map[string]any{
		"service":  "maskform",
		"version":  Version,
		"defaults": currency.SessionDefaults(),
		"presets":  s.presets != nil,
		"events":   s.hub != nil,
	}
	if s.hub != nil {
		info["event_stats"] = s.hub.Stats()
	}
	if s.presets != nil {
		info["preset_stats"] = s.presets.Stats()
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleFormatMoney(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	opts, ok := s.resolveFormatOptions(w, r, &req)
	if !ok {
		return
	}

	obj := currency.FormatMoneyAsObject(req.Value, opts...)

	s.broadcast(events.Event{
		Type:      events.TypeFormat,
		Timestamp: time.Now(),
		RequestID: getRequestID(r.Context()),
		Data: events.FormatEvent{
			Kind:       "money",
			Value:      obj.Value,
			Result:     obj.Result,
			UsedFormat: obj.UsedFormat,
		},
	})

	writeJSON(w, http.StatusOK, obj)
}

func (s *Server) handleFormatNumber(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	opts, ok := s.resolveFormatOptions(w, r, &req)
	if !ok {
		return
	}

	result := currency.FormatNumber(req.Value, opts...)
	value := currency.Unformat(req.Value, derefOr(req.DecimalSeparator, ""))

	s.broadcast(events.Event{
		Type:      events.TypeFormat,
		Timestamp: time.Now(),
		RequestID: getRequestID(r.Context()),
		Data:      events.FormatEvent{Kind: "number", Value: value, Result: result},
	})

	writeJSON(w, http.StatusOK, map[string]any{"result": result, "value": value})
}

func (s *Server) handleUnformat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	value := currency.Unformat(req.Value, derefOr(req.DecimalSeparator, ""))

	s.broadcast(events.Event{
		Type:      events.TypeFormat,
		Timestamp: time.Now(),
		RequestID: getRequestID(r.Context()),
		Data:      events.FormatEvent{Kind: "unformat", Value: value},
	})

	writeJSON(w, http.StatusOK, unformatResponse{Value: value})
}

// resolveFormatOptions layers locale preset, stored preset, and explicit
// fields into a currency option list, in that order.
func (s *Server) resolveFormatOptions(w http.ResponseWriter, r *http.Request, req *formatRequest) ([]currency.Option, bool) {
	var opts []currency.Option

	if req.Locale != "" {
		preset, ok := currency.LocaleOptions(req.Locale)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown locale: " + req.Locale})
			return nil, false
		}
		opts = append(opts, currency.WithOptions(preset))
	}

	if req.Preset != "" {
		if s.presets == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "preset store not configured"})
			return nil, false
		}
		stored, err := s.presets.Get(r.Context(), req.Preset)
		if err == presets.ErrNotFound {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown preset: " + req.Preset})
			return nil, false
		} else if err != nil {
			s.logger.Error("Preset lookup failed", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "preset store error"})
			return nil, false
		}
		opts = append(opts, currency.WithOptions(stored))
	}

	if req.Symbol != nil {
		opts = append(opts, currency.WithSymbol(*req.Symbol))
	}
	if req.DecimalDigits != nil {
		opts = append(opts, currency.WithDecimalDigits(*req.DecimalDigits))
	}
	if req.ThousandSeparator != nil {
		opts = append(opts, currency.WithThousandSeparator(*req.ThousandSeparator))
	}
	if req.DecimalSeparator != nil {
		opts = append(opts, currency.WithDecimalSeparator(*req.DecimalSeparator))
	}
	if req.Format != nil {
		opts = append(opts, currency.WithFormat(*req.Format))
	}

	return opts, true
}

func (s *Server) handleMaskMatch(w http.ResponseWriter, r *http.Request) {
	var req maskMatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result := mask.Match(
		req.Value,
		mask.ParseTemplate(req.Mask),
		s.obfuscationChar(req.ObfuscationChar),
		s.autoComplete(req.AutoComplete),
		nil,
	)

	s.broadcastMask(r, "match", result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMaskPhone(w http.ResponseWriter, r *http.Request) {
	var req maskPhoneRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	country := req.Country
	if country == "" {
		country = s.config.Masking.PhoneCountry
	}

	tmpl := mask.PhoneMask(country)
	result := mask.Match(req.Value, tmpl.Mask, s.obfuscationChar(""), true, tmpl.Validate)

	s.broadcastMask(r, "phone", result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMaskDate(w http.ResponseWriter, r *http.Request) {
	var req maskDateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sep := []rune(s.config.Masking.DateSeparator)[0]
	if req.Separator != "" {
		sep = []rune(req.Separator)[0]
	}

	m := mask.DateMask(sep)(req.Value)
	result := mask.Match(req.Value, m, s.obfuscationChar(""), false, nil)

	s.broadcastMask(r, "date", result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMaskNumber(w http.ResponseWriter, r *http.Request) {
	var req maskNumberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m := mask.NumberMask(mask.NumberOptions{
		Precision: req.Precision,
		Delimiter: req.Delimiter,
		Separator: req.Separator,
		Prefix:    req.Prefix,
		Suffix:    req.Suffix,
	})(req.Value)
	result := mask.Match(req.Value, m, s.obfuscationChar(""), true, nil)

	s.broadcastMask(r, "number", result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLocale(w http.ResponseWriter, r *http.Request) {
	tag := mux.Vars(r)["tag"]

	preset, ok := currency.LocaleOptions(tag)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown locale: " + tag})
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

func (s *Server) handleGetDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currency.SessionDefaults())
}

// handleSetDefaults replaces the session defaults at runtime. Last write
// wins.
func (s *Server) handleSetDefaults(w http.ResponseWriter, r *http.Request) {
	var opts currency.Options
	if !decodeJSON(w, r, &opts) {
		return
	}
	if opts.DecimalDigits < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "decimalDigits must not be negative"})
		return
	}

	currency.Configure(opts)
	s.logger.Info("Session defaults replaced",
		zap.String("symbol", opts.Symbol),
		zap.Int("decimal_digits", opts.DecimalDigits),
	)
	writeJSON(w, http.StatusOK, currency.SessionDefaults())
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	store, ok := s.requirePresets(w)
	if !ok {
		return
	}

	name := mux.Vars(r)["name"]
	opts, err := store.Get(r.Context(), name)
	if err == presets.ErrNotFound {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown preset: " + name})
		return
	} else if err != nil {
		s.logger.Error("Preset lookup failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "preset store error"})
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handlePutPreset(w http.ResponseWriter, r *http.Request) {
	store, ok := s.requirePresets(w)
	if !ok {
		return
	}

	var opts currency.Options
	if !decodeJSON(w, r, &opts) {
		return
	}

	name := mux.Vars(r)["name"]
	if err := store.Put(r.Context(), name, opts); err != nil {
		s.logger.Error("Preset store failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "preset store error"})
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	store, ok := s.requirePresets(w)
	if !ok {
		return
	}

	name := mux.Vars(r)["name"]
	err := store.Delete(r.Context(), name)
	if err == presets.ErrNotFound {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown preset: " + name})
		return
	} else if err != nil {
		s.logger.Error("Preset delete failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "preset store error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requirePresets(w http.ResponseWriter) (*presets.Store, bool) {
	if s.presets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "preset store not configured"})
		return nil, false
	}
	return s.presets, true
}

func (s *Server) broadcastMask(r *http.Request, kind string, result mask.Result) {
	s.broadcast(events.Event{
		Type:      events.TypeMask,
		Timestamp: time.Now(),
		RequestID: getRequestID(r.Context()),
		Data: events.MaskEvent{
			Kind:        kind,
			Masked:      result.Masked,
			Obfuscated:  result.Obfuscated,
			Placeholder: result.Placeholder,
			Valid:       result.Valid,
		},
	})
}

func (s *Server) obfuscationChar(override string) rune {
	if override != "" {
		return []rune(override)[0]
	}
	if s.config.Masking.ObfuscationChar != "" {
		return []rune(s.config.Masking.ObfuscationChar)[0]
	}
	return mask.DefaultObfuscationChar
}

func (s *Server) autoComplete(override *bool) bool {
	if override != nil {
		return *override
	}
	return s.config.Masking.AutoComplete
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func derefOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}
