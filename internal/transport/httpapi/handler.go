// Package httpapi serves block index queries over HTTP.
package httpapi

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/reader"
)

// maxHeaders caps a single headers request, matching the P2P headers message limit.
const maxHeaders = 2000

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errBadRequest = errors.New("bad request")

type readMode string

const (
	modeJSON   readMode = "json"
	modeHex    readMode = "hex"
	modeBinary readMode = "binary"
)

// Handler routes API requests to a reader.
type Handler struct {
	logger  *zap.Logger
	reader  Reader
	metrics Metrics
	router  *mux.Router
}

// NewHandler builds the API router.
func NewHandler(logger *zap.Logger, r Reader, metrics Metrics) *Handler {
	h := &Handler{
		logger:  logger.Named("httpapi"),
		reader:  r,
		metrics: metrics,
		router:  mux.NewRouter(),
	}
	h.router.Use(h.observe)
	h.router.NotFoundHandler = h.observe(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
	}))

	h.router.HandleFunc("/healthz", h.handle(h.health)).Methods(http.MethodGet)
	v1 := h.router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/status", h.handle(h.status)).Methods(http.MethodGet)
	v1.HandleFunc("/headers", h.handle(h.headers)).Methods(http.MethodGet)
	for _, prefix := range []string{"/blocks/{height:[0-9]+}", "/entries/{hash:[0-9a-fA-F]{64}}"} {
		v1.HandleFunc(prefix, h.handle(h.entry)).Methods(http.MethodGet)
		v1.HandleFunc(prefix+"/raw", h.handle(h.rawBlock)).Methods(http.MethodGet)
		v1.HandleFunc(prefix+"/spent-outputs", h.handle(h.spentOutputs)).Methods(http.MethodGet)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handle(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		code := statusCode(err)
		if code >= http.StatusInternalServerError {
			h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Int("code", code), zap.Error(err))
		} else {
			h.logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("code", code), zap.Error(err))
		}
		writeJSON(w, code, errorResponse{Error: err.Error()})
	}
}

func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		var route string
		if current := mux.CurrentRoute(r); current != nil {
			route, _ = current.GetPathTemplate()
		}
		h.metrics.ObserveRequest(route, r.Method, rec.code, started)
	})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) error {
	if _, err := h.reader.Status(); err != nil {
		return err
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) error {
	s, err := h.reader.Status()
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, newStatusResponse(s))
	return nil
}

func (h *Handler) entry(w http.ResponseWriter, r *http.Request) error {
	e, err := h.entryFromRequest(r)
	if err != nil {
		return err
	}
	resp := newEntryResponse(e)
	if resp.OnBestChain, err = h.reader.IsOnBestChain(e); err != nil {
		return err
	}
	mtp, err := h.reader.MedianTimePast(r.Context(), e)
	switch {
	case err == nil:
		resp.MedianTime = mtp.Unix()
	case errors.Is(err, blockindex.ErrNotFound):
		h.logger.Debug("median time past unavailable", zap.Stringer("hash", e.Hash), zap.Error(err))
	default:
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *Handler) rawBlock(w http.ResponseWriter, r *http.Request) error {
	mode, err := parseMode(r, modeBinary)
	if err != nil {
		return err
	}
	if mode == modeJSON {
		return fmt.Errorf("format json is not supported for raw blocks: %w", errBadRequest)
	}
	e, err := h.entryFromRequest(r)
	if err != nil {
		return err
	}
	raw, err := h.reader.Block(r.Context(), e)
	if err != nil {
		return err
	}
	writeBytes(w, mode, raw)
	return nil
}

func (h *Handler) spentOutputs(w http.ResponseWriter, r *http.Request) error {
	e, err := h.entryFromRequest(r)
	if err != nil {
		return err
	}
	outputs, err := h.reader.SpentOutputs(r.Context(), e)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, spentOutputsResponse{
		Hash:    e.Hash.String(),
		Height:  e.Height,
		Outputs: outputs,
	})
	return nil
}

func (h *Handler) headers(w http.ResponseWriter, r *http.Request) error {
	mode, err := parseMode(r, modeJSON)
	if err != nil {
		return err
	}
	start, err := queryInt(r, "start", 0)
	if err != nil {
		return err
	}
	count, err := queryInt(r, "count", maxHeaders)
	if err != nil {
		return err
	}
	if count > maxHeaders {
		return fmt.Errorf("count %d exceeds %d: %w", count, maxHeaders, errBadRequest)
	}

	if mode != modeJSON {
		raw, err := h.reader.HeadersRaw(int32(start), int(count))
		if err != nil {
			return err
		}
		writeBytes(w, mode, raw)
		return nil
	}

	entries, err := h.reader.EntryRange(int32(start), int(count))
	if err != nil {
		return err
	}
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = newEntryResponse(e)
		resp[i].OnBestChain = true
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *Handler) entryFromRequest(r *http.Request) (*blockindex.Entry, error) {
	vars := mux.Vars(r)
	if raw, ok := vars["hash"]; ok {
		hash, err := chainhash.NewHashFromStr(raw)
		if err != nil {
			return nil, fmt.Errorf("hash %q: %w", raw, errBadRequest)
		}
		return h.reader.EntryByHash(r.Context(), *hash)
	}
	height, err := strconv.ParseInt(vars["height"], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("height %q: %w", vars["height"], errBadRequest)
	}
	return h.reader.EntryByHeight(int32(height))
}

func parseMode(r *http.Request, fallback readMode) (readMode, error) {
	switch format := readMode(r.URL.Query().Get("format")); format {
	case "":
		return fallback, nil
	case modeJSON, modeHex, modeBinary:
		return format, nil
	default:
		return "", fmt.Errorf("format %q: %w", format, errBadRequest)
	}
}

func queryInt(r *http.Request, key string, fallback int32) (int32, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, raw, errBadRequest)
	}
	return int32(v), nil
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, reader.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, blockindex.ErrNotReady), errors.Is(err, blockindex.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, blockindex.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, blockindex.ErrNotApplicable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, mode readMode, raw []byte) {
	if mode == modeHex {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(hex.EncodeToString(raw)))
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}
