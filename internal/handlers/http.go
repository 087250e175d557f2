package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/places"

	"github.com/gorilla/mux"
)

// HTTPHandler handles HTTP requests for the search proxy
type HTTPHandler struct {
	searchService *places.SearchService
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(searchService *places.SearchService) *HTTPHandler {
	return &HTTPHandler{
		searchService: searchService,
	}
}

// RegisterRoutes sets up HTTP routes
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods("GET")
	router.HandleFunc("/api/recommend", h.Recommend).Methods("GET")
}

// SearchResponse is the proxy's success payload
type SearchResponse struct {
	Documents []places.Place `json:"documents"`
}

// ErrorResponse is the proxy's failure payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Recommend searches every requested category around lat/lng and returns the merged places
func (h *HTTPHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	latStr := query.Get("lat")
	lngStr := query.Get("lng")

	if latStr == "" || lngStr == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Latitude and longitude are required"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid latitude"})
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid longitude"})
		return
	}

	radius := places.DefaultRadius
	if radiusStr := query.Get("radius"); radiusStr != "" {
		radius, err = strconv.Atoi(radiusStr)
		if err != nil || radius <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid radius"})
			return
		}
	}

	categories := places.ParseCategories(query.Get("query"))
	requestID := RequestIDFromContext(r.Context())

	slog.Info("Recommendation search request received",
		"request_id", requestID,
		"lat", lat,
		"lng", lng,
		"categories", categories,
		"radius", radius)

	results, err := h.searchService.Search(r.Context(), places.SearchRequest{
		RequestID:  requestID,
		Center:     geo.Coordinate{Lat: lat, Lng: lng},
		Categories: categories,
		Radius:     radius,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch data from places API"})
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Documents: results})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
