package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wethinkt/go-lightbox/internal/media"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
	"github.com/wethinkt/go-lightbox/internal/viewer"
)

// API response types

// ItemsResponse lists the collection in viewer order.
type ItemsResponse struct {
	Items []media.Item `json:"items"`
	Count int          `json:"count"`
}

// ViewerResponse is the observable viewer state.
type ViewerResponse struct {
	viewer.Snapshot
}

// KeysResponse lists the viewer key table.
type KeysResponse struct {
	Bindings []viewer.Binding `json:"bindings"`
}

// PressKeyResponse reports the result of a key event.
type PressKeyResponse struct {
	Handled bool            `json:"handled"`
	Viewer  viewer.Snapshot `json:"viewer"`
}

// API request types

// OpenRequest selects the item to show.
type OpenRequest struct {
	Index int `json:"index"`
}

// DirectionRequest carries a navigate ("previous", "next") or zoom ("in", "out") direction.
type DirectionRequest struct {
	Direction string `json:"direction"`
}

// LoadErrorRequest sets or clears the load error flag.
type LoadErrorRequest struct {
	Failed bool `json:"failed"`
}

// PressKeyRequest names a key, e.g. "Escape", "ArrowLeft", "+" or "r".
type PressKeyRequest struct {
	Key string `json:"key"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, err string, msg string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: msg})
}

// writeViewerError maps state machine errors to API errors.
func writeViewerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, viewer.ErrInvalidDirection):
		writeError(w, http.StatusBadRequest, "invalid_direction", err.Error())
	case errors.Is(err, viewer.ErrIndexOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "index_out_of_range", err.Error())
	case errors.Is(err, viewer.ErrEmptyCollection):
		writeError(w, http.StatusConflict, "empty_collection", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// decodeBody decodes a JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Failed to parse request body")
		return false
	}
	return true
}

// handleGetItems returns the collection.
// @Summary List collection items
// @Description Returns every item of the collection in viewer order
// @Tags items
// @Produce json
// @Success 200 {object} ItemsResponse
// @Router /items [get]
func (s *HTTPServer) handleGetItems(w http.ResponseWriter, r *http.Request) {
	items := s.session.Items()
	writeJSON(w, http.StatusOK, ItemsResponse{Items: items, Count: len(items)})
}

// handleGetItemRaw streams the original bytes of an item.
// @Summary Download an item
// @Description Returns the original file of the item at index
// @Tags items
// @Produce octet-stream
// @Param index path int true "Item index"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Bad Request - index is not a number"
// @Failure 404 {object} ErrorResponse "Not Found - no item at index"
// @Router /items/{index}/raw [get]
func (s *HTTPServer) handleGetItemRaw(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "index must be an integer")
		return
	}
	item, err := s.session.Item(index)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	f, err := os.Open(item.Source)
	if err != nil {
		tuilog.Log.Warn("open item failed", "item", item.Source, "error", err)
		writeError(w, http.StatusNotFound, "not_found", "item is no longer readable")
		return
	}
	defer f.Close()

	if item.MediaType != "" {
		w.Header().Set("Content-Type", item.MediaType)
	}
	http.ServeContent(w, r, item.Name, item.ModTime, f)
}

// handleGetKeys returns the key table.
// @Summary List key bindings
// @Description Returns the keys the viewer reacts to and when
// @Tags viewer
// @Produce json
// @Success 200 {object} KeysResponse
// @Router /keys [get]
func (s *HTTPServer) handleGetKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, KeysResponse{Bindings: viewer.Bindings()})
}

// handleGetViewer returns the viewer state.
// @Summary Get viewer state
// @Description Returns open flag, index, zoom, rotation, load error and current item
// @Tags viewer
// @Produce json
// @Success 200 {object} ViewerResponse
// @Router /viewer [get]
func (s *HTTPServer) handleGetViewer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ViewerResponse{s.session.Snapshot()})
}

// handleOpen opens the viewer.
// @Summary Open the viewer
// @Description Shows the item at index with default zoom and rotation
// @Tags viewer
// @Accept json
// @Produce json
// @Param request body OpenRequest true "Item to open"
// @Success 200 {object} ViewerResponse
// @Failure 400 {object} ErrorResponse "Bad Request - invalid body"
// @Failure 409 {object} ErrorResponse "Conflict - empty collection"
// @Failure 422 {object} ErrorResponse "Unprocessable - index out of range"
// @Router /viewer/open [post]
func (s *HTTPServer) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req OpenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, err := s.session.Open(req.Index)
	if err != nil {
		writeViewerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewerResponse{snap})
}

// handleClose closes the viewer.
// @Summary Close the viewer
// @Tags viewer
// @Produce json
// @Success 200 {object} ViewerResponse
// @Router /viewer/close [post]
func (s *HTTPServer) handleClose(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ViewerResponse{s.session.Close()})
}

// handleNavigate moves to the neighbouring item.
// @Summary Navigate
// @Description Moves circularly to the previous or next item and resets zoom and rotation
// @Tags viewer
// @Accept json
// @Produce json
// @Param request body DirectionRequest true "previous or next"
// @Success 200 {object} ViewerResponse
// @Failure 400 {object} ErrorResponse "Bad Request - invalid direction"
// @Failure 409 {object} ErrorResponse "Conflict - empty collection"
// @Router /viewer/navigate [post]
func (s *HTTPServer) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req DirectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, err := s.session.Navigate(req.Direction)
	if err != nil {
		writeViewerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewerResponse{snap})
}

// handleZoom zooms in or out.
// @Summary Zoom
// @Description Changes zoom by 0.25 within [0.5, 3]
// @Tags viewer
// @Accept json
// @Produce json
// @Param request body DirectionRequest true "in or out"
// @Success 200 {object} ViewerResponse
// @Failure 400 {object} ErrorResponse "Bad Request - invalid direction"
// @Router /viewer/zoom [post]
func (s *HTTPServer) handleZoom(w http.ResponseWriter, r *http.Request) {
	var req DirectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	snap, err := s.session.Zoom(req.Direction)
	if err != nil {
		writeViewerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewerResponse{snap})
}

// handleRotate rotates a quarter turn clockwise.
// @Summary Rotate
// @Tags viewer
// @Produce json
// @Success 200 {object} ViewerResponse
// @Router /viewer/rotate [post]
func (s *HTTPServer) handleRotate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ViewerResponse{s.session.Rotate()})
}

// handleLoadError records a load failure reported by a client.
// @Summary Set load error
// @Tags viewer
// @Accept json
// @Produce json
// @Param request body LoadErrorRequest true "Load error flag"
// @Success 200 {object} ViewerResponse
// @Failure 400 {object} ErrorResponse "Bad Request - invalid body"
// @Router /viewer/load-error [post]
func (s *HTTPServer) handleLoadError(w http.ResponseWriter, r *http.Request) {
	var req LoadErrorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, ViewerResponse{s.session.SetLoadError(req.Failed)})
}

// handlePressKey publishes a key event to the viewer's key router.
// @Summary Press a key
// @Description Delivers a key to the router; keys are ignored while the viewer is closed
// @Tags viewer
// @Accept json
// @Produce json
// @Param request body PressKeyRequest true "Key name"
// @Success 200 {object} PressKeyResponse
// @Failure 400 {object} ErrorResponse "Bad Request - missing key"
// @Router /viewer/keys [post]
func (s *HTTPServer) handlePressKey(w http.ResponseWriter, r *http.Request) {
	var req PressKeyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "key is required")
		return
	}
	snap, handled := s.session.PressKey(req.Key)
	writeJSON(w, http.StatusOK, PressKeyResponse{Handled: handled, Viewer: snap})
}
