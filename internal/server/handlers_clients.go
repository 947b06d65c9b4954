package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/d3ccy/seo-geo/internal/db"
)

// SaveClientRequest is the payload for creating or updating a client record.
type SaveClientRequest struct {
	Name         string `json:"name" validate:"required"`
	Domain       string `json:"domain"`
	ProjectName  string `json:"project_name"`
	CMS          string `json:"cms"`
	LocationCode int    `json:"location_code" validate:"omitempty,gt=0"`
	Notes        string `json:"notes"`
}

func (req *SaveClientRequest) toRecord(id uuid.UUID) db.Client {
	return db.Client{
		ID:           id,
		Name:         req.Name,
		Domain:       req.Domain,
		ProjectName:  req.ProjectName,
		CMS:          req.CMS,
		LocationCode: req.LocationCode,
		Notes:        req.Notes,
	}
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.clients.ListClients(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if clients == nil {
		clients = []db.Client{}
	}
	s.jsonResponse(w, http.StatusOK, clients)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req SaveClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	saved, err := s.clients.SaveClient(r.Context(), req.toRecord(uuid.Nil))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	client, err := s.clients.GetClient(r.Context(), clientID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if client == nil {
		notFound := &ErrClientNotFound{ClientID: clientID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, client)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	var req SaveClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	existing, err := s.clients.GetClient(r.Context(), clientID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing == nil {
		notFound := &ErrClientNotFound{ClientID: clientID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	saved, err := s.clients.SaveClient(r.Context(), req.toRecord(clientID))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	if err := s.clients.DeleteClient(r.Context(), clientID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
