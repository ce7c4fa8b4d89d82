package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/entrhq/rangewizard/pkg/browser"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, messageResponse{
		Message: "GTO Wizard Browser Controller API",
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.cfg.Version,
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if status, err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, status, err)
		return
	}
	if req.Action != "create" {
		respondError(w, http.StatusBadRequest, fmt.Errorf("action must be 'create'"))
		return
	}

	info := s.registry.CreateSession()
	s.log.Infof("created session %s", info.ID)

	respondJSON(w, http.StatusOK, createResponse{
		SessionID: info.ID,
		Status:    string(info.Status),
		Message:   "Browser session created successfully. Browser is launching in background.",
	})
}

func (s *Server) handleGetRange(w http.ResponseWriter, r *http.Request) {
	var req getRangeRequest
	if status, err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, status, err)
		return
	}
	if req.Action != "get-range" {
		respondError(w, http.StatusBadRequest, fmt.Errorf("action must be 'get-range'"))
		return
	}

	info, ok := s.registry.GetSessionInfo(req.SessionID)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Errorf("session not found"))
		return
	}
	if info.Status != browser.StatusActive {
		respondError(w, http.StatusBadRequest, fmt.Errorf("session is not active"))
		return
	}

	session, ok := s.registry.GetSession(req.SessionID)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Errorf("session not found"))
		return
	}

	result, err := s.executor.Apply(session, &req.Request)
	if err != nil {
		// Unknown enum values and other pre-click failures surface
		// here; nothing was clicked.
		respondError(w, http.StatusInternalServerError,
			fmt.Errorf("failed to perform get-range action: %w", err))
		return
	}
	if len(result.Failures) > 0 {
		parts := make([]string, len(result.Failures))
		for i := range result.Failures {
			parts[i] = result.Failures[i].Error()
		}
		respondError(w, http.StatusInternalServerError,
			fmt.Errorf("failed to perform get-range action: %s", strings.Join(parts, "; ")))
		return
	}

	s.log.Infof("completed get-range on session %s: %s", req.SessionID, result.ActionPerformed)
	respondJSON(w, http.StatusOK, getRangeResponse{
		SessionID:       req.SessionID,
		Status:          "success",
		Message:         result.Message,
		ActionPerformed: result.ActionPerformed,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.registry.ListSessions()
	if sessions == nil {
		sessions = []browser.SessionInfo{}
	}
	respondJSON(w, http.StatusOK, sessionListResponse{
		Sessions: sessions,
		Total:    len(sessions),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	info, ok := s.registry.GetSessionInfo(sessionID)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Errorf("session not found"))
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := s.registry.CloseSession(sessionID); err != nil {
		if errors.Is(err, browser.ErrNotFound) {
			respondError(w, http.StatusNotFound, fmt.Errorf("session not found"))
			return
		}
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Session %s closed successfully", sessionID),
	})
}
