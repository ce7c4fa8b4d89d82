package server

import (
	"github.com/entrhq/rangewizard/pkg/browser"
	"github.com/entrhq/rangewizard/pkg/rangebuilder"
)

type createRequest struct {
	Action string `json:"action"`
}

type createResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type getRangeRequest struct {
	Action    string `json:"action"`
	SessionID string `json:"session_id"`
	rangebuilder.Request
}

type getRangeResponse struct {
	SessionID       string `json:"session_id"`
	Status          string `json:"status"`
	Message         string `json:"message"`
	ActionPerformed string `json:"action_performed"`
}

type sessionListResponse struct {
	Sessions []browser.SessionInfo `json:"sessions"`
	Total    int                   `json:"total"`
}

type messageResponse struct {
	Message string `json:"message"`
}
