package server

import "github.com/Captain-Vikram/To-Do-List/models"

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error      string             `json:"error"`
	Violations []models.Violation `json:"violations"`
}

// DraftRequest is the payload for creating or replacing a task. Priority
// and status are names; empty values take the form defaults.
type DraftRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// Draft converts the request, reporting unknown priority or status names
// as violations alongside the regular draft checks.
func (req DraftRequest) Draft() (models.Draft, []models.Violation) {
	d := models.NewDraft()
	d.Title = req.Title
	d.Description = req.Description
	d.DueDate = req.DueDate

	var bad []models.Violation
	if req.Priority != "" {
		p, err := models.ParsePriority(req.Priority)
		if err != nil {
			bad = append(bad, models.Violation{
				Code: models.ViolationInvalidPriority, Field: "priority",
				Message: "Priority must be low, medium or high",
			})
		}
		d.Priority = p
	}
	if req.Status != "" {
		st, err := models.ParseStatus(req.Status)
		if err != nil {
			bad = append(bad, models.Violation{
				Code: models.ViolationInvalidStatus, Field: "status",
				Message: "Status must be pending, in_progress or completed",
			})
		}
		d.Status = st
	}

	res := models.ValidateDraft(d)
	return d.Normalized(), append(res.Violations, bad...)
}

// StatusRequest is the payload for PATCH /api/tasks/{id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// QueryRequest updates any subset of the query state.
type QueryRequest struct {
	Search   *string `json:"searchQuery"`
	Status   *string `json:"statusFilter"`
	Priority *string `json:"priorityFilter"`
	SortBy   *string `json:"sortBy"`
	Order    *string `json:"sortOrder"`
}

type countResponse struct {
	Count int `json:"count"`
}

type appearanceResponse struct {
	DarkMode  bool `json:"isDarkMode"`
	Persisted bool `json:"persisted"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
