package api

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	authHandler    authHandler
	projectHandler projectHandler
	skillHandler   skillHandler
	contactHandler contactHandler
	adminHandler   adminHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// AckResponse acknowledges a write that returns no document
type AckResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	ID      *uuid.UUID `json:"id,omitempty"`
}

func ack(message string) AckResponse {
	return AckResponse{Status: "success", Message: message}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type StatsResponse struct {
	TotalProjects  int64 `json:"totalProjects"`
	TotalSkills    int64 `json:"totalSkills"`
	UnreadMessages int64 `json:"unreadMessages"`
	TotalViews     int64 `json:"totalViews"`
}

type ViewsResponse struct {
	TotalViews int64 `json:"totalViews"`
}

type SeedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	database.SeedResult
}

// ProjectRequest is the body of project create and full replace
type ProjectRequest struct {
	Title               string   `json:"title"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailedDescription"`
	TechStack           []string `json:"techStack"`
	Images              []string `json:"images"`
	GithubURL           *string  `json:"githubUrl"`
	LiveURL             *string  `json:"liveUrl"`
	Featured            bool     `json:"featured"`
	Category            string   `json:"category"`
}

func (req ProjectRequest) toProject() (*models.Project, error) {
	project := &models.Project{
		Title:               strings.TrimSpace(req.Title),
		Name:                strings.TrimSpace(req.Name),
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
		TechStack:           models.CleanStrings(req.TechStack),
		Images:              models.CleanStrings(req.Images),
		GithubURL:           models.OptionalString(req.GithubURL),
		LiveURL:             models.OptionalString(req.LiveURL),
		Featured:            req.Featured,
	}

	if err := requireFields(
		requiredField{"title", project.Title},
		requiredField{"name", project.Name},
		requiredField{"description", project.Description},
		requiredField{"detailedDescription", project.DetailedDescription},
	); err != nil {
		return nil, err
	}
	if len(project.TechStack) == 0 {
		return nil, errs.NewMissingRequiredFieldError("techStack")
	}
	if len(project.Images) == 0 {
		return nil, errs.NewMissingRequiredFieldError("images")
	}

	category, ok := models.ParseCategory(req.Category)
	if !ok {
		return nil, errs.NewInvalidFieldError("category", "must be one of web, mobile, ai, data, other")
	}
	project.Category = category

	return project, nil
}

// SkillRequest is the body of skill create and full replace. Featured
// defaults to true when omitted.
type SkillRequest struct {
	Title    string   `json:"title"`
	Icon     string   `json:"icon"`
	Skills   []string `json:"skills"`
	Count    *int     `json:"count"`
	Featured *bool    `json:"featured"`
}

func (req SkillRequest) toSkill() (*models.Skill, error) {
	skill := &models.Skill{
		Title:    strings.TrimSpace(req.Title),
		Icon:     strings.TrimSpace(req.Icon),
		Skills:   models.CleanStrings(req.Skills),
		Featured: true,
	}
	if req.Featured != nil {
		skill.Featured = *req.Featured
	}

	if err := requireFields(
		requiredField{"title", skill.Title},
		requiredField{"icon", skill.Icon},
	); err != nil {
		return nil, err
	}
	if len(skill.Skills) == 0 {
		return nil, errs.NewMissingRequiredFieldError("skills")
	}
	if req.Count == nil {
		return nil, errs.NewMissingRequiredFieldError("count")
	}
	if *req.Count < 1 {
		return nil, errs.NewInvalidFieldError("count", "must be a positive integer")
	}
	skill.Count = *req.Count

	return skill, nil
}

// ContactRequest is the public contact form submission
type ContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

func (req ContactRequest) toMessage() (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   models.OptionalString(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	if err := requireFields(
		requiredField{"name", msg.Name},
		requiredField{"email", msg.Email},
		requiredField{"subject", msg.Subject},
		requiredField{"message", msg.Message},
	); err != nil {
		return nil, err
	}
	if addr, err := mail.ParseAddress(msg.Email); err != nil || addr.Address != msg.Email {
		return nil, errs.NewInvalidFieldError("email", "must be a valid email address")
	}

	return msg, nil
}

// MarkReadRequest only accepts read=true; messages are never marked unread
type MarkReadRequest struct {
	Read *bool `json:"read"`
}

func (req MarkReadRequest) validate() error {
	if req.Read == nil {
		return errs.NewMissingRequiredFieldError("read")
	}
	if !*req.Read {
		return errs.NewInvalidFieldError("read", "messages can only be marked as read")
	}
	return nil
}

type requiredField struct {
	name  string
	value string
}

// requireFields reports the first blank field
func requireFields(fields ...requiredField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return errs.NewMissingRequiredFieldError(f.name)
		}
	}
	return nil
}
