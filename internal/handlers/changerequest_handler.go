package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/middleware"
	"github.com/officelayout/directory-backend/internal/services"
	"github.com/officelayout/directory-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

// ChangeRequestHandler handles HR change-request submissions
type ChangeRequestHandler struct {
	changeRequests *services.ChangeRequestService
	validator      *validator.FieldValidator
	logger         *logrus.Logger
}

// NewChangeRequestHandler creates a new ChangeRequestHandler
func NewChangeRequestHandler(
	changeRequests *services.ChangeRequestService,
	fieldValidator *validator.FieldValidator,
	logger *logrus.Logger,
) *ChangeRequestHandler {
	return &ChangeRequestHandler{
		changeRequests: changeRequests,
		validator:      fieldValidator,
		logger:         logger,
	}
}

// Submit validates the form, then hands the request to the mail service. All
// validation problems are collected and reported together.
// POST /sendMail.php
func (h *ChangeRequestHandler) Submit(c *gin.Context) {
	user, ok := middleware.GetRequestUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login.php")
		return
	}

	req := &services.ChangeRequest{
		EmployeeID:    strings.TrimSpace(c.PostForm("employee_id")),
		CubicleNumber: strings.TrimSpace(c.PostForm("cubicleNum")),
		FirstName:     strings.TrimSpace(c.PostForm("first_name")),
		LastName:      strings.TrimSpace(c.PostForm("last_name")),
		Telephone:     strings.TrimSpace(c.PostForm("telephone")),
		Email:         strings.TrimSpace(c.PostForm("email")),
		Comments:      c.PostForm("comments"),
	}

	var problems []string

	if req.EmployeeID == "" || req.CubicleNumber == "" || req.FirstName == "" || req.LastName == "" ||
		(req.Telephone == "" && req.Email == "") {
		problems = append(problems, "Employee information invalid.<br />\n")
	}

	if req.FirstName != "" || req.LastName != "" {
		if h.validator.Name(req.FirstName) != nil || h.validator.Name(req.LastName) != nil {
			problems = append(problems, "Name is not a recognized legal variant.<br />\n")
		}
	}

	if req.Telephone != "" && h.validator.Phone(req.Telephone) != nil {
		problems = append(problems, "Not a valid phone number.<br />\n")
	}

	if req.Email != "" && h.validator.Email(req.Email) != nil {
		problems = append(problems, "Not a valid e-mail address.<br />\n")
	}

	if len(problems) > 0 {
		var body strings.Builder
		body.WriteString("<p>The following errors have occurred:<br />\n")
		for _, p := range problems {
			body.WriteString(p)
		}
		body.WriteString("</p>")
		fragment(c, body.String())
		return
	}

	if err := h.changeRequests.Submit(user.Username, req); err != nil {
		if errors.Is(err, services.ErrDuplicateEmployee) {
			fragment(c, "<p>There was more than one matching individual.</p>")
			return
		}
		h.logger.WithError(err).Error("Change request submission failed")
		fragment(c, queryFailedMessage)
		return
	}

	fragment(c, "<p><strong>Request Submitted</strong></p>\n<p>Thank you. Your request has been forwarded to the system administrators.</p>")
}
