package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// DepartmentHandler handles adding and removing departments
type DepartmentHandler struct {
	departmentRepo *database.DepartmentRepository
	logger         *logrus.Logger
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(departmentRepo *database.DepartmentRepository, logger *logrus.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// Add creates a department.
// GET /addDepartment.php
func (h *DepartmentHandler) Add(c *gin.Context) {
	objectType := c.Query("objectType")
	if objectType == "" {
		fragment(c, "<p>Error: No object to be added.</p>")
		return
	}

	departmentName := strings.TrimSpace(c.Query("departmentName"))
	iconID := strings.TrimSpace(c.Query("iconID"))

	if objectType != "Department" || departmentName == "" || iconID == "" {
		fragment(c, "<p>Error: Please fill all fields.</p>")
		return
	}

	dept := &models.Department{DeptName: departmentName, IconID: iconID}
	if err := h.departmentRepo.AddDepartment(dept); err != nil {
		h.logger.WithError(err).Error("Department insert failed")
		fragment(c, queryFailedMessage)
		return
	}

	fragment(c, "<p>Department added.</p>")
}

// Remove deletes a department, after a confirmation round trip when employees
// would be orphaned. Orphans are reassigned to the sentinel department before
// the delete, in one transaction.
// GET /removeDepartment.php
func (h *DepartmentHandler) Remove(c *gin.Context) {
	departmentName := c.Query("departmentName")
	sure := c.Query("sure")

	if departmentName == "" || sure == "" {
		fragment(c, "<p>Department and sureness value are both required.</p>")
		return
	}

	if departmentName == models.SentinelDepartment {
		fragment(c, "<p>Individuals without a department must be removed individually.</p>")
		return
	}

	switch sure {
	case "0":
		count, err := h.departmentRepo.OrphanCount(departmentName)
		if err != nil {
			h.logger.WithError(err).Error("Department orphan count failed")
			fragment(c, queryFailedMessage)
			return
		}
		fragment(c, fmt.Sprintf("<p>%d employees will be left without a department. Continue?</p>", count))
	case "1":
		if err := h.departmentRepo.RemoveDepartment(departmentName); err != nil {
			h.logger.WithError(err).Error("Department remove failed")
			fragment(c, queryFailedMessage)
			return
		}
		fragment(c, "<p>"+departmentName+" has been removed.</p>")
	case "2":
		fragment(c, "<p>"+departmentName+" will not be removed.</p>")
	default:
		fragment(c, "<p> Could not obtain truth value for user <br /> while attempting to remove "+departmentName+".</p>")
	}
}
