package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SearchHandler handles the personnel directory search
type SearchHandler struct {
	personnelRepo *database.PersonnelRepository
	logger        *logrus.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(personnelRepo *database.PersonnelRepository, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		personnelRepo: personnelRepo,
		logger:        logger,
	}
}

// Search runs a directory lookup and renders one result block per match. The
// search text is comma-split into independent terms.
// POST /search.php
func (h *SearchHandler) Search(c *gin.Context) {
	searchText := c.PostForm("search_text")
	if searchText == "" {
		searchText = c.Query("search_text")
	}
	filterParam := c.PostForm("filter")
	if filterParam == "" {
		filterParam = c.Query("filter")
	}

	terms := strings.Split(searchText, ",")
	filter := parseFilter(filterParam)

	results, err := h.personnelRepo.Search(terms, filter)
	if err != nil {
		h.logger.WithError(err).Error("Personnel search failed")
		fragment(c, queryFailedMessage)
		return
	}

	if len(results) == 0 {
		fragment(c, "<p>Sorry. No results were found.</p>")
		return
	}

	var out strings.Builder
	for _, p := range results {
		out.WriteString(`<p id="search_result"><strong>`)
		out.WriteString(p.FirstName + " " + p.LastName)
		out.WriteString(`</strong><br />Department: `)
		out.WriteString(p.DeptName)
		out.WriteString(`<br />Cubicle #: `)
		out.WriteString(p.CubicleNumber)
		out.WriteString(`<br />E-mail: `)
		out.WriteString(p.Email.String)
		out.WriteString(`<br />Phone #: `)
		out.WriteString(p.Phone.String)
		out.WriteString(`<input type="hidden" id="employeeID" value="`)
		out.WriteString(p.EmployeeID)
		out.WriteString(`"></p><hr id="results_divider" />`)
	}

	fragment(c, out.String())
}

func parseFilter(param string) models.SearchFilter {
	switch param {
	case string(models.FilterDepartment):
		return models.FilterDepartment
	case string(models.FilterEmail):
		return models.FilterEmail
	case string(models.FilterPhone):
		return models.FilterPhone
	default:
		return models.FilterName
	}
}
