package handlers

import (
	"database/sql"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/models"
	"github.com/officelayout/directory-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

// ObjectHandler handles inserting, editing, moving and removing employees and
// point objects. One endpoint per verb, dispatched on the objectType
// parameter, matching the legacy client's calls.
type ObjectHandler struct {
	personnelRepo *database.PersonnelRepository
	mapObjectRepo *database.MapObjectRepository
	validator     *validator.FieldValidator
	logger        *logrus.Logger
}

// NewObjectHandler creates a new ObjectHandler
func NewObjectHandler(
	personnelRepo *database.PersonnelRepository,
	mapObjectRepo *database.MapObjectRepository,
	fieldValidator *validator.FieldValidator,
	logger *logrus.Logger,
) *ObjectHandler {
	return &ObjectHandler{
		personnelRepo: personnelRepo,
		mapObjectRepo: mapObjectRepo,
		validator:     fieldValidator,
		logger:        logger,
	}
}

// pointKinds maps the objectType parameter to a point-object table. Employee
// is handled separately; everything else on the map is one of these.
var pointKinds = map[string]models.ObjectKind{
	"Peripheral": models.KindPeripheral,
	"Utility":    models.KindUtility,
	"Pantry":     models.KindPantry,
	"Room":       models.KindRoom,
	"Emergency":  models.KindEmergency,
}

// Insert adds an employee or a point object.
// GET /insert.php
func (h *ObjectHandler) Insert(c *gin.Context) {
	objectType := c.Query("objectType")
	if objectType == "" {
		fragment(c, "<p>Object to be inserted cannot be determined.</p>")
		return
	}

	if objectType == "Employee" {
		h.insertEmployee(c)
		return
	}

	if kind, ok := pointKinds[objectType]; ok {
		h.insertPointObject(c, kind)
		return
	}

	fragment(c, "<p>Object to be inserted cannot be determined.</p>")
}

func (h *ObjectHandler) insertEmployee(c *gin.Context) {
	employeeID := c.Query("employeeID")
	cubeNumber := c.Query("cubeNumber")
	firstName := c.Query("firstName")
	lastName := c.Query("lastName")
	deptName := c.Query("deptName")
	phone := c.Query("phone")
	email := c.Query("email")

	if employeeID == "" || cubeNumber == "" || firstName == "" || lastName == "" || (phone == "" && email == "") {
		fragment(c, "<p>Please fill all fields.</p>")
		return
	}

	if h.validator.Name(firstName) != nil || h.validator.Name(lastName) != nil {
		fragment(c, "Name is not a recognized legal variant.")
		return
	}

	if err := h.validator.Contact(phone, email); err != nil {
		switch err {
		case validator.ErrInvalidEmail:
			fragment(c, "Not a valid e-mail address.")
		default:
			fragment(c, "Not a valid phone number.")
		}
		return
	}

	if deptName == "" {
		deptName = models.SentinelDepartment
	}

	p := &models.Personnel{
		EmployeeID:    employeeID,
		FirstName:     firstName,
		LastName:      lastName,
		DeptName:      deptName,
		Email:         nullable(email),
		Phone:         nullable(phone),
		CubicleNumber: cubeNumber,
	}
	cub := &models.Cubicle{
		CubicleNumber: cubeNumber,
		Floor:         intOrDefault(c.Query("floor"), 1),
		Longitude:     floatOrDefault(c.Query("long"), 0),
		Latitude:      floatOrDefault(c.Query("lat"), 0),
	}

	if err := h.personnelRepo.InsertEmployee(p, cub); err != nil {
		h.logger.WithError(err).Error("Employee insert failed")
		fragment(c, queryFailedMessage)
		return
	}

	fragment(c, "<p>Employee added.</p>")
}

func (h *ObjectHandler) insertPointObject(c *gin.Context, kind models.ObjectKind) {
	objType := c.Query("type")
	floor := c.Query("floor")
	lat := c.Query("lat")
	long := c.Query("long")
	iconName := c.Query("iconName")

	if objType == "" || floor == "" || lat == "" || long == "" || iconName == "" {
		fragment(c, "<p>Please fill all fields.</p>")
		return
	}

	obj := &models.MapObject{
		Kind:      kind,
		Type:      objType,
		Floor:     intOrDefault(floor, 1),
		IconID:    iconName,
		Longitude: floatOrDefault(long, 0),
		Latitude:  floatOrDefault(lat, 0),
	}

	if _, err := h.mapObjectRepo.Insert(obj); err != nil {
		h.logger.WithError(err).Error("Point object insert failed")
		fragment(c, queryFailedMessage)
		return
	}

	fragment(c, "<p>"+string(kind)+" added.</p>")
}

// Edit rewrites an employee's fields or a point object's type and icon.
// GET /edit.php
func (h *ObjectHandler) Edit(c *gin.Context) {
	objectType := c.Query("objectType")
	if objectType == "" {
		fragment(c, "<p>Object to be edited cannot be determined.</p>")
		return
	}

	if objectType == "Employee" {
		h.editEmployee(c)
		return
	}

	if kind, ok := pointKinds[objectType]; ok {
		h.editPointObject(c, kind)
		return
	}

	fragment(c, "<p>Object to be edited cannot be determined.</p>")
}

func (h *ObjectHandler) editEmployee(c *gin.Context) {
	employeeID := c.Query("EmployeeID")
	deptName := c.Query("deptName")
	firstName := c.Query("firstName")
	lastName := c.Query("lastName")
	cubicle := c.Query("cubicle")
	phone := c.Query("phone")
	email := c.Query("email")

	if employeeID == "" || deptName == "" || firstName == "" || lastName == "" || cubicle == "" || (phone == "" && email == "") {
		fragment(c, "<p>Please fill all fields.</p>")
		return
	}

	if h.validator.Name(firstName) != nil || h.validator.Name(lastName) != nil {
		fragment(c, "Name is not a recognized legal variant.")
		return
	}

	if err := h.validator.Contact(phone, email); err != nil {
		switch err {
		case validator.ErrInvalidEmail:
			fragment(c, "Not a valid e-mail address.")
		default:
			fragment(c, "Not a valid phone number.")
		}
		return
	}

	p := &models.Personnel{
		EmployeeID:    employeeID,
		FirstName:     firstName,
		LastName:      lastName,
		DeptName:      deptName,
		Email:         nullable(email),
		Phone:         nullable(phone),
		CubicleNumber: cubicle,
	}

	if err := h.personnelRepo.UpdateEmployee(p); err != nil {
		h.logger.WithError(err).Error("Employee edit failed")
		fragment(c, queryFailedMessage)
		return
	}

	fragment(c, "<p>Employee edited.</p>")
}

func (h *ObjectHandler) editPointObject(c *gin.Context, kind models.ObjectKind) {
	id, ok := objectID(c)
	objType := c.Query("type")
	iconName := c.Query("iconName")

	if !ok || objType == "" || iconName == "" {
		fragment(c, "<p>Please fill all fields.</p>")
		return
	}

	if err := h.mapObjectRepo.UpdateTypeIcon(kind, id, objType, iconName); err != nil {
		h.logger.WithError(err).Error("Point object edit failed")
		fragment(c, queryFailedMessage)
		return
	}

	fragment(c, "<p>"+string(kind)+" edited.</p>")
}

// Move repositions a point object on its floor plan.
// GET /update.php
func (h *ObjectHandler) Move(c *gin.Context) {
	objectType := c.Query("objectType")
	if objectType == "" {
		fragment(c, "<p>Object to be updated cannot be determined.</p>")
		return
	}

	kind, ok := pointKinds[objectType]
	if !ok {
		fragment(c, "<p>Object to be updated cannot be determined.</p>")
		return
	}

	id, idOK := objectID(c)
	lat := c.Query("lat")
	long := c.Query("long")
	if !idOK || lat == "" || long == "" {
		fragment(c, "<p>Please fill all fields.</p>")
		return
	}

	if err := h.mapObjectRepo.Move(kind, id, floatOrDefault(long, 0), floatOrDefault(lat, 0)); err != nil {
		h.logger.WithError(err).Error("Point object move failed")
		fragment(c, queryFailedMessage)
		return
	}

	fragment(c, "<p>"+string(kind)+" updated.</p>")
}

// Remove deletes an employee or a point object. Removing something already
// gone is a quiet success.
// GET /remove.php
func (h *ObjectHandler) Remove(c *gin.Context) {
	objectType := c.Query("objectType")
	if objectType == "" {
		fragment(c, "<p>Object to be removed cannot be determined.</p>")
		return
	}

	if objectType == "Employee" {
		employeeID := c.Query("EmployeeID")
		if employeeID == "" {
			fragment(c, "<p>Please fill all fields.</p>")
			return
		}
		if err := h.personnelRepo.RemoveEmployee(employeeID); err != nil {
			h.logger.WithError(err).Error("Employee remove failed")
			fragment(c, queryFailedMessage)
			return
		}
		fragment(c, "<p>Employee removed.</p>")
		return
	}

	if kind, ok := pointKinds[objectType]; ok {
		id, idOK := objectID(c)
		if !idOK {
			fragment(c, "<p>Please fill all fields.</p>")
			return
		}
		if err := h.mapObjectRepo.Remove(kind, id); err != nil {
			h.logger.WithError(err).Error("Point object remove failed")
			fragment(c, queryFailedMessage)
			return
		}
		fragment(c, "<p>"+string(kind)+" removed.</p>")
		return
	}

	fragment(c, "<p>Object to be removed cannot be determined.</p>")
}

// objectID reads the point-object ID. The legacy client sends periphID for
// peripherals; newer callers use objectID for the other kinds.
func objectID(c *gin.Context) (int64, bool) {
	raw := c.Query("periphID")
	if raw == "" {
		raw = c.Query("objectID")
	}
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func intOrDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func floatOrDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
