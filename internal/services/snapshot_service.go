package services

import (
	"database/sql"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/models"
)

// snapshotSection describes one branch of the snapshot document: the element
// name, the columns selected (possibly table-qualified), and the tables they
// come from. Column order is part of the client contract.
type snapshotSection struct {
	name     string
	columns  []string
	from     string
	perFloor bool
}

// The section list mirrors what the map client was built against. Element
// names and column sets must not change.
var snapshotSections = []snapshotSection{
	{
		name: "EmployeeFloor",
		columns: []string{
			"EmployeeID", "Cubicle.CubicleNumber", "FirstName", "LastName",
			"Personnel.DeptName", "Email", "Phone", "Latitude", "Longitude",
			"Cubicle.Floor", "Icons.IconID", "IconPath",
		},
		from:     "Personnel natural join Cubicle natural join Department natural join Icons",
		perFloor: true,
	},
	{
		name:     "EmergencyFloor",
		columns:  []string{"EmergencyID", "Icons.IconID", "IconPath", "Type", "Longitude", "Latitude", "Floor"},
		from:     "Emergency natural join Icons",
		perFloor: true,
	},
	{
		name:     "PantryFloor",
		columns:  []string{"PantryID", "Icons.IconID", "Longitude", "IconPath", "Latitude", "Floor"},
		from:     "Pantry natural join Icons",
		perFloor: true,
	},
	{
		name:     "PeripheralsFloor",
		columns:  []string{"PeriphID", "Type", "Floor", "Icons.IconID", "IconPath", "Longitude", "Latitude"},
		from:     "Peripherals natural join Icons",
		perFloor: true,
	},
	{
		name:     "RoomFloor",
		columns:  []string{"RoomID", "Type", "Icons.IconID", "IconPath", "Longitude", "Latitude", "Floor"},
		from:     "Room natural join Icons",
		perFloor: true,
	},
	{
		name:     "UtilitiesFloor",
		columns:  []string{"UtilID", "Type", "Icons.IconID", "IconPath", "Longitude", "Latitude", "Floor"},
		from:     "Utilities natural join Icons",
		perFloor: true,
	},
	{
		name:    "Department",
		columns: []string{"DeptName", "Icons.IconID", "IconPath"},
		from:    "Department natural join Icons ORDER BY DeptName",
	},
	{
		name:    "Icons",
		columns: []string{"IconID", "IconPath"},
		from:    "Icons",
	},
}

// SnapshotService serializes the entire floor/personnel/department/icon state
// into one XML document per request. It only ever reads; there is no caching.
type SnapshotService struct {
	db database.DB
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(db database.DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// WriteSnapshot streams the full document to w. One query runs per
// (entity type x floor) plus the two floor-independent sections.
func (s *SnapshotService) WriteSnapshot(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "Everything"}}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("failed to write snapshot root: %w", err)
	}

	for _, section := range snapshotSections {
		if section.perFloor {
			for floor := 1; floor <= models.NumFloors; floor++ {
				name := section.name + strconv.Itoa(floor)
				if err := s.writeSection(enc, name, section, floor); err != nil {
					return err
				}
			}
			continue
		}
		if err := s.writeSection(enc, section.name, section, 0); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("failed to close snapshot root: %w", err)
	}

	return enc.Flush()
}

// writeSection runs one section query and emits its wrapper element with one
// child element per row, attributes taken verbatim from the row.
func (s *SnapshotService) writeSection(enc *xml.Encoder, name string, section snapshotSection, floor int) error {
	query := "SELECT " + strings.Join(section.columns, ", ") + " FROM " + section.from

	var rows *sql.Rows
	var err error
	if section.perFloor {
		rows, err = s.db.Query(query+" WHERE Floor = ?", floor)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	wrapper := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(wrapper); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	values := make([]interface{}, len(section.columns))
	scanTargets := make([]interface{}, len(section.columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", name, err)
		}

		row := xml.StartElement{Name: xml.Name{Local: name + "Row"}}
		for i, column := range section.columns {
			row.Attr = append(row.Attr, xml.Attr{
				Name:  xml.Name{Local: bareColumn(column)},
				Value: attributeValue(values[i]),
			})
		}
		if err := enc.EncodeToken(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
		if err := enc.EncodeToken(row.End()); err != nil {
			return fmt.Errorf("failed to close %s row: %w", name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read %s rows: %w", name, err)
	}

	if err := enc.EncodeToken(wrapper.End()); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	return nil
}

// bareColumn strips the table qualifier from a selected column, so
// "Icons.IconID" becomes the attribute "IconID".
func bareColumn(column string) string {
	if idx := strings.LastIndex(column, "."); idx >= 0 {
		return column[idx+1:]
	}
	return column
}

// attributeValue renders a scanned value the way the client expects: nulls
// become empty attributes, numbers print without an exponent.
func attributeValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
