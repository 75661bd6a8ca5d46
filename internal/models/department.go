package models

// Department groups personnel and selects the icon their markers use.
type Department struct {
	DeptName string `json:"dept_name" db:"DeptName"`
	IconID   string `json:"icon_id" db:"IconID"`
}

// Icon is static lookup data mapping an icon ID to its image path.
type Icon struct {
	IconID   string `json:"icon_id" db:"IconID"`
	IconPath string `json:"icon_path" db:"IconPath"`
}
