package models

// Engineer is reference data: the roster of engineers that can be named
// on a service record. Kept as a table rather than a compiled-in list so
// the roster can change without a deploy.
type Engineer struct {
	BaseUUIDModel
	Name   string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Active bool   `gorm:"not null;default:true"                  json:"active"`
}
