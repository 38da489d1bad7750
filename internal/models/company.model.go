package models

type Company struct {
	BaseUUIDModel
	Name         string `gorm:"type:varchar(255);not null"  json:"name"`
	ContactName  string `gorm:"type:varchar(255)"           json:"contactName"`
	ContactEmail string `gorm:"type:varchar(255)"           json:"contactEmail"`
	Address      string `gorm:"type:text"                   json:"address"`
}

// CreateCompanyRequest onboards a customer company together with its
// first user account, in one transaction.
type CreateCompanyRequest struct {
	Name         string `json:"name"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	Address      string `json:"address"`

	UserLogin    string `json:"userLogin"`
	UserPassword string `json:"userPassword"`
}
