package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	BaseUUIDModel
	Login     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"login"`
	Password  string `gorm:"type:varchar(255);not null"             json:"-"`
	FirstName string `gorm:"type:varchar(100)"                      json:"firstName"`
	LastName  string `gorm:"type:varchar(100)"                      json:"lastName"`
	Role      string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CompanyID string `gorm:"type:varchar(64);index"                 json:"companyId"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
