package models

import "time"

// Category is the equipment-category variant tag. One table holds every
// record kind; the tag replaces the per-category tables of the legacy
// system.
type Category string

const (
	CategoryService    Category = "service"
	CategorySpotWelder Category = "spot_welder"
	CategoryLift       Category = "lift"
	CategoryCompressor Category = "compressor"
)

var Categories = []Category{
	CategoryService,
	CategorySpotWelder,
	CategoryLift,
	CategoryCompressor,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ServiceRecord is one compliance/service certificate for a company's
// equipment. Up to eight flat name/serial slots hang off a record; an
// absent slot is stored as an empty string, never NULL.
type ServiceRecord struct {
	BaseUUIDModel
	Category          Category   `gorm:"type:varchar(20);not null;index"   json:"category"`
	CompanyID         string     `gorm:"type:varchar(64);not null;index"   json:"company_id"`
	CertificateNumber string     `gorm:"type:varchar(50);index"            json:"certificate_number"`
	ServiceDate       time.Time  `gorm:"not null;index"                    json:"service_date"`
	RetestDate        *time.Time `gorm:""                                  json:"retest_date"`
	EngineerName      string     `gorm:"type:varchar(255)"                 json:"engineer_name"`
	Notes             string     `gorm:"type:text"                         json:"notes"`

	Equipment1Name   string `gorm:"type:varchar(255)" json:"equipment1_name"`
	Equipment1Serial string `gorm:"type:varchar(255)" json:"equipment1_serial"`
	Equipment2Name   string `gorm:"type:varchar(255)" json:"equipment2_name"`
	Equipment2Serial string `gorm:"type:varchar(255)" json:"equipment2_serial"`
	Equipment3Name   string `gorm:"type:varchar(255)" json:"equipment3_name"`
	Equipment3Serial string `gorm:"type:varchar(255)" json:"equipment3_serial"`
	Equipment4Name   string `gorm:"type:varchar(255)" json:"equipment4_name"`
	Equipment4Serial string `gorm:"type:varchar(255)" json:"equipment4_serial"`
	Equipment5Name   string `gorm:"type:varchar(255)" json:"equipment5_name"`
	Equipment5Serial string `gorm:"type:varchar(255)" json:"equipment5_serial"`
	Equipment6Name   string `gorm:"type:varchar(255)" json:"equipment6_name"`
	Equipment6Serial string `gorm:"type:varchar(255)" json:"equipment6_serial"`
	Equipment7Name   string `gorm:"type:varchar(255)" json:"equipment7_name"`
	Equipment7Serial string `gorm:"type:varchar(255)" json:"equipment7_serial"`
	Equipment8Name   string `gorm:"type:varchar(255)" json:"equipment8_name"`
	Equipment8Serial string `gorm:"type:varchar(255)" json:"equipment8_serial"`
}

func (ServiceRecord) TableName() string {
	return "service_records"
}

type EquipmentSlot struct {
	Name   string `json:"name"`
	Serial string `json:"serial"`
}

// Slots returns the flat slot columns in order, including empty ones.
func (r *ServiceRecord) Slots() []EquipmentSlot {
	return []EquipmentSlot{
		{r.Equipment1Name, r.Equipment1Serial},
		{r.Equipment2Name, r.Equipment2Serial},
		{r.Equipment3Name, r.Equipment3Serial},
		{r.Equipment4Name, r.Equipment4Serial},
		{r.Equipment5Name, r.Equipment5Serial},
		{r.Equipment6Name, r.Equipment6Serial},
		{r.Equipment7Name, r.Equipment7Serial},
		{r.Equipment8Name, r.Equipment8Serial},
	}
}

// SetSlots writes up to eight slots back into the flat columns, blanking
// the remainder so a full-record update cannot leave stale slots behind.
func (r *ServiceRecord) SetSlots(slots []EquipmentSlot) {
	var padded [8]EquipmentSlot
	copy(padded[:], slots)
	r.Equipment1Name, r.Equipment1Serial = padded[0].Name, padded[0].Serial
	r.Equipment2Name, r.Equipment2Serial = padded[1].Name, padded[1].Serial
	r.Equipment3Name, r.Equipment3Serial = padded[2].Name, padded[2].Serial
	r.Equipment4Name, r.Equipment4Serial = padded[3].Name, padded[3].Serial
	r.Equipment5Name, r.Equipment5Serial = padded[4].Name, padded[4].Serial
	r.Equipment6Name, r.Equipment6Serial = padded[5].Name, padded[5].Serial
	r.Equipment7Name, r.Equipment7Serial = padded[6].Name, padded[6].Serial
	r.Equipment8Name, r.Equipment8Serial = padded[7].Name, padded[7].Serial
}

// RecordRequest is the write payload shared by create and update. Dates
// arrive as strings because the clients send several formats; parsing and
// fallback rules live in the controller.
type RecordRequest struct {
	CompanyID         string          `json:"company_id"`
	CertificateNumber string          `json:"certificate_number"`
	ServiceDate       string          `json:"service_date"`
	RetestDate        string          `json:"retest_date"`
	RetestOverride    bool            `json:"retest_date_override"`
	EngineerName      string          `json:"engineer_name"`
	Notes             string          `json:"notes"`
	Equipment         []EquipmentSlot `json:"equipment"`
}

// RecordResponse decorates a stored record with its derived status. The
// status is a projection of retest_date against "now" and is never
// persisted.
type RecordResponse struct {
	ServiceRecord
	Status    string `json:"status"`
	ErrorInfo string `json:"error_info,omitempty"`
}
