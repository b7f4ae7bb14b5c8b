package schema

import (
	"time"

	"github.com/google/uuid"
)

// DirectorateRegionID is the region acting as the central health directorate.
const DirectorateRegionID = "dsau"

type Region struct {
	ID   string `json:"id" gorm:"primary_key"`
	Name string `json:"name"`
}

type Organization struct {
	ID       string `json:"id" gorm:"primary_key"`
	Name     string `json:"name"`
	RegionID string `json:"region_id" gorm:"not null;index"`
}

// User belongs either to an organization or to a region.
type User struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	Name           string        `json:"name"`
	Email          string        `json:"email" gorm:"unique_index"`
	Role           Role          `json:"role" gorm:"type:text;not null"`
	OrganizationID *string       `json:"organization_id,omitempty"`
	Organization   *Organization `json:"organization,omitempty" gorm:"foreignkey:OrganizationID"`
	RegionID       *string       `json:"region_id,omitempty"`
	Region         *Region       `json:"region,omitempty" gorm:"foreignkey:RegionID"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Affiliation is the name shown next to the user in the audit trail. The
// region wins over the organization.
func (u *User) Affiliation() string {
	if u.Region != nil && u.Region.Name != "" {
		return u.Region.Name
	}
	if u.Organization != nil {
		return u.Organization.Name
	}
	return ""
}
