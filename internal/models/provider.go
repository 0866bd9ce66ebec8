package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProviderTypeOwner      = "owner"
	ProviderTypeWorkshop   = "workshop"
	ProviderTypeIndividual = "individual"
	ProviderTypeCashier    = "cashier"
	ProviderTypeTechnician = "technician"
	ProviderTypeFreelancer = "freelancer"
)

const (
	ProviderStatusPending  = "pending"
	ProviderStatusApproved = "approved"
	ProviderStatusRejected = "rejected"
)

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(latitude, longitude float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

type Employee struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Provider is a document of the register_workshop collection. Which name
// fields are populated depends on Type.
type Provider struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type                  string             `bson:"type" json:"type"`
	WorkshopName          string             `bson:"workshopName,omitempty" json:"workshopName,omitempty"`
	OwnerName             string             `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	CRNumber              string             `bson:"crNumber,omitempty" json:"crNumber,omitempty"`
	VATNumber             string             `bson:"vatNumber,omitempty" json:"vatNumber,omitempty"`
	FullName              string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	IqamaID               string             `bson:"iqamaId,omitempty" json:"iqamaId,omitempty"`
	Email                 string             `bson:"email,omitempty" json:"email,omitempty"`
	MobileNumber          string             `bson:"mobileNumber,omitempty" json:"mobileNumber,omitempty"`
	PasswordHash          string             `bson:"password,omitempty" json:"-"`
	Services              StringList         `bson:"services" json:"services"`
	OffersOutdoorServices bool               `bson:"offersOutdoorServices" json:"offersOutdoorServices"`
	Location              *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	Address               string             `bson:"address,omitempty" json:"address,omitempty"`
	LogoURL               string             `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	FrontPhotoURL         string             `bson:"frontPhotoUrl,omitempty" json:"frontPhotoUrl,omitempty"`
	Employees             []Employee         `bson:"employees,omitempty" json:"employees,omitempty"`
	Rating                float64            `bson:"rating" json:"rating"`
	Status                string             `bson:"status" json:"status"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
}

// DisplayName picks the first populated name field.
func (p Provider) DisplayName() string {
	return FirstNonEmpty(p.FullName, p.OwnerName, p.WorkshopName)
}

// EmployeeByName matches case-insensitively and ignores surrounding spaces.
func (p Provider) EmployeeByName(name string) (Employee, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Employee{}, false
	}
	for _, e := range p.Employees {
		if strings.EqualFold(strings.TrimSpace(e.Name), name) {
			return e, true
		}
	}
	return Employee{}, false
}

func IsProviderType(t string) bool {
	switch t {
	case ProviderTypeOwner, ProviderTypeWorkshop, ProviderTypeIndividual,
		ProviderTypeCashier, ProviderTypeTechnician, ProviderTypeFreelancer:
		return true
	}
	return false
}

// IsProviderRole reports whether a login role bypasses the customer lookup.
func IsProviderRole(role string) bool {
	switch role {
	case ProviderTypeOwner, ProviderTypeCashier, ProviderTypeTechnician, ProviderTypeFreelancer:
		return true
	}
	return false
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
