package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderStatusPending = "pending"

// VehicleDetails accepts either an object or a free-text description from
// clients.
type VehicleDetails struct {
	Make        string `bson:"make,omitempty" json:"make,omitempty"`
	Model       string `bson:"model,omitempty" json:"model,omitempty"`
	Year        string `bson:"year,omitempty" json:"year,omitempty"`
	PlateNumber string `bson:"plateNumber,omitempty" json:"plateNumber,omitempty"`
	Color       string `bson:"color,omitempty" json:"color,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

func (v *VehicleDetails) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = VehicleDetails{}
		return nil
	}
	if trimmed[0] == '"' {
		var description string
		if err := json.Unmarshal(trimmed, &description); err != nil {
			return err
		}
		*v = VehicleDetails{Description: strings.TrimSpace(description)}
		return nil
	}

	type plain VehicleDetails
	var decoded struct {
		plain
		Year json.RawMessage `json:"year,omitempty"`
	}
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*v = VehicleDetails(decoded.plain)
	v.Year = strings.Trim(string(bytes.TrimSpace(decoded.Year)), `"`)
	if v.Year == "null" {
		v.Year = ""
	}
	return nil
}

func (v VehicleDetails) IsZero() bool {
	return v == VehicleDetails{}
}

// OrderProduct is a catalog line snapshot attached to an order.
type OrderProduct struct {
	ItemID   string  `bson:"itemId,omitempty" json:"itemId,omitempty"`
	Name     string  `bson:"name" json:"name"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
}

// Order keeps a denormalized snapshot of the workshop at creation time.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerID     string             `bson:"customerId" json:"customerId"`
	WorkshopID     string             `bson:"workshopId" json:"workshopId"`
	WorkshopName   string             `bson:"workshopName" json:"workshopName"`
	WorkshopLogo   *string            `bson:"workshopLogo" json:"workshopLogo"`
	TechnicianName string             `bson:"technicianName,omitempty" json:"technicianName,omitempty"`
	TechnicianID   string             `bson:"technicianId,omitempty" json:"technicianId,omitempty"`
	VehicleDetails VehicleDetails     `bson:"vehicleDetails" json:"vehicleDetails"`
	ServiceType    string             `bson:"serviceType" json:"serviceType"`
	Products       []OrderProduct     `bson:"products" json:"products"`
	NotSure        bool               `bson:"notSure" json:"notSure"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
