package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

const (
	SaleListed = "listed"
	SaleBought = "bought"
)

// PriceRange is the structured form of the price bounds. Older clients send a
// "min-max" string which is parsed once at the API boundary; documents always
// store the structured form.
type PriceRange struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

// Contains reports whether amount lies within the range, bounds inclusive.
func (r PriceRange) Contains(amount float64) bool {
	return amount >= r.Min && amount <= r.Max
}

// IsZero reports whether no bounds were set on the listing.
func (r PriceRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

type Estate struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title              string             `bson:"property_title" json:"property_title"`
	Location           string             `bson:"property_location" json:"property_location"`
	Image              string             `bson:"property_image" json:"property_image"`
	AgentName          string             `bson:"agent_name" json:"agent_name"`
	AgentEmail         string             `bson:"agent_email" json:"agent_email"`
	AgentImage         string             `bson:"agent_image" json:"agent_image"`
	PriceRange         PriceRange         `bson:"price_range" json:"price_range"`
	VerificationStatus string             `bson:"verification_status" json:"verification_status"`
	SaleStatus         string             `bson:"sale_status" json:"sale_status"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
