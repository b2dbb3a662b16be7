package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OfferPending  = "pending"
	OfferAccepted = "accepted"
	OfferRejected = "rejected"
	OfferBought   = "bought"
)

// Offer carries a snapshot of the property title/location/agent taken at
// submission time; the copy is never refreshed if the listing is edited later.
type Offer struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EstateID         string             `bson:"estateId" json:"estateId"`
	PropertyTitle    string             `bson:"property_title" json:"property_title"`
	PropertyLocation string             `bson:"property_location" json:"property_location"`
	AgentName        string             `bson:"agent_name" json:"agent_name"`
	OfferedAmount    float64            `bson:"offered_amount" json:"offered_amount"`
	BuyerName        string             `bson:"buyer_name" json:"buyer_name"`
	BuyerEmail       string             `bson:"buyer_email" json:"buyer_email"`
	BuyingDate       time.Time          `bson:"buying_date" json:"buying_date"`
	Status           string             `bson:"status" json:"status"`
	TransactionID    string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}
