package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// WishlistItem is unique per (email, estateId) pair; the handler rejects
// duplicates at insert time since the store enforces no such constraint.
type WishlistItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	EstateID string             `bson:"estateId" json:"estateId"`
}
