package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EstateID           string             `bson:"estateId" json:"estateId" validate:"required"`
	UserName           string             `bson:"userName" json:"userName"`
	UserEmail          string             `bson:"userEmail" json:"userEmail"`
	UserProfilePicture string             `bson:"userProfilePicture" json:"userProfilePicture"`
	ReviewText         string             `bson:"reviewText" json:"reviewText"`
	Date               time.Time          `bson:"date" json:"date"`
}
