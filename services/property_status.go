package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
)

// PropertyStatusService reflects decisions onto estate documents with a single
// conditional update. It is the only writer of verification_status and
// sale_status, so the offer code never touches estate documents directly.
type PropertyStatusService struct {
	estates store.Collection
}

func NewPropertyStatusService(s store.Store) *PropertyStatusService {
	return &PropertyStatusService{estates: s.Estates()}
}

func (s *PropertyStatusService) SetVerification(ctx context.Context, estateID, status string) error {
	if status != models.VerificationVerified && status != models.VerificationRejected {
		return fmt.Errorf("%w: verification status %q", ErrValidation, status)
	}
	return s.set(ctx, estateID, bson.M{"verification_status": status})
}

func (s *PropertyStatusService) MarkBought(ctx context.Context, estateID string) error {
	return s.set(ctx, estateID, bson.M{"sale_status": models.SaleBought})
}

func (s *PropertyStatusService) set(ctx context.Context, estateID string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(estateID)
	if err != nil {
		return fmt.Errorf("%w: estate id %q", ErrValidation, estateID)
	}
	fields["updatedAt"] = time.Now()
	matched, err := s.estates.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update estate status: %w", err)
	}
	if matched == 0 {
		return fmt.Errorf("%w: estate %s", ErrNotFound, estateID)
	}
	return nil
}
