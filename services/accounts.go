package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
)

// AccountService runs the cascades triggered by privileged account actions.
// The store gives no referential integrity, so every cascade fans out over
// the user's email, which is the join key on estates (agent_email), offers
// (buyer_email) and reviews (userEmail). Steps are independent idempotent
// deletes; a partial failure is reported and the call re-issued as-is.
type AccountService struct {
	users   store.Collection
	estates store.Collection
	offers  store.Collection
	reviews store.Collection
	log     *slog.Logger
}

func NewAccountService(s store.Store, log *slog.Logger) *AccountService {
	return &AccountService{
		users:   s.Users(),
		estates: s.Estates(),
		offers:  s.Offers(),
		reviews: s.Reviews(),
		log:     log,
	}
}

// MarkFraudulent flags the user and removes everything tied to their email:
// listed estates, submitted offers and authored reviews. The user record
// itself stays, flagged. Returns the number of estates removed.
func (s *AccountService) MarkFraudulent(ctx context.Context, userID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: user id %q", ErrValidation, userID)
	}

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": oid}, &user); err != nil {
		if errors.Is(err, store.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return 0, fmt.Errorf("find user: %w", err)
	}

	steps := []CascadeStep{{Name: "flag user"}}
	_, steps[0].Err = s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isFraud": true}})

	estateStep := CascadeStep{Name: "delete estates"}
	estateStep.Deleted, estateStep.Err = s.estates.DeleteMany(ctx, bson.M{"agent_email": user.Email})
	steps = append(steps, estateStep)

	offerStep := CascadeStep{Name: "delete offers"}
	offerStep.Deleted, offerStep.Err = s.offers.DeleteMany(ctx, bson.M{"buyer_email": user.Email})
	steps = append(steps, offerStep)

	reviewStep := CascadeStep{Name: "delete reviews"}
	reviewStep.Deleted, reviewStep.Err = s.reviews.DeleteMany(ctx, bson.M{"userEmail": user.Email})
	steps = append(steps, reviewStep)

	for _, step := range steps {
		if step.Err != nil {
			s.log.Warn("fraud cascade incomplete", "user", userID, "step", step.Name, "error", step.Err)
			return estateStep.Deleted, &PartialCascadeError{Steps: steps}
		}
	}

	s.log.Info("user marked fraudulent", "user", userID, "email", user.Email,
		"estates_deleted", estateStep.Deleted, "offers_deleted", offerStep.Deleted,
		"reviews_deleted", reviewStep.Deleted)
	return estateStep.Deleted, nil
}

// PurgeUser removes the user record and their listed estates. The identifier
// may be the store id or the email. Offers and reviews are left behind for
// record-keeping, unlike the fraud cascade.
func (s *AccountService) PurgeUser(ctx context.Context, identifier string) error {
	filter := bson.M{"email": identifier}
	if oid, err := primitive.ObjectIDFromHex(identifier); err == nil {
		filter = bson.M{"_id": oid}
	}

	var user models.User
	if err := s.users.FindOne(ctx, filter, &user); err != nil {
		if errors.Is(err, store.ErrNoDocuments) {
			return fmt.Errorf("%w: user %s", ErrNotFound, identifier)
		}
		return fmt.Errorf("find user: %w", err)
	}

	steps := []CascadeStep{{Name: "delete user"}}
	steps[0].Deleted, steps[0].Err = s.users.DeleteOne(ctx, bson.M{"_id": user.ID})

	estateStep := CascadeStep{Name: "delete estates"}
	estateStep.Deleted, estateStep.Err = s.estates.DeleteMany(ctx, bson.M{"agent_email": user.Email})
	steps = append(steps, estateStep)

	for _, step := range steps {
		if step.Err != nil {
			s.log.Warn("purge cascade incomplete", "user", identifier, "step", step.Name, "error", step.Err)
			return &PartialCascadeError{Steps: steps}
		}
	}

	s.log.Info("user purged", "user", identifier, "estates_deleted", estateStep.Deleted)
	return nil
}
