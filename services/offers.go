package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
)

// OfferService owns the offer state machine: pending -> accepted -> bought,
// or pending -> rejected. Accepting an offer broadcasts rejected to every
// sibling offer on the same estate, which keeps at most one offer per estate
// in accepted/bought at any time. A later accept supersedes an earlier one
// until the sale closes; once any offer is bought the decision is final.
type OfferService struct {
	estates   store.Collection
	offers    store.Collection
	projector *PropertyStatusService
	log       *slog.Logger
}

func NewOfferService(s store.Store, projector *PropertyStatusService, log *slog.Logger) *OfferService {
	return &OfferService{
		estates:   s.Estates(),
		offers:    s.Offers(),
		projector: projector,
		log:       log,
	}
}

type SubmitOfferRequest struct {
	EstateID   string    `json:"estateId" validate:"required"`
	BuyerName  string    `json:"buyer_name" validate:"required"`
	BuyerEmail string    `json:"buyer_email" validate:"required,email"`
	Amount     float64   `json:"offered_amount" validate:"required,gt=0"`
	BuyingDate time.Time `json:"buying_date"`
}

// Submit creates a pending offer against an existing estate. The estate's
// title, location and agent name are copied onto the offer and never
// refreshed afterwards.
func (s *OfferService) Submit(ctx context.Context, req SubmitOfferRequest) (*models.Offer, error) {
	oid, err := primitive.ObjectIDFromHex(req.EstateID)
	if err != nil {
		return nil, fmt.Errorf("%w: estate id %q", ErrValidation, req.EstateID)
	}

	var estate models.Estate
	if err := s.estates.FindOne(ctx, bson.M{"_id": oid}, &estate); err != nil {
		if errors.Is(err, store.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: estate %s", ErrNotFound, req.EstateID)
		}
		return nil, fmt.Errorf("find estate: %w", err)
	}

	if !estate.PriceRange.IsZero() && !estate.PriceRange.Contains(req.Amount) {
		return nil, fmt.Errorf("%w: %.2f not in [%.2f, %.2f]",
			ErrInvalidRange, req.Amount, estate.PriceRange.Min, estate.PriceRange.Max)
	}

	offer := models.Offer{
		EstateID:         req.EstateID,
		PropertyTitle:    estate.Title,
		PropertyLocation: estate.Location,
		AgentName:        estate.AgentName,
		OfferedAmount:    req.Amount,
		BuyerName:        req.BuyerName,
		BuyerEmail:       req.BuyerEmail,
		BuyingDate:       req.BuyingDate,
		Status:           models.OfferPending,
	}
	id, err := s.offers.InsertOne(ctx, offer)
	if err != nil {
		return nil, fmt.Errorf("insert offer: %w", err)
	}
	offer.ID = id
	return &offer, nil
}

// Decide accepts or rejects an offer. Rejection touches only the given offer.
// Acceptance sets the offer accepted and then unconditionally rejects every
// other offer on the same estate, whatever state they were in; the two writes
// are independent single-document steps, so a failure between them is
// reported as a partial cascade and the same call is retried to converge.
func (s *OfferService) Decide(ctx context.Context, offerID, decision string) error {
	if decision != models.OfferAccepted && decision != models.OfferRejected {
		return fmt.Errorf("%w: decision %q", ErrValidation, decision)
	}
	oid, err := primitive.ObjectIDFromHex(offerID)
	if err != nil {
		return fmt.Errorf("%w: offer id %q", ErrValidation, offerID)
	}

	var offer models.Offer
	if err := s.offers.FindOne(ctx, bson.M{"_id": oid}, &offer); err != nil {
		if errors.Is(err, store.ErrNoDocuments) {
			return fmt.Errorf("%w: offer %s", ErrNotFound, offerID)
		}
		return fmt.Errorf("find offer: %w", err)
	}

	// Bought is terminal; re-deciding a paid offer would orphan the sale record.
	if offer.Status == models.OfferBought {
		return fmt.Errorf("%w: offer %s already bought", ErrSaleClosed, offerID)
	}

	if decision == models.OfferRejected {
		if _, err := s.offers.UpdateOne(ctx, bson.M{"_id": oid},
			bson.M{"$set": bson.M{"status": models.OfferRejected}}); err != nil {
			return fmt.Errorf("reject offer: %w", err)
		}
		return nil
	}

	// Accepting after the sale closed would strand a paid buyer.
	sold, err := s.offers.CountDocuments(ctx, bson.M{
		"estateId": offer.EstateID,
		"status":   models.OfferBought,
	})
	if err != nil {
		return fmt.Errorf("check sale state: %w", err)
	}
	if sold > 0 {
		return fmt.Errorf("%w: estate %s", ErrSaleClosed, offer.EstateID)
	}

	if _, err := s.offers.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": models.OfferAccepted}}); err != nil {
		return fmt.Errorf("accept offer: %w", err)
	}

	rejected, err := s.offers.UpdateMany(ctx,
		bson.M{"estateId": offer.EstateID, "_id": bson.M{"$ne": oid}},
		bson.M{"$set": bson.M{"status": models.OfferRejected}})
	if err != nil {
		s.log.Warn("sibling rejection failed after accept",
			"offer", offerID, "estate", offer.EstateID, "error", err)
		return &PartialCascadeError{Steps: []CascadeStep{
			{Name: "accept offer"},
			{Name: "reject sibling offers", Err: err},
		}}
	}
	s.log.Info("offer accepted", "offer", offerID, "estate", offer.EstateID, "siblings_rejected", rejected)
	return nil
}

// FinalizePurchase records a confirmed payment: the estate's accepted offer
// becomes bought with the transaction reference, and the estate is marked
// bought. NOT_FOUND when no offer is currently accepted for the estate, which
// covers double submissions and stale clients.
func (s *OfferService) FinalizePurchase(ctx context.Context, estateID, transactionID string) error {
	var offer models.Offer
	err := s.offers.FindOne(ctx, bson.M{
		"estateId": estateID,
		"status":   models.OfferAccepted,
	}, &offer)
	if err != nil {
		if errors.Is(err, store.ErrNoDocuments) {
			return fmt.Errorf("%w: no accepted offer for estate %s", ErrNotFound, estateID)
		}
		return fmt.Errorf("find accepted offer: %w", err)
	}

	if _, err := s.offers.UpdateOne(ctx, bson.M{"_id": offer.ID},
		bson.M{"$set": bson.M{"status": models.OfferBought, "transactionId": transactionID}}); err != nil {
		return fmt.Errorf("mark offer bought: %w", err)
	}

	if err := s.projector.MarkBought(ctx, estateID); err != nil {
		s.log.Warn("estate projection failed after offer purchase",
			"estate", estateID, "offer", offer.ID.Hex(), "error", err)
		return &PartialCascadeError{Steps: []CascadeStep{
			{Name: "mark offer bought"},
			{Name: "mark estate bought", Err: err},
		}}
	}
	return nil
}
