package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOfferService(t *testing.T) (*OfferService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	projector := NewPropertyStatusService(mem)
	return NewOfferService(mem, projector, testLogger()), mem
}

func seedEstate(t *testing.T, mem *store.Memory, min, max float64) string {
	t.Helper()
	id, err := mem.Estates().InsertOne(context.Background(), models.Estate{
		Title:              "Lakeside Villa",
		Location:           "Dhanmondi, Dhaka",
		AgentName:          "Rafiq Ahmed",
		AgentEmail:         "rafiq@homehub.test",
		PriceRange:         models.PriceRange{Min: min, Max: max},
		VerificationStatus: models.VerificationVerified,
		SaleStatus:         models.SaleListed,
	})
	if err != nil {
		t.Fatalf("seed estate: %v", err)
	}
	return id.Hex()
}

func submitOffer(t *testing.T, svc *OfferService, estateID string, amount float64, buyer string) *models.Offer {
	t.Helper()
	offer, err := svc.Submit(context.Background(), SubmitOfferRequest{
		EstateID:   estateID,
		BuyerName:  buyer,
		BuyerEmail: buyer + "@buyers.test",
		Amount:     amount,
	})
	if err != nil {
		t.Fatalf("submit offer for %s: %v", buyer, err)
	}
	return offer
}

func getOffer(t *testing.T, mem *store.Memory, id primitive.ObjectID) models.Offer {
	t.Helper()
	var offer models.Offer
	if err := mem.Offers().FindOne(context.Background(), bson.M{"_id": id}, &offer); err != nil {
		t.Fatalf("fetch offer %s: %v", id.Hex(), err)
	}
	return offer
}

func assertSingleAccepted(t *testing.T, mem *store.Memory, estateID string) {
	t.Helper()
	var offers []models.Offer
	if err := mem.Offers().Find(context.Background(), bson.M{"estateId": estateID}, &offers); err != nil {
		t.Fatalf("list offers: %v", err)
	}
	var live int
	for _, o := range offers {
		if o.Status == models.OfferAccepted || o.Status == models.OfferBought {
			live++
		}
	}
	if live > 1 {
		t.Fatalf("invariant broken: %d offers accepted/bought for estate %s", live, estateID)
	}
}

func TestSubmitDenormalizesEstateSnapshot(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)

	offer := submitOffer(t, svc, estateID, 150000, "karim")
	if offer.Status != models.OfferPending {
		t.Errorf("expected pending, got %q", offer.Status)
	}
	if offer.PropertyTitle != "Lakeside Villa" || offer.PropertyLocation != "Dhanmondi, Dhaka" || offer.AgentName != "Rafiq Ahmed" {
		t.Errorf("estate snapshot not copied onto offer: %+v", offer)
	}
	if offer.ID.IsZero() {
		t.Error("offer id not assigned")
	}
}

func TestSubmitRangeEnforcement(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)

	cases := []struct {
		name    string
		amount  float64
		wantErr error
	}{
		{"at min", 100000, nil},
		{"at max", 200000, nil},
		{"inside", 157000, nil},
		{"below min", 99999.99, ErrInvalidRange},
		{"above max", 200000.01, ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), SubmitOfferRequest{
				EstateID:   estateID,
				BuyerName:  "karim",
				BuyerEmail: "karim@buyers.test",
				Amount:     tc.amount,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("amount %v: got %v, want %v", tc.amount, err, tc.wantErr)
			}
		})
	}
}

func TestSubmitWithoutBoundsSkipsRangeCheck(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 0, 0)

	if _, err := svc.Submit(context.Background(), SubmitOfferRequest{
		EstateID:   estateID,
		BuyerName:  "karim",
		BuyerEmail: "karim@buyers.test",
		Amount:     999999,
	}); err != nil {
		t.Errorf("unbounded listing should accept any amount: %v", err)
	}
}

func TestSubmitUnknownEstate(t *testing.T) {
	svc, _ := newOfferService(t)

	_, err := svc.Submit(context.Background(), SubmitOfferRequest{
		EstateID:   primitive.NewObjectID().Hex(),
		BuyerName:  "karim",
		BuyerEmail: "karim@buyers.test",
		Amount:     150000,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDecideAcceptRejectsAllSiblings(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)

	a := submitOffer(t, svc, estateID, 120000, "alia")
	b := submitOffer(t, svc, estateID, 150000, "babar")
	c := submitOffer(t, svc, estateID, 180000, "chitra")

	if err := svc.Decide(context.Background(), a.ID.Hex(), models.OfferAccepted); err != nil {
		t.Fatalf("decide: %v", err)
	}

	if got := getOffer(t, mem, a.ID).Status; got != models.OfferAccepted {
		t.Errorf("offer A: got %q, want accepted", got)
	}
	for _, sibling := range []primitive.ObjectID{b.ID, c.ID} {
		if got := getOffer(t, mem, sibling).Status; got != models.OfferRejected {
			t.Errorf("sibling %s: got %q, want rejected", sibling.Hex(), got)
		}
	}
	assertSingleAccepted(t, mem, estateID)
}

func TestDecideLaterAcceptSupersedes(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)

	a := submitOffer(t, svc, estateID, 120000, "alia")
	b := submitOffer(t, svc, estateID, 150000, "babar")
	c := submitOffer(t, svc, estateID, 180000, "chitra")

	if err := svc.Decide(context.Background(), a.ID.Hex(), models.OfferAccepted); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if err := svc.Decide(context.Background(), b.ID.Hex(), models.OfferAccepted); err != nil {
		t.Fatalf("second accept: %v", err)
	}

	want := map[primitive.ObjectID]string{
		a.ID: models.OfferRejected,
		b.ID: models.OfferAccepted,
		c.ID: models.OfferRejected,
	}
	for id, status := range want {
		if got := getOffer(t, mem, id).Status; got != status {
			t.Errorf("offer %s: got %q, want %q", id.Hex(), got, status)
		}
	}
	assertSingleAccepted(t, mem, estateID)
}

func TestDecideRejectTouchesOnlyTarget(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)

	a := submitOffer(t, svc, estateID, 120000, "alia")
	b := submitOffer(t, svc, estateID, 150000, "babar")

	if err := svc.Decide(context.Background(), a.ID.Hex(), models.OfferRejected); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if got := getOffer(t, mem, a.ID).Status; got != models.OfferRejected {
		t.Errorf("offer A: got %q, want rejected", got)
	}
	if got := getOffer(t, mem, b.ID).Status; got != models.OfferPending {
		t.Errorf("offer B should stay pending, got %q", got)
	}
}

func TestDecideUnknownOffer(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)
	a := submitOffer(t, svc, estateID, 120000, "alia")

	err := svc.Decide(context.Background(), primitive.NewObjectID().Hex(), models.OfferAccepted)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if got := getOffer(t, mem, a.ID).Status; got != models.OfferPending {
		t.Errorf("existing offer mutated by failed decide: %q", got)
	}
}

func TestDecideBadDecisionValue(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)
	a := submitOffer(t, svc, estateID, 120000, "alia")

	err := svc.Decide(context.Background(), a.ID.Hex(), "bought")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestDecideAcceptAfterSaleClosed(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)

	a := submitOffer(t, svc, estateID, 120000, "alia")
	b := submitOffer(t, svc, estateID, 150000, "babar")

	if err := svc.Decide(context.Background(), a.ID.Hex(), models.OfferAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := svc.FinalizePurchase(context.Background(), estateID, "txn_123"); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	err := svc.Decide(context.Background(), b.ID.Hex(), models.OfferAccepted)
	if !errors.Is(err, ErrSaleClosed) {
		t.Errorf("got %v, want ErrSaleClosed", err)
	}
	if got := getOffer(t, mem, a.ID).Status; got != models.OfferBought {
		t.Errorf("bought offer mutated: %q", got)
	}
	assertSingleAccepted(t, mem, estateID)
}

func TestDecideRejectAfterPurchase(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)

	a := submitOffer(t, svc, estateID, 120000, "alia")
	if err := svc.Decide(context.Background(), a.ID.Hex(), models.OfferAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := svc.FinalizePurchase(context.Background(), estateID, "txn_321"); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	err := svc.Decide(context.Background(), a.ID.Hex(), models.OfferRejected)
	if !errors.Is(err, ErrSaleClosed) {
		t.Errorf("got %v, want ErrSaleClosed", err)
	}
	bought := getOffer(t, mem, a.ID)
	if bought.Status != models.OfferBought {
		t.Errorf("bought offer mutated to %q", bought.Status)
	}
	if bought.TransactionID != "txn_321" {
		t.Errorf("transaction reference lost: %q", bought.TransactionID)
	}
}

func TestFinalizePurchase(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)

	a := submitOffer(t, svc, estateID, 120000, "alia")
	if err := svc.Decide(context.Background(), a.ID.Hex(), models.OfferAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := svc.FinalizePurchase(context.Background(), estateID, "txn_456"); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	bought := getOffer(t, mem, a.ID)
	if bought.Status != models.OfferBought {
		t.Errorf("offer status: got %q, want bought", bought.Status)
	}
	if bought.TransactionID != "txn_456" {
		t.Errorf("transaction id: got %q, want txn_456", bought.TransactionID)
	}

	oid, _ := primitive.ObjectIDFromHex(estateID)
	var estate models.Estate
	if err := mem.Estates().FindOne(context.Background(), bson.M{"_id": oid}, &estate); err != nil {
		t.Fatalf("fetch estate: %v", err)
	}
	if estate.SaleStatus != models.SaleBought {
		t.Errorf("estate sale status: got %q, want bought", estate.SaleStatus)
	}
}

func TestFinalizePurchaseWithoutAcceptedOffer(t *testing.T) {
	svc, mem := newOfferService(t)
	estateID := seedEstate(t, mem, 100000, 200000)
	a := submitOffer(t, svc, estateID, 120000, "alia")

	err := svc.FinalizePurchase(context.Background(), estateID, "txn_789")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if got := getOffer(t, mem, a.ID).Status; got != models.OfferPending {
		t.Errorf("pending offer mutated by failed finalize: %q", got)
	}

	oid, _ := primitive.ObjectIDFromHex(estateID)
	var estate models.Estate
	if err := mem.Estates().FindOne(context.Background(), bson.M{"_id": oid}, &estate); err != nil {
		t.Fatalf("fetch estate: %v", err)
	}
	if estate.SaleStatus != models.SaleListed {
		t.Errorf("estate mutated by failed finalize: %q", estate.SaleStatus)
	}
}
