package service

import (
	"errors"
	"testing"

	"doypal/internal/models"
	"doypal/internal/repository"

	"gorm.io/gorm"
)

func newRedemptionService(t *testing.T) (*RedemptionService, *repository.PointsRepository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	points := repository.NewPointsRepository(db)
	return NewRedemptionService(db, points), points, db
}

func TestRedeemHappyPath(t *testing.T) {
	svc, points, db := newRedemptionService(t)
	createEvent(t, db, 20)
	reward := createReward(t, db, "Movie night", 15)

	res, err := svc.Redeem(reward.ID, nil)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if res.PreviousBalance != 20 || res.NewBalance != 5 || res.PointsSpent != 15 {
		t.Errorf("balances = %d -> %d spent %d, want 20 -> 5 spent 15",
			res.PreviousBalance, res.NewBalance, res.PointsSpent)
	}
	if res.Redemption.Status != models.RedemptionActive {
		t.Errorf("Status = %q, want active", res.Redemption.Status)
	}
	if res.Redemption.PointsSpent != 15 {
		t.Errorf("PointsSpent = %d, want 15", res.Redemption.PointsSpent)
	}

	s, err := points.Summary(nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.AvailablePoints != 5 {
		t.Errorf("AvailablePoints = %d, want 5", s.AvailablePoints)
	}
}

func TestRedeemInsufficientPoints(t *testing.T) {
	svc, _, db := newRedemptionService(t)
	createEvent(t, db, 10)
	reward := createReward(t, db, "Bicycle", 50)

	_, err := svc.Redeem(reward.ID, nil)
	var insufficient *InsufficientPointsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Redeem = %v, want InsufficientPointsError", err)
	}
	if insufficient.Required != 50 || insufficient.Current != 10 || insufficient.Needed != 40 {
		t.Errorf("detail = %+v, want {50 10 40}", *insufficient)
	}

	// Nothing was written.
	var count int64
	if err := db.Model(&models.Redemption{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("redemptions = %d, want 0 after failed redeem", count)
	}
}

func TestRedeemChecksNetBalance(t *testing.T) {
	svc, _, db := newRedemptionService(t)
	createEvent(t, db, 20)
	cheap := createReward(t, db, "Sticker", 15)
	second := createReward(t, db, "Candy", 10)

	if _, err := svc.Redeem(cheap.ID, nil); err != nil {
		t.Fatalf("first Redeem: %v", err)
	}
	// Gross total is still 20, but only 5 remain.
	_, err := svc.Redeem(second.ID, nil)
	var insufficient *InsufficientPointsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("second Redeem = %v, want InsufficientPointsError", err)
	}
	if insufficient.Current != 5 {
		t.Errorf("Current = %d, want 5 after prior spend", insufficient.Current)
	}
}

func TestRedeemInactiveReward(t *testing.T) {
	svc, _, db := newRedemptionService(t)
	createEvent(t, db, 100)
	reward := createReward(t, db, "Retired", 10)
	if err := db.Model(reward).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate reward: %v", err)
	}

	if _, err := svc.Redeem(reward.ID, nil); !errors.Is(err, ErrRewardNotFound) {
		t.Errorf("Redeem inactive = %v, want ErrRewardNotFound", err)
	}
	if _, err := svc.Redeem(999, nil); !errors.Is(err, ErrRewardNotFound) {
		t.Errorf("Redeem missing = %v, want ErrRewardNotFound", err)
	}
}

func TestRedemptionSnapshotSurvivesReprice(t *testing.T) {
	svc, points, db := newRedemptionService(t)
	createEvent(t, db, 30)
	reward := createReward(t, db, "Pizza", 10)

	res, err := svc.Redeem(reward.ID, nil)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if err := db.Model(reward).Update("point_cost", 99).Error; err != nil {
		t.Fatalf("reprice reward: %v", err)
	}

	var red models.Redemption
	if err := db.First(&red, res.Redemption.ID).Error; err != nil {
		t.Fatalf("reload redemption: %v", err)
	}
	if red.PointsSpent != 10 {
		t.Errorf("PointsSpent = %d after reprice, want original 10", red.PointsSpent)
	}
	s, err := points.Summary(nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.AvailablePoints != 20 {
		t.Errorf("AvailablePoints = %d, want 20 (snapshot, not new price)", s.AvailablePoints)
	}
}

func TestWithdrawRestoresBalance(t *testing.T) {
	svc, points, db := newRedemptionService(t)
	createEvent(t, db, 25)
	reward := createReward(t, db, "Zoo trip", 25)

	res, err := svc.Redeem(reward.ID, nil)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	w, err := svc.Withdraw(res.Redemption.ID)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if w.PointsRefunded != 25 || w.RewardName != "Zoo trip" {
		t.Errorf("withdraw = %+v, want 25 points / Zoo trip", *w)
	}

	var red models.Redemption
	if err := db.First(&red, res.Redemption.ID).Error; err != nil {
		t.Fatalf("reload redemption: %v", err)
	}
	if red.Status != models.RedemptionWithdrawn {
		t.Errorf("Status = %q, want withdrawn", red.Status)
	}
	if red.PointsSpent != 25 {
		t.Errorf("PointsSpent = %d, want snapshot 25 kept on withdraw", red.PointsSpent)
	}
	s, err := points.Summary(nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.AvailablePoints != 25 {
		t.Errorf("AvailablePoints = %d, want 25 after refund", s.AvailablePoints)
	}
}

func TestWithdrawIsTerminal(t *testing.T) {
	svc, _, db := newRedemptionService(t)
	createEvent(t, db, 25)
	reward := createReward(t, db, "Book", 10)

	res, err := svc.Redeem(reward.ID, nil)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if _, err := svc.Withdraw(res.Redemption.ID); err != nil {
		t.Fatalf("first Withdraw: %v", err)
	}
	if _, err := svc.Withdraw(res.Redemption.ID); !errors.Is(err, ErrAlreadyWithdrawn) {
		t.Errorf("second Withdraw = %v, want ErrAlreadyWithdrawn", err)
	}
}

func TestWithdrawMissing(t *testing.T) {
	svc, _, _ := newRedemptionService(t)
	if _, err := svc.Withdraw(404); !errors.Is(err, ErrRedemptionNotFound) {
		t.Errorf("Withdraw(404) = %v, want ErrRedemptionNotFound", err)
	}
}
