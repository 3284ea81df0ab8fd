package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/caceasy/caceasy-core/internal/app/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdmin = "dev_admi..."

func TestApprovePayoutIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mason := env.seedUser(t, "+919200000001")
	env.creditUser(t, mason.ID, 500)

	payout, err := env.wallet.RequestWithdrawal(ctx, mason.ID, models.PartyTypeUser, 200, models.PayoutDetails{})
	require.NoError(t, err)

	approved, err := env.payouts.Approve(ctx, payout.ID, testAdmin, &models.PayoutApproveRequest{Reference: "UTR-1"})
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusApproved, approved.Status)
	require.NotNil(t, approved.Reference)
	assert.Equal(t, "UTR-1", *approved.Reference)

	_, err = env.payouts.Approve(ctx, payout.ID, testAdmin, &models.PayoutApproveRequest{Reference: "UTR-2"})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	_, err = env.payouts.Reject(ctx, payout.ID, testAdmin, &models.PayoutRejectRequest{Notes: "late"})
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	var stored models.Payout
	require.NoError(t, env.db.Where("id = ?", payout.ID).First(&stored).Error)
	assert.Equal(t, "UTR-1", *stored.Reference)

	balance, err := env.wallet.Balance(ctx, mason.ID, models.PartyTypeUser)
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance)
	assert.Equal(t, int64(1), env.count(t, &models.AdminAudit{}, "action = ?", models.AuditActionPayoutApproved))
}

func TestApprovePayoutRequiresReference(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.payouts.Approve(context.Background(), uuid.New(), testAdmin, &models.PayoutApproveRequest{})
	assert.True(t, errors.IsKind(err, errors.KindBadRequest))
}

func TestRejectPayoutRestoresMasonBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mason := env.seedUser(t, "+919200000002")
	env.creditUser(t, mason.ID, 500)

	payout, err := env.wallet.RequestWithdrawal(ctx, mason.ID, models.PartyTypeUser, 200, models.PayoutDetails{})
	require.NoError(t, err)

	rejected, err := env.payouts.Reject(ctx, payout.ID, testAdmin, &models.PayoutRejectRequest{Notes: "account mismatch"})
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusRejected, rejected.Status)

	balance, err := env.wallet.Balance(ctx, mason.ID, models.PartyTypeUser)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)

	var reversal models.Transaction
	require.NoError(t, env.db.Where("type = ?", models.TransactionTypePayoutReversal).First(&reversal).Error)
	assert.Equal(t, int64(200), reversal.Amount)
	require.NotNil(t, reversal.ReferenceID)
	assert.Equal(t, payout.ID, *reversal.ReferenceID)

	var entry models.AdminAudit
	require.NoError(t, env.db.Where("action = ?", models.AuditActionPayoutRejected).First(&entry).Error)
	assert.Equal(t, testAdmin, entry.AdminIdentifier)
	require.NotNil(t, entry.Payload)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(*entry.Payload), &payload))
	assert.Equal(t, "account mismatch", payload["notes"])

	// rejection is terminal too
	_, err = env.payouts.Reject(ctx, payout.ID, testAdmin, &models.PayoutRejectRequest{Notes: "again"})
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	balance, err = env.wallet.Balance(ctx, mason.ID, models.PartyTypeUser)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestRejectDealerPayoutRestoresDealerBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	dealer := env.seedDealer(t, "+918200000001")
	env.creditDealer(t, dealer.ID, 100)

	payout, err := env.wallet.RequestWithdrawal(ctx, dealer.ID, models.PartyTypeDealer, 80, models.PayoutDetails{})
	require.NoError(t, err)

	_, err = env.payouts.Reject(ctx, payout.ID, testAdmin, &models.PayoutRejectRequest{Notes: "duplicate"})
	require.NoError(t, err)

	balance, err := env.wallet.Balance(ctx, dealer.ID, models.PartyTypeDealer)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestApproveDealerPayoutOnlyMatchesDealerPayouts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mason := env.seedUser(t, "+919200000003")
	env.creditUser(t, mason.ID, 100)
	dealer := env.seedDealer(t, "+918200000002")
	env.creditDealer(t, dealer.ID, 100)

	masonPayout, err := env.wallet.RequestWithdrawal(ctx, mason.ID, models.PartyTypeUser, 50, models.PayoutDetails{})
	require.NoError(t, err)
	dealerPayout, err := env.wallet.RequestWithdrawal(ctx, dealer.ID, models.PartyTypeDealer, 50, models.PayoutDetails{})
	require.NoError(t, err)

	_, err = env.payouts.ApproveDealerPayout(ctx, masonPayout.ID, testAdmin, &models.PayoutApproveRequest{Reference: "NEFT-1"})
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	approved, err := env.payouts.ApproveDealerPayout(ctx, dealerPayout.ID, testAdmin, &models.PayoutApproveRequest{Reference: "NEFT-2"})
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusApproved, approved.Status)
	assert.Equal(t, int64(1), env.count(t, &models.AdminAudit{}, "action = ?", models.AuditActionDealerPayoutApproved))

	// approval does not move the dealer ledger again
	balance, err := env.wallet.Balance(ctx, dealer.ID, models.PartyTypeDealer)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)
}

func TestListPayoutsFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mason := env.seedUser(t, "+919200000004")
	env.creditUser(t, mason.ID, 100)
	dealer := env.seedDealer(t, "+918200000003")
	env.creditDealer(t, dealer.ID, 100)

	first, err := env.wallet.RequestWithdrawal(ctx, mason.ID, models.PartyTypeUser, 10, models.PayoutDetails{})
	require.NoError(t, err)
	_, err = env.wallet.RequestWithdrawal(ctx, mason.ID, models.PartyTypeUser, 10, models.PayoutDetails{})
	require.NoError(t, err)
	_, err = env.wallet.RequestWithdrawal(ctx, dealer.ID, models.PartyTypeDealer, 10, models.PayoutDetails{})
	require.NoError(t, err)
	_, err = env.payouts.Approve(ctx, first.ID, testAdmin, &models.PayoutApproveRequest{Reference: "R"})
	require.NoError(t, err)

	all, err := env.payouts.ListPayouts(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending := models.PayoutStatusPending
	pendingOnly, err := env.payouts.ListPayouts(ctx, &pending, nil)
	require.NoError(t, err)
	assert.Len(t, pendingOnly, 2)

	dealerType := models.PartyTypeDealer
	dealerOnly, err := env.payouts.ListPayouts(ctx, nil, &dealerType)
	require.NoError(t, err)
	require.Len(t, dealerOnly, 1)
	require.NotNil(t, dealerOnly[0].DealerPhone)
	assert.Equal(t, dealer.Phone, *dealerOnly[0].DealerPhone)
}
