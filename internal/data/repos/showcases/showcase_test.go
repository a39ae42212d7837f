package showcases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openvp/showcase-backend/internal/data/repos/testutil"
	types "github.com/openvp/showcase-backend/internal/domain"
)

func TestShowcaseRepoGetBySlug(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewShowcaseRepo(tx, testutil.Logger(t))

	tenant := testutil.SeedTenant(t, ctx, tx, "Slug Tenant")
	seeded := testutil.SeedShowcase(t, ctx, tx, "repo-slug-probe", tenant.ID)

	got, err := repo.GetBySlug(ctx, nil, "repo-slug-probe")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got == nil || got.ID != seeded.ID {
		t.Fatalf("wrong row: %+v", got)
	}

	missing, err := repo.GetBySlug(ctx, nil, "no-such-slug")
	if err != nil {
		t.Fatalf("missing slug errored: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing slug returned a row: %+v", missing)
	}
}

func TestShowcaseRepoSetApprovalAndListUnapproved(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewShowcaseRepo(tx, testutil.Logger(t))

	tenant := testutil.SeedTenant(t, ctx, tx, "Approval Tenant")
	approver := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com")
	pending := testutil.SeedShowcase(t, ctx, tx, "repo-pending", tenant.ID)
	other := testutil.SeedShowcase(t, ctx, tx, "repo-stays-pending", tenant.ID)

	unapproved, err := repo.ListUnapproved(ctx, nil)
	if err != nil {
		t.Fatalf("list unapproved: %v", err)
	}
	ids := showcaseIDs(unapproved)
	if !containsID(ids, pending.ID) || !containsID(ids, other.ID) {
		t.Fatalf("seeded showcases missing from unapproved list")
	}

	when := time.Now().UTC()
	if err := repo.SetApproval(ctx, nil, pending.ID, approver.ID, when); err != nil {
		t.Fatalf("set approval: %v", err)
	}

	rows, err := repo.GetByIDs(ctx, nil, []uuid.UUID{pending.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("read back: rows=%d err=%v", len(rows), err)
	}
	if rows[0].ApprovedByID == nil || *rows[0].ApprovedByID != approver.ID {
		t.Fatalf("approver not persisted")
	}
	if rows[0].ApprovedAt == nil {
		t.Fatalf("approval time not persisted")
	}

	unapproved, err = repo.ListUnapproved(ctx, nil)
	if err != nil {
		t.Fatalf("list unapproved after approval: %v", err)
	}
	ids = showcaseIDs(unapproved)
	if containsID(ids, pending.ID) {
		t.Fatalf("approved showcase still unapproved")
	}
	if !containsID(ids, other.ID) {
		t.Fatalf("untouched showcase dropped from unapproved list")
	}
}

func showcaseIDs(rows []*types.Showcase) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
