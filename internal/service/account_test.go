package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/ashishsoni123/eagle-bank-api/internal/service"
	"github.com/ashishsoni123/eagle-bank-api/internal/store"
)

var (
	accountNumberRe = regexp.MustCompile(`^01\d{6}$`)
	sortCodeRe      = regexp.MustCompile(`^[1-9]\d-[1-9]\d-[1-9]\d$`)
)

func TestOpenAccount(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	owner := newTestUser(t, mem, "owner@test.com")
	accounts := service.NewAccountService(mem, nil)

	account, err := accounts.Open(ctx, owner.ID, "Spending", "personal")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if !accountNumberRe.MatchString(account.AccountNumber) {
		t.Errorf("account number %q does not match 01 + 6 digits", account.AccountNumber)
	}
	if !sortCodeRe.MatchString(account.SortCode) {
		t.Errorf("sort code %q does not match dd-dd-dd", account.SortCode)
	}
	if account.Currency != "GBP" {
		t.Errorf("currency = %q, want GBP", account.Currency)
	}
	if !account.Balance.IsZero() {
		t.Errorf("balance = %s, want 0", account.Balance)
	}
	if account.AccountType != "personal" {
		t.Errorf("account type = %q, want personal", account.AccountType)
	}
	if account.OwnerID != owner.ID {
		t.Errorf("owner = %q, want %q", account.OwnerID, owner.ID)
	}
}

func TestOpenAccountUnknownOwner(t *testing.T) {
	mem := store.NewMemory()
	accounts := service.NewAccountService(mem, nil)

	if _, err := accounts.Open(context.Background(), "usr-missing", "Spending", "personal"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAccountNumbersUnique(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	owner := newTestUser(t, mem, "owner@test.com")
	accounts := service.NewAccountService(mem, nil)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		account, err := accounts.Open(ctx, owner.ID, "Spending", "personal")
		if err != nil {
			t.Fatal(err)
		}
		if seen[account.AccountNumber] {
			t.Fatalf("duplicate account number %q", account.AccountNumber)
		}
		seen[account.AccountNumber] = true
	}
}

func TestGetAccountOtherOwner(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	owner := newTestUser(t, mem, "owner@test.com")
	intruder := newTestUser(t, mem, "intruder@test.com")
	account := newTestAccount(t, mem, owner.ID)
	accounts := service.NewAccountService(mem, nil)

	// "Not yours" and "does not exist" must be indistinguishable.
	if _, err := accounts.Get(ctx, account.AccountNumber, intruder.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("get as intruder err = %v, want ErrNotFound", err)
	}
	if _, err := accounts.Get(ctx, "01999999", owner.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("get missing err = %v, want ErrNotFound", err)
	}
}

func TestUpdateAccountPartial(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	owner := newTestUser(t, mem, "owner@test.com")
	account := newTestAccount(t, mem, owner.ID)
	accounts := service.NewAccountService(mem, nil)

	updated, err := accounts.Update(ctx, account.AccountNumber, owner.ID, service.AccountPatch{Name: "Rainy Day"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Rainy Day" {
		t.Errorf("name = %q, want Rainy Day", updated.Name)
	}
	// Absent fields are no-ops, not resets.
	if updated.AccountType != account.AccountType {
		t.Errorf("account type changed to %q by a name-only patch", updated.AccountType)
	}
	if !updated.UpdatedAt.After(account.UpdatedAt) && !updated.UpdatedAt.Equal(account.UpdatedAt) {
		t.Errorf("updatedAt went backwards")
	}
}

func TestUpdateAccountOtherOwner(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	owner := newTestUser(t, mem, "owner@test.com")
	intruder := newTestUser(t, mem, "intruder@test.com")
	account := newTestAccount(t, mem, owner.ID)
	accounts := service.NewAccountService(mem, nil)

	if _, err := accounts.Update(ctx, account.AccountNumber, intruder.ID, service.AccountPatch{Name: "Hijacked"}); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCloseAccountCascades(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	owner := newTestUser(t, mem, "owner@test.com")
	account := newTestAccount(t, mem, owner.ID)
	accounts := service.NewAccountService(mem, nil)
	ledger := service.NewLedgerService(mem, nil)

	if _, err := ledger.Post(ctx, account.AccountNumber, owner.ID, dec(t, "10.00"), "deposit", "GBP", ""); err != nil {
		t.Fatal(err)
	}

	if err := accounts.Close(ctx, account.AccountNumber, owner.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := accounts.Get(ctx, account.AccountNumber, owner.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("closed account still resolvable: %v", err)
	}
	// The history goes with the account.
	txns, err := mem.Transactions().ByAccount(ctx, account.AccountNumber)
	if err != nil {
		t.Fatal(err)
	}
	if len(txns) != 0 {
		t.Fatalf("close left %d transactions behind", len(txns))
	}
}

func TestListAccountsOrder(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	owner := newTestUser(t, mem, "owner@test.com")
	other := newTestUser(t, mem, "other@test.com")
	accounts := service.NewAccountService(mem, nil)

	var opened []string
	for i := 0; i < 3; i++ {
		a, err := accounts.Open(ctx, owner.ID, "Spending", "personal")
		if err != nil {
			t.Fatal(err)
		}
		opened = append(opened, a.AccountNumber)
	}
	if _, err := accounts.Open(ctx, other.ID, "Other", "personal"); err != nil {
		t.Fatal(err)
	}

	listed, err := accounts.List(ctx, owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != len(opened) {
		t.Fatalf("listed %d accounts, want %d", len(listed), len(opened))
	}
	for i, a := range listed {
		if a.AccountNumber != opened[i] {
			t.Fatalf("listed[%d] = %q, want %q", i, a.AccountNumber, opened[i])
		}
	}
}
