package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clientdesk/internal/domain/entities"
	"clientdesk/internal/usecase/interfaces"
	mock_interfaces "clientdesk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func int64Ptr(v int64) *int64 { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func userIdent() Identity {
	return Identity{UserID: "user-1", Email: "user@example.com", Name: "User One"}
}

func adminIdent() Identity {
	return Identity{UserID: "admin-1", Email: "admin@example.com", Name: "Admin", IsAdmin: true}
}

func TestEstimateUseCase_Create(t *testing.T) {
	t.Run("empty title", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, "")
		_, err := uc.Create(context.Background(), userIdent(), CreateEstimateInput{Title: "   "})
		if !errors.Is(err, ErrInvalidEstimateTitle) {
			t.Fatalf("expected ErrInvalidEstimateTitle, got %v", err)
		}
	})

	t.Run("user cannot set final price", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, "")
		_, err := uc.Create(context.Background(), userIdent(), CreateEstimateInput{
			Title:           "Site redesign",
			FinalPriceCents: int64Ptr(10000),
		})
		if !errors.Is(err, ErrFinalPriceNotAllowed) {
			t.Fatalf("expected ErrFinalPriceNotAllowed, got %v", err)
		}
	})

	t.Run("user invalid price range", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, "")
		_, err := uc.Create(context.Background(), userIdent(), CreateEstimateInput{
			Title:         "Site redesign",
			PriceMinCents: int64Ptr(50000),
			PriceMaxCents: int64Ptr(10000),
		})
		if !errors.Is(err, ErrInvalidPriceRange) {
			t.Fatalf("expected ErrInvalidPriceRange, got %v", err)
		}
	})

	t.Run("user create pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.ID == "" || e.UserID != "user-1" || e.Status != entities.EstimateStatusPending {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				if e.FinalPriceCents != nil || e.FinalizedAt != nil {
					t.Fatalf("pending estimate must not carry final price: %+v", e)
				}
				if *e.PriceMinCents != 10000 || *e.PriceMaxCents != 50000 {
					t.Fatalf("unexpected price range: %+v", e)
				}
				return e, nil
			},
		)

		res, err := uc.Create(context.Background(), userIdent(), CreateEstimateInput{
			Title:         " Site redesign ",
			PriceMinCents: int64Ptr(10000),
			PriceMaxCents: int64Ptr(50000),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Title != "Site redesign" {
			t.Fatalf("expected trimmed title, got %q", res.Title)
		}
	})

	t.Run("admin create requires final price", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, "")
		_, err := uc.Create(context.Background(), adminIdent(), CreateEstimateInput{Title: "Fixed work"})
		if !errors.Is(err, ErrInvalidFinalPrice) {
			t.Fatalf("expected ErrInvalidFinalPrice, got %v", err)
		}
	})

	t.Run("admin create invalid tax rate", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, "")
		_, err := uc.Create(context.Background(), adminIdent(), CreateEstimateInput{
			Title:           "Fixed work",
			FinalPriceCents: int64Ptr(10000),
			TaxRatePercent:  floatPtr(101),
		})
		if !errors.Is(err, ErrInvalidTaxRate) {
			t.Fatalf("expected ErrInvalidTaxRate, got %v", err)
		}
	})

	t.Run("admin create finalized with tax-inclusive total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.EstimateStatusFinalized || e.FinalizedAt == nil {
					t.Fatalf("expected finalized estimate: %+v", e)
				}
				// 500000 pre-tax at 8.5% -> 542500 total.
				if e.FinalPriceCents == nil || *e.FinalPriceCents != 542500 {
					t.Fatalf("unexpected total: %+v", e.FinalPriceCents)
				}
				if e.TaxRatePercent == nil || *e.TaxRatePercent != 8.5 {
					t.Fatalf("unexpected tax rate: %+v", e.TaxRatePercent)
				}
				return e, nil
			},
		)

		_, err := uc.Create(context.Background(), adminIdent(), CreateEstimateInput{
			Title:           "Fixed work",
			FinalPriceCents: int64Ptr(500000),
			TaxRatePercent:  floatPtr(8.5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestEstimateUseCase_Finalize(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, "")
		_, err := uc.Finalize(context.Background(), "  ", 10000, 10)
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("invalid price", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, "")
		_, err := uc.Finalize(context.Background(), "est-1", 0, 10)
		if !errors.Is(err, ErrInvalidFinalPrice) {
			t.Fatalf("expected ErrInvalidFinalPrice, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{}, nil)

		_, err := uc.Finalize(context.Background(), "est-1", 10000, 10)
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("condition lost means not pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusPending}, nil)
		repo.EXPECT().Finalize(gomock.Any(), "est-1", int64(11000), 10.0, gomock.Any()).Return(entities.Estimate{}, nil)

		_, err := uc.Finalize(context.Background(), "est-1", 10000, 10)
		if !errors.Is(err, ErrEstimateNotPending) {
			t.Fatalf("expected ErrEstimateNotPending, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusPending}, nil)
		repo.EXPECT().Finalize(gomock.Any(), "est-1", int64(11000), 10.0, gomock.Any()).Return(
			entities.Estimate{ID: "est-1", Status: entities.EstimateStatusFinalized, FinalPriceCents: int64Ptr(11000)}, nil)

		res, err := uc.Finalize(context.Background(), "est-1", 10000, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.EstimateStatusFinalized {
			t.Fatalf("expected finalized, got %s", res.Status)
		}
	})
}

func TestEstimateUseCase_Approve(t *testing.T) {
	finalized := func() entities.Estimate {
		return entities.Estimate{
			ID:              "est-1",
			UserID:          "user-1",
			Title:           "Site redesign",
			Status:          entities.EstimateStatusFinalized,
			FinalPriceCents: int64Ptr(542500),
			TaxRatePercent:  floatPtr(8.5),
		}
	}

	t.Run("not owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		est := finalized()
		est.UserID = "someone-else"
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(est, nil)

		_, _, err := uc.Approve(context.Background(), "est-1", userIdent())
		if !errors.Is(err, ErrNotEstimateOwner) {
			t.Fatalf("expected ErrNotEstimateOwner, got %v", err)
		}
	})

	t.Run("not finalized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(
			entities.Estimate{ID: "est-1", UserID: "user-1", Status: entities.EstimateStatusPending}, nil)

		_, _, err := uc.Approve(context.Background(), "est-1", userIdent())
		if !errors.Is(err, ErrEstimateNotFinalized) {
			t.Fatalf("expected ErrEstimateNotFinalized, got %v", err)
		}
	})

	t.Run("already approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		est := finalized()
		est.ApprovedByUser = true
		est.Status = entities.EstimateStatusApproved
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(est, nil)

		_, _, err := uc.Approve(context.Background(), "est-1", userIdent())
		if !errors.Is(err, ErrEstimateAlreadyApproved) {
			t.Fatalf("expected ErrEstimateAlreadyApproved, got %v", err)
		}
	})

	t.Run("invoice already exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		invoiceRepo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewEstimateUseCase(repo, invoiceRepo, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(finalized(), nil)
		invoiceRepo.EXPECT().GetByEstimateID(gomock.Any(), "est-1").Return(entities.Invoice{ID: "inv-existing"}, nil)

		_, _, err := uc.Approve(context.Background(), "est-1", userIdent())
		if !errors.Is(err, ErrInvoiceAlreadyExists) {
			t.Fatalf("expected ErrInvoiceAlreadyExists, got %v", err)
		}
	})

	t.Run("concurrent approve loses conditional update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		invoiceRepo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewEstimateUseCase(repo, invoiceRepo, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(finalized(), nil)
		invoiceRepo.EXPECT().GetByEstimateID(gomock.Any(), "est-1").Return(entities.Invoice{}, nil)
		repo.EXPECT().MarkApproved(gomock.Any(), "est-1").Return(entities.Estimate{}, nil)

		_, _, err := uc.Approve(context.Background(), "est-1", userIdent())
		if !errors.Is(err, ErrEstimateAlreadyApproved) {
			t.Fatalf("expected ErrEstimateAlreadyApproved, got %v", err)
		}
	})

	t.Run("gateway failure compensates approval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		invoiceRepo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewEstimateUseCase(repo, invoiceRepo, gateway, "")

		approved := finalized()
		approved.Status = entities.EstimateStatusApproved
		approved.ApprovedByUser = true

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(finalized(), nil)
		invoiceRepo.EXPECT().GetByEstimateID(gomock.Any(), "est-1").Return(entities.Invoice{}, nil)
		repo.EXPECT().MarkApproved(gomock.Any(), "est-1").Return(approved, nil)
		gateway.EXPECT().GetOrCreateCustomer(gomock.Any(), "user@example.com", "User One", "", gomock.Any()).Return("", errors.New("stripe down"))
		repo.EXPECT().RevertApproval(gomock.Any(), "est-1").Return(finalized(), nil)

		_, _, err := uc.Approve(context.Background(), "est-1", userIdent())
		if err == nil || err.Error() != "stripe down" {
			t.Fatalf("expected gateway error, got %v", err)
		}
	})

	t.Run("success mints invoice with intent metadata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		invoiceRepo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewEstimateUseCase(repo, invoiceRepo, gateway, "usd")

		approved := finalized()
		approved.Status = entities.EstimateStatusApproved
		approved.ApprovedByUser = true

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(finalized(), nil)
		invoiceRepo.EXPECT().GetByEstimateID(gomock.Any(), "est-1").Return(entities.Invoice{}, nil)
		repo.EXPECT().MarkApproved(gomock.Any(), "est-1").Return(approved, nil)
		gateway.EXPECT().GetOrCreateCustomer(gomock.Any(), "user@example.com", "User One", "", gomock.Any()).Return("cus_123", nil)
		gateway.EXPECT().CreatePaymentIntent(gomock.Any(), int64(542500), "usd", "cus_123", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, _, _, _ string, metadata map[string]string) (interfaces.PaymentIntent, error) {
				if metadata["estimate_id"] != "est-1" || metadata["user_id"] != "user-1" {
					t.Fatalf("unexpected metadata: %v", metadata)
				}
				if metadata["invoice_id"] == "" {
					t.Fatalf("expected invoice_id hint in metadata")
				}
				return interfaces.PaymentIntent{ID: "pi_123", ClientSecret: "secret", Status: "requires_payment_method"}, nil
			},
		)
		invoiceRepo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Invoice{})).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
				if inv.PaymentIntentID != "pi_123" || inv.AmountCents != 542500 {
					t.Fatalf("unexpected invoice: %+v", inv)
				}
				if inv.Status != entities.InvoiceStatusPending || inv.DueDate.Before(inv.CreatedAt) {
					t.Fatalf("unexpected invoice state: %+v", inv)
				}
				return inv, nil
			},
		)

		est, inv, err := uc.Approve(context.Background(), "est-1", userIdent())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if est.Status != entities.EstimateStatusApproved || inv.PaymentIntentID != "pi_123" {
			t.Fatalf("unexpected result est=%+v inv=%+v", est, inv)
		}
	})
}

func TestEstimateUseCase_Reject(t *testing.T) {
	t.Run("not finalized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(
			entities.Estimate{ID: "est-1", UserID: "user-1", Status: entities.EstimateStatusPending}, nil)

		_, err := uc.Reject(context.Background(), "est-1", userIdent())
		if !errors.Is(err, ErrEstimateNotFinalized) {
			t.Fatalf("expected ErrEstimateNotFinalized, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(
			entities.Estimate{ID: "est-1", UserID: "user-1", Status: entities.EstimateStatusFinalized, FinalizedAt: timePtr(time.Now())}, nil)
		repo.EXPECT().MarkRejected(gomock.Any(), "est-1").Return(
			entities.Estimate{ID: "est-1", Status: entities.EstimateStatusRejected}, nil)

		res, err := uc.Reject(context.Background(), "est-1", userIdent())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.EstimateStatusRejected {
			t.Fatalf("expected rejected, got %s", res.Status)
		}
	})
}

func TestEstimateUseCase_GetByID(t *testing.T) {
	t.Run("owner check skipped for admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(
			entities.Estimate{ID: "est-1", UserID: "user-1"}, nil)

		if _, err := uc.GetByID(context.Background(), "est-1", adminIdent()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("non-owner denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, "")

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(
			entities.Estimate{ID: "est-1", UserID: "someone-else"}, nil)

		_, err := uc.GetByID(context.Background(), "est-1", userIdent())
		if !errors.Is(err, ErrNotEstimateOwner) {
			t.Fatalf("expected ErrNotEstimateOwner, got %v", err)
		}
	})
}
