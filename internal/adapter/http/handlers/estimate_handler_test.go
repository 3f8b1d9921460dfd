package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clientdesk/internal/adapter/http/handlers/mocks"
	"clientdesk/internal/domain/entities"
	"clientdesk/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func withIdentity(ident usecase.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", ident)
		c.Next()
	}
}

func testUser() usecase.Identity {
	return usecase.Identity{UserID: "user-1", Email: "user@example.com", Name: "User One"}
}

func testAdmin() usecase.Identity {
	return usecase.Identity{UserID: "admin-1", Email: "admin@example.com", Name: "Admin", IsAdmin: true}
}

func TestEstimateHandler_CreateEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", withIdentity(testUser()), h.CreateEstimate)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", withIdentity(testUser()), h.CreateEstimate)

		uc.EXPECT().Create(gomock.Any(), testUser(), gomock.Any()).Return(entities.Estimate{}, usecase.ErrFinalPriceNotAllowed)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(`{"title":"Site redesign","final_price_cents":1000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", withIdentity(testUser()), h.CreateEstimate)

		uc.EXPECT().Create(gomock.Any(), testUser(), gomock.Any()).Return(
			entities.Estimate{ID: "est-1", UserID: "user-1", Title: "Site redesign", Status: entities.EstimateStatusPending}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(`{"title":"Site redesign"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["id"] != "est-1" || body["status"] != "pending" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestEstimateHandler_FinalizeEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing final price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/v1/estimates/:id/finalize", withIdentity(testAdmin()), h.FinalizeEstimate)

		req := httptest.NewRequest(http.MethodPatch, "/v1/estimates/est-1/finalize", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not pending maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/v1/estimates/:id/finalize", withIdentity(testAdmin()), h.FinalizeEstimate)

		uc.EXPECT().Finalize(gomock.Any(), "est-1", int64(500000), 8.5).Return(entities.Estimate{}, usecase.ErrEstimateNotPending)

		req := httptest.NewRequest(http.MethodPatch, "/v1/estimates/est-1/finalize", bytes.NewBufferString(`{"final_price_cents":500000,"tax_rate_percent":8.5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("finalized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/v1/estimates/:id/finalize", withIdentity(testAdmin()), h.FinalizeEstimate)

		uc.EXPECT().Finalize(gomock.Any(), "est-1", int64(500000), 8.5).Return(
			entities.Estimate{ID: "est-1", Status: entities.EstimateStatusFinalized}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/estimates/est-1/finalize", bytes.NewBufferString(`{"final_price_cents":500000,"tax_rate_percent":8.5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestEstimateHandler_ApproveEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invoice already exists maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/approve", withIdentity(testUser()), h.ApproveEstimate)

		uc.EXPECT().Approve(gomock.Any(), "est-1", testUser()).Return(
			entities.Estimate{}, entities.Invoice{}, usecase.ErrInvoiceAlreadyExists)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("not owner maps to 403", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/approve", withIdentity(testUser()), h.ApproveEstimate)

		uc.EXPECT().Approve(gomock.Any(), "est-1", testUser()).Return(
			entities.Estimate{}, entities.Invoice{}, usecase.ErrNotEstimateOwner)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("approved returns estimate and invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/approve", withIdentity(testUser()), h.ApproveEstimate)

		uc.EXPECT().Approve(gomock.Any(), "est-1", testUser()).Return(
			entities.Estimate{ID: "est-1", Status: entities.EstimateStatusApproved},
			entities.Invoice{ID: "inv-1", EstimateID: "est-1", PaymentIntentID: "pi_123", Status: entities.InvoiceStatusPending},
			nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			Estimate struct {
				ID string `json:"id"`
			} `json:"estimate"`
			Invoice struct {
				ID              string `json:"id"`
				PaymentIntentID string `json:"payment_intent_id"`
			} `json:"invoice"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Estimate.ID != "est-1" || body.Invoice.ID != "inv-1" || body.Invoice.PaymentIntentID != "pi_123" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_GetEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates/:id", withIdentity(testUser()), h.GetEstimate)

		uc.EXPECT().GetByID(gomock.Any(), "est-missing", testUser()).Return(entities.Estimate{}, usecase.ErrEstimateNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates/est-missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("internal error maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates/:id", withIdentity(testUser()), h.GetEstimate)

		uc.EXPECT().GetByID(gomock.Any(), "est-1", testUser()).Return(entities.Estimate{}, errors.New("dynamo down"))

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates/est-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
