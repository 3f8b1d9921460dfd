package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clientdesk/internal/adapter/http/handlers/mocks"
	"clientdesk/internal/domain/entities"
	"clientdesk/internal/usecase"
	"clientdesk/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestInvoiceHandler_ListInvoices(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIInvoiceSyncUseCase(ctrl)
	h := NewInvoiceHandler(uc)

	r := gin.New()
	r.GET("/v1/invoices", withIdentity(testUser()), h.ListInvoices)

	uc.EXPECT().ListByUser(gomock.Any(), testUser()).Return([]entities.Invoice{
		{ID: "inv-1", UserID: "user-1", Status: entities.InvoiceStatusPending},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/invoices", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body) != 1 || body[0]["id"] != "inv-1" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestInvoiceHandler_GetInvoice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceSyncUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.GET("/v1/invoices/:id", withIdentity(testUser()), h.GetInvoice)

		uc.EXPECT().GetByID(gomock.Any(), "inv-1", testUser()).Return(entities.Invoice{}, usecase.ErrNotInvoiceOwner)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/inv-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceSyncUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.GET("/v1/invoices/:id", withIdentity(testUser()), h.GetInvoice)

		uc.EXPECT().GetByID(gomock.Any(), "inv-1", testUser()).Return(
			entities.Invoice{ID: "inv-1", UserID: "user-1", AmountCents: 542500}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/inv-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestInvoiceHandler_GetPaymentSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIInvoiceSyncUseCase(ctrl)
	h := NewInvoiceHandler(uc)

	r := gin.New()
	r.GET("/v1/invoices/:id/payment", withIdentity(testUser()), h.GetPaymentSession)

	uc.EXPECT().PaymentSession(gomock.Any(), "inv-1", testUser()).Return(
		interfaces.PaymentIntent{ID: "pi_123", ClientSecret: "secret", Status: "requires_payment_method", AmountCents: 542500}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/invoices/inv-1/payment", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["payment_intent_id"] != "pi_123" || body["client_secret"] != "secret" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestInvoiceHandler_SyncInvoiceStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIInvoiceSyncUseCase(ctrl)
	h := NewInvoiceHandler(uc)

	r := gin.New()
	r.POST("/v1/sync-invoice-status", withIdentity(testAdmin()), h.SyncInvoiceStatus)

	uc.EXPECT().SyncPendingInvoices(gomock.Any(), testAdmin()).Return([]usecase.SyncResult{
		{InvoiceID: "inv-1", PaymentIntentID: "pi_123", Status: usecase.SyncStatusSynced},
		{InvoiceID: "inv-2", PaymentIntentID: "pi_456", Status: usecase.SyncStatusNoAction, Detail: "intent status processing"},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/sync-invoice-status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Results []usecase.SyncResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Results) != 2 || body.Results[0].Status != usecase.SyncStatusSynced {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestInvoiceHandler_ListProjectsAndActivity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIInvoiceSyncUseCase(ctrl)
	h := NewInvoiceHandler(uc)

	r := gin.New()
	r.GET("/v1/projects", withIdentity(testUser()), h.ListProjects)
	r.GET("/v1/activity", withIdentity(testUser()), h.ListActivity)

	uc.EXPECT().ListProjects(gomock.Any(), testUser()).Return([]entities.Project{
		{ID: "proj-1", InvoiceID: "inv-1", UserID: "user-1", Title: "Site redesign", Status: entities.ProjectStatusPending},
	}, nil)
	uc.EXPECT().ListActivity(gomock.Any(), testUser()).Return([]entities.ActivityRecord{
		{ID: "user-1#invoice_paid#pi_123", UserID: "user-1", Type: entities.ActivityInvoicePaid},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/projects", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("projects: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/activity", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("activity: expected 200, got %d", w.Code)
	}
}
