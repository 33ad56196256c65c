package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/teenxsky/money-flow/internal/errors"
	"github.com/teenxsky/money-flow/internal/services"
)

type mockSeedService struct {
	loadFn func(clear bool) (*services.SeedReport, error)
}

func (m *mockSeedService) Load(clear bool) (*services.SeedReport, error) {
	if m.loadFn != nil {
		return m.loadFn(clear)
	}
	return &services.SeedReport{}, nil
}

var _ services.SeedServicer = (*mockSeedService)(nil)

func setupReferenceRouter(handler *ReferenceHandler) *gin.Engine {
	r := gin.New()
	r.POST("/reference/seed", handler.Seed)
	return r
}

func TestReferenceHandler_Seed(t *testing.T) {
	t.Run("returns 200 with per-kind counts", func(t *testing.T) {
		seedSvc := &mockSeedService{
			loadFn: func(_ bool) (*services.SeedReport, error) {
				return &services.SeedReport{
					TransactionTypes: 2,
					Categories:       3,
					Subcategories:    4,
					Statuses:         3,
				}, nil
			},
		}
		handler := NewReferenceHandler(seedSvc)
		r := setupReferenceRouter(handler)

		rec := doRequest(r, "POST", "/reference/seed", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		report := result["report"].(map[string]interface{})
		if report["transaction_types"].(float64) != 2 {
			t.Errorf("expected 2 transaction types, got %v", report["transaction_types"])
		}
		if report["subcategories"].(float64) != 4 {
			t.Errorf("expected 4 subcategories, got %v", report["subcategories"])
		}
	})

	t.Run("passes clear flag through to the service", func(t *testing.T) {
		var capturedClear bool
		seedSvc := &mockSeedService{
			loadFn: func(clear bool) (*services.SeedReport, error) {
				capturedClear = clear
				return &services.SeedReport{}, nil
			},
		}
		handler := NewReferenceHandler(seedSvc)
		r := setupReferenceRouter(handler)

		doRequest(r, "POST", "/reference/seed?clear=true", "")

		if !capturedClear {
			t.Error("expected clear to be true")
		}
	})

	t.Run("returns 409 when clearing is blocked", func(t *testing.T) {
		seedSvc := &mockSeedService{
			loadFn: func(_ bool) (*services.SeedReport, error) {
				return nil, apperrors.WithMessage(apperrors.ErrReferenceInUse,
					"Cannot clear reference data while transactions exist")
			},
		}
		handler := NewReferenceHandler(seedSvc)
		r := setupReferenceRouter(handler)

		rec := doRequest(r, "POST", "/reference/seed?clear=true", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "REFERENCE_IN_USE")
	})
}
