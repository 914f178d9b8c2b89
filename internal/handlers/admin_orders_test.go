package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func postForm(t *testing.T, handler gin.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST(path, handler)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// A status outside the fixed enum is rejected before any database work, so
// nothing is mutated. The nil database proves the handler never reaches it.
func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	recorder := postForm(t, UpdateOrderStatus(nil), "/admin/orders/update-status", url.Values{
		"orderId":   {"order-1"},
		"newStatus": {"shipped_backwards"},
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Invalid status.") {
		t.Fatalf("expected invalid status message, got %q", recorder.Body.String())
	}
}

func TestUpdateOrderStatusRequiresFields(t *testing.T) {
	recorder := postForm(t, UpdateOrderStatus(nil), "/admin/orders/update-status", url.Values{
		"orderId": {"order-1"},
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}
