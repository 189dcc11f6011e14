package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Log: zap.NewNop()}
	r := gin.New()
	r.POST("/api/validate", h.ValidateInput)
	return r
}

func postValidate(t *testing.T, r *gin.Engine, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return w.Code, decoded
}

func TestValidateInputAcceptsWellFormedRequest(t *testing.T) {
	r := newTestRouter()
	body := `{
		"unit": {"id": 1, "code": "ward-a"},
		"month": "2026-03",
		"days": ["2026-03-02", "2026-03-03"],
		"members": [{"id": 1, "name": "a"}, {"id": 2, "name": "b"}],
		"coverage_requirements": {"early": 1, "day": 1, "late": 0, "night": 0}
	}`

	code, resp := postValidate(t, r, body)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["valid"] != true {
		t.Fatalf("expected valid=true, got %v (error: %v)", resp["valid"], resp["error"])
	}
	stats, ok := resp["stats"].(map[string]any)
	if !ok {
		t.Fatal("expected stats object")
	}
	if stats["member_count"] != float64(2) || stats["day_count"] != float64(2) {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestValidateInputMissingKey(t *testing.T) {
	r := newTestRouter()
	body := `{"unit": {}, "month": "2026-03", "members": [], "coverage_requirements": {}}`

	code, resp := postValidate(t, r, body)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["valid"] != false {
		t.Fatal("expected valid=false")
	}
	if msg, _ := resp["error"].(string); !strings.Contains(msg, "Missing key: days") {
		t.Fatalf("unexpected error: %v", resp["error"])
	}
}

func TestValidateInputEmptyMembers(t *testing.T) {
	r := newTestRouter()
	body := `{
		"unit": {}, "month": "2026-03",
		"days": ["2026-03-02"],
		"members": [],
		"coverage_requirements": {}
	}`

	_, resp := postValidate(t, r, body)
	if resp["valid"] != false {
		t.Fatal("expected valid=false")
	}
	if msg, _ := resp["error"].(string); !strings.Contains(msg, "empty") {
		t.Fatalf("unexpected error: %v", resp["error"])
	}
}

func TestValidateInputDuplicateMember(t *testing.T) {
	r := newTestRouter()
	body := `{
		"unit": {}, "month": "2026-03",
		"days": ["2026-03-02"],
		"members": [{"id": 7, "name": "a"}, {"id": 7, "name": "b"}],
		"coverage_requirements": {"early": 0, "day": 1, "late": 0, "night": 0}
	}`

	_, resp := postValidate(t, r, body)
	if resp["valid"] != false {
		t.Fatal("expected valid=false")
	}
	if msg, _ := resp["error"].(string); !strings.Contains(msg, "Duplicate member ID: 7") {
		t.Fatalf("unexpected error: %v", resp["error"])
	}
}

func TestValidateInputDuplicateDay(t *testing.T) {
	r := newTestRouter()
	body := `{
		"unit": {}, "month": "2026-03",
		"days": ["2026-03-02", "2026-03-02"],
		"members": [{"id": 1, "name": "a"}],
		"coverage_requirements": {"early": 0, "day": 1, "late": 0, "night": 0}
	}`

	_, resp := postValidate(t, r, body)
	if resp["valid"] != false {
		t.Fatal("expected valid=false")
	}
	if msg, _ := resp["error"].(string); !strings.Contains(msg, "Duplicate day") {
		t.Fatalf("unexpected error: %v", resp["error"])
	}
}

func TestValidateInputMalformedJSON(t *testing.T) {
	r := newTestRouter()
	_, resp := postValidate(t, r, `{"unit":`)
	if resp["valid"] != false {
		t.Fatal("expected valid=false")
	}
}
