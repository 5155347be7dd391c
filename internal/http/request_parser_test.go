package http

import (
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBodyParser(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantUser string
		wantPass string
		wantJSON bool
	}{
		{"json", `{"username":" ann@example.com ","password":" secret "}`, "ann@example.com", " secret ", true},
		{"form", "username=bob%40example.com&password=pw", "bob@example.com", "pw", false},
		{"empty", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			p := NewRequestBodyParser(req)
			require.NoError(t, p.Parse())
			assert.Equal(t, tt.wantUser, p.Get("username"))
			assert.Equal(t, tt.wantPass, p.Raw("password"))
			assert.Equal(t, tt.wantJSON, p.IsJSON())
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":`))
		assert.Error(t, NewRequestBodyParser(req).Parse())
	})
}

func TestParseBudgetForm(t *testing.T) {
	form := url.Values{
		"name":    {"Groceries", "", "Holidays", "Rent", "Bills"},
		"ceiling": {"200", "", "abc", "", "-5"},
	}
	b, err := ParseBudgetForm(form)
	require.NoError(t, err)

	assert.Equal(t, 200.0, b["Groceries"])
	assert.True(t, math.IsNaN(b["Holidays"]))
	assert.Equal(t, 0.0, b["Rent"])
	assert.Equal(t, -5.0, b["Bills"])
	assert.Len(t, b, 4)

	_, err = ParseBudgetForm(url.Values{"name": {" "}, "ceiling": {"10"}})
	assert.ErrorIs(t, err, errCeilingWithoutName)
}

func TestParseExpenseForm(t *testing.T) {
	f := ParseExpenseForm(url.Values{"amount": {" 12.50 "}, "category": {"Other"}, "description": {" gift\x00 for mum "}})
	assert.Equal(t, ExpenseForm{Amount: "12.50", Category: "Other", Description: " gift for mum "}, f)
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, RequireMethod(req, http.MethodGet, http.MethodPost))

	resp := RequirePOST(req)
	require.NotNil(t, resp)
	w := httptest.NewRecorder()
	resp.Write(w)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "POST", w.Header().Get("Allow"))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "a\tb", sanitizeInput("  a\tb\x07 "))
}
