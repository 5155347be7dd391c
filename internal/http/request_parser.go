package http

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"budgetplanner/internal/budget"
)

const maxFormBytes = 64 << 10

// RequestBodyParser reads a JSON object or a form-encoded body. Login and
// signup accept either.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
	parsed   bool
	err      error
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxFormBytes))
	return p
}

func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true
	if p.err != nil {
		return p.err
	}
	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}
	if p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		p.err = json.Unmarshal(p.body, &p.jsonData)
		return p.err
	}
	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns the sanitized value for key, or "".
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if s, ok := p.jsonData[key].(string); ok {
			return sanitizeInput(s)
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// Raw returns the value for key without trimming. Passwords use it.
func (p *RequestBodyParser) Raw(key string) string {
	if p.jsonData != nil {
		s, _ := p.jsonData[key].(string)
		return s
	}
	if p.formData != nil {
		return p.formData.Get(key)
	}
	return ""
}

func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// ExpenseForm holds the raw manual entry fields.
type ExpenseForm struct {
	Amount      string
	Category    string
	Description string
}

func ParseExpenseForm(form url.Values) ExpenseForm {
	return ExpenseForm{
		Amount:      sanitizeInput(form.Get("amount")),
		Category:    sanitizeInput(form.Get("category")),
		Description: stripControl(form.Get("description")),
	}
}

var errCeilingWithoutName = errors.New("a budget amount was given without a category name")

// ParseBudgetForm pairs the repeated name and ceiling fields. Rows with
// both blank are skipped, a blank ceiling means 0, and an unparsable one
// becomes NaN so validation rejects it. Later duplicates win.
func ParseBudgetForm(form url.Values) (budget.Budgets, error) {
	names := form["name"]
	ceilings := form["ceiling"]
	b := budget.Budgets{}
	for i, raw := range names {
		name := sanitizeInput(raw)
		ceiling := ""
		if i < len(ceilings) {
			ceiling = strings.TrimSpace(ceilings[i])
		}
		if name == "" {
			if ceiling != "" {
				return nil, errCeilingWithoutName
			}
			continue
		}
		b[name] = parseCeiling(ceiling)
	}
	return b, nil
}

func parseCeiling(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// RequireMethod returns a 405 response unless r uses one of methods.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	r.Body = http.MaxBytesReader(nil, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// sanitizeInput trims and strips control characters other than tab and
// newlines.
func sanitizeInput(s string) string {
	return stripControl(strings.TrimSpace(s))
}

// stripControl removes control characters other than tabs and line breaks
// and leaves surrounding whitespace alone.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
