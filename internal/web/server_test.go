package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/logger"
	"github.com/theirongolddev/loandash/internal/model"
)

const testCSV = `id,loan_amount,interest_rate,issue_date,issue_weekday,purpose,grade,term,loan_condition
1,1000,5.0,2015-01-05,Monday,debt_consolidation,A,36 months,Good Loan
2,2500,10.0,2015-01-06,Tuesday,credit_card,B,60 months,Bad Loan
3,4000,7.5,2015-01-07,Wednesday,car,C,36 months,Good Loan
4,1500,12.0,2015-01-07,Wednesday,car,B,60 months,Good Loan
`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loan_clean.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))
	return New(Config{DatasetPath: path}, logger.Nop()).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestPageRendersChrome(t *testing.T) {
	rec := get(t, newTestServer(t), "/")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := rec.Body.String()
	assert.Contains(t, body, dashboard.Headline)
	assert.Contains(t, body, dashboard.SidebarHeader)
	assert.Contains(t, body, dashboard.SelectLabel)
	assert.Contains(t, body, "Total Loan Amount")
	assert.Contains(t, body, "$9,000")
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, `<option value="Good Loan" selected>`)
}

func TestPageSelectsCondition(t *testing.T) {
	q := url.Values{"condition": {model.BadLoan}}.Encode()
	rec := get(t, newTestServer(t), "/?"+q)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="Bad Loan" selected>`)
	assert.Contains(t, rec.Body.String(), "1 loans")
}

func TestPageUnknownCondition(t *testing.T) {
	rec := get(t, newTestServer(t), "/?condition=Fine")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPageMissingDataset(t *testing.T) {
	h := New(Config{DatasetPath: filepath.Join(t.TempDir(), "missing.csv")}, nil).Handler()
	rec := get(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChartEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/charts/weekday.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Body.String(), "<svg"))

	rec = get(t, h, "/charts/boxplot.png?condition=Bad+Loan")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestChartUnknownPanel(t *testing.T) {
	rec := get(t, newTestServer(t), "/charts/pie.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := get(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
