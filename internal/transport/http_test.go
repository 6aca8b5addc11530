package transport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/analytics"
	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
	"github.com/Gsiblesz/Centro-Caracas/internal/repository"
	"github.com/Gsiblesz/Centro-Caracas/internal/repository/mocks"
	"github.com/Gsiblesz/Centro-Caracas/internal/transport"
)

const testAPIKey = "clave-secreta"

func newTestServer(t *testing.T, repo *mocks.RecordRepository) *httptest.Server {
	t.Helper()
	handler := transport.NewServer(
		process.NewService(repo, nil),
		analytics.NewService(repo, nil),
		testAPIKey,
		nil,
	)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, method, url, body string, withKey bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if withKey {
		req.Header.Set("x-api-key", testAPIKey)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthIsOpen(t *testing.T) {
	ts := newTestServer(t, new(mocks.RecordRepository))

	resp := doRequest(t, http.MethodGet, ts.URL+"/health", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, true, body["ok"])
}

func TestRegistrosRequireAPIKey(t *testing.T) {
	ts := newTestServer(t, new(mocks.RecordRepository))

	resp := doRequest(t, http.MethodGet, ts.URL+"/registros", "", false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Unauthorized", body["error"])
}

func TestEmptyKeyDisablesAuth(t *testing.T) {
	repo := new(mocks.RecordRepository)
	repo.On("List", mock.Anything, mock.Anything).Return([]process.StoredRecord{}, nil)

	handler := transport.NewServer(process.NewService(repo, nil), analytics.NewService(repo, nil), "", nil)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	resp := doRequest(t, http.MethodGet, ts.URL+"/registros", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSubmitRecord(t *testing.T) {
	repo := new(mocks.RecordRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	ts := newTestServer(t, repo)

	payload := `{
		"panel": "ovens",
		"unit": "horno-2",
		"timing": {"start": "2025-03-10T06:00:00Z", "end": "2025-03-10T07:30:00Z", "durationMs": 5400000}
	}`
	resp := doRequest(t, http.MethodPost, ts.URL+"/registros", payload, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var stored process.StoredRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stored))
	require.NotEmpty(t, stored.ID)
	require.Equal(t, process.PanelBaking, stored.Panel)
	require.Equal(t, "horno-2", stored.Unit)
	require.NotNil(t, stored.DurationMs)
	require.Equal(t, int64(5400000), *stored.DurationMs)
	repo.AssertExpectations(t)
}

func TestSubmitMalformedPayload(t *testing.T) {
	ts := newTestServer(t, new(mocks.RecordRepository))

	resp := doRequest(t, http.MethodPost, ts.URL+"/registros", `{"panel": `, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Payload inválido", body["error"])
}

func TestListReturnsEmptyArray(t *testing.T) {
	repo := new(mocks.RecordRepository)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	ts := newTestServer(t, repo)

	resp := doRequest(t, http.MethodGet, ts.URL+"/registros", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []process.StoredRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestListInvalidTakeParam(t *testing.T) {
	ts := newTestServer(t, new(mocks.RecordRepository))

	resp := doRequest(t, http.MethodGet, ts.URL+"/registros?take=muchos", "", true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestControlChartInvalidMetric(t *testing.T) {
	ts := newTestServer(t, new(mocks.RecordRepository))

	resp := doRequest(t, http.MethodGet, ts.URL+"/registros/control-chart?metric=bogus", "", true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Métrica inválida", body["error"])
}

func TestControlChartEndpoint(t *testing.T) {
	repo := new(mocks.RecordRepository)
	dur := int64(100)
	repo.On("MetricSeries", mock.Anything, mock.Anything).Return([]analytics.RecordMetrics{
		{ID: "a", Panel: process.PanelBaking, Unit: "horno-1", DurationMs: &dur, OverallMs: &dur},
	}, nil)
	ts := newTestServer(t, repo)

	resp := doRequest(t, http.MethodGet, ts.URL+"/registros/control-chart?metric=durationMs&panel=ovens", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var chart analytics.ControlChart
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chart))
	require.Equal(t, analytics.MetricDuration, chart.Metric)
	require.Equal(t, "ovens", chart.Panel)
	require.Equal(t, 1, chart.Count)
}

func TestSummaryEndpoint(t *testing.T) {
	repo := new(mocks.RecordRepository)
	repo.On("MetricSeries", mock.Anything, mock.Anything).Return([]analytics.RecordMetrics{}, nil)
	ts := newTestServer(t, repo)

	resp := doRequest(t, http.MethodGet, ts.URL+"/registros/metrics", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary analytics.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	require.Zero(t, summary.Count)
	require.Nil(t, summary.Overall.Avg)
}

func TestDeleteMissingRecord(t *testing.T) {
	repo := new(mocks.RecordRepository)
	repo.On("Delete", mock.Anything, "nope").Return(repository.ErrNotFound)
	ts := newTestServer(t, repo)

	resp := doRequest(t, http.MethodDelete, ts.URL+"/registros/nope", "", true)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Registro no encontrado", body["error"])
}

func TestDeleteAllRecords(t *testing.T) {
	repo := new(mocks.RecordRepository)
	repo.On("DeleteAll", mock.Anything).Return(int64(3), nil)
	ts := newTestServer(t, repo)

	resp := doRequest(t, http.MethodDelete, ts.URL+"/registros", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, float64(3), body["deleted"])
}
