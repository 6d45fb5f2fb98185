package services

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCRM(endpoint string) *CRMClient {
	return &CRMClient{
		endpoint: endpoint,
		portalID: "12345",
		formID:   "abc-def",
		client:   &http.Client{Timeout: 2 * time.Second},
	}
}

func TestSubmitLeadSuccess(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/12345/abc-def", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	crm := newTestCRM(server.URL)
	err := crm.SubmitLead(Lead{Email: "jane@example.com", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSubmitLeadRetriesOnceOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	crm := newTestCRM(server.URL)
	err := crm.SubmitLead(Lead{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSubmitLeadGivesUpAfterSecondServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	crm := newTestCRM(server.URL)
	err := crm.SubmitLead(Lead{Email: "jane@example.com"})
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSubmitLeadDoesNotRetryClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	crm := newTestCRM(server.URL)
	err := crm.SubmitLead(Lead{Email: "not-an-email"})
	assert.Error(t, err)
	// the payload won't get better, so exactly one attempt
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSubmitLeadUnconfiguredIsNoOp(t *testing.T) {
	crm := &CRMClient{client: &http.Client{}}
	assert.NoError(t, crm.SubmitLead(Lead{Email: "jane@example.com"}))
}
