package api_test

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/types"
)

func TestCustomerAttachmentRoutes(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "Calvin")
	app.archive.On("Store", mock.Anything, mock.Anything, "text/plain", []byte("hello")).Return(nil)

	w := app.request(t, http.MethodPost, "/api/customers", map[string]interface{}{
		"name":               "Acme",
		"company":            "Acme Corp",
		"software":           "ViewPoint",
		"attachmentData":     "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello")),
		"attachmentFilename": "hello.txt",
		"attachmentMimeType": "text/plain",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var customer models.Customer
	decode(t, w, &customer)
	assert.Equal(t, 5, customer.AttachmentSize)

	w = app.request(t, http.MethodGet, "/api/customers/"+customer.ID.String()+"/attachment", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=hello.txt", w.Header().Get("Content-Disposition"))

	key := "customers/" + customer.ID.String() + "/attachment"
	app.archive.On("Exists", mock.Anything, key).Return(true, nil)
	app.archive.On("PresignedURL", mock.Anything, key, mock.Anything).Return("https://signed.example/x", nil)
	w = app.request(t, http.MethodGet, "/api/customers/"+customer.ID.String()+"/attachment/url", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var link types.AttachmentURLResponse
	decode(t, w, &link)
	assert.Equal(t, "https://signed.example/x", link.URL)

	app.archive.On("Remove", mock.Anything, key).Return(nil)
	w = app.request(t, http.MethodPatch, "/api/customers/"+customer.ID.String(), map[string]interface{}{"attachmentData": ""}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, http.MethodGet, "/api/customers/"+customer.ID.String()+"/attachment", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
	app.archive.AssertExpectations(t)
}

func TestCustomerAttachmentRejections(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "Calvin")

	tests := []struct {
		name    string
		data    string
		mime    string
		message string
	}{
		{
			name:    "type not allowed",
			data:    "data:application/zip;base64,UEs=",
			mime:    "application/zip",
			message: "Invalid file type. Only PDF, DOC, DOCX, XLS, XLSX, TXT, PNG, and JPEG files are allowed.",
		},
		{
			name:    "not base64",
			data:    "data:application/pdf;base64,%%%",
			mime:    "application/pdf",
			message: "Invalid attachment data.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.request(t, http.MethodPost, "/api/customers", map[string]interface{}{
				"name":               "Acme",
				"company":            "Acme Corp",
				"attachmentData":     tt.data,
				"attachmentMimeType": tt.mime,
			}, cookies)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, w.Body.String())
		})
	}

	w := app.request(t, http.MethodGet, "/api/customers", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var customers []models.Customer
	decode(t, w, &customers)
	assert.Empty(t, customers)
}

func TestCustomerValidationAndLookup(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "Calvin")

	w := app.request(t, http.MethodPost, "/api/customers", map[string]interface{}{"name": "Acme", "company": "Acme", "software": "Excel"}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "software must be one of")

	w = app.request(t, http.MethodGet, "/api/customers/not-a-uuid", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.request(t, http.MethodGet, "/api/customers/00000000-0000-0000-0000-000000000001", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.request(t, http.MethodGet, "/api/customers?churned=maybe", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.request(t, http.MethodGet, "/api/customers", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscriptionsNotesAndDashboard(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "Stephen")

	w := app.request(t, http.MethodPost, "/api/customers", map[string]interface{}{"name": "Acme", "company": "Acme Corp", "churn": true}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	var customer models.Customer
	decode(t, w, &customer)
	base := "/api/customers/" + customer.ID.String()

	w = app.request(t, http.MethodPost, base+"/subscriptions", map[string]interface{}{
		"productName": "ViewPoint", "renewalDate": "2030-01-01T00:00:00Z", "value": 100, "billingCycle": "weekly",
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.request(t, http.MethodPost, base+"/subscriptions", map[string]interface{}{
		"productName": "ViewPoint", "renewalDate": "2030-01-01T00:00:00Z", "value": 100, "billingCycle": "annual",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.request(t, http.MethodGet, "/api/subscriptions", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var subscriptions []models.Subscription
	decode(t, w, &subscriptions)
	require.Len(t, subscriptions, 1)

	w = app.request(t, http.MethodPost, base+"/notes", map[string]string{"content": "renewal call booked"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	var note models.Note
	decode(t, w, &note)
	assert.Equal(t, "Stephen", note.CreatedBy)

	w = app.request(t, http.MethodGet, base+"/notes", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, http.MethodGet, "/api/dashboard/stats", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var stats types.DashboardStats
	decode(t, w, &stats)
	assert.Equal(t, int64(1), stats.TotalCustomers)
	assert.Equal(t, int64(1), stats.ChurnedCustomers)

	w = app.request(t, http.MethodDelete, base, nil, cookies)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = app.request(t, http.MethodGet, base+"/notes", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttachmentDownloadFilenameEncoding(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "Calvin")
	app.archive.On("Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	tests := []struct {
		filename string
		want     string
	}{
		{filename: "résumé.txt", want: "attachment; filename*=utf-8''r%C3%A9sum%C3%A9.txt"},
		{filename: `Q3 "final".txt`, want: `attachment; filename="Q3 \"final\".txt"`},
		{filename: "", want: "attachment; filename=attachment"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			w := app.request(t, http.MethodPost, "/api/customers", map[string]interface{}{
				"name":               "Acme",
				"company":            "Acme Corp",
				"attachmentData":     base64.StdEncoding.EncodeToString([]byte("hi")),
				"attachmentFilename": tt.filename,
				"attachmentMimeType": "text/plain",
			}, cookies)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			var customer models.Customer
			decode(t, w, &customer)

			w = app.request(t, http.MethodGet, "/api/customers/"+customer.ID.String()+"/attachment", nil, cookies)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Content-Disposition"))
		})
	}
}
