package resources_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	uierrors "github.com/edunaija/edunaija/internal/app/features/errors"
	"github.com/edunaija/edunaija/internal/app/features/resources"
	"github.com/edunaija/edunaija/internal/app/system/auth"
	"github.com/edunaija/edunaija/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var testCategories = []string{"mathematics", "english", "science"}

func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}

	h := resources.NewHandler(db, nil, uierrors.NewErrorLogger(logger), testCategories, logger)
	return resources.Routes(h, sessionMgr.RequireSignedIn), testutil.NewFixtures(t, db)
}

type listBody struct {
	Resources []struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
		Views    int64    `json:"views"`
	} `json:"resources"`
	Total int `json:"total"`
}

func getList(t *testing.T, router chi.Router, target string) listBody {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status = %d: %s", target, rec.Code, rec.Body.String())
	}
	var body listBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("GET %s: parse body: %v", target, err)
	}
	return body
}

func seedCatalog(t *testing.T, f *testutil.Fixtures) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateResource(ctx, "Mathematics for JSS1", "mathematics", []string{"math", "jss1"})
	f.CreateResource(ctx, "English Grammar Basics", "english", []string{"english", "grammar"})
	f.CreateResource(ctx, "WAEC Past Questions: Math", "science", []string{"waec", "math"})
}

func TestList_NewestFirstByDefault(t *testing.T) {
	router, f := newTestRouter(t)
	seedCatalog(t, f)

	body := getList(t, router, "/")
	if body.Total != 3 {
		t.Fatalf("total = %d, want 3", body.Total)
	}
	if body.Resources[0].Title != "WAEC Past Questions: Math" {
		t.Errorf("first = %q, want newest", body.Resources[0].Title)
	}
}

func TestList_FiltersCombine(t *testing.T) {
	router, f := newTestRouter(t)
	seedCatalog(t, f)

	body := getList(t, router, "/?term=math&tags=waec")
	if body.Total != 1 || body.Resources[0].Title != "WAEC Past Questions: Math" {
		t.Fatalf("resources = %+v", body.Resources)
	}

	body = getList(t, router, "/?category=english")
	if body.Total != 1 || body.Resources[0].Category != "english" {
		t.Fatalf("resources = %+v", body.Resources)
	}

	// "all" disables the category filter.
	body = getList(t, router, "/?category=all")
	if body.Total != 3 {
		t.Errorf("total = %d, want 3", body.Total)
	}
}

func TestList_EmptyCatalog(t *testing.T) {
	router, _ := newTestRouter(t)

	body := getList(t, router, "/?term=anything")
	if body.Total != 0 || body.Resources == nil {
		t.Errorf("body = %+v, want empty non-null list", body)
	}
}

func TestTags(t *testing.T) {
	router, f := newTestRouter(t)
	seedCatalog(t, f)

	req := httptest.NewRequest("GET", "/tags", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	want := []string{"english", "grammar", "jss1", "math", "waec"}
	if len(body.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", body.Tags, want)
	}
	for i := range want {
		if body.Tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", body.Tags, want)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/ffffffffffffffffffffffff", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCounters(t *testing.T) {
	router, f := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	r := f.CreateResource(ctx, "Counted", "science", nil)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/"+r.ID.Hex()+"/views", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("views status = %d, want 204", rec.Code)
		}
	}
	req := httptest.NewRequest("POST", "/"+r.ID.Hex()+"/downloads", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("downloads status = %d, want 204", rec.Code)
	}

	body := getList(t, router, "/")
	if body.Resources[0].Views != 2 {
		t.Errorf("views = %d, want 2", body.Resources[0].Views)
	}

	// Unknown id replies 404.
	req = httptest.NewRequest("POST", "/ffffffffffffffffffffffff/views", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreate_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"T"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCreate_LinkResource(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"title": "Biology Notes (SS2)",
		"description": "Concise revision notes.",
		"category": "science",
		"tags": ["Biology", "ss2", "biology"],
		"download_url": "https://files.example.com/bio-notes.pdf"
	}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, testutil.PasswordUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Tags        []string `json:"tags"`
		Views       int64    `json:"views"`
		UploadedBy  string   `json:"uploaded_by_name"`
		DownloadURL string   `json:"download_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("parse created: %v", err)
	}
	if created.ID == "" || created.Title != "Biology Notes (SS2)" {
		t.Errorf("created = %+v", created)
	}
	// Tags are lowercased and deduplicated.
	if len(created.Tags) != 2 {
		t.Errorf("tags = %v, want [biology ss2]", created.Tags)
	}
	if created.Views != 0 {
		t.Errorf("views = %d, want 0", created.Views)
	}

	// The new resource shows up in the list.
	list := getList(t, router, "/?term=biology")
	if list.Total != 1 {
		t.Errorf("list total = %d, want 1", list.Total)
	}
}

func TestCreate_MultipartLinkResource(t *testing.T) {
	router, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":        "Chemistry Practical Guide",
		"description":  "Titration walkthroughs.",
		"category":     "science",
		"tags":         "Chemistry, waec ,chemistry",
		"download_url": "https://files.example.com/chem-guide.pdf",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = testutil.WithUser(req, testutil.PasswordUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("parse created: %v", err)
	}
	if created.Title != "Chemistry Practical Guide" {
		t.Errorf("title = %q", created.Title)
	}
	// The comma-separated form field is split, trimmed, lowercased,
	// and deduplicated.
	want := []string{"chemistry", "waec"}
	if len(created.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", created.Tags, want)
	}
	for i := range want {
		if created.Tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", created.Tags, want)
		}
	}
}

func TestCreate_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"category":"science","download_url":"https://x.example.com/a.pdf"}`},
		{"unknown category", `{"title":"T","category":"astrology","download_url":"https://x.example.com/a.pdf"}`},
		{"no locator", `{"title":"T","category":"science"}`},
		{"bad url", `{"title":"T","category":"science","download_url":"notaurl"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			req = testutil.WithUser(req, testutil.PasswordUser())
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body.String())
			}
		})
	}
}
