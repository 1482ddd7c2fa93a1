package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyportal/internal/app/flows"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/app/services"
	"github.com/yigit/studyportal/internal/middleware"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withViewer stands in for the auth middleware.
func withViewer(userID string, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
			c.Set(middleware.ContextRole, role)
		}
		c.Next()
	}
}

func perform(r http.Handler, method, target string, body any, header map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	envelope := struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if !envelope.Success {
		t.Fatalf("unsuccessful response: %s", rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

type stubResources struct {
	services.ResourceService
	gotRole   models.ViewerRole
	gotFilter services.ResourceFilter
	gotPage   int
	gotSize   int
	page      []models.Resource
}

func (s *stubResources) Browse(ctx context.Context, role models.ViewerRole, filter services.ResourceFilter, page, size int) ([]models.Resource, dto.PaginationInfo, error) {
	s.gotRole, s.gotFilter, s.gotPage, s.gotSize = role, filter, page, size
	return s.page, helpers.NewPaginationInfo(len(s.page), page, size), nil
}

type stubWatchlist struct {
	services.WatchlistService
	gotOwner models.Owner
	saved    map[string]bool
	added    []string
}

func (s *stubWatchlist) Saved(ctx context.Context, owner models.Owner, ids []string) (map[string]bool, error) {
	s.gotOwner = owner
	return s.saved, nil
}

func (s *stubWatchlist) Add(ctx context.Context, owner models.Owner, role models.ViewerRole, id string) error {
	if !owner.Valid() {
		return services.ErrNoWatchlistOwner
	}
	s.gotOwner = owner
	s.added = append(s.added, id)
	return nil
}

func (s *stubWatchlist) IDs(ctx context.Context, owner models.Owner) ([]string, error) {
	return s.added, nil
}

func TestListResources_FiltersPagesAndMarksSaved(t *testing.T) {
	resources := &stubResources{page: []models.Resource{{ID: "optics"}, {ID: "waves"}}}
	watchlist := &stubWatchlist{saved: map[string]bool{"waves": true}}
	ctrl := NewResourceController(resources, watchlist, helpers.PageLimits{Default: 12, Max: 60})

	r := gin.New()
	r.GET("/resources", withViewer("", ""), ctrl.ListResources)

	rec := perform(r, http.MethodGet, "/resources?category=Notes,PYQ&category=Syllabus&subject=Physics&stream=sci&q=%20light%20&page=2&size=500", nil,
		map[string]string{middleware.GuestTokenHeader: "guest-9"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	wantFilter := services.ResourceFilter{
		Categories: []string{"Notes", "PYQ", "Syllabus"},
		Subjects:   []string{"Physics"},
		Stream:     "sci",
		Query:      "light",
	}
	if !reflect.DeepEqual(resources.gotFilter, wantFilter) {
		t.Errorf("filter = %+v, want %+v", resources.gotFilter, wantFilter)
	}
	if resources.gotPage != 2 || resources.gotSize != 12 {
		t.Errorf("page/size = %d/%d, want 2/12 (oversized size falls back)", resources.gotPage, resources.gotSize)
	}
	if resources.gotRole != models.ViewerAnonymous {
		t.Errorf("role = %s", resources.gotRole)
	}
	if watchlist.gotOwner.GuestID != "guest-9" {
		t.Errorf("saved lookup owner = %+v", watchlist.gotOwner)
	}

	var body dto.ResourceListResponse
	decodeData(t, rec, &body)
	if len(body.Items) != 2 || body.Items[0].Saved || !body.Items[1].Saved {
		t.Errorf("items = %+v", body.Items)
	}
}

func TestWatchlist_AddRequiresOwner(t *testing.T) {
	watchlist := &stubWatchlist{}
	ctrl := NewWatchlistController(watchlist)

	r := gin.New()
	r.POST("/watchlist", withViewer("", ""), ctrl.AddToWatchlist)

	rec := perform(r, http.MethodPost, "/watchlist", dto.WatchlistRequest{ResourceID: "optics"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no owner: status = %d", rec.Code)
	}

	rec = perform(r, http.MethodPost, "/watchlist", dto.WatchlistRequest{ResourceID: "optics"}, map[string]string{middleware.GuestTokenHeader: "g"})
	if rec.Code != http.StatusOK {
		t.Fatalf("guest: status = %d: %s", rec.Code, rec.Body.String())
	}
	var ids dto.WatchlistIDsResponse
	decodeData(t, rec, &ids)
	if !reflect.DeepEqual(ids.ResourceIDs, []string{"optics"}) {
		t.Errorf("ids = %v", ids.ResourceIDs)
	}

	if rec := perform(r, http.MethodPost, "/watchlist", `{"resourceId":`, map[string]string{middleware.GuestTokenHeader: "g"}); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d", rec.Code)
	}
}

type stubAdmissions struct {
	services.AdmissionService
	openOnly bool
}

func (s *stubAdmissions) ListForms(ctx context.Context, openOnly bool) ([]models.AdmissionForm, error) {
	s.openOnly = openOnly
	return []models.AdmissionForm{}, nil
}

func (s *stubAdmissions) ExportCSV(ctx context.Context, formID string, w io.Writer) error {
	if formID == "missing" {
		return apperrors.ErrAdmissionFormNotFound
	}
	_, err := fmt.Fprint(w, "Application ID,Student Name\n")
	return err
}

func (s *stubAdmissions) WriteReceipt(ctx context.Context, id string, w io.Writer) error {
	_, err := w.Write([]byte("\x89PNG"))
	return err
}

func TestAdmissions_DownloadsAndVisibility(t *testing.T) {
	admissions := &stubAdmissions{}
	ctrl := NewAdmissionController(admissions)

	r := gin.New()
	r.GET("/forms", withViewer("", ""), ctrl.ListForms)
	r.GET("/admin/forms", withViewer("a", models.UserRoleAdmin), ctrl.ListForms)
	r.GET("/forms/:id/export", ctrl.ExportApplications)
	r.GET("/applications/:id/receipt.png", ctrl.Receipt)

	perform(r, http.MethodGet, "/forms", nil, nil)
	if !admissions.openOnly {
		t.Error("anonymous callers must only see open forms")
	}
	perform(r, http.MethodGet, "/admin/forms", nil, nil)
	if admissions.openOnly {
		t.Error("admins see every form")
	}

	rec := perform(r, http.MethodGet, "/forms/f1/export", nil, nil)
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv") {
		t.Errorf("csv: status %d, type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "applications-f1.csv") {
		t.Errorf("disposition = %q", rec.Header().Get("Content-Disposition"))
	}
	if rec := perform(r, http.MethodGet, "/forms/missing/export", nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing form: status = %d", rec.Code)
	}

	rec = perform(r, http.MethodGet, "/applications/a1/receipt.png", nil, nil)
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("receipt type = %q", rec.Header().Get("Content-Type"))
	}
}

type stubGenerator struct {
	services.GenerationService
	err error
}

func (s *stubGenerator) GenerateContent(ctx context.Context, in flows.ContentInput) (flows.GeneratedContent, error) {
	if s.err != nil {
		return flows.GeneratedContent{}, s.err
	}
	return flows.GeneratedContent{Content: "## " + in.Title}, nil
}

func TestGeneration_StatusMapping(t *testing.T) {
	gen := &stubGenerator{}
	ctrl := NewGenerationController(gen)
	r := gin.New()
	r.POST("/content", ctrl.GenerateContent)

	rec := perform(r, http.MethodPost, "/content", flows.ContentInput{Title: "Optics"}, nil)
	var out flows.GeneratedContent
	decodeData(t, rec, &out)
	if out.Content != "## Optics" {
		t.Errorf("content = %q", out.Content)
	}

	gen.err = fmt.Errorf("%w: model returned nothing", apperrors.ErrGenerationFailed)
	if rec := perform(r, http.MethodPost, "/content", flows.ContentInput{Title: "Optics"}, nil); rec.Code != http.StatusBadGateway {
		t.Errorf("generation failure: status = %d", rec.Code)
	}

	gen.err = apperrors.NewValidationError(map[string]string{"title": "is required"})
	if rec := perform(r, http.MethodPost, "/content", flows.ContentInput{}, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid input: status = %d", rec.Code)
	}
}
