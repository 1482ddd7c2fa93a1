package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"slices"
	"testing"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func seedResource(id string, vis models.Visibility, comingSoon bool) models.Resource {
	return models.Resource{
		ID:           id,
		Title:        id,
		Content:      "content of " + id,
		Category:     []string{"Notes"},
		Subject:      []string{"Physics"},
		Stream:       []string{"Science"},
		ImageURL:     "/uploads/resources/images/" + id + ".png",
		PdfURL:       strPtr("/uploads/resources/pdfs/" + id + ".pdf"),
		IsComingSoon: comingSoon,
		Visibility:   vis,
	}
}

// visibilitySeed has one resource per {public, private} x {released, coming soon}.
func visibilitySeed() []models.Resource {
	return []models.Resource{
		seedResource("public-released", models.VisibilityPublic, false),
		seedResource("public-soon", models.VisibilityPublic, true),
		seedResource("private-released", models.VisibilityPrivate, false),
		seedResource("private-soon", models.VisibilityPrivate, true),
	}
}

func ids(resources []models.Resource) []string {
	out := make([]string, len(resources))
	for i, r := range resources {
		out[i] = r.ID
	}
	slices.Sort(out)
	return out
}

func TestResourceService_FetchVisibility(t *testing.T) {
	svc := NewResourceService(newFakeResourceStore(visibilitySeed()...), &fakeStorage{})

	tests := []struct {
		role models.ViewerRole
		want []string
	}{
		{models.ViewerAnonymous, []string{"public-released"}},
		{models.ViewerAuthenticated, []string{"private-released", "public-released"}},
		{models.ViewerAdmin, []string{"private-released", "private-soon", "public-released", "public-soon"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got, err := svc.Fetch(context.Background(), tt.role)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if !slices.Equal(ids(got), tt.want) {
				t.Errorf("got %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestResourceService_FetchNewestFirst(t *testing.T) {
	store := newFakeResourceStore(
		seedResource("first", models.VisibilityPublic, false),
		seedResource("second", models.VisibilityPublic, false),
		seedResource("third", models.VisibilityPublic, false),
	)
	got, err := NewResourceService(store, &fakeStorage{}).Fetch(context.Background(), models.ViewerAnonymous)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	order := []string{got[0].ID, got[1].ID, got[2].ID}
	if !slices.Equal(order, []string{"third", "second", "first"}) {
		t.Errorf("order = %v", order)
	}
}

func TestResourceService_FetchStoreFailure(t *testing.T) {
	store := newFakeResourceStore()
	store.failList = true
	_, err := NewResourceService(store, &fakeStorage{}).Fetch(context.Background(), models.ViewerAdmin)
	if !errors.Is(err, apperrors.ErrStoreFailure) {
		t.Fatalf("err = %v, want store failure", err)
	}
}

func TestResourceService_FetchByID(t *testing.T) {
	svc := NewResourceService(newFakeResourceStore(visibilitySeed()...), &fakeStorage{})
	ctx := context.Background()

	if _, err := svc.FetchByID(ctx, "private-released", models.ViewerAnonymous); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("private for anonymous: err = %v", err)
	}
	if _, err := svc.FetchByID(ctx, "public-soon", models.ViewerAuthenticated); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("coming soon for user: err = %v", err)
	}
	if _, err := svc.FetchByID(ctx, "missing", models.ViewerAdmin); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("missing: err = %v", err)
	}

	res, err := svc.FetchByID(ctx, "public-soon", models.ViewerAdmin)
	if err != nil {
		t.Fatalf("admin coming soon: %v", err)
	}
	if res.PdfURL == nil {
		t.Error("admin should keep the download link of an unreleased resource")
	}

	res, err = svc.FetchByID(ctx, "private-released", models.ViewerAuthenticated)
	if err != nil {
		t.Fatalf("private for user: %v", err)
	}
	if res.PdfURL == nil {
		t.Error("released resource lost its download link")
	}
}

func TestResourceService_BrowsePagesReproduceFilteredList(t *testing.T) {
	var seed []models.Resource
	for i := 0; i < 23; i++ {
		r := seedResource(fmt.Sprintf("res-%02d", i), models.VisibilityPublic, false)
		if i%3 == 0 {
			r.Subject = []string{"Chemistry"}
		}
		seed = append(seed, r)
	}
	svc := NewResourceService(newFakeResourceStore(seed...), &fakeStorage{})
	ctx := context.Background()
	filter := ResourceFilter{Subjects: []string{"physics"}}

	all, err := svc.Fetch(ctx, models.ViewerAnonymous)
	if err != nil {
		t.Fatal(err)
	}
	want := filter.Apply(all)

	for _, size := range []int{1, 4, 5, 15, 100} {
		var joined []models.Resource
		var info dto.PaginationInfo
		for page := 1; ; page++ {
			items, pi, err := svc.Browse(ctx, models.ViewerAnonymous, filter, page, size)
			if err != nil {
				t.Fatalf("Browse: %v", err)
			}
			info = pi
			if len(items) == 0 {
				break
			}
			if page == pi.TotalPages {
				wantLast := len(want) % size
				if wantLast == 0 {
					wantLast = size
				}
				if len(items) != wantLast {
					t.Errorf("size %d: last page has %d items, want %d", size, len(items), wantLast)
				}
			}
			joined = append(joined, items...)
		}
		if len(joined) != len(want) {
			t.Fatalf("size %d: pages hold %d items, want %d", size, len(joined), len(want))
		}
		for i := range want {
			if joined[i].ID != want[i].ID {
				t.Fatalf("size %d: item %d = %s, want %s", size, i, joined[i].ID, want[i].ID)
			}
		}
		if info.TotalItems != len(want) {
			t.Errorf("size %d: total items %d, want %d", size, info.TotalItems, len(want))
		}
	}
}

func validResourceRequest(title string) *dto.ResourceRequest {
	return &dto.ResourceRequest{
		Title:    title,
		Content:  "Complete chapter-wise notes.",
		Category: []string{"Notes"},
		Subject:  []string{"Physics"},
		Stream:   []string{"Science"},
		ImageURL: "https://cdn.example.com/physics.png",
		PdfURL:   "https://cdn.example.com/physics.pdf",
	}
}

func TestResourceService_Create(t *testing.T) {
	store := newFakeResourceStore()
	svc := NewResourceService(store, &fakeStorage{})
	ctx := context.Background()

	res, err := svc.Create(ctx, validResourceRequest("Class 11 Physics Notes!"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ID != "class-11-physics-notes" {
		t.Errorf("id = %q", res.ID)
	}
	if res.Visibility != models.VisibilityPublic {
		t.Errorf("visibility defaulted to %q", res.Visibility)
	}

	if _, err := svc.Create(ctx, validResourceRequest("class 11 physics notes")); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("duplicate slug: err = %v, want conflict", err)
	}
}

func TestResourceService_CreateValidation(t *testing.T) {
	svc := NewResourceService(newFakeResourceStore(), &fakeStorage{})

	req := validResourceRequest("Physics")
	req.Category = nil
	req.PdfURL = ""
	req.Content = "short"

	_, err := svc.Create(context.Background(), req)
	verr, ok := apperrors.AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	for _, field := range []string{"category", "pdfUrl", "content"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("missing error for %s in %v", field, verr.Fields)
		}
	}

	req = validResourceRequest("Upcoming Chemistry")
	req.PdfURL = ""
	req.IsComingSoon = true
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Errorf("coming soon without pdf: %v", err)
	}
}

func TestResourceService_DeleteRemovesOwnFilesOnly(t *testing.T) {
	r := seedResource("notes", models.VisibilityPublic, false)
	r.ImageURL = "https://cdn.example.com/notes.png"
	storage := &fakeStorage{}
	store := newFakeResourceStore(r)
	svc := NewResourceService(store, storage)

	if err := svc.Delete(context.Background(), "notes"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.has("notes") {
		t.Error("resource still stored")
	}
	if !slices.Equal(storage.deleted, []string{"/uploads/resources/pdfs/notes.pdf"}) {
		t.Errorf("deleted files = %v", storage.deleted)
	}

	if err := svc.Delete(context.Background(), "notes"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}

func TestResourceService_UploadKinds(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewResourceService(newFakeResourceStore(), storage)

	url, err := svc.Upload(&multipart.FileHeader{Filename: "cover.png"}, UploadImage)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "/uploads/resources/images/cover.png" {
		t.Errorf("url = %q", url)
	}
	if _, err := svc.Upload(&multipart.FileHeader{Filename: "x.bin"}, UploadKind("video")); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("unknown kind: err = %v", err)
	}
}
