package http

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wayfarerhq/wayfarer/internal/journal/filestore/disk"
	"github.com/wayfarerhq/wayfarer/internal/journal/service"
	"github.com/wayfarerhq/wayfarer/internal/journal/store/drivers/sqlite"
	"github.com/wayfarerhq/wayfarer/pkg/journalsdk"
	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

const testPlaceholderURL = "/assets/placeholder.png"

// newTestServer wires a full service stack against a throwaway sqlite
// database and disk filestore, and returns an SDK client pointed at it.
func newTestServer(t *testing.T) (*httptest.Server, *journalsdk.Client) {
	t.Helper()

	dir := t.TempDir()

	st, err := sqlite.NewStore("file:" + filepath.Join(dir, "journal_test.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	files, err := disk.NewStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	secret := []byte("integration-test-secret-0123456789")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, "wayfarer-journal")
	require.NoError(t, err)

	logger := slogx.New(slogx.Config{Service: "journal", Env: "test", Level: "error"})

	images := &service.ImageService{Files: files}
	router := NewRouter(verifier, "test", st, logger)
	router.UserService = &service.UserService{Store: st}
	router.TokenService = &service.TokenService{Signer: signer, Verifier: verifier, Issuer: "wayfarer-journal"}
	router.StoryService = &service.StoryService{Store: st, Images: images, PlaceholderImageURL: testPlaceholderURL}
	router.ImageService = images
	router.UploadsDir = files.Dir()
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	images.ImageBaseURL = srv.URL + "/uploads"
	return srv, journalsdk.NewClient(srv.URL)
}

func testStoryRequest(title string) journalsdk.StoryRequest {
	return journalsdk.StoryRequest{
		Title:           title,
		Story:           "We walked the old wall at dawn.",
		VisitedLocation: []string{"Dubrovnik"},
		ImageURL:        "http://localhost:8080/uploads/img.png",
		VisitedDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC).UnixMilli(),
	}
}

func TestRegisterLoginMe(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	session, err := client.Register(ctx, "Ada Wanderer", "ada@example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken())
	require.Equal(t, "ada@example.com", session.User().Email)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, session.User().ID, me.ID)
	require.Equal(t, "Ada Wanderer", me.FullName)

	// Login with the same credentials yields a working session too.
	login, err := client.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	me, err = login.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, session.User().ID, me.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, "Ada", "ada@example.com", "pw-one")
	require.NoError(t, err)

	_, err = client.Register(ctx, "Other Ada", "ada@example.com", "pw-two")
	var apiErr *journalsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
}

func TestLogin_BadCredentials(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, err = client.Login(ctx, "ada@example.com", "wrong")
	var apiErr *journalsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)

	_, err = client.Login(ctx, "nobody@example.com", "whatever")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
}

func TestStories_RequireAuth(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	_, err := client.NewSession("not-a-token").ListStories(ctx)
	require.True(t, journalsdk.IsUnauthorized(err), "expected 401, got %v", err)
}

func TestStories_CRUD(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	session, err := client.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	created, err := session.CreateStory(ctx, testStoryRequest("City Walls"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.IsFavourite)

	updated, err := session.UpdateStory(ctx, created.ID, journalsdk.StoryRequest{
		Title:           "Harbour at Night",
		Story:           "The harbour glows after sunset.",
		VisitedLocation: []string{"Dubrovnik", "Lokrum"},
		VisitedDate:     created.VisitedDate,
	})
	require.NoError(t, err)
	require.Equal(t, "Harbour at Night", updated.Title)
	// Clearing the image falls back to the placeholder.
	require.Equal(t, testPlaceholderURL, updated.ImageURL)

	favourited, err := session.SetFavourite(ctx, created.ID, true)
	require.NoError(t, err)
	require.True(t, favourited.IsFavourite)

	list, err := session.ListStories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, session.DeleteStory(ctx, created.ID))

	list, err = session.ListStories(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestStories_OwnerIsolation(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	ada, err := client.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	mallory, err := client.Register(ctx, "Mallory", "mallory@example.com", "correct horse")
	require.NoError(t, err)

	created, err := ada.CreateStory(ctx, testStoryRequest("Private Trip"))
	require.NoError(t, err)

	// Someone else's story reads as not found.
	_, err = mallory.UpdateStory(ctx, created.ID, testStoryRequest("Stolen"))
	require.True(t, journalsdk.IsNotFound(err), "expected 404, got %v", err)

	err = mallory.DeleteStory(ctx, created.ID)
	require.True(t, journalsdk.IsNotFound(err), "expected 404, got %v", err)

	list, err := mallory.ListStories(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestStories_MalformedID(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	session, err := client.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	// Story IDs are ULIDs. A malformed id is rejected at the router
	// with the same 404 an unknown id would produce.
	_, err = session.UpdateStory(ctx, "not-a-ulid", testStoryRequest("Nope"))
	require.True(t, journalsdk.IsNotFound(err), "expected 404, got %v", err)

	_, err = session.SetFavourite(ctx, "not-a-ulid", true)
	require.True(t, journalsdk.IsNotFound(err), "expected 404, got %v", err)

	err = session.DeleteStory(ctx, "not-a-ulid")
	require.True(t, journalsdk.IsNotFound(err), "expected 404, got %v", err)
}

func TestStories_SearchAndFilter(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	session, err := client.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, err = session.CreateStory(ctx, testStoryRequest("City Walls"))
	require.NoError(t, err)

	winter := testStoryRequest("Winter Market")
	winter.Story = "Mulled wine between the stalls."
	winter.VisitedLocation = []string{"Zagreb"}
	winter.VisitedDate = time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC).UnixMilli()
	favourite, err := session.CreateStory(ctx, winter)
	require.NoError(t, err)
	_, err = session.SetFavourite(ctx, favourite.ID, true)
	require.NoError(t, err)

	// Search is case-insensitive and puts favourites first.
	found, err := session.SearchStories(ctx, "WALL")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "City Walls", found[0].Title)

	all, err := session.ListStories(ctx)
	require.NoError(t, err)
	require.Equal(t, favourite.ID, all[0].ID)

	found, err = session.FilterStories(ctx,
		time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC).UnixMilli())
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, favourite.ID, found[0].ID)
}

func TestImages_UploadServeDelete(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	session, err := client.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	imageURL, err := session.UploadImage(ctx, "snap.png", strings.NewReader("png bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(imageURL, srv.URL+"/uploads/"))

	// The uploaded file is served back over /uploads/.
	resp, err := srv.Client().Get(imageURL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	require.NoError(t, session.DeleteImage(ctx, imageURL))

	err = session.DeleteImage(ctx, imageURL)
	require.True(t, journalsdk.IsNotFound(err), "expected 404, got %v", err)
}

func TestImages_RejectUnsupportedType(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	session, err := client.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, err = session.UploadImage(ctx, "notes.txt", strings.NewReader("plain text"))
	var apiErr *journalsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, client.Livez(ctx))
	require.NoError(t, client.Readyz(ctx))
}
