package igdb_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamefinder/internal/igdb"
	"gamefinder/internal/services"
)

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := igdb.New("id", "token", "  "); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestFetchGamesSendsQueryAndHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/games" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Client-ID"); got != "client" {
			t.Errorf("Client-ID = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "text/plain" {
			t.Errorf("Content-Type = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		want := "fields name, genres, platforms, rating, cover.url; where genres = (4); limit 20 offset 40;"
		if string(body) != want {
			t.Errorf("body = %q, want %q", body, want)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Doom","genres":[4,5],"platforms":[6],"rating":87.456,"cover":{"url":"//images.igdb.com/doom.jpg"}},{"id":2,"name":"Bare"}]`))
	}))
	t.Cleanup(server.Close)

	client, err := igdb.New("client", "secret-token", server.URL+"/")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	rows, err := client.FetchGames(context.Background(), 4, 20, 40)
	if err != nil {
		t.Fatalf("FetchGames returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0]
	if first.Name != "Doom" || len(first.Genres) != 2 || first.Platforms[0] != 6 {
		t.Fatalf("unexpected first row: %#v", first)
	}
	if first.Rating == nil || *first.Rating != 87.456 {
		t.Fatalf("unexpected rating: %v", first.Rating)
	}
	if first.Cover == nil || first.Cover.URL != "//images.igdb.com/doom.jpg" {
		t.Fatalf("unexpected cover: %#v", first.Cover)
	}
	if rows[1].Rating != nil || rows[1].Cover != nil {
		t.Fatalf("expected absent rating and cover, got %#v", rows[1])
	}
}

func TestFetchGenresBuildsLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != "fields id, name; limit 50;" {
			t.Errorf("unexpected body %q", body)
		}
		switch r.URL.Path {
		case "/genres":
			_, _ = w.Write([]byte(`[{"id":4,"name":"Action"},{"id":31,"name":"Adventure"}]`))
		case "/platforms":
			_, _ = w.Write([]byte(`[{"id":6,"name":"PC (Microsoft Windows)"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := igdb.New("client", "token", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	genres, err := client.FetchGenres(context.Background())
	if err != nil {
		t.Fatalf("FetchGenres returned error: %v", err)
	}
	if genres[4] != "Action" || genres[31] != "Adventure" {
		t.Fatalf("unexpected genres: %v", genres)
	}
	platforms, err := client.FetchPlatforms(context.Background())
	if err != nil {
		t.Fatalf("FetchPlatforms returned error: %v", err)
	}
	if platforms[6] != "PC (Microsoft Windows)" {
		t.Fatalf("unexpected platforms: %v", platforms)
	}
}

func TestQueryErrorsCarryMarkers(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		marker  error
	}{
		{
			name: "status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Authorization Failure"}`))
			},
			marker: services.ErrStatus,
		},
		{
			name: "decode",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"an array"`))
			},
			marker: services.ErrDecode,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			t.Cleanup(server.Close)
			client, err := igdb.New("client", "token", server.URL)
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			_, err = client.FetchGames(context.Background(), 4, 20, 0)
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, err)
			}
			var statusErr *igdb.StatusError
			if tc.marker == services.ErrStatus {
				if !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnauthorized {
					t.Fatalf("expected 401 StatusError, got %v", err)
				}
				if !strings.Contains(err.Error(), "Authorization Failure") {
					t.Fatalf("expected response body in error, got %v", err)
				}
			}
		})
	}
}

func TestQueryTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := igdb.New("client", "token", url)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.FetchGenres(context.Background()); !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
