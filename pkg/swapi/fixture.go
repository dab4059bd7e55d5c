package swapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
)

// FixturePlanets is the table served by default. The ids and names match
// the public API.
var FixturePlanets = map[int]Planet{
	1:  {Name: "Tatooine", Climate: "arid", Terrain: "desert", Population: "200000"},
	2:  {Name: "Alderaan", Climate: "temperate", Terrain: "grasslands, mountains", Population: "2000000000"},
	3:  {Name: "Yavin IV", Climate: "temperate, tropical", Terrain: "jungle, rainforests", Population: "1000"},
	4:  {Name: "Hoth", Climate: "frozen", Terrain: "tundra, ice caves, mountain ranges", Population: "unknown"},
	5:  {Name: "Dagobah", Climate: "murky", Terrain: "swamp, jungles", Population: "unknown"},
	6:  {Name: "Bespin", Climate: "temperate", Terrain: "gas giant", Population: "6000000"},
	7:  {Name: "Endor", Climate: "temperate", Terrain: "forests, mountains, lakes", Population: "30000000"},
	8:  {Name: "Naboo", Climate: "temperate", Terrain: "grassy hills, swamps, forests, mountains", Population: "4500000000"},
	9:  {Name: "Coruscant", Climate: "temperate", Terrain: "cityscape, mountains", Population: "1000000000000"},
	10: {Name: "Kamino", Climate: "temperate", Terrain: "ocean", Population: "1000000000"},
}

// FixtureServer serves planets from memory under /api, in the same shape
// as the public API. It is an http.Handler; wrap it with httptest or
// http.Server.
type FixtureServer struct {
	router  *mux.Router
	mu      sync.RWMutex
	planets map[int]Planet
	latency time.Duration
	hits    atomic.Int64
}

// FixtureOption configures a FixtureServer.
type FixtureOption func(*FixtureServer)

// WithLatency delays every planet response by d, or until the client gives up.
func WithLatency(d time.Duration) FixtureOption {
	return func(s *FixtureServer) {
		s.latency = d
	}
}

// WithPlanets replaces the served table.
func WithPlanets(planets map[int]Planet) FixtureOption {
	return func(s *FixtureServer) {
		s.planets = planets
	}
}

// NewFixtureServer creates a server over FixturePlanets.
func NewFixtureServer(opts ...FixtureOption) *FixtureServer {
	s := &FixtureServer{planets: FixturePlanets}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter().StrictSlash(true)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/planets/", s.listPlanets).Methods(http.MethodGet)
	api.HandleFunc("/planets/{id:[0-9]+}/", s.planet).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(s.notFound)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *FixtureServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetLatency changes the artificial latency for later requests.
func (s *FixtureServer) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// Hits returns the number of planet lookups served or attempted.
func (s *FixtureServer) Hits() int64 {
	return s.hits.Load()
}

func (s *FixtureServer) planet(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		s.notFound(w, r)
		return
	}

	s.mu.RLock()
	latency := s.latency
	planet, ok := s.planets[id]
	s.mu.RUnlock()

	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-r.Context().Done():
			return
		}
	}

	if !ok {
		s.notFound(w, r)
		return
	}
	planet.URL = fmt.Sprintf("%s://%s/api/planets/%d/", scheme(r), r.Host, id)
	writeJSON(w, http.StatusOK, planet)
}

type planetList struct {
	Count   int      `json:"count"`
	Results []Planet `json:"results"`
}

func (s *FixtureServer) listPlanets(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ids := make([]int, 0, len(s.planets))
	for id := range s.planets {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	list := planetList{Count: len(ids), Results: make([]Planet, 0, len(ids))}
	for _, id := range ids {
		planet := s.planets[id]
		planet.URL = fmt.Sprintf("%s://%s/api/planets/%d/", scheme(r), r.Host, id)
		list.Results = append(list.Results, planet)
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, list)
}

func (s *FixtureServer) notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func scheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
