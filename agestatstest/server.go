// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestatstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/xmidt-org/httpaux"
)

// DefaultName is the name the server uses when a request carries no name parameter.
const DefaultName = "No Name"

// Server is an in-memory stand-in for the age statistics server, listening on
// a loopback address.  Ages come from a fixed table.  Every age request counts
// toward the stats of its name, capitalized, even if the name is unknown.
// Unknown names are answered with 400.
//
// The zero value is not usable.  Use NewServer.
type Server struct {
	*httptest.Server

	lock     sync.Mutex
	ages     map[string]int
	counts   map[string]int
	order    []string
	failures map[string]int
	requests []string
}

// NewServer starts a Server with the given name to age table.  Names are
// matched without regard to case.  Callers must Close the server.
func NewServer(ages map[string]int) *Server {
	s := &Server{
		ages:     make(map[string]int, len(ages)),
		counts:   make(map[string]int),
		failures: make(map[string]int),
	}

	for name, age := range ages {
		s.ages[strings.ToLower(name)] = age
	}

	router := mux.NewRouter()
	router.HandleFunc("/", s.handleAge).Methods(http.MethodGet)
	router.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	router.HandleFunc("/max-age-name", s.handleMaxAge).Methods(http.MethodGet)

	chain := alice.New(
		s.record,
		s.fail,
		responseHeader(httpaux.NewHeader(http.Header{"Content-Type": {"application/json"}})),
	)

	s.Server = httptest.NewServer(chain.Then(router))
	return s
}

// Fail causes every subsequent request for path to be answered with the given
// status code.  A zero status code removes the failure.
func (s *Server) Fail(path string, statusCode int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if statusCode == 0 {
		delete(s.failures, path)
	} else {
		s.failures[path] = statusCode
	}
}

// Requests returns the request URIs received so far, in order.
func (s *Server) Requests() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]string{}, s.requests...)
}

// Counts returns a copy of the per-name request counts.
func (s *Server) Counts() map[string]int {
	s.lock.Lock()
	defer s.lock.Unlock()
	c := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		c[k] = v
	}

	return c
}

// responseHeader sets h on every response before the next handler runs.
func responseHeader(h httpaux.Header) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			h.SetTo(response.Header())
			next.ServeHTTP(response, request)
		})
	}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		s.lock.Lock()
		s.requests = append(s.requests, request.RequestURI)
		s.lock.Unlock()
		next.ServeHTTP(response, request)
	})
}

func (s *Server) fail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		s.lock.Lock()
		statusCode, failed := s.failures[request.URL.Path]
		s.lock.Unlock()

		if failed {
			response.WriteHeader(statusCode)
			return
		}

		next.ServeHTTP(response, request)
	})
}

// capitalize produces the stats key for a name, e.g. "aLICE" becomes "Alice".
func capitalize(name string) string {
	if len(name) == 0 {
		return name
	}

	lower := []rune(strings.ToLower(name))
	lower[0] = []rune(strings.ToUpper(string(lower[0])))[0]
	return string(lower)
}

func (s *Server) handleAge(response http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	name := DefaultName
	if _, ok := query["name"]; ok {
		name = query.Get("name")
	}

	if len(name) == 0 {
		response.WriteHeader(http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	key := capitalize(name)
	if _, seen := s.counts[key]; !seen {
		s.order = append(s.order, key)
	}

	s.counts[key]++
	age, known := s.ages[strings.ToLower(name)]
	s.lock.Unlock()

	if !known {
		response.WriteHeader(http.StatusBadRequest)
		return
	}

	body, _ := json.Marshal(map[string]string{
		"name": name,
		"age":  strconv.Itoa(age),
	})

	response.Write(body)
}

// handleStats writes the counts as a JSON object in first-seen order.
func (s *Server) handleStats(response http.ResponseWriter, _ *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var o strings.Builder
	o.WriteByte('{')
	for i, key := range s.order {
		if i > 0 {
			o.WriteByte(',')
		}

		k, _ := json.Marshal(key)
		o.Write(k)
		o.WriteByte(':')
		o.WriteString(strconv.Itoa(s.counts[key]))
	}

	o.WriteByte('}')
	response.Write([]byte(o.String()))
}

// handleMaxAge writes the largest known age among the counted names as a JSON
// number, or 0 if no counted name is known.
func (s *Server) handleMaxAge(response http.ResponseWriter, _ *http.Request) {
	s.lock.Lock()
	maxAge, found := 0, false
	for _, key := range s.order {
		if age, ok := s.ages[strings.ToLower(key)]; ok && (!found || age > maxAge) {
			maxAge, found = age, true
		}
	}

	s.lock.Unlock()
	response.Write([]byte(`{"age":` + strconv.Itoa(maxAge) + `}`))
}
