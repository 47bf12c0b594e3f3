package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"proxym-fin/internal/dto"
)

// StubPlatform is an in-memory implementation of the platform REST surface,
// served over httptest. Tests use it as the authoritative remote store; it
// also offers gates and fault injection for the failure-path tests.
type StubPlatform struct {
	mu sync.Mutex

	srv *httptest.Server

	users        map[int64]dto.User
	passwords    map[int64]string
	products     map[int64]dto.Product
	transactions map[int64]dto.Transaction
	nextID       map[string]int64

	gates          map[string]chan struct{}
	failUserUpdate bool

	// ChatReply is returned verbatim by the /chat endpoint.
	ChatReply string
}

func NewStubPlatform() *StubPlatform {
	s := &StubPlatform{
		users:        make(map[int64]dto.User),
		passwords:    make(map[int64]string),
		products:     make(map[int64]dto.Product),
		transactions: make(map[int64]dto.Transaction),
		nextID:       map[string]int64{"users": 0, "products": 0, "transactions": 0},
		gates:        make(map[string]chan struct{}),
		ChatReply:    "ok",
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL is the base URL of the stub's API, ready for client.New.
func (s *StubPlatform) URL() string {
	return s.srv.URL + "/api"
}

func (s *StubPlatform) Close() {
	s.srv.Close()
}

// HoldList blocks list responses for the given collection until the returned
// release function is called. Used to simulate a slow, superseded load.
func (s *StubPlatform) HoldList(collection string) (release func()) {
	return s.hold(collection)
}

// HoldCreate blocks create responses for the given collection. Used to keep a
// mutation in flight while tests poke at the caller.
func (s *StubPlatform) HoldCreate(collection string) (release func()) {
	return s.hold("create:" + collection)
}

// HoldDelete blocks delete responses for the given collection.
func (s *StubPlatform) HoldDelete(collection string) (release func()) {
	return s.hold("delete:" + collection)
}

func (s *StubPlatform) hold(key string) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.gates[key] = ch
	return func() { close(ch) }
}

// FailNextUserUpdate makes the next PUT /users/{id} fail with a 500.
func (s *StubPlatform) FailNextUserUpdate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUserUpdate = true
}

func (s *StubPlatform) SeedUser(u dto.User, password string) dto.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.allocID("users")
	}
	plain := password
	u.Password = ""
	s.users[u.ID] = u
	s.passwords[u.ID] = plain
	return u
}

func (s *StubPlatform) SeedProduct(p dto.Product) dto.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.allocID("products")
	}
	s.products[p.ID] = p
	return p
}

func (s *StubPlatform) SeedTransaction(t dto.Transaction) dto.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.allocID("transactions")
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	s.transactions[t.ID] = t
	return t
}

// UserRecord returns the stub's authoritative copy of a user.
func (s *StubPlatform) UserRecord(id int64) (dto.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// TransactionCount reports how many transactions the stub holds.
func (s *StubPlatform) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

func (s *StubPlatform) allocID(collection string) int64 {
	s.nextID[collection]++
	return s.nextID[collection]
}

func (s *StubPlatform) waitGate(key string) {
	s.mu.Lock()
	ch := s.gates[key]
	s.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

func (s *StubPlatform) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case len(parts) == 2 && parts[0] == "auth":
		s.handleAuth(w, r, parts[1])
	case parts[0] == "users":
		s.handleUsers(w, r, parts)
	case parts[0] == "products":
		s.handleProducts(w, r, parts)
	case parts[0] == "transactions":
		s.handleTransactions(w, r, parts)
	case parts[0] == "recommendations" && len(parts) == 2:
		s.waitGate("recommendations")
		s.mu.Lock()
		out := make([]dto.Product, 0, len(s.products))
		for _, p := range s.products {
			out = append(out, p)
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
	case parts[0] == "chat" && r.Method == http.MethodPost:
		writeJSON(w, http.StatusOK, dto.ChatResponse{Response: s.ChatReply})
	default:
		writeError(w, http.StatusNotFound, "no such route")
	}
}

func (s *StubPlatform) handleAuth(w http.ResponseWriter, r *http.Request, action string) {
	switch action {
	case "login":
		var req dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		defer s.mu.Unlock()
		for id, u := range s.users {
			if u.Email == req.Email && s.passwords[id] == req.Password {
				writeJSON(w, http.StatusOK, dto.AuthResponse{Token: "stub-token", User: u})
				return
			}
		}
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case "signup":
		var req dto.SignupRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, u := range s.users {
			if u.Email == req.Email {
				writeError(w, http.StatusBadRequest, "email already in use")
				return
			}
		}
		u := dto.User{
			ID:             s.allocID("users"),
			Name:           req.Name,
			Email:          req.Email,
			Age:            req.Age,
			Role:           "USER",
			RiskProfile:    "Medium",
			FinancialGoals: "Savings",
		}
		s.users[u.ID] = u
		s.passwords[u.ID] = req.Password
		writeJSON(w, http.StatusCreated, dto.AuthResponse{Token: "stub-token", User: u})
	default:
		writeError(w, http.StatusNotFound, "no such route")
	}
}

func (s *StubPlatform) handleUsers(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.waitGate("users")
			s.mu.Lock()
			out := make([]dto.User, 0, len(s.users))
			for i := int64(1); i <= s.nextID["users"]; i++ {
				if u, ok := s.users[i]; ok {
					out = append(out, u)
				}
			}
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			s.waitGate("create:users")
			var u dto.User
			_ = json.NewDecoder(r.Body).Decode(&u)
			s.mu.Lock()
			u.ID = s.allocID("users")
			s.passwords[u.ID] = u.Password
			u.Password = ""
			s.users[u.ID] = u
			s.mu.Unlock()
			writeJSON(w, http.StatusCreated, u)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if r.Method == http.MethodDelete {
		s.waitGate("delete:users")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		if u, ok := s.users[id]; ok {
			writeJSON(w, http.StatusOK, u)
			return
		}
		writeError(w, http.StatusNotFound, "user not found")
	case http.MethodPut:
		if s.failUserUpdate {
			s.failUserUpdate = false
			writeError(w, http.StatusInternalServerError, "simulated failure")
			return
		}
		if _, ok := s.users[id]; !ok {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		var u dto.User
		_ = json.NewDecoder(r.Body).Decode(&u)
		u.ID = id
		if u.Password != "" {
			s.passwords[id] = u.Password
		}
		u.Password = ""
		s.users[id] = u
		writeJSON(w, http.StatusOK, u)
	case http.MethodDelete:
		if _, ok := s.users[id]; !ok {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		delete(s.users, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *StubPlatform) handleProducts(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.waitGate("products")
			s.mu.Lock()
			out := make([]dto.Product, 0, len(s.products))
			for i := int64(1); i <= s.nextID["products"]; i++ {
				if p, ok := s.products[i]; ok {
					out = append(out, p)
				}
			}
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			s.waitGate("create:products")
			var p dto.Product
			_ = json.NewDecoder(r.Body).Decode(&p)
			s.mu.Lock()
			p.ID = s.allocID("products")
			s.products[p.ID] = p
			s.mu.Unlock()
			writeJSON(w, http.StatusCreated, p)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if r.Method == http.MethodDelete {
		s.waitGate("delete:products")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		if p, ok := s.products[id]; ok {
			writeJSON(w, http.StatusOK, p)
			return
		}
		writeError(w, http.StatusNotFound, "product not found")
	case http.MethodPut:
		if _, ok := s.products[id]; !ok {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		var p dto.Product
		_ = json.NewDecoder(r.Body).Decode(&p)
		p.ID = id
		s.products[id] = p
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if _, ok := s.products[id]; !ok {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		delete(s.products, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *StubPlatform) handleTransactions(w http.ResponseWriter, r *http.Request, parts []string) {
	// transactions/user/{id}
	if len(parts) == 3 && parts[1] == "user" && r.Method == http.MethodGet {
		userID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		s.waitGate("transactions")
		s.mu.Lock()
		out := make([]dto.Transaction, 0)
		for i := s.nextID["transactions"]; i >= 1; i-- {
			if t, ok := s.transactions[i]; ok && t.UserID == userID {
				out = append(out, t)
			}
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.waitGate("transactions")
			s.mu.Lock()
			out := make([]dto.Transaction, 0, len(s.transactions))
			for i := s.nextID["transactions"]; i >= 1; i-- {
				if t, ok := s.transactions[i]; ok {
					out = append(out, t)
				}
			}
			s.mu.Unlock()
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			s.waitGate("create:transactions")
			var t dto.Transaction
			_ = json.NewDecoder(r.Body).Decode(&t)
			if t.UserID == 0 {
				writeError(w, http.StatusBadRequest, "transaction owner is required")
				return
			}
			s.mu.Lock()
			t.ID = s.allocID("transactions")
			if t.Date.IsZero() {
				t.Date = time.Now()
			}
			s.transactions[t.ID] = t
			s.mu.Unlock()
			writeJSON(w, http.StatusCreated, t)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if r.Method == http.MethodDelete {
		s.waitGate("delete:transactions")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		if t, ok := s.transactions[id]; ok {
			writeJSON(w, http.StatusOK, t)
			return
		}
		writeError(w, http.StatusNotFound, "transaction not found")
	case http.MethodPut:
		if _, ok := s.transactions[id]; !ok {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		var t dto.Transaction
		_ = json.NewDecoder(r.Body).Decode(&t)
		t.ID = id
		s.transactions[id] = t
		writeJSON(w, http.StatusOK, t)
	case http.MethodDelete:
		if _, ok := s.transactions[id]; !ok {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		delete(s.transactions, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
